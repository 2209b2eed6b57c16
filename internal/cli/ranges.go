package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/bmi-percentile/internal/classify"
	"github.com/rcliao/bmi-percentile/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "List the categories of the adult or minor bar",
		Run:   runRanges,
	}

	cmd.Flags().StringP("kind", "k", "adult", "adult or minor")

	RootCmd.AddCommand(cmd)
}

func runRanges(cmd *cobra.Command, args []string) {
	kindStr, _ := cmd.Flags().GetString("kind")
	kind, err := model.ParseKind(kindStr)
	if err != nil {
		exitErr("ranges", err)
	}

	scale := classify.Adult()
	if kind == model.KindMinor {
		scale = classify.Minor()
	}

	if formatFlag == "text" {
		for _, b := range scale.Bands() {
			fmt.Printf("%-16s %-10s %s\n", b.Name, b.RangeText, b.Color)
		}
		return
	}
	printJSON(scale.Bands())
}
