package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/bmi-percentile/internal/model"
	"github.com/rcliao/bmi-percentile/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear saved measurements",
}

func init() {
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved measurements, newest first",
		Run:   runHistoryList,
	}
	list.Flags().StringP("kind", "k", "adult", "adult or minor")
	list.Flags().IntP("limit", "l", 0, "Max results (0 for all)")

	rm := &cobra.Command{
		Use:   "rm",
		Short: "Delete the adult or minor history",
		Run:   runHistoryRm,
	}
	rm.Flags().StringP("kind", "k", "", "adult or minor (required unless --all)")
	rm.Flags().Bool("all", false, "Delete both histories")
	rm.MarkFlagsMutuallyExclusive("kind", "all")
	rm.MarkFlagsOneRequired("kind", "all")

	chart := &cobra.Command{
		Use:   "chart",
		Short: "Print the chart series: BMI for adults, percentile for minors",
		Run:   runHistoryChart,
	}
	chart.Flags().StringP("kind", "k", "adult", "adult or minor")

	historyCmd.AddCommand(list, rm, chart)
	RootCmd.AddCommand(historyCmd)
}

func kindFlag(cmd *cobra.Command) model.Kind {
	s, _ := cmd.Flags().GetString("kind")
	kind, err := model.ParseKind(s)
	if err != nil {
		exitErr(cmd.Name(), err)
	}
	return kind
}

func runHistoryList(cmd *cobra.Command, args []string) {
	kind := kindFlag(cmd)
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.List(cmd.Context(), store.ListParams{Kind: kind, Limit: limit})
	if err != nil {
		exitErr("list", err)
	}

	if formatFlag == "text" {
		for _, r := range records {
			line := fmt.Sprintf("%s  %6.2f kg  %4.2f m  BMI %5.2f", r.CreatedAt.Local().Format("02-01-2006 15:04"), r.WeightKg, r.HeightM, r.BMI)
			if r.Kind == model.KindMinor && r.Percentile != nil && r.AgeMonths != nil {
				line += fmt.Sprintf("  P%.1f  %s  %d months", *r.Percentile, r.Sex, *r.AgeMonths)
			}
			fmt.Println(line)
		}
		return
	}
	if records == nil {
		records = []model.Record{}
	}
	printJSON(records)
}

func runHistoryRm(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")
	var kind model.Kind
	if !all {
		kind = kindFlag(cmd)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.Delete(cmd.Context(), kind)
	if err != nil {
		exitErr("rm", err)
	}

	scope := string(kind)
	if all {
		scope = "all"
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"kind":%q,"deleted":%d}`+"\n", scope, n)
}

func runHistoryChart(cmd *cobra.Command, args []string) {
	kind := kindFlag(cmd)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	points, err := s.Series(cmd.Context(), kind)
	if err != nil {
		exitErr("chart", err)
	}
	if points == nil {
		points = []model.Point{}
	}
	printJSON(points)
}
