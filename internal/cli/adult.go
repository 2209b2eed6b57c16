package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	cmd := &cobra.Command{
		Use:   "adult",
		Short: "Compute an adult BMI and its category",
		Long:  "Compute an adult BMI. Height may be given in meters or centimeters; either '.' or ',' works as the decimal separator.",
		Run:   runAdult,
	}

	cmd.Flags().StringP("weight", "w", "", "Weight in kg (required)")
	cmd.Flags().StringP("height", "H", "", "Height in m or cm (required)")
	cmd.Flags().Bool("save", false, "Save the result to the history")

	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagRequired("height")

	RootCmd.AddCommand(cmd)
}

func runAdult(cmd *cobra.Command, args []string) {
	weight, _ := cmd.Flags().GetString("weight")
	height, _ := cmd.Flags().GetString("height")
	save, _ := cmd.Flags().GetBool("save")

	log := newLogger()
	defer log.Sync()

	res, err := newCalculator(log).Adult(weight, height)
	if err != nil {
		exitCalcErr(err)
	}

	if save {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()
		rec, err := s.Save(cmd.Context(), res.Record())
		if err != nil {
			exitErr("save", err)
		}
		log.Info("measurement saved", zap.String("id", rec.ID), zap.String("kind", string(rec.Kind)))
	}

	if formatFlag == "text" {
		fmt.Printf("BMI %.2f: %s (%s)\n", res.BMI, res.Category.Name, res.Category.RangeText)
		return
	}
	printJSON(res)
}
