package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/bmi-percentile/internal/calc"
)

func init() {
	cmd := &cobra.Command{
		Use:   "minor",
		Short: "Compute a BMI-for-age percentile (ages 5 to 19)",
		Long: "Compute a WHO BMI-for-age percentile. Give the age either in years (--age) or as a\n" +
			"birth date (--birthdate: YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY).",
		Run: runMinor,
	}

	cmd.Flags().StringP("sex", "s", "", "Masculino or Femenino (required)")
	cmd.Flags().StringP("age", "a", "", "Age in years")
	cmd.Flags().StringP("birthdate", "b", "", "Birth date")
	cmd.Flags().StringP("weight", "w", "", "Weight in kg (required)")
	cmd.Flags().StringP("height", "H", "", "Height in m or cm (required)")
	cmd.Flags().Bool("save", false, "Save the result to the history")

	cmd.MarkFlagRequired("sex")
	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagRequired("height")
	cmd.MarkFlagsMutuallyExclusive("age", "birthdate")
	cmd.MarkFlagsOneRequired("age", "birthdate")

	RootCmd.AddCommand(cmd)
}

func runMinor(cmd *cobra.Command, args []string) {
	sex, _ := cmd.Flags().GetString("sex")
	age, _ := cmd.Flags().GetString("age")
	birthdate, _ := cmd.Flags().GetString("birthdate")
	weight, _ := cmd.Flags().GetString("weight")
	height, _ := cmd.Flags().GetString("height")
	save, _ := cmd.Flags().GetBool("save")

	log := newLogger()
	defer log.Sync()
	c := newCalculator(log)

	var res *calc.MinorResult
	var err error
	if birthdate != "" {
		res, err = c.MinorByBirthdate(cmd.Context(), sex, birthdate, weight, height)
	} else {
		res, err = c.MinorByAge(cmd.Context(), sex, age, weight, height)
	}
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
		fmt.Printf("BMI %.2f, percentile %.1f at %d months: %s\n", res.BMI, res.Percentile, res.AgeMonths, res.Category.Name)
		fmt.Println(res.Narrative)
		return
	}
	printJSON(res)
}
