package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/bmi-percentile/internal/export"
	"github.com/rcliao/bmi-percentile/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as JSON or an Excel workbook",
		Long:  "Export saved measurements as JSON on stdout, or as an .xlsx file with --xlsx. Filter by kind with -k.",
		Run:   runExport,
	}

	cmd.Flags().StringP("kind", "k", "", "adult or minor (default: both)")
	cmd.Flags().String("xlsx", "", "Write an Excel workbook to this path")

	historyCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	kindStr, _ := cmd.Flags().GetString("kind")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	var kind model.Kind
	if kindStr != "" {
		kind = kindFlag(cmd)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.ExportAll(cmd.Context(), kind)
	if err != nil {
		exitErr("export", err)
	}

	if xlsxPath == "" {
		if records == nil {
			records = []model.Record{}
		}
		printJSON(records)
		return
	}

	f, err := os.Create(xlsxPath)
	if err != nil {
		exitErr("create file", err)
	}
	if err := export.WriteXLSX(f, records); err != nil {
		f.Close()
		exitErr("export", err)
	}
	if err := f.Close(); err != nil {
		exitErr("export", err)
	}
	fmt.Printf(`{"ok":true,"path":%q,"records":%d}`+"\n", xlsxPath, len(records))
}
