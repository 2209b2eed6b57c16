// Package cli implements the bmi CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/bmi-percentile/internal/calc"
	"github.com/rcliao/bmi-percentile/internal/calcerr"
	"github.com/rcliao/bmi-percentile/internal/config"
	"github.com/rcliao/bmi-percentile/internal/lms"
	"github.com/rcliao/bmi-percentile/internal/logger"
	"github.com/rcliao/bmi-percentile/internal/store"
)

var (
	dbPath     string
	tablesDir  string
	logLevel   string
	formatFlag string

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "bmi",
	Short: "BMI and BMI-for-age percentile calculator",
	Long: "Computes adult BMI categories and WHO BMI-for-age percentiles for ages 5 to 19.\n" +
		"Results can be saved to a local SQLite history.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $BMI_DB or ~/.bmi-percentile/history.db)")
	RootCmd.PersistentFlags().StringVar(&tablesDir, "tables", "", "Directory holding the LMS tables (default: $BMI_TABLES_DIR or ./tables)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $BMI_LOG_LEVEL or warn)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func newLogger() *zap.Logger {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	l, err := logger.New(level, cfg.LogFormat)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func newCalculator(log *zap.Logger) *calc.Calculator {
	dir := cfg.TablesDir
	if tablesDir != "" {
		dir = tablesDir
	}
	src := lms.NewDirSource(os.DirFS(filepath.Clean(dir)))
	src.MaleFile = cfg.MaleFile
	src.FemaleFile = cfg.FemaleFile
	return calc.New(lms.NewCachedSource(src), calc.WithLogger(log))
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// exitCalcErr prints a computation failure as a result object.
func exitCalcErr(err error) {
	e := calcerr.As(err)
	out := map[string]any{"error": e.Error(), "kind": e.Kind}
	if e.Field != "" {
		out["field"] = e.Field
	}
	if formatFlag == "text" {
		fmt.Fprintf(os.Stderr, "error: %s\n", e.Error())
	} else {
		printJSON(out)
	}
	os.Exit(1)
}
