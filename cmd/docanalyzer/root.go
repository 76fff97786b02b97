package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
)

var (
	cfgFile      string
	logLevel     string
	logJSON      bool
	outputFormat string
	outPath      string

	cfg    *common.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docanalyzer",
	Short: "Extract structured data from estate and tax PDFs",
	Long: `docanalyzer reads a single PDF and prints its key data.

Estate documents (power of attorney) are read from the PDF text layer and
summarized by an LLM into title, date, client, governing law, agent, summary
and page count. Tax returns are rendered, OCR'd with tesseract, and the
amounts next to the catalog's line labels are picked out geometrically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := common.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-json") {
			loaded.Log.JSON = logJSON
		}
		cfg = loaded
		logger = newLogger(cfg.Log)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./docanalyzer.yaml or ~/.docanalyzer/docanalyzer.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)
	rootCmd.PersistentFlags().BoolVar(
		&logJSON, "log-json", false, "log as JSON instead of text",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: json, table, xlsx or html",
	)
	rootCmd.PersistentFlags().StringVar(
		&outPath, "out", "", "write the result to this file (xlsx defaults to <name>_extracted.xlsx)",
	)

	rootCmd.AddCommand(estateCmd, taxCmd, analyzeCmd, listCmd, catalogCmd)
}

// newLogger builds the stderr handler; logs never mix with results on stdout.
func newLogger(c common.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		fmt.Fprintf(os.Stderr, "unknown log level %q, using info\n", c.Level)
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
