package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docanalyzer/constants"
	"github.com/joseph-ayodele/docanalyzer/internal/common"
)

var (
	catalogPath string
	allPages    bool
	docType     string
)

var estateCmd = &cobra.Command{
	Use:   "estate <pdf>",
	Short: "Extract the key fields of a power-of-attorney document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDocument(cmd, constants.Estate, args[0])
	},
}

var taxCmd = &cobra.Command{
	Use:   "tax <pdf>",
	Short: "Extract the catalog line amounts of a tax return",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDocument(cmd, constants.Tax, args[0])
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze --type <document type> <pdf>",
	Short: `Analyze a PDF by document type ("Power of Attorney" or "Tax Return")`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseDocType(docType)
		if err != nil {
			return err
		}
		return runDocument(cmd, kind, args[0])
	},
}

func init() {
	for _, c := range []*cobra.Command{taxCmd, analyzeCmd} {
		c.Flags().StringVar(&catalogPath, "catalog", "", "YAML field catalog (default: built-in lines 4, 7, 10, 14-17)")
		c.Flags().BoolVar(&allPages, "all-pages", false, "OCR every page instead of the first")
	}
	analyzeCmd.Flags().StringVarP(&docType, "type", "t", "", `document type: "Power of Attorney" or "Tax Return"`)
	_ = analyzeCmd.MarkFlagRequired("type")
}

// runDocument processes one PDF and writes the result; nothing is written on failure.
func runDocument(cmd *cobra.Command, kind constants.DocType, pdfPath string) error {
	ctx := cmd.Context()
	format, err := parseOutput()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Tax.CatalogPath = catalogPath
	}
	if cmd.Flags().Changed("all-pages") {
		cfg.Tax.AllPages = allPages
	}

	proc, closeFn, err := newProcessor(ctx, cfg, kind)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("llm.close.failed", "error", err)
		}
	}()

	res, err := proc.Process(ctx, kind, pdfPath)
	if err != nil {
		return err
	}
	return writeResult(cmd, format, res)
}

func parseDocType(s string) (constants.DocType, error) {
	kind, ok := constants.Canonicalize(s)
	if !ok {
		names := make([]string, 0, len(constants.DisplayName))
		for _, dt := range constants.AllDocTypes() {
			names = append(names, fmt.Sprintf("%q", constants.DisplayName[dt]))
		}
		return "", common.NewInputError(fmt.Sprintf("unknown document type %q (want %s)", s, strings.Join(names, " or ")), nil)
	}
	return kind, nil
}
