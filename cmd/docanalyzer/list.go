package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docanalyzer/constants"
	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/ingest"
)

var listType string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the PDFs in the estate and tax document folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := constants.AllDocTypes()
		if listType != "" {
			kind, err := parseDocType(listType)
			if err != nil {
				return err
			}
			kinds = []constants.DocType{kind}
		}

		out := cmd.OutOrStdout()
		for _, kind := range kinds {
			dir := docsDir(cfg, kind)
			paths, err := ingest.ListPDFs(dir)
			if err != nil {
				if len(kinds) > 1 && common.IsInput(err) {
					fmt.Fprintf(out, "%s (%s): %v\n", constants.DisplayName[kind], dir, err)
					continue
				}
				return err
			}
			fmt.Fprintf(out, "%s (%s):\n", constants.DisplayName[kind], dir)
			for _, p := range paths {
				fmt.Fprintf(out, "  %s\n", filepath.Base(p))
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", `only list one document type ("Power of Attorney" or "Tax Return")`)
}

func docsDir(c *common.Config, kind constants.DocType) string {
	switch kind {
	case constants.Estate:
		if c.Docs.EstateDir != "" {
			return c.Docs.EstateDir
		}
	case constants.Tax:
		if c.Docs.TaxDir != "" {
			return c.Docs.TaxDir
		}
	}
	return constants.DefaultDocDirs[kind]
}
