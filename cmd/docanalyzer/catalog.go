package main

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docanalyzer/internal/core/match"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective tax field catalog as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Tax.CatalogPath
		if cmd.Flags().Changed("catalog") {
			path = catalogPath
		}
		fields, err := loadCatalog(path)
		if err != nil {
			return err
		}
		data, err := match.MarshalCatalog(fields)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML field catalog to validate and print")
}
