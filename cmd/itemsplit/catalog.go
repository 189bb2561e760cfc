package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/itemsplit/internal/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the active Item catalog as YAML",
		Long: `Print the catalog in effect (built-in or --catalog) in the YAML format
--catalog and CATALOG_FILE accept. Edit the output to build a custom vocabulary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalog.Write(cmd.OutOrStdout(), a.opts.Catalog)
		},
	}
}
