package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/itemsplit/internal/segment"
	"github.com/dgallion1/itemsplit/internal/store"
)

func newFileCmd(a *app) *cobra.Command {
	var (
		explain bool
		output  string
	)
	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Segment a single filing",
		Long: `Segment one filing and print its blocks as JSON, or write <name>.json with
--output. --explain prints the winning header per Item instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			w := a.worker(nil)
			tree, err := w.Parse(filepath.Base(path), raw)
			if err != nil {
				return err
			}

			if explain {
				result, err := segment.Detect(tree, a.opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMatches(result.Ordered(a.opts.Catalog)))
				return nil
			}

			blocks, err := segment.Run(tree, a.opts)
			if err != nil {
				return err
			}
			if output != "" {
				loc, err := store.NewDirSink(output).Put(cmd.Context(), path, blocks)
				if err != nil {
					return err
				}
				a.log.Info("wrote sections", "path", loc, "sections", len(blocks))
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(blocks)
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "Show the winning header, score and position per Item")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write <name>.json into this directory instead of stdout")
	return cmd
}
