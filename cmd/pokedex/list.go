package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List Pokémon one page at a time",
	Long:  "Display one page of the catalog (20 entries) in a formatted table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")

		ctrl := controller(cmd)
		items, more, err := ctrl.Page(cmd.Context(), page)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok, err := writeStructured(out, format, items); ok {
			return err
		}

		if len(items) == 0 {
			fmt.Fprintln(out, "No Pokémon on this page.")
			return nil
		}
		fmt.Fprintf(out, "\nPokédex, page %d\n\n", page)
		printPokemonTable(out, items, ctrl.Store.IsFavorite)
		if more {
			fmt.Fprintf(out, "More: pokedex list --page %d\n", page+1)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntP("page", "p", 1, "page number, starting at 1")
	addOutputFlag(listCmd)
}
