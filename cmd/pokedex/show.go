package cmd

import (
	"github.com/kerbaras/pokedex/pkg/utils"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [name or number]",
	Short: "Show one Pokémon",
	Long:  "Display types, size, abilities and base stats of a single Pokémon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		ctrl := controller(cmd)
		p, err := ctrl.Lookup(cmd.Context(), utils.NormalizeKey(args[0]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok, err := writeStructured(out, format, p); ok {
			return err
		}
		printPokemonDetails(out, p, ctrl.Store.IsFavorite(p.ID))
		return nil
	},
}

func init() {
	addOutputFlag(showCmd)
}
