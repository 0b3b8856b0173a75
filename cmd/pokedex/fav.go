package cmd

import (
	"fmt"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/utils"
	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite Pokémon",
}

var favAddCmd = &cobra.Command{
	Use:   "add [name or number...]",
	Short: "Add Pokémon to favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := controller(cmd)
		return eachPokemon(cmd, args, func(p *data.Pokemon) string {
			ctrl.Store.AddFavorite(p.ID)
			return "★ added"
		})
	},
}

var favRemoveCmd = &cobra.Command{
	Use:     "remove [name or number...]",
	Aliases: []string{"rm"},
	Short:   "Remove Pokémon from favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := controller(cmd)
		return eachPokemon(cmd, args, func(p *data.Pokemon) string {
			ctrl.Store.RemoveFavorite(p.ID)
			return "removed"
		})
	},
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle [name or number...]",
	Short: "Toggle Pokémon in favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := controller(cmd)
		return eachPokemon(cmd, args, func(p *data.Pokemon) string {
			if ctrl.Store.ToggleFavorite(p.ID) {
				return "★ added"
			}
			return "removed"
		})
	},
}

var favListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List favorite Pokémon",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		ctrl := controller(cmd)
		items, err := ctrl.FavoritePokemon(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok, err := writeStructured(out, format, items); ok {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "No favorites yet. Use 'pokedex fav add <name>' to add one.")
			return nil
		}
		fmt.Fprintf(out, "\n★ Favorites (%d)\n\n", len(items))
		printPokemonTable(out, items, nil)
		return nil
	},
}

var favClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := controller(cmd)
		count := ctrl.Store.FavoritesCount()
		ctrl.Store.ClearFavorites()
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d favorites\n", count)
		return nil
	},
}

func init() {
	addOutputFlag(favListCmd)

	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRemoveCmd)
	favCmd.AddCommand(favToggleCmd)
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favClearCmd)
}

// eachPokemon resolves every argument before applying fn, so a typo changes
// nothing.
func eachPokemon(cmd *cobra.Command, args []string, fn func(p *data.Pokemon) string) error {
	ctrl := controller(cmd)
	items := make([]*data.Pokemon, len(args))
	for i, arg := range args {
		p, err := ctrl.Lookup(cmd.Context(), utils.NormalizeKey(arg))
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		items[i] = p
	}

	out := cmd.OutOrStdout()
	for _, p := range items {
		result := fn(p)
		fmt.Fprintf(out, "%s %s: %s\n", utils.FormatID(p.ID), utils.FormatName(p.Name), result)
	}
	return nil
}
