package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export favorites as an EPUB field guide",
	Long:  "Create an EPUB with one illustrated page per favorite Pokémon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("output")

		ctrl := controller(cmd)
		if !ctrl.Store.HasFavorites() {
			fmt.Fprintln(cmd.OutOrStdout(), "No favorites to export.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exporting %d favorites...\n", ctrl.Store.FavoritesCount())
		path, err := ctrl.Export(cmd.Context(), dir)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output directory (default $POKEDEX_EXPORT_DIR or ~/Downloads)")
}
