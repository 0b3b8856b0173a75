package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var outputFormats = []string{formatTable, formatJSON, formatYAML}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", formatTable, "output format: table, json or yaml")
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if !slices.Contains(outputFormats, format) {
		return "", fmt.Errorf("unknown output format %q, want one of %s", format, strings.Join(outputFormats, ", "))
	}
	return format, nil
}

// writeStructured encodes v as JSON or YAML. It reports false for the table
// format so the caller can render its own view.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	}
	return false, nil
}

// favoriteChecker reports whether an ID is a favorite. A nil checker marks
// nothing.
type favoriteChecker func(id int) bool

func printPokemonTable(w io.Writer, items []*data.Pokemon, isFavorite favoriteChecker) {
	var (
		purple = lipgloss.Color("99")

		headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		}).
		Headers("", "#", "Name", "Types", "Height", "Weight")

	for _, p := range items {
		star := ""
		if isFavorite != nil && isFavorite(p.ID) {
			star = "★"
		}
		t.Row(
			star,
			utils.FormatID(p.ID),
			truncateString(utils.FormatName(p.Name), 24),
			utils.FormatTypes(p),
			utils.FormatHeight(p),
			utils.FormatWeight(p),
		)
	}

	fmt.Fprintln(w, t)
}

func printPokemonDetails(w io.Writer, p *data.Pokemon, favorite bool) {
	card := styles.CardStyle.Render(components.RenderCard(components.PokemonListItem{
		Pokemon:  p,
		Favorite: favorite,
	}))
	fmt.Fprintln(w, card)

	if len(p.Abilities) > 0 {
		abilities := make([]string, len(p.Abilities))
		for i, a := range p.Abilities {
			abilities[i] = utils.FormatName(a)
		}
		fmt.Fprintf(w, "Abilities: %s\n\n", strings.Join(abilities, ", "))
	}
	fmt.Fprintln(w, components.NewStatBars(utils.StatRows(p), p.PrimaryType(), 50).View())
}

func truncateString(s string, limit int) string {
	runes := []rune(s)
	if limit <= 3 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
