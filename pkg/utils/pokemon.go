package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kerbaras/pokedex/pkg/data"
)

// TypeColors maps each type to its badge colour.
var TypeColors = map[string]string{
	"normal":   "#A8A878",
	"fire":     "#F08030",
	"water":    "#6890F0",
	"electric": "#F8D030",
	"grass":    "#78C850",
	"ice":      "#98D8D8",
	"fighting": "#C03028",
	"poison":   "#A040A0",
	"ground":   "#E0C068",
	"flying":   "#A890F0",
	"psychic":  "#F85888",
	"bug":      "#A8B820",
	"rock":     "#B8A038",
	"ghost":    "#705898",
	"dragon":   "#7038F8",
	"dark":     "#705848",
	"steel":    "#B8B8D0",
	"fairy":    "#EE99AC",
}

const DefaultType = "normal"

// ColorForType looks up a single type, falling back to the normal colour.
func ColorForType(typeName string) string {
	if color, ok := TypeColors[typeName]; ok {
		return color
	}
	return TypeColors[DefaultType]
}

// TypeColor returns the colour of the pokemon's primary type.
func TypeColor(p *data.Pokemon) string {
	return ColorForType(p.PrimaryType())
}

// FormatName upper-cases the first character and leaves the rest untouched.
func FormatName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func FormatID(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// FormatTenths renders a value stored in tenths with one decimal place.
func FormatTenths(v int) string {
	return fmt.Sprintf("%.1f", float64(v)/10)
}

func FormatHeight(p *data.Pokemon) string {
	return FormatTenths(p.Height) + "m"
}

func FormatWeight(p *data.Pokemon) string {
	return FormatTenths(p.Weight) + "kg"
}

func FormatTypes(p *data.Pokemon) string {
	names := make([]string, len(p.Types))
	for i, t := range p.Types {
		names[i] = FormatName(t)
	}
	return strings.Join(names, ", ")
}

// ImageURL picks the best available artwork: official artwork, then the
// home render, then the default sprite.
func ImageURL(p *data.Pokemon) string {
	switch {
	case p.Sprites.Artwork != "":
		return p.Sprites.Artwork
	case p.Sprites.Home != "":
		return p.Sprites.Home
	default:
		return p.Sprites.Default
	}
}

// ShareText is the one-line summary copied to the clipboard.
func ShareText(p *data.Pokemon) string {
	return fmt.Sprintf("%s, %s, Types: %s, Height: %s, Weight: %s",
		FormatName(p.Name),
		FormatID(p.ID),
		FormatTypes(p),
		FormatHeight(p),
		FormatWeight(p),
	)
}

type StatRow struct {
	Label string
	Value int
}

var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Sp. Atk",
	"special-defense": "Sp. Def",
	"speed":           "Speed",
}

func StatRows(p *data.Pokemon) []StatRow {
	rows := make([]StatRow, len(p.Stats))
	for i, s := range p.Stats {
		label, ok := statLabels[s.Name]
		if !ok {
			label = FormatName(s.Name)
		}
		rows[i] = StatRow{Label: label, Value: s.Value}
	}
	return rows
}

// NormalizeKey turns user input into a lookup key: names are lower-cased and
// numbers lose any "#" prefix and leading zeros, so "#025" and "25" match.
func NormalizeKey(input string) string {
	key := strings.ToLower(strings.TrimSpace(input))
	key = strings.TrimPrefix(key, "#")
	if trimmed := strings.TrimLeft(key, "0"); trimmed != "" && strings.Trim(trimmed, "0123456789") == "" {
		return trimmed
	}
	return key
}
