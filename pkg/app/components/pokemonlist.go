package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/utils"
)

// cardHeight is the rendered height of one card including borders.
const cardHeight = 5

type PokemonListItem struct {
	Pokemon  *data.Pokemon
	Favorite bool
}

// PokemonList is a scrolling list of cards. Unlike a menu it does not wrap
// at the bottom, so callers can treat reaching the end as a request for more.
type PokemonList struct {
	Items         []PokemonListItem
	SelectedIndex int
	Width         int
	Height        int
	EmptyMessage  string
}

func NewPokemonList() *PokemonList {
	return &PokemonList{
		Items:        []PokemonListItem{},
		Width:        80,
		Height:       20,
		EmptyMessage: "No Pokémon loaded",
	}
}

func (m *PokemonList) SetItems(items []PokemonListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

// Next moves down one item. It reports false when already on the last item.
func (m *PokemonList) Next() bool {
	if m.SelectedIndex >= len(m.Items)-1 {
		return false
	}
	m.SelectedIndex++
	return true
}

func (m *PokemonList) Prev() {
	if m.SelectedIndex > 0 {
		m.SelectedIndex--
	}
}

func (m *PokemonList) AtEnd() bool {
	return len(m.Items) == 0 || m.SelectedIndex == len(m.Items)-1
}

func (m *PokemonList) Selected() *PokemonListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

// window returns the [start, end) range of items that fit in Height, keeping
// the selection visible.
func (m *PokemonList) window() (int, int) {
	visible := max(1, m.Height/cardHeight)
	start := 0
	if m.SelectedIndex >= visible {
		start = m.SelectedIndex - visible + 1
	}
	end := min(start+visible, len(m.Items))
	return start, end
}

func (m *PokemonList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(m.EmptyMessage)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	start, end := m.window()
	for i := start; i < end; i++ {
		cardStyle := styles.CardStyle
		selected := i == m.SelectedIndex
		if selected {
			cardStyle = styles.ActiveCardStyle
		}
		card := cardStyle.Width(m.Width - 4).Render(renderCard(m.Items[i], selected))
		b.WriteString(card)
		b.WriteString("\n")
	}
	if start > 0 || end < len(m.Items) {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("%d-%d of %d", start+1, end, len(m.Items)),
		))
	}
	return b.String()
}

// RenderCard is the three-line summary shown for one item.
func RenderCard(item PokemonListItem) string {
	return renderCard(item, false)
}

func renderCard(item PokemonListItem, selected bool) string {
	p := item.Pokemon

	star := "  "
	if item.Favorite {
		star = styles.FavoriteStyle.Render("★ ")
	}
	nameStyle := styles.NameStyle
	if selected {
		nameStyle = styles.SelectedStyle
	}
	title := star + nameStyle.Render(utils.FormatName(p.Name)) +
		" " + styles.TypeAccent(p.PrimaryType()).Render(utils.FormatID(p.ID))

	badges := make([]string, len(p.Types))
	for i, t := range p.Types {
		badges[i] = styles.TypeBadge(t)
	}

	size := styles.MutedStyle.Render(
		fmt.Sprintf("Height %s · Weight %s", utils.FormatHeight(p), utils.FormatWeight(p)),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		strings.Join(badges, " "),
		size,
	)
}
