package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/services"
)

type FavoritesScreen struct {
	ctx     context.Context
	ctrl    *services.Controller
	list    *components.PokemonList
	loading bool
	err     error
	width   int
	height  int
}

func NewFavoritesScreen(ctx context.Context, ctrl *services.Controller) *FavoritesScreen {
	list := components.NewPokemonList()
	list.EmptyMessage = "No favorites yet. Press f on a Pokémon to add it."
	return &FavoritesScreen{
		ctx:  ctx,
		ctrl: ctrl,
		list: list,
	}
}

func (s *FavoritesScreen) Init() tea.Cmd {
	s.loading = true
	return s.loadFavorites
}

func (s *FavoritesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "r":
			return s, s.Init()
		case "f":
			if selected := s.list.Selected(); selected != nil {
				s.ctrl.Store.ToggleFavorite(selected.Pokemon.ID)
			}
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				return s, switchTo("details", selected.Pokemon)
			}
		}

	case favoritesLoadedMsg:
		s.loading = false
		s.err = msg.err
		items := make([]components.PokemonListItem, len(msg.items))
		for i, p := range msg.items {
			items[i] = components.PokemonListItem{Pokemon: p, Favorite: true}
		}
		s.list.SetItems(items)

	case storeEventMsg:
		if msg.Kind == services.FavoritesChanged {
			return s, s.prune()
		}
	}

	return s, nil
}

// prune drops entries that are no longer favorites and reloads when
// favorites were added elsewhere.
func (s *FavoritesScreen) prune() tea.Cmd {
	var kept []components.PokemonListItem
	for _, item := range s.list.Items {
		if s.ctrl.Store.IsFavorite(item.Pokemon.ID) {
			kept = append(kept, item)
		}
	}
	s.list.SetItems(kept)
	if len(kept) < s.ctrl.Store.FavoritesCount() {
		return s.Init()
	}
	return nil
}

func (s *FavoritesScreen) loadFavorites() tea.Msg {
	items, err := s.ctrl.FavoritePokemon(s.ctx)
	return favoritesLoadedMsg{items: items, err: err}
}

func (s *FavoritesScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("★ Favorites")

	var status string
	switch {
	case s.loading:
		status = styles.StatusLoading.Render("Loading favorites...")
	case s.err != nil:
		status = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
	default:
		status = styles.MutedStyle.Render(fmt.Sprintf("%d favorites", len(s.list.Items)))
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: details • f: remove favorite • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, status, s.list.View(), help)
}
