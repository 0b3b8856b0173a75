package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/services"
)

// BrowseScreen pages through the full catalog.
type BrowseScreen struct {
	ctx    context.Context
	ctrl   *services.Controller
	list   *components.PokemonList
	notice string
	width  int
	height int
}

func NewBrowseScreen(ctx context.Context, ctrl *services.Controller) *BrowseScreen {
	return &BrowseScreen{
		ctx:  ctx,
		ctrl: ctrl,
		list: components.NewPokemonList(),
	}
}

func (s *BrowseScreen) Init() tea.Cmd {
	s.refresh()
	if len(s.list.Items) == 0 {
		return s.loadPage(false)
	}
	return nil
}

func (s *BrowseScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 10

	case tea.KeyMsg:
		s.notice = ""
		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			if !s.list.Next() && s.ctrl.Loader.HasMore() {
				return s, s.loadPage(false)
			}
		case "n":
			return s, s.loadPage(false)
		case "r":
			s.list.SelectedIndex = 0
			return s, s.loadPage(true)
		case "f":
			if selected := s.list.Selected(); selected != nil {
				s.ctrl.Store.ToggleFavorite(selected.Pokemon.ID)
				s.refresh()
			}
		case "x":
			s.ctrl.Store.ClearCache()
			s.notice = "Cache cleared"
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				return s, switchTo("details", selected.Pokemon)
			}
		}

	case pageLoadedMsg, storeEventMsg, loaderEventMsg:
		s.refresh()
	}

	return s, nil
}

func (s *BrowseScreen) refresh() {
	entries := s.ctrl.Loader.ResultsWithFavorites()
	items := make([]components.PokemonListItem, len(entries))
	for i, e := range entries {
		items[i] = components.PokemonListItem{Pokemon: e.Pokemon, Favorite: e.Favorite}
	}
	s.list.SetItems(items)
}

func (s *BrowseScreen) loadPage(reset bool) tea.Cmd {
	return func() tea.Msg {
		return pageLoadedMsg{err: s.ctrl.Loader.LoadNext(s.ctx, reset)}
	}
}

func (s *BrowseScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Pokédex")

	loader := s.ctrl.Loader
	status := styles.MutedStyle.Render(fmt.Sprintf("%d Pokémon", len(s.list.Items)))
	switch {
	case loader.State() == services.Loading:
		status += "  " + styles.StatusStyle(loader.State().String()).Render("Loading more...")
	case loader.Error() != "":
		status += "  " + styles.StatusStyle("error").Render(loader.Error()+" (n: retry)")
	case loader.State() == services.Exhausted:
		status += "  " + styles.StatusStyle(loader.State().String()).Render("All Pokémon loaded")
	}
	if s.notice != "" {
		status += "  " + styles.SubtitleStyle.Render(s.notice)
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: details • f: favorite • n: next page • r: reload • x: clear cache • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, status, s.list.View(), help)
}
