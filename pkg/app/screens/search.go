package screens

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/kerbaras/pokedex/pkg/sources"
	"github.com/kerbaras/pokedex/pkg/utils"
)

// SearchScreen looks up a single Pokémon by exact name or number.
type SearchScreen struct {
	ctx       context.Context
	ctrl      *services.Controller
	input     textinput.Model
	query     string
	result    *data.Pokemon
	searching bool
	err       error
	width     int
	height    int
}

func NewSearchScreen(ctx context.Context, ctrl *services.Controller) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Name or number, e.g. pikachu or 25"
	ti.Focus()
	ti.CharLimit = 50
	ti.Width = 50

	return &SearchScreen{
		ctx:   ctx,
		ctrl:  ctrl,
		input: ti,
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchScreen) Focused() bool {
	return s.input.Focused()
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		// If searching, don't process keys
		if s.searching {
			return s, nil
		}

		switch msg.String() {
		case "enter":
			if s.input.Focused() {
				query := utils.NormalizeKey(s.input.Value())
				if query != "" {
					s.searching = true
					s.query = query
					return s, s.lookup(query)
				}
			} else if s.result != nil {
				return s, switchTo("details", s.result)
			}

		case "esc":
			// Switch focus between input and result
			if s.input.Focused() {
				s.input.Blur()
			} else {
				s.input.Focus()
				cmd = textinput.Blink
			}
			return s, cmd

		case "f":
			if !s.input.Focused() && s.result != nil {
				s.ctrl.Store.ToggleFavorite(s.result.ID)
				return s, nil
			}
		}

	case lookupResultMsg:
		s.searching = false
		s.result = msg.pokemon
		s.err = msg.err
		if s.result != nil {
			s.input.Blur()
		}
		return s, nil
	}

	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

func (s *SearchScreen) lookup(query string) tea.Cmd {
	return func() tea.Msg {
		p, err := s.ctrl.Lookup(s.ctx, query)
		return lookupResultMsg{pokemon: p, err: err}
	}
}

func (s *SearchScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Search")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var resultView string
	switch {
	case s.searching:
		resultView = styles.StatusLoading.Render("Searching...")
	case errors.Is(s.err, sources.ErrNotFound):
		resultView = styles.MutedStyle.Render(fmt.Sprintf("No Pokémon called %q", s.query))
	case s.err != nil:
		resultView = styles.StatusError.Render(s.ctrl.Loader.Error())
	case s.result != nil:
		cardStyle := styles.CardStyle
		if !s.input.Focused() {
			cardStyle = styles.ActiveCardStyle
		}
		item := components.PokemonListItem{Pokemon: s.result, Favorite: s.ctrl.Store.IsFavorite(s.result.ID)}
		resultView = cardStyle.Width(s.width - 6).Render(components.RenderCard(item))
	}

	help := styles.HelpStyle.Render(
		"enter: search/open • esc: switch focus • f: favorite • tab: switch view • ctrl+c: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s", header, inputView, resultView, help)
}
