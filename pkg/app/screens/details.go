package screens

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/components"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/integrations"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/kerbaras/pokedex/pkg/utils"
)

type DetailsScreen struct {
	ctrl    *services.Controller
	pokemon *data.Pokemon
	stats   *components.StatBars
	err     string
	width   int
	height  int
}

func NewDetailsScreen(ctrl *services.Controller, p *data.Pokemon) *DetailsScreen {
	return &DetailsScreen{
		ctrl:    ctrl,
		pokemon: p,
		stats:   components.NewStatBars(utils.StatRows(p), p.PrimaryType(), 60),
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return nil
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.stats.SetWidth(min(msg.Width-8, 80))

	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			s.ctrl.Store.ToggleFavorite(s.pokemon.ID)
		case "c":
			return s, s.copyShareText
		case "esc", "backspace":
			return s, switchTo("back", nil)
		}

	case copiedMsg:
		s.err = ""
		if msg.err != nil {
			s.err = s.ctrl.Clipboard.LastError()
			return s, nil
		}
		// re-render once the indicator has expired
		return s, tea.Tick(integrations.CopiedDisplay, func(time.Time) tea.Msg {
			return copiedExpiredMsg{}
		})

	case copiedExpiredMsg:
	}

	return s, nil
}

func (s *DetailsScreen) copyShareText() tea.Msg {
	_, err := s.ctrl.Share(s.pokemon)
	return copiedMsg{err: err}
}

func (s *DetailsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}
	p := s.pokemon

	star := ""
	if s.ctrl.Store.IsFavorite(p.ID) {
		star = styles.FavoriteStyle.Render("★ ")
	}
	header := star + styles.TitleStyle.Render(utils.FormatName(p.Name)) +
		" " + styles.TypeAccent(p.PrimaryType()).Render(utils.FormatID(p.ID))

	info := styles.CardStyle.Width(s.width - 4).Render(s.renderInfo())

	stats := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.SubtitleStyle.Render("Base stats"),
		"",
		s.stats.View(),
	)

	share := styles.MutedStyle.Render(utils.ShareText(p))
	var status string
	switch {
	case s.ctrl.Clipboard.Copied():
		status = styles.StatusCompleted.Render("Copied!")
	case s.err != "":
		status = styles.StatusError.Render(s.err)
	}

	help := styles.HelpStyle.Render("f: toggle favorite • c: copy share text • esc: back • q: quit")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s %s\n%s", header, info, stats, share, status, help)
}

func (s *DetailsScreen) renderInfo() string {
	p := s.pokemon

	badges := make([]string, len(p.Types))
	for i, t := range p.Types {
		badges[i] = styles.TypeBadge(t)
	}

	lines := []string{
		strings.Join(badges, " "),
		"",
		styles.TextStyle.Render(fmt.Sprintf("Height: %s   Weight: %s", utils.FormatHeight(p), utils.FormatWeight(p))),
	}
	if len(p.Abilities) > 0 {
		abilities := make([]string, len(p.Abilities))
		for i, a := range p.Abilities {
			abilities[i] = utils.FormatName(a)
		}
		lines = append(lines, styles.MutedStyle.Render("Abilities: "+strings.Join(abilities, ", ")))
	}
	if url := utils.ImageURL(p); url != "" {
		lines = append(lines, styles.MutedStyle.Render("Artwork: "+url))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
