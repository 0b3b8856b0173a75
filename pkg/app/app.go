package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/app/screens"
	"github.com/kerbaras/pokedex/pkg/services"
)

type App struct {
	ctrl *services.Controller
}

func NewApp(ctrl *services.Controller) *App {
	return &App{ctrl: ctrl}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := screens.NewRootScreen(ctx, a.ctrl)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
