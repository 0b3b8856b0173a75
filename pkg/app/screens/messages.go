package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
)

type screenType int

const (
	browseView screenType = iota
	favoritesView
	searchView
	detailsView
)

// SwitchScreenMsg asks the root screen to change view. Screen is one of
// "browse", "favorites", "search", "details" (Data is the *data.Pokemon to
// show) or "back".
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// Store and loader notifications, delivered through the root event channel.
type storeEventMsg services.StoreEvent

type loaderEventMsg services.LoaderEvent

type pageLoadedMsg struct {
	err error
}

type favoritesLoadedMsg struct {
	items []*data.Pokemon
	err   error
}

type lookupResultMsg struct {
	pokemon *data.Pokemon
	err     error
}

type copiedMsg struct {
	err error
}

type copiedExpiredMsg struct{}

func switchTo(screen string, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return SwitchScreenMsg{Screen: screen, Data: data}
	}
}
