package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
)

const eventBuffer = 64

type RootScreen struct {
	ctx         context.Context
	ctrl        *services.Controller
	events      chan tea.Msg
	unsubscribe []func()
	spinner     spinner.Model

	currentView  screenType
	previousView screenType
	browse       *BrowseScreen
	favorites    *FavoritesScreen
	search       *SearchScreen
	details      *DetailsScreen

	width  int
	height int
}

func NewRootScreen(ctx context.Context, ctrl *services.Controller) *RootScreen {
	r := &RootScreen{
		ctx:         ctx,
		ctrl:        ctrl,
		events:      make(chan tea.Msg, eventBuffer),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.StatusLoading)),
		currentView: browseView,
		browse:      NewBrowseScreen(ctx, ctrl),
		favorites:   NewFavoritesScreen(ctx, ctrl),
		search:      NewSearchScreen(ctx, ctrl),
	}
	r.unsubscribe = append(r.unsubscribe,
		ctrl.Store.Subscribe(func(e services.StoreEvent) { r.send(storeEventMsg(e)) }),
		ctrl.Loader.Subscribe(func(e services.LoaderEvent) { r.send(loaderEventMsg(e)) }),
	)
	return r
}

// send drops the event when the buffer is full; views read current state on
// every render, so a later event catches them up.
func (r *RootScreen) send(msg tea.Msg) {
	select {
	case r.events <- msg:
	default:
	}
}

func (r *RootScreen) listenForEvents() tea.Msg {
	select {
	case msg := <-r.events:
		return msg
	case <-r.ctx.Done():
		return nil
	}
}

// Close detaches the screen from the store and loader.
func (r *RootScreen) Close() {
	for _, unsubscribe := range r.unsubscribe {
		unsubscribe()
	}
	r.unsubscribe = nil
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(
		r.listenForEvents,
		r.spinner.Tick,
		r.browse.Init(),
	)
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.browse.Update(msg)
		r.favorites.Update(msg)
		r.search.Update(msg)
		if r.details != nil {
			r.details.Update(msg)
		}
		return r, nil

	case spinner.TickMsg:
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !r.capturesInput() {
				return r, tea.Quit
			}
		case "tab":
			if r.currentView == detailsView {
				// Can't tab away from details, use esc
				break
			}
			return r, r.show((r.currentView + 1) % detailsView)
		}

	case storeEventMsg, loaderEventMsg:
		return r, tea.Batch(r.dispatchEvent(msg), r.listenForEvents)

	// Async results go to their owner even when it is not the visible screen.
	case pageLoadedMsg:
		_, cmd = r.browse.Update(msg)
		return r, cmd
	case favoritesLoadedMsg:
		_, cmd = r.favorites.Update(msg)
		return r, cmd
	case lookupResultMsg:
		_, cmd = r.search.Update(msg)
		return r, cmd

	case SwitchScreenMsg:
		switch msg.Screen {
		case "browse":
			cmd = r.show(browseView)
		case "favorites":
			cmd = r.show(favoritesView)
		case "search":
			cmd = r.show(searchView)
		case "back":
			cmd = r.show(r.previousView)
		case "details":
			if p, ok := msg.Data.(*data.Pokemon); ok && p != nil {
				r.details = NewDetailsScreen(r.ctrl, p)
				r.details.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
				r.previousView = r.currentView
				r.currentView = detailsView
				cmd = r.details.Init()
			}
		}
		return r, cmd
	}

	// Forward message to active screen
	switch r.currentView {
	case browseView:
		_, cmd = r.browse.Update(msg)
	case favoritesView:
		_, cmd = r.favorites.Update(msg)
	case searchView:
		_, cmd = r.search.Update(msg)
	case detailsView:
		if r.details != nil {
			_, cmd = r.details.Update(msg)
		}
	}
	return r, cmd
}

func (r *RootScreen) show(view screenType) tea.Cmd {
	r.currentView = view
	switch view {
	case favoritesView:
		return r.favorites.Init()
	case searchView:
		return r.search.Init()
	default:
		r.currentView = browseView
		return r.browse.Init()
	}
}

// dispatchEvent lets every list screen react to state changes, not just the
// visible one, so switching tabs never shows stale favorite flags.
func (r *RootScreen) dispatchEvent(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	_, cmd := r.browse.Update(msg)
	cmds = append(cmds, cmd)
	if r.currentView == favoritesView {
		_, cmd = r.favorites.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (r *RootScreen) capturesInput() bool {
	return r.currentView == searchView && r.search.Focused()
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case browseView:
		content = r.browse.View()
	case favoritesView:
		content = r.favorites.View()
	case searchView:
		content = r.search.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	}

	return fmt.Sprintf("%s\n\n%s", r.renderHeader(), content)
}

func (r *RootScreen) renderHeader() string {
	status := ""
	if r.ctrl.Store.Loading() {
		status = r.spinner.View() + styles.StatusLoading.Render(" loading")
	} else if msg := r.ctrl.Store.LastError(); msg != "" {
		status = styles.StatusError.Render(msg)
	}

	if r.currentView == detailsView {
		// Don't show tabs in details view
		return status
	}

	names := []string{
		"Browse",
		fmt.Sprintf("Favorites (%d)", r.ctrl.Store.FavoritesCount()),
		"Search",
	}
	tabs := make([]string, len(names))
	for i, name := range names {
		if screenType(i) == r.currentView {
			tabs[i] = styles.ActiveTabStyle.Render(name)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(name)
		}
	}
	tabs = append(tabs, "  ", status)

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
