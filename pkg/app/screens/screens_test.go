package screens

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/pokedex/pkg/config"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon"}

func newTestController(t *testing.T) *services.Controller {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/pokemon":
			results := make([]string, len(catalog))
			for i, n := range catalog {
				results[i] = fmt.Sprintf(`{"name": %q, "url": ""}`, n)
			}
			fmt.Fprintf(w, `{"count": %d, "next": null, "results": [%s]}`, len(catalog), strings.Join(results, ","))
		case strings.HasPrefix(r.URL.Path, "/pokemon/"):
			key := strings.TrimPrefix(r.URL.Path, "/pokemon/")
			for i, n := range catalog {
				if n == key || fmt.Sprint(i+1) == key {
					fmt.Fprintf(w, `{"id": %d, "name": %q, "height": 7, "weight": 69,
						"types": [{"slot": 1, "type": {"name": "grass"}}],
						"stats": [{"base_stat": 45, "stat": {"name": "hp"}}]}`, i+1, n)
					return
				}
			}
			http.NotFound(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	ctrl, err := services.NewController(config.Config{
		APIURL:   server.URL,
		Timeout:  5 * time.Second,
		DBDriver: data.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "pokedex.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ctrl.Close() })
	return ctrl
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedRoot(t *testing.T) (*RootScreen, *services.Controller) {
	t.Helper()
	ctrl := newTestController(t)
	root := NewRootScreen(context.Background(), ctrl)
	t.Cleanup(root.Close)
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	cmd := root.browse.Init()
	require.NotNil(t, cmd)
	root.Update(cmd())
	return root, ctrl
}

func TestBrowseLoadsFirstPage(t *testing.T) {
	root, ctrl := newLoadedRoot(t)

	assert.Len(t, root.browse.list.Items, len(catalog))
	assert.Equal(t, services.Exhausted, ctrl.Loader.State())
	assert.Contains(t, root.View(), "Bulbasaur")
	assert.Contains(t, root.View(), "All Pokémon loaded")
}

func TestBrowseToggleFavorite(t *testing.T) {
	root, ctrl := newLoadedRoot(t)

	root.Update(key("down"))
	root.Update(key("f"))

	assert.True(t, ctrl.Store.IsFavorite(2))
	assert.True(t, root.browse.list.Items[1].Favorite)
	assert.Contains(t, root.View(), "Favorites (1)")

	root.Update(key("f"))
	assert.False(t, ctrl.Store.IsFavorite(2))
}

func TestBrowseClearCache(t *testing.T) {
	root, ctrl := newLoadedRoot(t)
	require.Equal(t, len(catalog), ctrl.Store.CacheSize())

	root.Update(key("x"))

	assert.Equal(t, 0, ctrl.Store.CacheSize())
	assert.Len(t, root.browse.list.Items, len(catalog), "loaded results stay on screen")
}

func TestRootTabCycles(t *testing.T) {
	root, _ := newLoadedRoot(t)

	root.Update(key("tab"))
	assert.Equal(t, favoritesView, root.currentView)
	root.Update(key("tab"))
	assert.Equal(t, searchView, root.currentView)
	root.Update(key("tab"))
	assert.Equal(t, browseView, root.currentView)
}

func TestRootQuitKey(t *testing.T) {
	root, _ := newLoadedRoot(t)

	_, cmd := root.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSearchCapturesQ(t *testing.T) {
	root, _ := newLoadedRoot(t)
	root.Update(SwitchScreenMsg{Screen: "search"})

	root.Update(key("q"))

	assert.Equal(t, searchView, root.currentView)
	assert.Equal(t, "q", root.search.input.Value())
}

func TestDetailsAndBack(t *testing.T) {
	root, ctrl := newLoadedRoot(t)

	_, cmd := root.Update(key("enter"))
	require.NotNil(t, cmd)
	root.Update(cmd())

	require.Equal(t, detailsView, root.currentView)
	view := root.View()
	assert.Contains(t, view, "Bulbasaur")
	assert.Contains(t, view, "Base stats")
	assert.Contains(t, view, "Bulbasaur, #001, Types: Grass, Height: 0.7m, Weight: 6.9kg")

	root.Update(key("f"))
	assert.True(t, ctrl.Store.IsFavorite(1))

	_, cmd = root.Update(key("esc"))
	require.NotNil(t, cmd)
	root.Update(cmd())
	assert.Equal(t, browseView, root.currentView)
}

func TestFavoritesScreen(t *testing.T) {
	root, ctrl := newLoadedRoot(t)
	ctrl.Store.ToggleFavorite(4)
	ctrl.Store.ToggleFavorite(1)

	cmd := root.show(favoritesView)
	require.NotNil(t, cmd)
	root.Update(cmd())

	items := root.favorites.list.Items
	require.Len(t, items, 2)
	assert.Equal(t, "charmander", items[0].Pokemon.Name)
	assert.Equal(t, "bulbasaur", items[1].Pokemon.Name)

	root.Update(key("f"))
	root.favorites.Update(storeEventMsg{Kind: services.FavoritesChanged})
	assert.Len(t, root.favorites.list.Items, 1)
	assert.False(t, ctrl.Store.IsFavorite(4))
}

func TestFavoritesEmpty(t *testing.T) {
	root, _ := newLoadedRoot(t)

	cmd := root.show(favoritesView)
	root.Update(cmd())

	assert.Contains(t, root.View(), "No favorites yet")
}

func TestSearchLookup(t *testing.T) {
	root, _ := newLoadedRoot(t)
	root.Update(SwitchScreenMsg{Screen: "search"})
	root.search.input.SetValue("  #004 ")

	_, cmd := root.Update(key("enter"))
	require.NotNil(t, cmd)
	root.Update(cmd())

	require.NotNil(t, root.search.result)
	assert.Equal(t, "charmander", root.search.result.Name)
	assert.False(t, root.search.Focused())
}

func TestSearchNotFound(t *testing.T) {
	root, _ := newLoadedRoot(t)
	root.Update(SwitchScreenMsg{Screen: "search"})
	root.search.input.SetValue("missingno")

	_, cmd := root.Update(key("enter"))
	root.Update(cmd())

	assert.Nil(t, root.search.result)
	assert.Contains(t, root.View(), `No Pokémon called "missingno"`)
}
