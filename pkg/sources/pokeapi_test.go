package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kerbaras/pokedex/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pikachuJSON = `{
	"id": 25,
	"name": "pikachu",
	"height": 4,
	"weight": 60,
	"sprites": {
		"front_default": "https://img.example/25.png",
		"other": {
			"official-artwork": {"front_default": "https://img.example/artwork/25.png"},
			"home": {"front_default": null}
		}
	},
	"types": [{"slot": 1, "type": {"name": "electric", "url": ""}}],
	"stats": [
		{"base_stat": 35, "effort": 0, "stat": {"name": "hp", "url": ""}},
		{"base_stat": 90, "effort": 2, "stat": {"name": "speed", "url": ""}}
	],
	"abilities": [
		{"ability": {"name": "static", "url": ""}, "is_hidden": false, "slot": 1},
		{"ability": {"name": "lightning-rod", "url": ""}, "is_hidden": true, "slot": 3}
	]
}`

func pokemonJSON(id int, name string) string {
	return fmt.Sprintf(`{"id": %d, "name": %q, "height": 7, "weight": 69,
		"types": [{"slot": 2, "type": {"name": "poison"}}, {"slot": 1, "type": {"name": "grass"}}],
		"stats": [], "abilities": [], "sprites": {}}`, id, name)
}

// newFakePokeAPI serves /pokemon listings of the given names in pages and
// /pokemon/{name} details. Names listed in fail return 500.
func newFakePokeAPI(t *testing.T, names []string, fail map[string]bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/pokemon":
			var limit, offset int
			fmt.Sscan(r.URL.Query().Get("limit"), &limit)
			fmt.Sscan(r.URL.Query().Get("offset"), &offset)
			end := min(offset+limit, len(names))
			var results []string
			for _, n := range names[min(offset, len(names)):end] {
				results = append(results, fmt.Sprintf(`{"name": %q, "url": "x/%s"}`, n, n))
			}
			next := "null"
			if end < len(names) {
				next = fmt.Sprintf(`"/pokemon?offset=%d&limit=%d"`, end, limit)
			}
			fmt.Fprintf(w, `{"count": %d, "next": %s, "results": [%s]}`,
				len(names), next, strings.Join(results, ","))
		case strings.HasPrefix(r.URL.Path, "/pokemon/"):
			key := strings.TrimPrefix(r.URL.Path, "/pokemon/")
			if fail[key] {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if key == "pikachu" || key == "25" {
				w.Write([]byte(pikachuJSON))
				return
			}
			for i, n := range names {
				if n == key {
					w.Write([]byte(pokemonJSON(i+1, n)))
					return
				}
			}
			http.NotFound(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPokeAPI_ListPage(t *testing.T) {
	server := newFakePokeAPI(t, []string{"bulbasaur", "ivysaur", "venusaur"}, nil)
	source := NewPokeAPI(utils.NewAPI(server.URL))

	page, err := source.ListPage(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
	assert.Equal(t, []string{"bulbasaur", "ivysaur"}, page.Names())
	assert.True(t, page.HasNext())

	page, err = source.ListPage(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"venusaur"}, page.Names())
	assert.False(t, page.HasNext(), "null next marks the last page")
}

func TestPokeAPI_GetPokemon(t *testing.T) {
	server := newFakePokeAPI(t, nil, nil)
	source := NewPokeAPI(utils.NewAPI(server.URL))

	p, err := source.GetPokemon(context.Background(), "pikachu")
	require.NoError(t, err)

	assert.Equal(t, 25, p.ID)
	assert.Equal(t, "pikachu", p.Name)
	assert.Equal(t, 4, p.Height)
	assert.Equal(t, 60, p.Weight)
	assert.Equal(t, []string{"electric"}, p.Types)
	assert.Equal(t, "hp", p.Stats[0].Name)
	assert.Equal(t, 35, p.Stats[0].Value)
	assert.Equal(t, []string{"static", "lightning-rod"}, p.Abilities)
	assert.Equal(t, "https://img.example/artwork/25.png", p.Sprites.Artwork)
	assert.Empty(t, p.Sprites.Home)
}

func TestPokeAPI_GetPokemonSortsTypesBySlot(t *testing.T) {
	server := newFakePokeAPI(t, []string{"bulbasaur"}, nil)
	source := NewPokeAPI(utils.NewAPI(server.URL))

	p, err := source.GetPokemon(context.Background(), "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, []string{"grass", "poison"}, p.Types)
}

func TestPokeAPI_GetPokemonNotFound(t *testing.T) {
	server := newFakePokeAPI(t, nil, nil)
	source := NewPokeAPI(utils.NewAPI(server.URL))

	_, err := source.GetPokemon(context.Background(), "agumon")
	assert.ErrorIs(t, err, ErrNotFound)

	var netErr *NetworkError
	assert.False(t, errors.As(err, &netErr))
}

func TestPokeAPI_GetPokemonServerError(t *testing.T) {
	server := newFakePokeAPI(t, []string{"mew"}, map[string]bool{"mew": true})
	source := NewPokeAPI(utils.NewAPI(server.URL))

	_, err := source.GetPokemon(context.Background(), "mew")

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPokeAPI_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	source := NewPokeAPI(utils.NewAPI(server.URL))

	_, err := source.ListPage(context.Background(), 20, 0)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Zero(t, netErr.StatusCode)
}

func TestPokeAPI_GetPokemonBatchPreservesOrder(t *testing.T) {
	names := []string{"bulbasaur", "ivysaur", "venusaur", "charmander"}
	var inflight, peak int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inflight, 1)
		defer atomic.AddInt32(&inflight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}

		key := strings.TrimPrefix(r.URL.Path, "/pokemon/")
		// earlier names answer later
		for i, name := range names {
			if name == key {
				time.Sleep(time.Duration(len(names)-i) * 15 * time.Millisecond)
				w.Write([]byte(pokemonJSON(i+1, name)))
				return
			}
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	source := NewPokeAPI(utils.NewAPI(server.URL))
	batch, err := source.GetPokemonBatch(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, batch, len(names))

	for i, p := range batch {
		assert.Equal(t, names[i], p.Name)
		assert.Equal(t, i+1, p.ID)
	}
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1), "batch members should be in flight together")
}

func TestPokeAPI_GetPokemonBatchFailsAsWhole(t *testing.T) {
	names := []string{"bulbasaur", "ivysaur", "venusaur"}
	server := newFakePokeAPI(t, names, map[string]bool{"ivysaur": true})
	source := NewPokeAPI(utils.NewAPI(server.URL))

	batch, err := source.GetPokemonBatch(context.Background(), names)
	assert.Error(t, err)
	assert.Nil(t, batch, "no partial results")

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestPokeAPI_GetPokemonBatchEmpty(t *testing.T) {
	source := NewPokeAPI(utils.NewAPI("http://127.0.0.1:0"))

	batch, err := source.GetPokemonBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, batch)
}
