package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResponse struct {
	Count   int       `json:"count"`
	Next    *string   `json:"next"`
	Results []Summary `json:"results"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

// Pokemon mirrors the subset of the /pokemon/{key} payload we render.
type Pokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
			Home struct {
				FrontDefault string `json:"front_default"`
			} `json:"home"`
		} `json:"other"`
	} `json:"sprites"`
	Types []typeSlot `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Effort   int           `json:"effort"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
		Slot     int           `json:"slot"`
	} `json:"abilities"`
}

func (p *Pokemon) ToPokemon() *data.Pokemon {
	types := slices.Clone(p.Types)
	slices.SortStableFunc(types, func(a, b typeSlot) int {
		return a.Slot - b.Slot
	})

	out := &data.Pokemon{
		ID:     p.ID,
		Name:   p.Name,
		Height: p.Height,
		Weight: p.Weight,
		Types:  make([]string, len(types)),
		Stats:  make([]data.Stat, len(p.Stats)),
		Sprites: data.Sprites{
			Default: p.Sprites.FrontDefault,
			Artwork: p.Sprites.Other.OfficialArtwork.FrontDefault,
			Home:    p.Sprites.Other.Home.FrontDefault,
		},
	}
	for i, t := range types {
		out.Types[i] = t.Type.Name
	}
	for i, s := range p.Stats {
		out.Stats[i] = data.Stat{Name: s.Stat.Name, Value: s.BaseStat}
	}
	for _, a := range p.Abilities {
		out.Abilities = append(out.Abilities, a.Ability.Name)
	}
	return out
}

type PokeAPI struct {
	api *utils.API
}

func NewPokeAPI(api *utils.API) *PokeAPI {
	return &PokeAPI{api: api}
}

func (s *PokeAPI) ListPage(ctx context.Context, limit, offset int) (*Page, error) {
	params := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	var resp listResponse
	if err := s.api.Get(ctx, "/pokemon", params, &resp); err != nil {
		return nil, s.wrap("list pokemon", "/pokemon", err)
	}

	page := &Page{Count: resp.Count, Results: resp.Results}
	if resp.Next != nil {
		page.Next = *resp.Next
	}
	return page, nil
}

func (s *PokeAPI) GetPokemon(ctx context.Context, nameOrID string) (*data.Pokemon, error) {
	path := fmt.Sprintf("/pokemon/%s", url.PathEscape(nameOrID))
	var resp Pokemon
	if err := s.api.Get(ctx, path, nil, &resp); err != nil {
		return nil, s.wrap("get pokemon "+nameOrID, path, err)
	}
	return resp.ToPokemon(), nil
}

// GetPokemonBatch fetches every name concurrently. The first failure cancels
// the remaining requests and fails the whole batch.
func (s *PokeAPI) GetPokemonBatch(ctx context.Context, names []string) ([]*data.Pokemon, error) {
	out := make([]*data.Pokemon, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			p, err := s.GetPokemon(gctx, name)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch batch: %w", err)
	}
	return out, nil
}

func (s *PokeAPI) wrap(op, path string, err error) error {
	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return &NetworkError{Op: op, URL: statusErr.URL, StatusCode: statusErr.StatusCode, Err: err}
	}
	return &NetworkError{Op: op, URL: s.api.BaseURL() + path, Err: err}
}
