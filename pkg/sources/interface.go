package sources

import (
	"context"

	"github.com/kerbaras/pokedex/pkg/data"
)

type Summary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Page is one slice of the remote listing. Next is empty on the last page.
type Page struct {
	Count   int
	Results []Summary
	Next    string
}

func (p *Page) HasNext() bool {
	return p.Next != ""
}

func (p *Page) Names() []string {
	names := make([]string, len(p.Results))
	for i, r := range p.Results {
		names[i] = r.Name
	}
	return names
}

type Source interface {
	ListPage(ctx context.Context, limit, offset int) (*Page, error)
	GetPokemon(ctx context.Context, nameOrID string) (*data.Pokemon, error)
	GetPokemonBatch(ctx context.Context, names []string) ([]*data.Pokemon, error)
}
