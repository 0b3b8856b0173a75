package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/sources"
	"go.uber.org/zap"
)

// PageSize is the number of items requested per listing page.
const PageSize = 20

const loadPageMessage = "Failed to load Pokémon. Please try again."

type LoaderState int

const (
	Idle LoaderState = iota
	Loading
	Exhausted
)

func (s LoaderState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("LoaderState(%d)", int(s))
	}
}

type LoaderEvent struct {
	State LoaderState
	Count int
	Err   string
}

// Entry pairs a loaded item with its favorite flag.
type Entry struct {
	Pokemon  *data.Pokemon
	Favorite bool
}

// Loader walks the remote listing page by page, accumulating full records.
// At most one LoadNext runs at a time; overlapping calls return immediately.
type Loader struct {
	source sources.Source
	store  *Store
	logger *zap.Logger

	mu      sync.Mutex
	state   LoaderState
	results []*data.Pokemon
	offset  int
	hasMore bool
	err     string

	subs    map[int]func(LoaderEvent)
	nextSub int
}

func NewLoader(source sources.Source, store *Store, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		source:  source,
		store:   store,
		logger:  logger,
		hasMore: true,
		subs:    make(map[int]func(LoaderEvent)),
	}
}

// LoadNext fetches the next page. With reset it starts over from offset 0.
// On failure the accumulated results are left as they were, the error
// message is recorded and the error is returned; calling again retries.
func (l *Loader) LoadNext(ctx context.Context, reset bool) error {
	l.mu.Lock()
	if l.state == Loading {
		l.mu.Unlock()
		return nil
	}
	if reset {
		l.offset = 0
		l.results = nil
		l.hasMore = true
		l.state = Idle
	}
	if !l.hasMore {
		l.mu.Unlock()
		return nil
	}
	l.state = Loading
	l.err = ""
	offset := l.offset
	l.mu.Unlock()

	l.store.beginLoad()
	l.notify()

	items, hasNext, err := l.fetchPage(ctx, offset)

	l.mu.Lock()
	if err != nil {
		l.err = loadPageMessage
		l.state = Idle
		l.mu.Unlock()

		l.logger.Error("failed to load page", zap.Int("offset", offset), zap.Error(err))
		l.store.endLoad(loadPageMessage)
		l.notify()
		return err
	}
	l.results = append(l.results, items...)
	l.offset += PageSize
	l.hasMore = hasNext
	l.state = Idle
	if !hasNext {
		l.state = Exhausted
	}
	total := len(l.results)
	l.mu.Unlock()

	l.logger.Debug("page loaded",
		zap.Int("offset", offset),
		zap.Int("items", len(items)),
		zap.Int("total", total),
		zap.Bool("has_more", hasNext),
	)
	l.store.endLoad("")
	l.notify()
	return nil
}

func (l *Loader) fetchPage(ctx context.Context, offset int) ([]*data.Pokemon, bool, error) {
	page, err := l.source.ListPage(ctx, PageSize, offset)
	if err != nil {
		return nil, false, fmt.Errorf("list page at %d: %w", offset, err)
	}

	items, err := l.source.GetPokemonBatch(ctx, page.Names())
	if err != nil {
		return nil, false, fmt.Errorf("fetch page at %d: %w", offset, err)
	}

	for _, p := range items {
		l.store.CacheItem(p)
	}
	return items, page.HasNext(), nil
}

// LoadByKey returns a single item by name or decimal ID, serving it from the
// cache when possible.
func (l *Loader) LoadByKey(ctx context.Context, key string) (*data.Pokemon, error) {
	if p, ok := l.store.CachedItem(key); ok {
		return p, nil
	}
	if id, err := strconv.Atoi(key); err == nil {
		if p, ok := l.store.CachedItemByID(id); ok {
			return p, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.err = ""
	l.mu.Unlock()
	l.store.beginLoad()

	p, err := l.source.GetPokemon(ctx, key)
	if err != nil {
		// A lookup cancelled by the caller is not a failure of this key.
		if ctx.Err() != nil {
			l.store.endLoad("")
			l.notify()
			return nil, err
		}

		msg := fmt.Sprintf("Failed to load Pokémon %s", key)
		l.mu.Lock()
		l.err = msg
		l.mu.Unlock()

		l.logger.Warn("failed to load pokemon", zap.String("key", key), zap.Error(err))
		l.store.endLoad(msg)
		l.notify()
		return nil, err
	}

	l.store.CacheItem(p)
	l.store.endLoad("")
	l.notify()
	return p, nil
}

// Results returns the accumulated items in arrival order.
func (l *Loader) Results() []*data.Pokemon {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*data.Pokemon, len(l.results))
	copy(out, l.results)
	return out
}

func (l *Loader) ResultsWithFavorites() []Entry {
	results := l.Results()
	entries := make([]Entry, len(results))
	for i, p := range results {
		entries[i] = Entry{Pokemon: p, Favorite: l.store.IsFavorite(p.ID)}
	}
	return entries
}

func (l *Loader) State() LoaderState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loader) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

func (l *Loader) Offset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset
}

// Error is the last failure message, cleared when a new load starts.
func (l *Loader) Error() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Loader) Subscribe(fn func(LoaderEvent)) func() {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

func (l *Loader) notify() {
	l.mu.Lock()
	e := LoaderEvent{State: l.state, Count: len(l.results), Err: l.err}
	subs := make([]func(LoaderEvent), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
