package services

import (
	"encoding/json"
	"slices"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/utils"
	"go.uber.org/zap"
)

const (
	// FavoritesKey holds the JSON array of favorite pokemon IDs.
	FavoritesKey = "pokemonFavorites"
	// LegacyFavoritesKey is the name-keyed list written by older releases.
	LegacyFavoritesKey = "pokemon_favorites"

	// DefaultCacheSize is above the size of the whole catalog, so a normal
	// session never evicts.
	DefaultCacheSize = 2048
)

// KV is the durable storage the store writes favorites through.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type StoreEventKind int

const (
	FavoritesChanged StoreEventKind = iota
	CacheChanged
	StatusChanged
)

type StoreEvent struct {
	Kind           StoreEventKind
	FavoritesCount int
}

// Store owns the favorite set and the name-keyed item cache. Every change to
// the favorite set is written to the KV before the call returns. Storage
// failures are logged and never surfaced to callers. The cache evicts least
// recently used items beyond its size.
type Store struct {
	mu      sync.RWMutex
	kv      KV
	logger  *zap.Logger
	metrics *utils.Metrics

	favorites []int
	cache     *lru.Cache[string, *data.Pokemon]
	inflight  int
	lastErr   string

	subs    map[int]func(StoreEvent)
	nextSub int
}

type StoreOption func(*storeOptions)

type storeOptions struct {
	cacheSize int
}

// WithCacheSize bounds the item cache. Non-positive sizes keep the default.
func WithCacheSize(n int) StoreOption {
	return func(o *storeOptions) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

func NewStore(kv KV, logger *zap.Logger, metrics *utils.Metrics, opts ...StoreOption) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := storeOptions{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	// only fails for non-positive sizes
	cache, _ := lru.New[string, *data.Pokemon](o.cacheSize)

	s := &Store{
		kv:      kv,
		logger:  logger,
		metrics: metrics,
		cache:   cache,
		subs:    make(map[int]func(StoreEvent)),
	}
	s.favorites = s.loadFavorites()
	return s
}

func (s *Store) loadFavorites() []int {
	raw, ok, err := s.kv.Get(FavoritesKey)
	if err != nil {
		s.logger.Warn("failed to load favorites, starting empty", zap.Error(err))
		return []int{}
	}
	if !ok {
		return []int{}
	}
	ids, valid := ParseFavorites(raw)
	if !valid {
		s.logger.Warn("discarding malformed favorites", zap.String("value", raw))
		return []int{}
	}
	return ids
}

// ParseFavorites decodes a stored favorites blob. It reports false for
// anything that is not a JSON array of integers. Duplicates are dropped,
// keeping first occurrences.
func ParseFavorites(raw string) ([]int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil || ids == nil {
		return nil, false
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, true
}

// persist must be called with s.mu held.
func (s *Store) persist() {
	blob, err := json.Marshal(s.favorites)
	if err != nil {
		s.logger.Error("failed to encode favorites", zap.Error(err))
		return
	}
	if err := s.kv.Set(FavoritesKey, string(blob)); err != nil {
		s.logger.Warn("failed to save favorites", zap.Error(err))
	}
}

// ToggleFavorite adds id if absent and removes it otherwise. It returns
// whether id is a favorite afterwards.
func (s *Store) ToggleFavorite(id int) bool {
	s.mu.Lock()
	var now bool
	if i := slices.Index(s.favorites, id); i >= 0 {
		s.favorites = slices.Delete(s.favorites, i, i+1)
	} else {
		s.favorites = append(s.favorites, id)
		now = true
	}
	s.persist()
	count := len(s.favorites)
	s.mu.Unlock()

	s.notify(StoreEvent{Kind: FavoritesChanged, FavoritesCount: count})
	return now
}

func (s *Store) AddFavorite(id int) {
	s.mu.Lock()
	if slices.Contains(s.favorites, id) {
		s.mu.Unlock()
		return
	}
	s.favorites = append(s.favorites, id)
	s.persist()
	count := len(s.favorites)
	s.mu.Unlock()

	s.notify(StoreEvent{Kind: FavoritesChanged, FavoritesCount: count})
}

func (s *Store) RemoveFavorite(id int) {
	s.mu.Lock()
	i := slices.Index(s.favorites, id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.favorites = slices.Delete(s.favorites, i, i+1)
	s.persist()
	count := len(s.favorites)
	s.mu.Unlock()

	s.notify(StoreEvent{Kind: FavoritesChanged, FavoritesCount: count})
}

func (s *Store) ClearFavorites() {
	s.mu.Lock()
	s.favorites = []int{}
	s.persist()
	s.mu.Unlock()

	s.notify(StoreEvent{Kind: FavoritesChanged})
}

func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.favorites, id)
}

// Favorites returns a copy of the favorite IDs in insertion order.
func (s *Store) Favorites() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.favorites)
}

func (s *Store) FavoritesCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorites)
}

func (s *Store) HasFavorites() bool {
	return s.FavoritesCount() > 0
}

func (s *Store) CacheItem(p *data.Pokemon) {
	if p == nil {
		return
	}
	s.mu.Lock()
	s.cache.Add(p.Name, p)
	count := len(s.favorites)
	s.mu.Unlock()

	s.notify(StoreEvent{Kind: CacheChanged, FavoritesCount: count})
}

func (s *Store) CachedItem(name string) (*data.Pokemon, bool) {
	s.mu.Lock()
	p, ok := s.cache.Get(name)
	s.mu.Unlock()

	s.metrics.ObserveCacheLookup(ok)
	return p, ok
}

// CachedItemByID scans the cache for a numeric ID.
func (s *Store) CachedItemByID(id int) (*data.Pokemon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.cache.Values() {
		if p.ID == id {
			// refresh recency
			s.cache.Get(p.Name)
			return p, true
		}
	}
	return nil, false
}

func (s *Store) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Len()
}

// ClearCache empties the item cache. Favorites are untouched.
func (s *Store) ClearCache() {
	s.mu.Lock()
	s.cache.Purge()
	count := len(s.favorites)
	s.mu.Unlock()

	s.notify(StoreEvent{Kind: CacheChanged, FavoritesCount: count})
}

// Loading reports whether any load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// LastError is the most recent load failure message, or "".
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) beginLoad() {
	s.mu.Lock()
	s.inflight++
	s.lastErr = ""
	count := len(s.favorites)
	s.mu.Unlock()

	s.notify(StoreEvent{Kind: StatusChanged, FavoritesCount: count})
}

func (s *Store) endLoad(errMsg string) {
	s.mu.Lock()
	if s.inflight > 0 {
		s.inflight--
	}
	if errMsg != "" {
		s.lastErr = errMsg
	}
	count := len(s.favorites)
	s.mu.Unlock()

	s.notify(StoreEvent{Kind: StatusChanged, FavoritesCount: count})
}

// Subscribe registers fn for every store change and returns a function that
// removes it. Callbacks run synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func(StoreEvent)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(e StoreEvent) {
	s.mu.RLock()
	subs := make([]func(StoreEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}
