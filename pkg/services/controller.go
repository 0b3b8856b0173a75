package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/kerbaras/pokedex/pkg/config"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/integrations"
	"github.com/kerbaras/pokedex/pkg/sources"
	"github.com/kerbaras/pokedex/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ExportTitle is the title of the favorites EPUB.
const ExportTitle = "Pokédex Favorites"

// favoriteFetchLimit bounds concurrent lookups when resolving favorites.
const favoriteFetchLimit = 4

// Controller wires the catalog client, storage and clipboard together. The
// TUI and every CLI command go through one Controller.
type Controller struct {
	Config    config.Config
	Logger    *zap.Logger
	Source    sources.Source
	Store     *Store
	Loader    *Loader
	Clipboard *integrations.Clipboard
	Metrics   *utils.Metrics
	Registry  *prometheus.Registry

	repo    *data.Repository
	api     *utils.API
	metrics *http.Server
}

// NewController opens storage, drops legacy favorites and builds the
// catalog client from cfg.
func NewController(cfg config.Config, logger *zap.Logger) (*Controller, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repo, err := data.OpenRepository(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	CleanupLegacyFavorites(repo, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := utils.NewMetrics(registry)

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	api := utils.NewAPI(cfg.APIURL,
		utils.WithTimeout(cfg.Timeout),
		utils.WithRateLimit(limit, cfg.RateBurst),
		utils.WithMetrics(metrics),
	)

	source := sources.NewPokeAPI(api)
	store := NewStore(repo, logger, metrics, WithCacheSize(cfg.CacheSize))

	logger.Debug("controller ready",
		zap.String("api", api.BaseURL()),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("db_path", cfg.DBPath),
	)

	return &Controller{
		Config:    cfg,
		Logger:    logger,
		Source:    source,
		Store:     store,
		Loader:    NewLoader(source, store, logger),
		Clipboard: integrations.NewClipboard(os.Stderr),
		Metrics:   metrics,
		Registry:  registry,
		repo:      repo,
		api:       api,
	}, nil
}

// FavoritePokemon resolves the favorite IDs to full records, in favorite
// order. Records already cached are not fetched again.
func (c *Controller) FavoritePokemon(ctx context.Context) ([]*data.Pokemon, error) {
	ids := c.Store.Favorites()
	items := make([]*data.Pokemon, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(favoriteFetchLimit)
	for i, id := range ids {
		g.Go(func() error {
			p, err := c.Loader.LoadByKey(gctx, strconv.Itoa(id))
			if err != nil {
				return fmt.Errorf("favorite %d: %w", id, err)
			}
			items[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// Page fetches one 1-based listing page independently of the Loader's
// cursor. Fetched records are cached.
func (c *Controller) Page(ctx context.Context, page int) ([]*data.Pokemon, bool, error) {
	if page < 1 {
		return nil, false, fmt.Errorf("page must be at least 1, got %d", page)
	}
	listing, err := c.Source.ListPage(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, false, fmt.Errorf("list page %d: %w", page, err)
	}
	items, err := c.Source.GetPokemonBatch(ctx, listing.Names())
	if err != nil {
		return nil, false, fmt.Errorf("fetch page %d: %w", page, err)
	}
	for _, p := range items {
		c.Store.CacheItem(p)
	}
	return items, listing.HasNext(), nil
}

// Lookup returns one record by name or ID.
func (c *Controller) Lookup(ctx context.Context, key string) (*data.Pokemon, error) {
	return c.Loader.LoadByKey(ctx, key)
}

// Share copies the share line for p to the clipboard and returns it.
func (c *Controller) Share(p *data.Pokemon) (string, error) {
	text := utils.ShareText(p)
	if err := c.Clipboard.Copy(text); err != nil {
		c.Logger.Warn("clipboard copy failed", zap.String("pokemon", p.Name), zap.Error(err))
		return text, err
	}
	return text, nil
}

// Export writes the favorites EPUB into dir, or the configured export
// directory when dir is empty.
func (c *Controller) Export(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		dir = c.Config.ExportDir
	}
	items, err := c.FavoritePokemon(ctx)
	if err != nil {
		return "", err
	}
	book := integrations.NewFavoritesBook(dir, c.api, c.Logger)
	path, err := book.Create(ctx, ExportTitle, items)
	if err != nil {
		return "", err
	}
	c.Logger.Info("exported favorites", zap.String("path", path), zap.Int("count", len(items)))
	return path, nil
}

// StartMetricsServer serves the registry on addr under /metrics until Close.
// It returns the bound address.
func (c *Controller) StartMetricsServer(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{}))
	c.metrics = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := c.metrics.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.Logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	c.Logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}

func (c *Controller) Close() error {
	var errs []error
	if c.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		errs = append(errs, c.metrics.Shutdown(ctx))
	}
	if c.repo != nil {
		errs = append(errs, c.repo.Close())
	}
	_ = c.Logger.Sync()
	return errors.Join(errs...)
}
