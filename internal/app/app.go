// Package app wires configuration, the token store, the HTTP client and the
// services into one runnable client.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/curato/curation-client/internal/core/ports"
	"github.com/curato/curation-client/internal/core/service"
	"github.com/curato/curation-client/internal/infrastructure/backend"
	"github.com/curato/curation-client/internal/infrastructure/httpclient"
	"github.com/curato/curation-client/internal/infrastructure/tokenstore"
	"github.com/curato/curation-client/internal/pkg/config"
)

// App is the assembled client.
type App struct {
	Config      *config.Config
	Store       ports.TokenStore
	Client      *httpclient.Client
	Session     *service.SessionService
	Collections *service.CollectionService
	Cache       *service.CollectionCache

	repo    *backend.CollectionRepository
	logger  zerolog.Logger
	closers []func() error
}

type options struct {
	navigator  ports.Navigator
	store      ports.TokenStore
	httpClient *http.Client
}

// Option customises New.
type Option func(*options)

// WithNavigator sets where the client is sent after the session expired.
func WithNavigator(nav ports.Navigator) Option {
	return func(o *options) { o.navigator = nav }
}

// WithStore overrides the configured token store backend.
func WithStore(store ports.TokenStore) Option {
	return func(o *options) { o.store = store }
}

// WithHTTPClient sets the transport used for backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// New builds the client from cfg. The session is not bootstrapped.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, logger: logger}

	store := o.store
	if store == nil {
		var err error
		if store, err = a.openStore(ctx); err != nil {
			return nil, err
		}
	}
	a.Store = store

	var clientOpts []httpclient.Option
	if o.navigator != nil {
		clientOpts = append(clientOpts, httpclient.WithNavigator(o.navigator))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, httpclient.WithHTTPClient(o.httpClient))
	}
	a.Client = httpclient.New(httpclient.Config{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		LoginPath:  cfg.API.LoginPath,
		LoginRoute: cfg.API.LoginRoute,
	}, store, logger.With().Str("component", "httpclient").Logger(), clientOpts...)

	a.repo = backend.NewCollectionRepository(a.Client)
	a.Session = service.NewSessionService(backend.NewAuthRepository(a.Client), store,
		logger.With().Str("component", "session").Logger())
	a.Cache = service.NewCollectionCache(a.repo, logger.With().Str("component", "cache").Logger())
	a.Collections = service.NewCollectionService(a.repo, a.Cache,
		logger.With().Str("component", "collections").Logger())

	a.Client.OnSessionExpired(a.Session.Expire)
	return a, nil
}

// NewSearchDebouncer returns a debouncer over the backend search endpoint.
func (a *App) NewSearchDebouncer(onResult service.SearchResultFunc) *service.SearchDebouncer {
	return service.NewSearchDebouncer(a.Collections, a.Config.SearchDebounce, onResult,
		a.logger.With().Str("component", "search").Logger())
}

// Close releases the store connection, if any.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) openStore(ctx context.Context) (ports.TokenStore, error) {
	cfg := a.Config
	storeLog := a.logger.With().Str("component", "tokenstore").Str("backend", cfg.Store.Backend).Logger()

	switch cfg.Store.Backend {
	case config.StoreMemory:
		return tokenstore.NewMemoryStore(cfg.Store.Prefix), nil
	case config.StoreFile:
		return tokenstore.NewFileStore(cfg.SessionPath(), cfg.Store.Prefix, storeLog), nil
	case config.StoreRedis:
		client, err := tokenstore.ConnectRedis(ctx, tokenstore.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("app: open token store: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return tokenstore.NewRedisStore(client, cfg.Store.Prefix, storeLog), nil
	default:
		return nil, fmt.Errorf("app: unknown store backend %q", cfg.Store.Backend)
	}
}
