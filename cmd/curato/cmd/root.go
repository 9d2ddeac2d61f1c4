// Package cmd provides the CLI commands for the curato client.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/curato/curation-client/internal/app"
	"github.com/curato/curation-client/internal/core/domain"
	"github.com/curato/curation-client/internal/core/ports"
	"github.com/curato/curation-client/internal/pkg/config"
	"github.com/curato/curation-client/pkg/logger"
)

var (
	apiURL       string
	storeBackend string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "curato",
	Short: "curato - command line client for the Curato collections service",
	Long: `curato talks to a Curato backend: sign in, manage your collections,
browse the public feed and search.

Configuration is read from CURATO_* environment variables, for example:
  CURATO_API_BASE_URL=https://api.curato.example
  CURATO_STORE_BACKEND=file|memory|redis

The session token is kept in the configured store between runs.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL (overrides CURATO_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "token store backend: file, memory or redis")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
}

// openApp loads configuration, applies flag overrides and bootstraps the session.
func openApp(cmd *cobra.Command) (*app.App, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadFrom(ctx, envconfig.OsLookuper())
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if storeBackend != "" {
		cfg.Store.Backend = storeBackend
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: cmd.ErrOrStderr()})

	stderr := cmd.ErrOrStderr()
	a, err := app.New(ctx, cfg, log, app.WithNavigator(ports.NavigatorFunc(func(string) {
		fmt.Fprintln(stderr, "session expired, run `curato login`")
	})))
	if err != nil {
		return nil, err
	}
	a.Session.Bootstrap(ctx)
	return a, nil
}

// requireSession fails when no authenticated session was restored.
func requireSession(a *app.App) error {
	if !a.Session.Session().IsAuthenticated() {
		return fmt.Errorf("%w: run `curato login` first", domain.ErrNotAuthenticated)
	}
	return nil
}

// describe turns an error into the line shown to the user.
func describe(err error) error {
	var ve *domain.ValidationError
	var authErr *domain.AuthError
	var apiErr *domain.APIError
	switch {
	case errors.As(err, &ve):
		return errors.New(ve.Message)
	case errors.As(err, &authErr):
		return errors.New(authErr.Message)
	case errors.Is(err, domain.ErrSessionExpired):
		return errors.New("session expired")
	case errors.As(err, &apiErr):
		return errors.New(apiErr.Message)
	}
	return err
}
