package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/kerbaras/pokedex/pkg/app"
	"github.com/kerbaras/pokedex/pkg/config"
	"github.com/kerbaras/pokedex/pkg/logging"
	"github.com/kerbaras/pokedex/pkg/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type controllerKey struct{}

type sessionKey struct{}

// session receives the controller built by setup so the caller of
// executeContext closes it whether or not the command succeeded.
type session struct {
	ctrl   *services.Controller
	closed bool
}

func (s *session) close() error {
	if s.ctrl == nil || s.closed {
		return nil
	}
	s.closed = true
	return s.ctrl.Close()
}

var rootCmd = &cobra.Command{
	Use:          "pokedex",
	Short:        "A Pokédex for your terminal",
	Long:         "Browse Pokémon, keep a list of favorites and share them, from a TUI or the command line",
	SilenceUsage: true,

	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch TUI by default
		return app.NewApp(controller(cmd)).Run(cmd.Context())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "catalog API base URL (env POKEDEX_API_URL)")
	flags.String("db", "", "database file, empty for the default (env POKEDEX_DB_PATH)")
	flags.String("db-driver", "", "database driver: duckdb or sqlite (env POKEDEX_DB_DRIVER)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env POKEDEX_LOG_LEVEL)")
	flags.String("log-file", "", "log file path (env POKEDEX_LOG_FILE)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address (env POKEDEX_METRICS_ADDR)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(exportCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := executeContext(ctx, &session{})
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func executeContext(ctx context.Context, sess *session) error {
	err := rootCmd.ExecuteContext(context.WithValue(ctx, sessionKey{}, sess))
	return errors.Join(err, sess.close())
}

// loadConfig reads the environment and applies any flags set on the command
// line on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]*string{
		"api-url":      &cfg.APIURL,
		"db":           &cfg.DBPath,
		"db-driver":    &cfg.DBDriver,
		"log-level":    &cfg.LogLevel,
		"log-file":     &cfg.LogFile,
		"metrics-addr": &cfg.MetricsAddr,
	}
	for name, field := range overrides {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			*field = flag.Value.String()
		}
	}
	return cfg, cfg.Validate()
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}

	ctrl, err := services.NewController(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		if _, err := ctrl.StartMetricsServer(cfg.MetricsAddr); err != nil {
			ctrl.Close()
			return err
		}
	}

	if sess, ok := cmd.Context().Value(sessionKey{}).(*session); ok {
		sess.ctrl = ctrl
	}

	logger.Debug("command starting", zap.String("command", cmd.CommandPath()))
	cmd.SetContext(context.WithValue(cmd.Context(), controllerKey{}, ctrl))
	return nil
}

func controller(cmd *cobra.Command) *services.Controller {
	return cmd.Context().Value(controllerKey{}).(*services.Controller)
}
