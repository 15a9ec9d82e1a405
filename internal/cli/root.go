package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/bot"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/metrics"
	"github.com/hyperjump/kotae/internal/responder"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/pkg/utils"
)

// DefaultConfigPath is used when neither --config nor KOTAE_CONFIG is set.
const DefaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// ConfigEnv names the environment variable that overrides the config path.
const ConfigEnv = "KOTAE_CONFIG"

// app carries state shared by every command.
type app struct {
	version    string
	configPath string
	debug      bool

	cfg          *config.Config
	resolvedPath string
}

// Execute runs the root command.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// NewRootCommand builds the kotae command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}
	root := &cobra.Command{
		Use:   "kotae",
		Short: "kotae - answer questions from a local question/answer corpus",
		Long: `kotae answers free-text questions from a local question/answer corpus.
It finds the most similar stored question by TF-IDF cosine similarity and
replies with its answer, falling back to canned replies when nothing is close.

Example usage:
  kotae serve                         # Start the HTTP API
  kotae ask what is python            # One-shot answer
  kotae chat                          # Interactive session
  kotae import "data/**/*.csv"        # Load records from files`,
		SilenceUsage:      true,
		PersistentPreRunE: a.preRun,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $"+ConfigEnv+" or "+DefaultConfigPath+")")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.serveCommand(),
		a.askCommand(),
		a.chatCommand(),
		a.suggestCommand(),
		a.addCommand(),
		a.importCommand(),
		a.exportCommand(),
		a.statusCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *app) preRun(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if cmd.Name() == "version" {
		return nil
	}
	path := a.configPath
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		path = DefaultConfigPath
	}
	cfg, resolved, err := loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg, a.resolvedPath = cfg, resolved
	return nil
}

// loadConfig loads config from path. When path is the default, config.yaml in the
// current directory wins if present, and a missing default file yields the built-in
// defaults. Returns the config and the path that was loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == DefaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// logger returns a zap logger for the command. Quiet commands log nothing unless
// debug is on, so interactive output stays clean.
func (a *app) logger(quiet bool) (*zap.Logger, error) {
	debug := a.debug || (a.cfg != nil && a.cfg.Debug)
	if quiet && !debug {
		return zap.NewNop(), nil
	}
	return utils.NewLogger(debug)
}

// components wires storage, responder, metrics and bot from the loaded config.
type components struct {
	store   storage.Storage
	metrics *metrics.Metrics
	bot     *bot.Bot
}

func (c *components) Close() {
	if c.store != nil {
		_ = c.store.Close()
	}
}

func (a *app) initializeComponents(ctx context.Context, logger *zap.Logger) (*components, error) {
	store, err := storage.Open(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	m := metrics.New()
	r := responder.New(responder.WithThreshold(a.cfg.Responder.Threshold()))
	b, err := bot.New(ctx, store, r,
		bot.WithLogger(logger),
		bot.WithMetrics(m),
		bot.WithSuggestOptions(
			search.WithLimit(a.cfg.Suggest.Limit),
			search.WithPlaceholders(a.cfg.Suggest.Placeholders),
		),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &components{store: store, metrics: m, bot: b}, nil
}

// backend returns an HTTP backend when serverURL is set, otherwise an in-process one.
func (a *app) backend(ctx context.Context, serverURL string, logger *zap.Logger) (Backend, error) {
	if serverURL != "" {
		return NewHTTPBackend(serverURL), nil
	}
	c, err := a.initializeComponents(ctx, logger)
	if err != nil {
		return nil, err
	}
	return NewLocalBackend(c.bot, c.store), nil
}
