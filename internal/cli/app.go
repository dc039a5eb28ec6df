// Package cli wires the BaristaBot commands: it selects the session store,
// builds the engine and runs the chat, HTTP and MCP front ends.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/baristabot"
	"github.com/aretw0/baristabot/internal/config"
	"github.com/aretw0/baristabot/internal/logging"
	"github.com/aretw0/baristabot/pkg/adapters/file"
	"github.com/aretw0/baristabot/pkg/adapters/memory"
	"github.com/aretw0/baristabot/pkg/adapters/openai"
	"github.com/aretw0/baristabot/pkg/adapters/process"
	"github.com/aretw0/baristabot/pkg/adapters/redis"
	"github.com/aretw0/baristabot/pkg/catalog"
	"github.com/aretw0/baristabot/pkg/menu"
	"github.com/aretw0/baristabot/pkg/observability"
	"github.com/aretw0/baristabot/pkg/persistence/middleware"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/aretw0/baristabot/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Store backends accepted by --store.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// ErrMissingAPIKey is returned when a command needs the Reasoner and no key is set.
var ErrMissingAPIKey = errors.New("no OpenAI API key: set BARISTABOT_OPENAI_API_KEY or OPENAI_API_KEY")

// Options holds the global command line flags.
type Options struct {
	Dir       string
	Store     string
	RedisURL  string
	MenuPath  string
	LogLevel  string
	RedactPII bool
}

// App holds everything a command may need. Fields are filled lazily:
// session commands never build the engine.
type App struct {
	Options Options
	Config  config.Config
	Logger  *slog.Logger

	Menu     *menu.Provider
	Store    ports.StateStore
	Sessions *session.Manager

	Registry *prometheus.Registry
	Engine   *baristabot.Engine

	closers []func() error
}

// NewApp loads the environment and opens the session store.
func NewApp(opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewAppWithConfig(opts, cfg)
}

// NewAppWithConfig is NewApp with an explicit configuration.
func NewAppWithConfig(opts Options, cfg config.Config) (*App, error) {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}

	m, err := menu.Load(opts.MenuPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		Options: opts,
		Config:  cfg,
		Logger:  logging.New(level),
		Menu:    menu.NewProvider(m),
	}
	if err := app.openStore(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) openStore() error {
	var (
		store  ports.StateStore
		locker ports.DistributedLocker
	)

	switch a.Options.Store {
	case "", StoreFile:
		dir := a.Options.Dir
		if dir == "" {
			dir = "."
		}
		store = file.New(filepath.Join(dir, file.DefaultDir))
	case StoreMemory:
		store = memory.NewStore()
	case StoreRedis:
		url := a.Options.RedisURL
		if url == "" {
			url = a.Config.RedisURL
		}
		if url == "" {
			return errors.New("--store redis needs --redis-url or BARISTABOT_REDIS_URL")
		}
		rs, err := redis.NewFromURL(url, redis.WithTTL(a.Config.SessionTTL))
		if err != nil {
			return err
		}
		a.closers = append(a.closers, rs.Close)
		store = rs
		locker = redis.NewLocker(rs.Client(), redis.DefaultPrefix)
	default:
		return fmt.Errorf("unknown store %q (want file, memory or redis)", a.Options.Store)
	}

	var mws []middleware.Middleware
	if a.Options.RedactPII {
		mws = append(mws, middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns))
	}
	if a.Config.EncryptionKey != "" {
		key, err := middleware.ParseKey(a.Config.EncryptionKey)
		if err != nil {
			return err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	a.Store = middleware.Chain(store, mws...)

	sessionOpts := []session.Option{session.WithLogger(a.Logger)}
	if locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(locker))
	}
	a.Sessions = session.NewManager(a.Store, sessionOpts...)

	a.Logger.Debug("session store ready", "store", a.Options.Store, "pii_redaction", a.Options.RedactPII, "encrypted", a.Config.EncryptionKey != "")
	return nil
}

// NewReasoner binds the OpenAI chat-completions endpoint to the default catalog.
func (a *App) NewReasoner() (ports.Reasoner, error) {
	key := a.Config.APIKey()
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	opts := []openai.Option{
		openai.WithAPIKey(key),
		openai.WithModel(a.Config.Model),
		openai.WithLogger(a.Logger),
	}
	if a.Config.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(a.Config.OpenAIBaseURL))
	}
	return openai.New(catalog.Default(), opts...), nil
}

// BuildEngine creates the engine once, with logging and Prometheus hooks.
// A nil reasoner uses NewReasoner.
func (a *App) BuildEngine(reasoner ports.Reasoner) (*baristabot.Engine, error) {
	if a.Engine != nil {
		return a.Engine, nil
	}
	if reasoner == nil {
		var err error
		if reasoner, err = a.NewReasoner(); err != nil {
			return nil, err
		}
	}

	a.Registry = prometheus.NewRegistry()
	metrics := observability.NewMetrics(a.Registry)

	opts := []baristabot.Option{
		baristabot.WithMenu(a.Menu),
		baristabot.WithLogger(a.Logger),
		baristabot.WithMaxSteps(a.Config.MaxSteps),
		baristabot.WithLifecycleHooks(observability.ComposeHooks(
			observability.LogHooks(a.Logger),
			metrics.Hooks(),
		)),
	}
	if a.Config.KitchenConfig != "" {
		kitchen, err := process.LoadConfig(a.Config.KitchenConfig)
		if err != nil {
			return nil, err
		}
		opts = append(opts, baristabot.WithFulfillment(process.New(kitchen, process.WithLogger(a.Logger))))
	}

	eng, err := baristabot.New(reasoner, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	a.Engine = eng
	return eng, nil
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// MenuText renders the menu for the menu command.
func (a *App) MenuText(ctx context.Context) (string, error) {
	return a.Menu.Menu(ctx)
}
