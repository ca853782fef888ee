package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	libraryrender "github.com/bnema/paperswipe/internal/adapters/render/library"
	"github.com/bnema/paperswipe/internal/adapters/recommend/workflow"
	sqliterepo "github.com/bnema/paperswipe/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/paperswipe/internal/adapters/repo/toml"
	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/config"
	"github.com/bnema/paperswipe/internal/observability"
	"github.com/bnema/paperswipe/internal/parser"
	"github.com/bnema/paperswipe/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const dotEnvFile = ".env"

type app struct {
	cfg             *config.Config
	logger          zerolog.Logger
	metrics         *observability.Metrics
	store           ports.LibraryStore
	closeStore      func() error
	searchService   *application.SearchService
	libraryService  *application.LibraryService
	libraryRenderer func(application.LibraryView, libraryrender.RenderOptions) (string, error)
	now             func() time.Time
}

func (a *app) wire(opts rootOptions, logOutput io.Writer) error {
	v := viper.New()
	cfg, err := config.Load(v, config.Options{ConfigFile: opts.configFile, DotEnvFile: dotEnvFile})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging := observability.DefaultLoggingConfig()
	logging.Level = cfg.Log.Level
	logging.Format = cfg.Log.Format
	logging.Writer = logOutput
	if opts.verbose {
		logging.Level = "debug"
	}
	logger := observability.NewLogger(logging)

	store, closeStore, err := openLibraryStore(cfg, v)
	if err != nil {
		return fmt.Errorf("wire library store: %w", err)
	}

	metrics := observability.NewMetrics()
	clock := ports.SystemClock{}

	recommender := workflow.NewClient(workflow.Config{
		URL:           cfg.API.URL(),
		Key:           cfg.API.Key,
		Secret:        cfg.API.Secret,
		FlowID:        cfg.API.FlowID,
		UID:           cfg.API.UID,
		Timeout:       cfg.API.Timeout,
		RatePerSecond: cfg.API.RatePerSecond,
	}, &http.Client{}, logger)

	*a = app{
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
		store:      store,
		closeStore: closeStore,
		searchService: application.NewSearchService(
			recommender,
			parser.New(parser.WithLogger(logger)),
			clock,
			application.WithSearchMetrics(metrics),
			application.WithSearchLogger(logger),
		),
		libraryService: application.NewLibraryService(
			store,
			clock,
			application.WithLibraryMetrics(metrics),
			application.WithLibraryLogger(logger),
		),
		libraryRenderer: libraryrender.Render,
		now:             time.Now,
	}

	logger.Debug().
		Str("backend", cfg.Library.Backend).
		Str("library", cfg.Library.Path).
		Str("api", cfg.API.URL()).
		Msg("application wired")

	return nil
}

func (a *app) close() error {
	if a.closeStore == nil {
		return nil
	}
	err := a.closeStore()
	a.closeStore = nil
	return err
}

func openLibraryStore(cfg *config.Config, v *viper.Viper) (ports.LibraryStore, func() error, error) {
	switch cfg.Library.Backend {
	case config.BackendSQLite:
		store, err := sqliterepo.Open(cfg.Library.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.BackendTOML:
		repo, err := tomlrepo.NewRepository(v)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	default:
		return nil, nil, errors.Join(config.ErrUnknownBackend, fmt.Errorf("backend %q", cfg.Library.Backend))
	}
}
