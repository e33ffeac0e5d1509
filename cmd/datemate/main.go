package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/alexanderramin/datemate/internal/catalog"
	"github.com/alexanderramin/datemate/internal/cli"
	"github.com/alexanderramin/datemate/internal/db"
	"github.com/alexanderramin/datemate/internal/dialog"
	"github.com/alexanderramin/datemate/internal/intelligence"
	"github.com/alexanderramin/datemate/internal/llm"
	"github.com/alexanderramin/datemate/internal/logging"
	"github.com/alexanderramin/datemate/internal/planner"
	"github.com/alexanderramin/datemate/internal/repository"
	"github.com/alexanderramin/datemate/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal for the TUI and the plan wizard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Bootstrap = func(ctx context.Context, opts cli.GlobalOptions) error {
		logCfg := logging.ConfigFromEnv()
		if opts.Verbose {
			logCfg = logCfg.Verbose()
		}
		logger, err := logging.New(logCfg)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		closers = append(closers, func() { _ = logger.Sync() })

		// DB path: flag, then env var, then a private in-memory catalog.
		dbPath := opts.DBPath
		if dbPath == "" {
			dbPath = os.Getenv("DATEMATE_DB")
		}
		database, err := db.OpenDB(dbPath)
		if err != nil {
			return err
		}
		closers = append(closers, func() { database.Close() })

		if err := seedCatalog(ctx, database, logger); err != nil {
			return err
		}
		spots := catalog.NewService(repository.NewSQLiteSpotRepo(database))

		extractor, err := newExtractor(ctx, logger)
		if err != nil {
			return err
		}

		var dialogOpts []dialog.Option
		dialogOpts = append(dialogOpts, dialog.WithLogger(logger))
		if v := os.Getenv("DATEMATE_COLLABORATOR_TIMEOUT_MS"); v != "" {
			if ms, err := strconv.Atoi(v); err == nil {
				dialogOpts = append(dialogOpts, dialog.WithTimeout(time.Duration(ms)*time.Millisecond))
			}
		}

		app.Logger = logger
		app.Catalog = spots
		app.Dialog = dialog.NewController(session.NewMemoryStore(), extractor, spots, planner.New(), dialogOpts...)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}

// seedCatalog loads DATEMATE_CATALOG, or the bundled venues when the
// database is empty.
func seedCatalog(ctx context.Context, database *sql.DB, logger *zap.Logger) error {
	uow := db.NewSQLiteUnitOfWork(database)
	if path := os.Getenv("DATEMATE_CATALOG"); path != "" {
		n, err := catalog.SeedFromPath(ctx, uow, path)
		if err != nil {
			return fmt.Errorf("seeding catalog from %s: %w", path, err)
		}
		logger.Info("catalog seeded", zap.String("path", path), zap.Int("spots", n))
		return nil
	}

	existing, err := repository.NewSQLiteSpotRepo(database).List(ctx)
	if err != nil {
		return fmt.Errorf("checking catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	n, err := catalog.SeedDefault(ctx, uow)
	if err != nil {
		return fmt.Errorf("seeding default catalog: %w", err)
	}
	logger.Debug("catalog seeded", zap.String("path", "bundled"), zap.Int("spots", n))
	return nil
}

// newExtractor prefers the LLM when enabled and falls back to keywords on
// any model failure.
func newExtractor(ctx context.Context, logger *zap.Logger) (intelligence.EntityExtractor, error) {
	keywords := intelligence.NewKeywordExtractor()

	llmCfg := llm.LoadConfig()
	if !llmCfg.Enabled {
		return keywords, nil
	}

	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, err := llm.NewClient(ctx, llmCfg, observer)
	if err != nil {
		return nil, fmt.Errorf("configuring %s model: %w", llmCfg.Provider, err)
	}
	logger.Debug("llm extractor enabled", zap.String("provider", string(llmCfg.Provider)), zap.String("model", llmCfg.Model))

	return intelligence.WithFallback(intelligence.NewLLMExtractor(client), keywords, func(err error) {
		logger.Warn("llm extraction failed, using keywords", zap.Error(err))
	}), nil
}
