package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/logging"
	"github.com/sandeepkv93/tasklist/internal/persist"
	"github.com/sandeepkv93/tasklist/internal/state"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

var defaultConfigHint = config.DefaultPath()

// runtime is everything a command needs to read and change the list.
type runtime struct {
	cfg     config.Config
	logger  *slog.Logger
	repo    *storage.SQLiteKV
	writer  *persist.Writer
	adapter *persist.Adapter
	store   *state.Store

	closeLog func() error
}

func openRuntime(flags *globalFlags) (*runtime, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err = cfg.Override(config.Config{
		DBPath:   flags.dbPath,
		LogFile:  flags.logFile,
		LogLevel: flags.logLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("apply flags: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open database: %w", err)
	}

	writer := persist.NewWriter(repo, persist.ItemsKey, logger)
	writer.Start()
	adapter := persist.NewAdapter(repo, writer, logger)

	logger.Debug("runtime ready", "db", cfg.DBPath)
	return &runtime{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		writer:   writer,
		adapter:  adapter,
		store:    state.New(adapter, state.WithLogger(logger)),
		closeLog: closeLog,
	}, nil
}

// Close flushes the pending write before the database goes away.
func (r *runtime) Close() error {
	r.writer.Stop()
	if n := r.writer.Failures(); n > 0 {
		r.logger.Warn("some saves failed", "failures", n)
	}
	var errs []error
	if err := r.repo.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	if err := r.closeLog(); err != nil {
		errs = append(errs, fmt.Errorf("close log: %w", err))
	}
	return errors.Join(errs...)
}
