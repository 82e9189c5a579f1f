package tasks

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinescope/cinescope/internal/config"
	"github.com/cinescope/cinescope/internal/scheduler"
)

// TableLoader is the part of the Letterboxd table the reload task needs.
type TableLoader interface {
	LoadFile(path string) error
	Len() int
}

// TableReloadTask refreshes the popular-film table from its YAML file.
type TableReloadTask struct {
	table  TableLoader
	path   string
	logger zerolog.Logger
}

// NewTableReloadTask creates a new table reload task.
func NewTableReloadTask(table TableLoader, path string, logger zerolog.Logger) *TableReloadTask {
	return &TableReloadTask{
		table:  table,
		path:   path,
		logger: logger.With().Str("task", "letterboxd-table").Logger(),
	}
}

// Run loads the file. On failure the previous table stays in place.
func (t *TableReloadTask) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.table.LoadFile(t.path); err != nil {
		t.logger.Warn().Err(err).Str("path", t.path).Msg("Keeping previous Letterboxd table")
		return err
	}

	t.logger.Info().Str("path", t.path).Int("films", t.table.Len()).Msg("Reloaded Letterboxd table")
	return nil
}

// RegisterTableReloadTask registers the table reload with the scheduler. It is
// a no-op when no table file is configured.
func RegisterTableReloadTask(sched *scheduler.Scheduler, table TableLoader, cfg *config.LetterboxdConfig, logger zerolog.Logger) error {
	if cfg.TablePath == "" {
		return nil
	}

	task := NewTableReloadTask(table, cfg.TablePath, logger)

	interval := time.Duration(cfg.TableRefreshMins) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	return sched.RegisterTask(scheduler.TaskConfig{
		ID:          "letterboxd-table",
		Name:        "Letterboxd Table Reload",
		Description: "Reloads the popular-film Letterboxd table from disk",
		Interval:    interval,
		RunOnStart:  true,
		Func:        task.Run,
	})
}
