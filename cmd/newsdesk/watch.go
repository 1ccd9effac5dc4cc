package main

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/newsdesk"
	"github.com/robfig/cron/v3"
)

// Run executes the watch command. It ingests once at start, then on every
// schedule tick until the context is canceled. A tick still running when
// the next one fires causes that next tick to be skipped.
func (c *WatchCmd) Run(deps *Dependencies) error {
	categories := categoriesOrAll(c.Categories, deps.Config)
	if len(categories) == 0 {
		err := newsdesk.Errorf(newsdesk.EINVALID, "no categories configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clog := cronLogger{logger}

	scheduler := cron.New(cron.WithLogger(clog), cron.WithChain(cron.SkipIfStillRunning(clog)))
	tick := func() { c.tick(deps, logger, categories) }
	if _, err := scheduler.AddFunc(c.Schedule, tick); err != nil {
		err = newsdesk.Errorf(newsdesk.EINVALID, "invalid schedule %q: %v", c.Schedule, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}

	tick()
	scheduler.Start()
	fmt.Fprintf(deps.Stdout, "Watching %d categories on %q. Press Ctrl+C to stop.\n", len(categories), c.Schedule)

	<-deps.Ctx.Done()
	<-scheduler.Stop().Done()
	return nil
}

func (c *WatchCmd) tick(deps *Dependencies, logger *slog.Logger, categories []string) {
	var articles, inserted int
	for _, category := range categories {
		if deps.Ctx.Err() != nil {
			return
		}
		batch, err := deps.Processor.ProcessCategory(deps.Ctx, category)
		if err != nil {
			logger.Error("watch tick", "category", category, "err", err)
			continue
		}
		articles += len(batch.Articles)
		inserted += batch.Inserted
	}
	logger.Info("watch tick", "categories", len(categories), "articles", articles, "inserted", inserted)
}

// cronLogger adapts *slog.Logger to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}
