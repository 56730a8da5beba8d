package main

import (
	"errors"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/logging"
	"github.com/JonMunkholm/resdir/internal/metrics"
	"github.com/JonMunkholm/resdir/internal/web"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. The server listens right away and shows
// the loading placeholder until the background load settles.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	deps.Logger.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"source", cfg.Source.Location(),
		"exact_category_match", cfg.Query.ExactCategoryMatch,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	m := metrics.New()
	loadLogger := logging.WithFields(deps.Ctx, "source", deps.Loader.Name())
	browser := newBrowser(deps, directory.WithObserver(m), directory.WithLogger(loadLogger))
	sessions := directory.NewSessions(cfg.Session.Capacity, cfg.Session.TTL)
	srv := web.NewServer(cfg, browser, sessions, m)

	g, ctx := errgroup.WithContext(deps.Ctx)

	g.Go(func() error {
		// A failed load is a view state, not a reason to stop serving.
		if err := browser.Load(ctx, deps.Loader); err != nil && !errors.Is(err, directory.ErrAlreadyLoaded) {
			deps.Logger.Warn("serving without data", "code", directory.MapError(err).Code)
		}
		return nil
	})

	g.Go(func() error {
		return srv.Run(ctx)
	})

	return g.Wait()
}
