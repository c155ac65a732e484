package commands

import (
	"context"
	"os"
	"time"

	"git.home.luguber.info/inful/doctags/internal/build"
	"git.home.luguber.info/inful/doctags/internal/logfields"
	"git.home.luguber.info/inful/doctags/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags `embed:""`
	Debounce   time.Duration `name:"debounce" default:"300ms" help:"Quiet period before a rebuild starts"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	ctx, cancel := global.signalContext()
	defer cancel()

	logger := global.logger()
	cfg, err := loadConfig(root.Config, w.BuildFlags, logger)
	if err != nil {
		return err
	}
	settings, err := build.Resolve(cfg)
	if err != nil {
		return err
	}

	rebuild := func(ctx context.Context) error {
		cfg, err := loadConfig(root.Config, w.BuildFlags, logger)
		if err != nil {
			return err
		}
		_, err = runBuild(ctx, cfg, w.BuildFlags, logger, global.out())
		return err
	}
	if err := rebuild(ctx); err != nil {
		logger.Warn("Initial build failed; waiting for changes", logfields.Error(err))
	}

	opts := []watch.Option{
		watch.WithDirs(settings.DocsDir),
		watch.WithIgnore(settings.Folder),
		watch.WithFile(settings.Template),
		watch.WithDebounce(w.Debounce),
		watch.WithLogger(logger),
	}
	if _, err := os.Stat(root.Config); err == nil {
		opts = append(opts, watch.WithFile(root.Config))
	}
	return watch.New(rebuild, opts...).Run(ctx)
}
