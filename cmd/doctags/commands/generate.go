package commands

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	BuildFlags `embed:""`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	ctx, cancel := global.signalContext()
	defer cancel()

	logger := global.logger()
	cfg, err := loadConfig(root.Config, g.BuildFlags, logger)
	if err != nil {
		return err
	}
	_, err = runBuild(ctx, cfg, g.BuildFlags, logger, global.out())
	return err
}
