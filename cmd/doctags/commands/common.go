package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// DefaultConfigFile is used when --config is not given.
const DefaultConfigFile = "doctags.yml"

// Global carries state shared by all subcommands.
type Global struct {
	Logger  *slog.Logger
	Out     io.Writer       // User-facing output, stdout when nil
	Context context.Context // Parent context; SIGINT/SIGTERM cancel it
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"doctags.yml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate tag pages for the configured categories"`
	Watch    WatchCmd    `cmd:"" help:"Generate tag pages and regenerate them whenever documents change"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// signalContext derives a context cancelled on SIGINT or SIGTERM.
func (g *Global) signalContext() (context.Context, context.CancelFunc) {
	parent := context.Background()
	if g != nil && g.Context != nil {
		parent = g.Context
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
