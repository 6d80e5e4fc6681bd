package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/lox/sisepai/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Verbose bool   `short:"v" env:"SISEPAI_VERBOSE" help:"Enable debug logging (turn-by-turn narrative)"`
	Config  string `short:"c" type:"path" default:"sisepai.hcl" env:"SISEPAI_CONFIG" help:"Simulation config file (HCL); defaults apply when it does not exist"`

	Out io.Writer `kong:"-"`
	Err io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"V" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a single game and show how it ended"`
	Simulate SimulateCmd      `cmd:"" help:"Run a batch of seeded games and report statistics"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a hand given in colour-suit notation"`
}

func main() {
	// Variables from .env feed the env tags above; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "sisepai: loading .env: %v\n", err)
		os.Exit(1)
	}

	cli := CLI{Globals: Globals{Out: os.Stdout}}
	ctx := kong.Parse(&cli,
		kong.Name("sisepai"),
		kong.Description("Simulator for the Sisepai card game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	return cfg, nil
}

// logger writes to stderr at level, or at debug level with --verbose.
func (g *Globals) logger(level log.Level) *log.Logger {
	if g.Verbose {
		level = log.DebugLevel
	}
	w := g.Err
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

func (g *Globals) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
