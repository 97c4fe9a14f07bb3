// Command recgo builds user-user collaborative-filtering recommendations.
//
// Usage:
//
//	recgo encode    [flags]   ratings -> LIBSVM + index maps
//	recgo recommend [flags]   LIBSVM + index maps + catalog -> suggestions
//	recgo run       [flags]   ratings + catalog -> suggestions
//
// Configuration comes from recgo.yaml and RECGO_* environment variables; see
// package config. Flags override both.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/recgo/config"
)

const usage = `Usage: recgo <command> [flags]

Commands:
  encode     map raw ratings to indices and write LIBSVM plus index maps
  recommend  read LIBSVM artifacts and write recommendations
  run        encode and recommend in one pass without artifacts

Run 'recgo <command> -h' for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type command func(*app, context.Context) error

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmd command
	switch args[0] {
	case "encode":
		cmd = (*app).encode
	case "recommend":
		cmd = (*app).recommend
	case "run":
		cmd = (*app).run
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	fs := flag.NewFlagSet("recgo "+args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "config file (default $RECGO_CONFIG or ./recgo.yaml)")
		neighbors  = fs.Int("k", 0, "neighborhood size (0 keeps config)")
		topN       = fs.Int("n", 0, "suggestions per user (0 keeps config)")
		workers    = fs.Int("workers", -1, "concurrent users, 0 = one per CPU (-1 keeps config)")
		out        = fs.String("out", "", "output path (empty keeps config)")
		logLevel   = fs.String("log-level", "", "debug, info, warn or error (empty keeps config)")
	)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *neighbors > 0 {
		cfg.Recommend.Neighbors = *neighbors
	}
	if *topN > 0 {
		cfg.Recommend.TopN = *topN
	}
	if *workers >= 0 {
		cfg.Recommend.Workers = *workers
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	a, err := newApp(ctx, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	err = cmd(a, ctx)
	if ferr := a.finish(ctx); err == nil {
		err = ferr
	}
	if err != nil {
		a.logger.ErrorContext(ctx, "command failed", "command", args[0], "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
