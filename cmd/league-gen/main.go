package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/rinkscout/internal/leaguegen"
	"github.com/okian/rinkscout/pkg/logger"
)

func main() {
	var (
		seed      = flag.Uint64("seed", leaguegen.DefaultSeed, "Seed of the generated league")
		teams     = flag.Int("teams", leaguegen.DefaultTeams, "Number of top-tier teams")
		prospects = flag.Int("prospects", leaguegen.DefaultProspectsPerTeam, "Development players per team")
		season    = flag.String("season", "2024-25", "Season label written to the snapshot")
		output    = flag.String("output", "league.json", "Snapshot file to write")
		withBench = flag.Bool("benchmarks", false, "Build benchmarks and store them in the snapshot")
		verbose   = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := options{
		Seed:       *seed,
		Teams:      *teams,
		Prospects:  *prospects,
		Season:     *season,
		Output:     *output,
		Benchmarks: *withBench,
	}
	if err := generate(ctx, opts, logger.Get()); err != nil {
		logger.Get().Error(ctx, "league generation failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
