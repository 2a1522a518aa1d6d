package main

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/rinkscout/internal/adapters/snapshot"
	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/leaguegen"
	"github.com/okian/rinkscout/pkg/logger"
)

// options holds the command-line configuration.
type options struct {
	Seed       uint64
	Teams      int
	Prospects  int
	Season     string
	Output     string
	Benchmarks bool
}

// generate writes a synthetic league snapshot to opts.Output.
func generate(ctx context.Context, opts options, log logger.Logger) error {
	start := time.Now()
	gen := leaguegen.New(
		leaguegen.WithSeed(opts.Seed),
		leaguegen.WithTeams(opts.Teams),
		leaguegen.WithProspectsPerTeam(opts.Prospects),
	)
	players, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate league: %w", err)
	}

	file := &snapshot.File{Season: opts.Season, Players: players}
	if opts.Benchmarks {
		table, err := benchmark.NewBuilder().Build(ctx, players)
		if err != nil {
			return fmt.Errorf("build benchmarks: %w", err)
		}
		file.Benchmarks = snapshot.FromTable(table)
	}

	if err := snapshot.Save(opts.Output, file); err != nil {
		return err
	}
	log.Info(ctx, "league snapshot written",
		logger.String("output", opts.Output),
		logger.Int("players", len(players)),
		logger.Bool("benchmarks", opts.Benchmarks),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}
