package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/rinkscout/internal/adapters/http/api"
	"github.com/okian/rinkscout/internal/adapters/http/swagger"
	"github.com/okian/rinkscout/internal/adapters/snapshot"
	service "github.com/okian/rinkscout/internal/app"
	"github.com/okian/rinkscout/internal/config"
	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/scoring"
	"github.com/okian/rinkscout/internal/domain/search"
	"github.com/okian/rinkscout/pkg/logger"
)

const statsInterval = 10 * time.Second

// Sentinel errors of the batch runner.
var (
	ErrEmptyRoster = errors.New("team has no players in the snapshot")
	ErrNoTeam      = errors.New("no team to review")
)

// report is the JSON document printed by the batch runner.
type report struct {
	Team          string         `json:"team"`
	Mode          model.Mode     `json:"mode"`
	RankedPlayers int            `json:"ranked_players"`
	Players       []playerReport `json:"players"`
}

type playerReport struct {
	Evaluation model.Evaluation       `json:"evaluation"`
	Candidates []model.CandidateScore `json:"candidates,omitempty"`
	Fallback   bool                   `json:"fallback,omitempty"`
}

// run reviews one team of the configured snapshot and writes the report to out.
func run(ctx context.Context, cfg *config.Config, out io.Writer, log logger.Logger) error {
	snap, err := snapshot.Load(cfg.SnapshotPath)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	table := snap.Table()
	if table == nil {
		log.Info(ctx, "snapshot has no benchmarks; building from league", logger.Int("players", len(snap.Players)))
		if table, err = svc.BuildBenchmarks(ctx, snap.Players); err != nil {
			return fmt.Errorf("build benchmarks: %w", err)
		}
	}

	rep, err := review(ctx, svc, cfg, snap.Players, table)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !cfg.ServeOps {
		return nil
	}
	go reportStats(ctx, svc)
	return api.Serve(ctx, cfg.Addr, opsHandler(svc), log)
}

// newService maps the config onto service options.
func newService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	ref, err := cfg.Reference()
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithLogger(log.Named("service")),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithEvaluatorOptions(
			scoring.WithMinTOIForConfidence(cfg.MinTOIForConfidence),
			scoring.WithPriorWeights(cfg.MetricPriorWeights()),
			scoring.WithReferenceDate(ref),
		),
		service.WithSearchOptions(
			search.WithWinNowBand(search.Band{Lower: cfg.WinNowLower, Upper: cfg.WinNowUpper, Cushion: cfg.WinNowCushion}),
			search.WithRebuildBand(search.Band{Lower: cfg.RebuildLower, Upper: cfg.RebuildUpper}),
			search.WithTopTierLeagues(cfg.TopTierLeagues...),
			search.WithDevelopmentLeagues(cfg.DevelopmentLeagues...),
			search.WithMaxCandidates(cfg.MaxCandidates),
			search.WithMaxProspects(cfg.MaxProspects),
		),
		service.WithBuilderOptions(
			benchmark.WithMinTOI(cfg.BenchmarkMinTOI),
			benchmark.WithMinSamples(cfg.BenchmarkMinSamples),
		),
	), nil
}

// review ranks the league, evaluates the team's roster and searches
// replacements for every replace verdict.
func review(ctx context.Context, svc *service.Service, cfg *config.Config, league []model.PlayerProfile, t *benchmark.Table) (*report, error) {
	ranked, err := svc.RankLeague(ctx, league, t)
	if err != nil {
		return nil, fmt.Errorf("rank league: %w", err)
	}

	team := cfg.Team
	if team == "" {
		team = firstTeam(league, cfg.TopTierLeagues)
	}
	if team == "" {
		return nil, ErrNoTeam
	}
	var roster []model.PlayerProfile
	for i := range league {
		if league[i].TeamID == team {
			roster = append(roster, league[i])
		}
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyRoster, team)
	}

	evals, err := svc.EvaluateRoster(ctx, roster, t)
	if err != nil {
		return nil, fmt.Errorf("evaluate roster %s: %w", team, err)
	}

	byID := make(map[string]*model.PlayerProfile, len(roster))
	for i := range roster {
		if _, ok := byID[roster[i].ID]; !ok {
			byID[roster[i].ID] = &roster[i]
		}
	}

	mode := cfg.SearchMode()
	rep := &report{Team: team, Mode: mode, RankedPlayers: ranked, Players: make([]playerReport, len(evals))}
	for i, ev := range evals {
		rep.Players[i].Evaluation = ev
		if ev.Action != model.ActionReplace {
			continue
		}
		cands, err := svc.FindReplacementCandidates(ctx, byID[ev.PlayerID], ev.Role(), mode, t, league)
		if err != nil {
			return nil, fmt.Errorf("search replacements for %s: %w", ev.PlayerID, err)
		}
		rep.Players[i].Candidates = cands
		rep.Players[i].Fallback = len(cands) > 0 && cands[0].Source == model.SourceDevelopment
	}
	return rep, nil
}

// firstTeam returns the team of the first player in a top-tier league.
func firstTeam(league []model.PlayerProfile, topTier []string) string {
	for i := range league {
		for _, l := range topTier {
			if league[i].League == l && league[i].TeamID != "" {
				return league[i].TeamID
			}
		}
	}
	return ""
}

// opsHandler registers the ops API and its OpenAPI description.
func opsHandler(svc *service.Service) http.Handler {
	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)
	swagger.Register(mux)
	return mux
}

// reportStats refreshes the service gauges while the ops server runs.
func reportStats(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
