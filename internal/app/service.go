// Package service wires the evaluation engine to its queue, worker pool and
// ranking store, and exposes the operations the batch runner and ops API use.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/rinkscout/internal/adapters/mq/queue"
	workerpool "github.com/okian/rinkscout/internal/adapters/mq/worker"
	repository "github.com/okian/rinkscout/internal/adapters/repository"
	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/dedupe"
	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/scoring"
	"github.com/okian/rinkscout/internal/domain/search"
	"github.com/okian/rinkscout/internal/domain/types"
	"github.com/okian/rinkscout/pkg/logger"
	"github.com/okian/rinkscout/pkg/metrics"
)

// Service is the engine facade.
type Service struct {
	mu sync.RWMutex

	// Core components
	evaluator  *scoring.Evaluator
	searcher   *search.Searcher
	builder    *benchmark.Builder
	ranking    repository.Store
	jobQueue   *jobqueue.InMemoryQueue
	workerPool *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	evaluatorOpts []scoring.Option
	searchOpts    []search.Option
	builderOpts   []benchmark.BuilderOption

	// State
	started bool
	cancel  context.CancelFunc

	// Counters
	rosterBatches atomic.Int64
	evaluated     atomic.Int64
	searches      atomic.Int64

	logger logger.Logger
}

// New constructs a Service. The evaluator, searcher, builder and ranking are
// usable right away; EvaluateRoster and RankLeague need Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   4096,
		dedupeSize:  dedupe.DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.evaluator = scoring.NewEvaluator(s.evaluatorOpts...)
	s.searcher = search.New(s.evaluator, s.searchOpts...)
	s.builder = benchmark.NewBuilder(s.builderOpts...)
	s.ranking = repository.NewTreapStore()
	return s
}

// Start launches the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.evaluator)
	s.workerPool.Start(runCtx)
	s.started = true

	s.logger.Info(ctx, "evaluation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("dedupe_size", s.dedupeSize),
	)
	return nil
}

// Stop drains the queue and stops the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping evaluation service")

	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.cancel()
	s.started = false
	s.logger.Info(ctx, "evaluation service stopped")
}

// Evaluator returns the evaluator shared by every operation.
func (s *Service) Evaluator() *scoring.Evaluator { return s.evaluator }

// ClassifyRole assigns the role of p.
func (s *Service) ClassifyRole(_ context.Context, p *model.PlayerProfile) (model.Classification, error) {
	return s.evaluator.Classify(p)
}

// EvaluatePlayer evaluates one player. A role missing from t degrades to
// neutral scores instead of failing.
func (s *Service) EvaluatePlayer(ctx context.Context, p *model.PlayerProfile, t *benchmark.Table) (model.Evaluation, error) {
	start := time.Now()
	ev, err := s.evaluator.Evaluate(ctx, p, t)
	if err != nil {
		metrics.RecordErrorByComponent("service", "evaluate")
		return model.Evaluation{}, err
	}
	s.evaluated.Add(1)
	metrics.RecordEvaluation(ev.Role().String(), string(ev.Action), msSince(start))
	return ev, nil
}

// EvaluateRoster evaluates a roster against t. It fails before any work starts
// when a player has no identifiable position or t lacks a player's role.
// Repeated records of a player ID are evaluated once; the result holds one
// evaluation per distinct player in input order.
func (s *Service) EvaluateRoster(ctx context.Context, players []model.PlayerProfile, t *benchmark.Table) ([]model.Evaluation, error) {
	if t == nil {
		return nil, benchmark.ErrNilTable
	}
	batchID := uuid.NewString()
	log := s.logger.Named("roster")

	unique, dropped := dedupe.Unique(ctx, dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize)), players)
	for i := range unique {
		class, err := s.evaluator.Classify(&unique[i])
		if err != nil {
			return nil, fmt.Errorf("roster %s: player %s: %w", batchID, unique[i].ID, err)
		}
		if err := t.Require(class.Role); err != nil {
			return nil, fmt.Errorf("roster %s: player %s: %w", batchID, unique[i].ID, err)
		}
	}

	s.rosterBatches.Add(1)
	metrics.RecordRosterBatch(len(players), len(dropped))
	log.Info(ctx, "roster batch started",
		logger.String("batch_id", batchID),
		logger.Int("players", len(unique)),
		logger.Int("duplicates", len(dropped)),
	)

	start := time.Now()
	out, err := s.fanOut(ctx, batchID, unique, t)
	if err != nil {
		log.Error(ctx, "roster batch failed", logger.String("batch_id", batchID), logger.Error(err))
		return nil, err
	}
	log.Info(ctx, "roster batch finished",
		logger.String("batch_id", batchID),
		logger.Duration("took", time.Since(start)),
	)
	return out, nil
}

// fanOut evaluates players on the worker pool and returns results in input order.
func (s *Service) fanOut(ctx context.Context, batchID string, players []model.PlayerProfile, t *benchmark.Table) ([]model.Evaluation, error) {
	s.mu.RLock()
	started, q := s.started, s.jobQueue
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	out := make([]model.Evaluation, len(players))
	reply := make(chan jobqueue.Result, len(players))
	pending := 0
	for i := range players {
		job := jobqueue.Job{BatchID: batchID, Index: i, Player: &players[i], Table: t, Reply: reply}
		if q.Enqueue(ctx, job) {
			pending++
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Queue full: evaluate in the caller rather than drop the player.
		ev, err := s.evaluator.Evaluate(ctx, &players[i], t)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", players[i].ID, err)
		}
		metrics.RecordEvaluation(ev.Role().String(), string(ev.Action), 0)
		out[i] = ev
	}

	for ; pending > 0; pending-- {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-reply:
			if res.Err != nil {
				return nil, res.Err
			}
			out[res.Index] = res.Evaluation
		}
	}
	s.evaluated.Add(int64(len(players)))
	return out, nil
}

// FindReplacementCandidates ranks replacements for weak playing role r.
func (s *Service) FindReplacementCandidates(ctx context.Context, weak *model.PlayerProfile, r model.Role,
	mode model.Mode, t *benchmark.Table, pool []model.PlayerProfile,
) ([]model.CandidateScore, error) {
	s.searches.Add(1)
	res, err := s.searcher.Find(ctx, weak, r, mode, t, pool)
	if err != nil {
		metrics.RecordSearch(string(mode), "error", 0, false)
		metrics.RecordErrorByComponent("search", searchErrorType(err))
		return nil, err
	}

	outcome := "found"
	switch {
	case res.Fallback:
		outcome = "fallback"
	case len(res.Candidates) == 0:
		outcome = "empty"
	}
	metrics.RecordSearch(string(mode), outcome, len(res.Candidates), res.Fallback)
	s.logger.Debug(ctx, "replacement search",
		logger.String("player_id", weak.ID),
		logger.String("role", r.String()),
		logger.String("mode", string(mode)),
		logger.Int("considered", res.Considered),
		logger.Int("returned", len(res.Candidates)),
		logger.Bool("fallback", res.Fallback),
	)
	return res.Candidates, nil
}

func searchErrorType(err error) string {
	switch {
	case errors.Is(err, model.ErrUnknownMode):
		return "unknown_mode"
	case errors.Is(err, model.ErrUnknownPosition):
		return "unknown_position"
	case errors.Is(err, benchmark.ErrNilTable):
		return "nil_table"
	default:
		return "other"
	}
}

// BuildBenchmarks derives a benchmark table from a league.
func (s *Service) BuildBenchmarks(ctx context.Context, league []model.PlayerProfile) (*benchmark.Table, error) {
	start := time.Now()
	t, err := s.builder.Build(ctx, league)
	if err != nil {
		metrics.RecordBenchmarkBuild("error", 0, msSince(start))
		return nil, err
	}
	roles := len(t.Roles())
	metrics.RecordBenchmarkBuild("ok", roles, msSince(start))
	s.logger.Info(ctx, "benchmarks built",
		logger.Int("players", len(league)),
		logger.Int("roles", roles),
		logger.Duration("took", time.Since(start)),
	)
	return t, nil
}

// RankLeague evaluates every rankable player and replaces the league ranking
// once all evaluations finish. Players without an identifiable position or
// whose role t lacks are left out. It returns the number of ranked players.
func (s *Service) RankLeague(ctx context.Context, players []model.PlayerProfile, t *benchmark.Table) (int, error) {
	if t == nil {
		return 0, benchmark.ErrNilTable
	}
	batchID := uuid.NewString()

	unique, _ := dedupe.Unique(ctx, dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0)), players)
	rankable := make([]model.PlayerProfile, 0, len(unique))
	for i := range unique {
		class, err := s.evaluator.Classify(&unique[i])
		if err != nil || !t.HasRole(class.Role) || unique[i].ID == "" {
			continue
		}
		rankable = append(rankable, unique[i])
	}

	evals, err := s.fanOut(ctx, batchID, rankable, t)
	if err != nil {
		return 0, err
	}
	entries := make([]types.Entry, len(evals))
	for i := range evals {
		entries[i] = types.EntryFromEvaluation(&evals[i])
	}
	if err := s.ranking.Replace(ctx, entries); err != nil {
		return 0, fmt.Errorf("store ranking: %w", err)
	}
	s.logger.Info(ctx, "league ranked",
		logger.String("batch_id", batchID),
		logger.Int("ranked", len(entries)),
		logger.Int("skipped", len(players)-len(entries)),
	)
	return len(entries), nil
}

// TopN returns the best n ranked players.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	return s.ranking.TopN(ctx, n)
}

// Rank returns the ranking entry of a player.
func (s *Service) Rank(ctx context.Context, playerID string) (types.Entry, error) {
	return s.ranking.Rank(ctx, playerID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"rosterBatches": s.rosterBatches.Load(),
		"evaluated":     s.evaluated.Load(),
		"searches":      s.searches.Load(),
		"rankedPlayers": s.ranking.Count(ctx),
	}
	if s.started {
		stats["queueLength"] = s.jobQueue.Len(ctx)
	}
	metrics.UpdateSystemMetrics()
	return stats
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
