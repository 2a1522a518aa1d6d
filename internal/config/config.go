// Package config defines engine configuration and its loading hooks.
//
// Conventions:
//   - New(ctx) builds a Config holding every default.
//   - Load layers a YAML file and environment variables over the defaults.
//   - Validation errors wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/rinkscout/internal/domain/model"
)

// DateLayout is the layout of ReferenceDate.
const DateLayout = "2006-01-02"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr is the ops HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`
	// ServeOps keeps the ops endpoints up after the batch finishes.
	ServeOps bool `koanf:"serve_ops"`

	// QueueSize bounds the in-memory evaluation job queue.
	QueueSize int `koanf:"queue_size"`
	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`
	// DedupeSize caps the roster de-duplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MinTOIForConfidence is the ice time, in minutes, at which confidence saturates.
	MinTOIForConfidence float64 `koanf:"min_toi_for_confidence"`
	// PriorWeights overrides shrinkage weights, keyed by metric name.
	PriorWeights map[string]float64 `koanf:"prior_weights"`
	// ReferenceDate fixes the date ages are computed at (YYYY-MM-DD). Empty means today.
	ReferenceDate string `koanf:"reference_date"`

	// Mode is the default search mode: win-now or rebuild.
	Mode          string  `koanf:"mode"`
	WinNowLower   float64 `koanf:"win_now_lower"`
	WinNowUpper   float64 `koanf:"win_now_upper"`
	WinNowCushion float64 `koanf:"win_now_cushion"`
	RebuildLower  float64 `koanf:"rebuild_lower"`
	RebuildUpper  float64 `koanf:"rebuild_upper"`

	TopTierLeagues     []string `koanf:"top_tier_leagues"`
	DevelopmentLeagues []string `koanf:"development_leagues"`
	MaxCandidates      int      `koanf:"max_candidates"`
	MaxProspects       int      `koanf:"max_prospects"`

	// BenchmarkMinTOI and BenchmarkMinSamples gate which players and roles
	// enter a built benchmark table.
	BenchmarkMinTOI     float64 `koanf:"benchmark_min_toi"`
	BenchmarkMinSamples int     `koanf:"benchmark_min_samples"`

	// SnapshotPath points at the league snapshot JSON.
	SnapshotPath string `koanf:"snapshot_path"`
	// Team is the team whose roster the batch runner evaluates.
	Team string `koanf:"team"`
}

// New creates a Config holding the defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		QueueSize:           4_096,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          50_000,
		MinTOIForConfidence: 300,
		PriorWeights:        map[string]float64{},
		Mode:                string(model.ModeWinNow),
		WinNowLower:         0.5,
		WinNowUpper:         1.3,
		WinNowCushion:       1_000_000,
		RebuildLower:        0.1,
		RebuildUpper:        1.0,
		TopTierLeagues:      []string{"NHL"},
		DevelopmentLeagues:  []string{"AHL"},
		MaxCandidates:       5,
		MaxProspects:        2,
		BenchmarkMinTOI:     100,
		BenchmarkMinSamples: 3,
		SnapshotPath:        "league.json",
	}
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.DedupeSize <= 0:
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	case c.MinTOIForConfidence <= 0:
		return fmt.Errorf("%w: min_toi_for_confidence must be positive", ErrInvalidConfig)
	case c.WinNowLower < 0 || c.WinNowUpper < c.WinNowLower:
		return fmt.Errorf("%w: win-now band [%v, %v]", ErrInvalidConfig, c.WinNowLower, c.WinNowUpper)
	case c.RebuildLower < 0 || c.RebuildUpper < c.RebuildLower:
		return fmt.Errorf("%w: rebuild band [%v, %v]", ErrInvalidConfig, c.RebuildLower, c.RebuildUpper)
	case c.MaxCandidates <= 0 || c.MaxProspects < 0:
		return fmt.Errorf("%w: candidate limits must be positive", ErrInvalidConfig)
	}
	if _, err := model.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: mode %q: %w", ErrInvalidConfig, c.Mode, err)
	}
	for name, w := range c.PriorWeights {
		if !model.Metric(strings.ToLower(name)).Known() {
			return fmt.Errorf("%w: prior_weights: %w: %s", ErrInvalidConfig, ErrUnknownMetric, name)
		}
		if w < 0 {
			return fmt.Errorf("%w: prior weight of %s is negative", ErrInvalidConfig, name)
		}
	}
	if _, err := c.Reference(); err != nil {
		return err
	}
	return nil
}

// MetricPriorWeights returns PriorWeights keyed by metric.
func (c *Config) MetricPriorWeights() map[model.Metric]float64 {
	out := make(map[model.Metric]float64, len(c.PriorWeights))
	for name, w := range c.PriorWeights {
		out[model.Metric(strings.ToLower(name))] = w
	}
	return out
}

// SearchMode returns the parsed default mode.
func (c *Config) SearchMode() model.Mode {
	m, err := model.ParseMode(c.Mode)
	if err != nil {
		return model.ModeWinNow
	}
	return m
}

// Reference parses ReferenceDate; zero time when it is empty.
func (c *Config) Reference() (time.Time, error) {
	if c.ReferenceDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, c.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: reference_date: %w", ErrInvalidConfig, err)
	}
	return t, nil
}
