package service

import (
	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/scoring"
	"github.com/okian/rinkscout/internal/domain/search"
	"github.com/okian/rinkscout/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of evaluation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the evaluation job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize caps the number of player IDs remembered per roster batch.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEvaluatorOptions configures the player evaluator.
func WithEvaluatorOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.evaluatorOpts = append(s.evaluatorOpts, opts...)
	}
}

// WithSearchOptions configures the replacement searcher.
func WithSearchOptions(opts ...search.Option) Option {
	return func(s *Service) {
		s.searchOpts = append(s.searchOpts, opts...)
	}
}

// WithBuilderOptions configures the benchmark builder.
func WithBuilderOptions(opts ...benchmark.BuilderOption) Option {
	return func(s *Service) {
		s.builderOpts = append(s.builderOpts, opts...)
	}
}
