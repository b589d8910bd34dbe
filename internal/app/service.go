// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	cache "github.com/okian/rondo/internal/adapters/cache"
	"github.com/okian/rondo/internal/adapters/diag"
	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/plan"
	"github.com/okian/rondo/internal/domain/refine"
	"github.com/okian/rondo/internal/domain/types"
	"github.com/okian/rondo/internal/engine"
	"github.com/okian/rondo/pkg/logger"
	"github.com/okian/rondo/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrBusy       = errors.New("solver at capacity")
	ErrTimeout    = errors.New("solve timed out")
)

// SolveOptions carries per-request knobs. Nil fields take the service
// defaults.
type SolveOptions struct {
	Seed      *int64
	TimeoutMS *int
}

// Service implements the API dependencies for the balancer system.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine   *engine.Engine
	results  cache.Cache
	sink     diag.Sink
	fileSink *diag.FileSink

	// Configuration
	refineMaxIterations int
	defaultSeed         int64
	defaultTimeout      time.Duration
	maxTimeout          time.Duration
	maxRosterSize       int
	maxConcurrentSolves int
	cacheSize           int
	diagPath            string

	// State
	started     bool
	startedAt   time.Time
	gate        chan struct{}
	solves      atomic.Int64
	failures    atomic.Int64
	cacheHits   atomic.Int64
	validations atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRefineMaxIterations caps the swap-refinement loop per candidate.
func WithRefineMaxIterations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.refineMaxIterations = n
		}
	}
}

// WithDefaultSeed sets the seed used when a request names none.
func WithDefaultSeed(seed int64) Option {
	return func(s *Service) {
		s.defaultSeed = seed
	}
}

// WithTimeouts sets the default and maximum solve timeouts.
func WithTimeouts(def, max time.Duration) Option {
	return func(s *Service) {
		if def > 0 && max >= def {
			s.defaultTimeout = def
			s.maxTimeout = max
		}
	}
}

// WithMaxRosterSize rejects oversized rosters before parsing.
func WithMaxRosterSize(n int) Option {
	return func(s *Service) {
		if n >= plan.MinPlayers {
			s.maxRosterSize = n
		}
	}
}

// WithMaxConcurrentSolves bounds balancing runs in flight.
func WithMaxConcurrentSolves(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrentSolves = n
		}
	}
}

// WithCacheSize bounds the result cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.cacheSize = n
		}
	}
}

// WithDiagPath appends per-stage diagnostics to a JSONL file.
func WithDiagPath(path string) Option {
	return func(s *Service) {
		s.diagPath = path
	}
}

// WithSink installs a diagnostics sink directly, taking precedence
// over WithDiagPath. Intended for tests and embedding.
func WithSink(sink diag.Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
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

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		refineMaxIterations: refine.DefaultMaxIterations,
		defaultSeed:         42,
		defaultTimeout:      10 * time.Second,
		maxTimeout:          30 * time.Second,
		maxRosterSize:       200,
		maxConcurrentSolves: 8,
		cacheSize:           256,
		logger:              nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting balancer service...")

	if s.sink == nil {
		if s.diagPath != "" {
			fs, err := diag.NewFile(s.diagPath)
			if err != nil {
				return fmt.Errorf("open diagnostics sink: %w", err)
			}
			s.fileSink = fs
			s.sink = fs
		} else {
			s.sink = diag.Nop()
		}
	}

	s.engine = engine.New(
		engine.WithRefiner(refine.New(refine.WithMaxIterations(s.refineMaxIterations))),
		engine.WithSink(s.sink),
		engine.WithLogger(s.logger.Named("engine")),
	)
	s.results = cache.New(cache.WithCapacity(s.cacheSize))
	s.gate = make(chan struct{}, s.maxConcurrentSolves)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "balancer service started",
		logger.Int("refineMaxIterations", s.refineMaxIterations),
		logger.Int("maxConcurrentSolves", s.maxConcurrentSolves),
		logger.Int("cacheSize", s.cacheSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping balancer service...")

	if s.fileSink != nil {
		_ = s.fileSink.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "balancer service stopped")
}

// Solve parses a submitted roster and runs the balancing engine.
//
// Malformed rosters and engine rejections come back as unsuccessful
// SolveResults with a nil error. An error is returned only for
// service-level conditions: not started, at capacity, timed out, or
// the request context ending first.
func (s *Service) Solve(ctx context.Context, records []model.PlayerRecord, opts SolveOptions) (model.SolveResult, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return model.SolveResult{}, ErrNotStarted
	}

	if len(records) > s.maxRosterSize {
		s.failures.Add(1)
		metrics.RecordSolveFailure("roster_too_large")
		msg := fmt.Sprintf("Too many players (%d). Max %d.", len(records), s.maxRosterSize)
		return model.Failure(msg, 0), nil
	}

	players, err := model.ParsePlayers(records)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordSolveFailure("invalid_roster")
		return model.Failure(fmt.Sprintf("Invalid roster: %v", err), 0), nil
	}

	seed := s.defaultSeed
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	timeout := s.clampTimeout(opts.TimeoutMS)

	key := cache.Fingerprint(players, seed)
	if cached, ok := s.results.Get(ctx, key); ok {
		s.cacheHits.Add(1)
		metrics.RecordCacheHit()
		s.logger.Debug(ctx, "solve served from cache", logger.Int("players", len(players)))
		return cached, nil
	}
	metrics.RecordCacheMiss()

	select {
	case s.gate <- struct{}{}:
	default:
		s.failures.Add(1)
		metrics.RecordSolveFailure("at_capacity")
		return model.SolveResult{}, ErrBusy
	}

	metrics.IncActiveSolves()
	done := make(chan model.SolveResult, 1)
	go func() {
		defer func() {
			<-s.gate
			metrics.DecActiveSolves()
		}()
		done <- s.engine.Solve(ctx, players, engine.Options{Seed: seed})
	}()

	select {
	case res := <-done:
		if res.Success {
			s.solves.Add(1)
			metrics.RecordSolveSuccess(res.SolveTimeMS)
			s.results.Put(ctx, key, res)
		} else {
			s.failures.Add(1)
			metrics.RecordSolveFailure("unsolvable")
		}
		return res, nil
	case <-time.After(timeout):
		s.failures.Add(1)
		metrics.RecordSolveFailure("timeout")
		s.logger.Warn(ctx, "solve timed out",
			logger.Duration("timeout", timeout),
			logger.Int("players", len(players)),
		)
		return model.SolveResult{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case <-ctx.Done():
		s.failures.Add(1)
		metrics.RecordSolveFailure("canceled")
		return model.SolveResult{}, ctx.Err()
	}
}

// Validate checks a submitted roster without solving. Unlike Solve,
// which absorbs what it can, validation reports every absent or
// out-of-range field so clients can fix their data up front.
func (s *Service) Validate(ctx context.Context, records []model.RawRecord) model.ValidationReport {
	s.mu.RLock()
	log := s.logger
	s.mu.RUnlock()
	if log == nil {
		// Validation has no started precondition, so the lazy logger
		// from Start may not exist yet.
		log = logger.Get()
	}

	report := model.ValidationReport{
		Errors:      []string{},
		Warnings:    []string{},
		PlayerCount: len(records),
	}

	for i, rec := range records {
		label := fmt.Sprintf("%d", i+1)
		if rec.Name != nil {
			label = *rec.Name
		}

		if rec.PlayerID == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Player %d: Missing 'player_id'", i+1))
		}
		if rec.Name == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Player %d: Missing 'name'", i+1))
		}
		if rec.Age == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Player %d: Missing 'age'", i+1))
		}
		if rec.MainPosition == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Player %d: Missing 'main_position'", i+1))
		}

		rating := model.DefaultRating
		if rec.Rating != nil {
			rating = *rec.Rating
		}
		if rating < model.MinRating || rating > model.MaxRating {
			report.Errors = append(report.Errors, fmt.Sprintf("Player '%s': Rating must be 1-5", label))
		}

		pos := ""
		if rec.MainPosition != nil {
			pos = *rec.MainPosition
		}
		if _, err := types.ParsePosition(pos); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Player '%s': Invalid position '%s'", label, pos))
		}
	}

	if len(records) < plan.MinPlayers {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Only %d players. Need at least %d.", len(records), plan.MinPlayers))
	}

	keepers := 0
	for _, rec := range records {
		if keeperCapable(rec) {
			keepers++
		}
	}
	teams := 2
	if pl, err := plan.For(len(records)); err == nil {
		teams = pl.TeamCount
	}
	if keepers < teams {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Only %d GK(s) for %d teams", keepers, teams))
	}

	report.Valid = len(report.Errors) == 0
	s.validations.Add(1)
	metrics.RecordValidation(report.Valid)
	log.Debug(ctx, "roster validated",
		logger.Int("players", len(records)),
		logger.Bool("valid", report.Valid),
	)
	return report
}

// keeperCapable reports whether a raw record names GK as main or alt.
func keeperCapable(rec model.RawRecord) bool {
	for _, p := range []*string{rec.MainPosition, rec.AltPosition} {
		if p == nil {
			continue
		}
		if parsed, err := types.ParsePosition(*p); err == nil && parsed == types.Goalkeeper {
			return true
		}
	}
	return false
}

// clampTimeout resolves the effective solve timeout for a request.
func (s *Service) clampTimeout(ms *int) time.Duration {
	t := s.defaultTimeout
	if ms != nil && *ms > 0 {
		t = time.Duration(*ms) * time.Millisecond
	}
	if t > s.maxTimeout {
		t = s.maxTimeout
	}
	return t
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":             s.started,
		"maxRosterSize":       s.maxRosterSize,
		"maxConcurrentSolves": s.maxConcurrentSolves,
		"refineMaxIterations": s.refineMaxIterations,
		"solves":              s.solves.Load(),
		"failures":            s.failures.Load(),
		"cacheHits":           s.cacheHits.Load(),
		"validations":         s.validations.Load(),
	}

	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["activeSolves"] = len(s.gate)
		stats["cachedResults"] = s.results.Size()
	}

	return stats
}
