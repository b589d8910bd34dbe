// Package diag is the pluggable sink for solve diagnostics. The solver
// core stays pure; the engine pushes entries through this seam and the
// wiring decides whether they go to a file, to memory, or nowhere.
package diag

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/okian/rondo/pkg/logger"
	"github.com/okian/rondo/pkg/metrics"
)

// Stage names emitted by the engine.
const (
	StagePlan   = "plan"
	StageSplit  = "split"
	StageBuild  = "build"
	StageSelect = "select"
	StageResult = "result"
)

// Entry is one diagnostic event from a solve.
type Entry struct {
	Time       time.Time `json:"time"`
	SolveID    string    `json:"solve_id"`
	Stage      string    `json:"stage"`
	Strategy   string    `json:"strategy,omitempty"`
	Score      float64   `json:"score,omitempty"`
	SkillGap   float64   `json:"skill_gap,omitempty"`
	Iterations int       `json:"iterations,omitempty"`
	RosterSize int       `json:"roster_size,omitempty"`
	Err        string    `json:"error,omitempty"`
	Note       string    `json:"note,omitempty"`
}

// Sink receives diagnostic entries. Implementations must be safe for
// concurrent use and must never fail a solve; problems are swallowed
// after logging.
type Sink interface {
	Record(ctx context.Context, e Entry)
}

// Nop returns a sink that drops everything.
func Nop() Sink { return nopSink{} }

type nopSink struct{}

func (nopSink) Record(context.Context, Entry) {}

// FileSink appends entries as JSON lines to a local file.
type FileSink struct {
	mu  sync.Mutex
	f   *os.File
	log logger.Logger
}

// NewFile opens or creates path in append mode.
func NewFile(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{f: f, log: logger.Named("diag")}, nil
}

// Record implements Sink. Write errors are logged, never propagated.
func (s *FileSink) Record(ctx context.Context, e Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	line, err := json.Marshal(e)
	if err != nil {
		metrics.RecordErrorByComponent("diag", "marshal_failed")
		s.log.Warn(ctx, "diag entry not serializable", logger.Error(err))
		return
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(line); err != nil {
		metrics.RecordErrorByComponent("diag", "write_failed")
		s.log.Warn(ctx, "diag write failed", logger.Error(err))
	}
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// MemorySink collects entries in order, for tests and inspection.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory returns an empty MemorySink.
func NewMemory() *MemorySink { return &MemorySink{} }

// Record implements Sink.
func (m *MemorySink) Record(_ context.Context, e Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

// Entries returns a copy of everything recorded so far.
func (m *MemorySink) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Reset drops recorded entries.
func (m *MemorySink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}
