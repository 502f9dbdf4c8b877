// Package scheduler assembles a snapshot on a fixed interval, hands it to
// a sink and journals the outcome of every run.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/go-tangra/go-tangra-sysinfo/internal/journal"
	"github.com/go-tangra/go-tangra-sysinfo/internal/snapshot"
)

// Assembler produces snapshots. *snapshot.Coordinator implements it.
type Assembler interface {
	Assemble(ctx context.Context, policy snapshot.Policy) (*snapshot.Snapshot, error)
}

// Journal persists run outcomes. *journal.Journal implements it.
type Journal interface {
	Record(ctx context.Context, run *journal.Run) error
	Purge(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Sink receives every assembled snapshot. A sink error is logged and
// journaled; it does not stop the scheduler.
type Sink func(ctx context.Context, snap *snapshot.Snapshot) error

// Config holds scheduler settings.
type Config struct {
	Interval      time.Duration
	Policy        snapshot.Policy
	Retention     time.Duration
	PurgeInterval time.Duration
}

// Status summarizes the runs so far.
type Status struct {
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
	Runs      uint64    `json:"runs"`
	Failures  uint64    `json:"failures"`
}

// Scheduler runs the assembly loop.
type Scheduler struct {
	asm     Assembler
	cfg     Config
	sink    Sink
	journal Journal
	log     zerolog.Logger

	mu     sync.RWMutex
	status Status
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSink sets the snapshot consumer.
func WithSink(sink Sink) Option {
	return func(s *Scheduler) { s.sink = sink }
}

// WithJournal enables run journaling and retention purging.
func WithJournal(j Journal) Option {
	return func(s *Scheduler) { s.journal = j }
}

// WithLogger sets the scheduler logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// New returns a Scheduler driving asm.
func New(asm Assembler, cfg Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		asm: asm,
		cfg: cfg,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run assembles a snapshot immediately and then on every interval tick
// until ctx ends. Ticks that fire while a run is in progress are dropped.
// Run returns nil on cancellation and snapshot.ErrUnsupportedPlatform when
// the host cannot be inventoried.
func (s *Scheduler) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.journal != nil && s.cfg.Retention > 0 && s.cfg.PurgeInterval > 0 {
		g.Go(func() error {
			s.purgeLoop(gctx)
			return nil
		})
	}

	g.Go(func() error {
		return s.collectLoop(gctx)
	})

	return g.Wait()
}

func (s *Scheduler) collectLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.log.Info().
		Dur("interval", s.cfg.Interval).
		Strs("categories", categoryNames(s.cfg.Policy)).
		Msg("Scheduler started")

	for {
		_, err := s.RunOnce(ctx)
		if errors.Is(err, snapshot.ErrUnsupportedPlatform) {
			return err
		}

		select {
		case <-ctx.Done():
			s.log.Info().Msg("Scheduler shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single assemble, sink and journal cycle.
func (s *Scheduler) RunOnce(ctx context.Context) (*snapshot.Snapshot, error) {
	started := time.Now()
	snap, err := s.asm.Assemble(ctx, s.cfg.Policy)
	if err == nil && s.sink != nil {
		if sinkErr := s.sink(ctx, snap); sinkErr != nil {
			s.log.Error().Err(sinkErr).Msg("Snapshot sink failed")
			err = sinkErr
		}
	}
	elapsed := time.Since(started)

	s.update(started, err)

	switch {
	case err == nil:
		s.log.Info().
			Dur("elapsed", elapsed).
			Int("cpus", len(snap.CPUs)).
			Int("memory_banks", len(snap.MemoryBanks)).
			Int("disk_drives", len(snap.DiskDrives)).
			Int("video_controllers", len(snap.VideoControllers)).
			Msg("Snapshot collected")
	case ctx.Err() != nil:
		// Shutdown interrupted the run; nothing worth journaling.
		return nil, err
	default:
		s.log.Error().Err(err).Msg("Snapshot run failed")
	}

	if s.journal != nil {
		run := newRun(started, elapsed, snap, err)
		if jerr := s.journal.Record(ctx, run); jerr != nil {
			s.log.Warn().Err(jerr).Msg("Could not journal run")
		}
	}

	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Status returns a copy of the current run summary.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) update(started time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.LastRun = started
	s.status.Runs++
	s.status.LastError = ""
	if err != nil {
		s.status.Failures++
		s.status.LastError = err.Error()
	}
}

func (s *Scheduler) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.journal.Purge(ctx, s.cfg.Retention)
			if err != nil {
				s.log.Error().Err(err).Msg("Journal purge failed")
			} else if n > 0 {
				s.log.Info().Int64("purged", n).Dur("retention", s.cfg.Retention).Msg("Purged old journal entries")
			}
		}
	}
}

func newRun(started time.Time, elapsed time.Duration, snap *snapshot.Snapshot, err error) *journal.Run {
	run := &journal.Run{
		StartedAt: started,
		Duration:  elapsed,
	}
	if err != nil {
		run.Error = err.Error()
	}
	if snap != nil {
		run.Hostname = snap.Hostname
		run.Categories = make(map[string]journal.CategoryResult, len(snap.Status))
		for cat, st := range snap.Status {
			run.Categories[string(cat)] = journal.CategoryResult{
				Status:  string(st),
				Records: snap.Records(cat),
			}
		}
	}
	return run
}

func categoryNames(p snapshot.Policy) []string {
	cats := p.EnabledCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}
