package snapshot

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

// Coordinator runs the category collectors and merges their results.
// It holds no per-call state and may be shared between goroutines.
type Coordinator struct {
	cpu        collector.Collector[collector.CPUInfo]
	banks      collector.Collector[collector.MemoryBankInfo]
	platform   collector.SingleCollector[collector.PlatformInfo]
	drives     collector.Collector[collector.DiskDriveInfo]
	partitions collector.Collector[collector.DiskPartitionInfo]
	video      collector.Collector[collector.VideoControllerInfo]

	env       collector.Environment
	supported func() bool
	timeout   time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout bounds every Assemble call. Zero means no bound beyond the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// WithLogger sets the coordinator and collector logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// WithPlatformCheck replaces the Windows check run before any query.
func WithPlatformCheck(supported func() bool) Option {
	return func(c *Coordinator) { c.supported = supported }
}

// WithClock sets the source of Snapshot.CollectedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func isWindows() bool { return runtime.GOOS == "windows" }

// NewCoordinator wires the seven category collectors to q and env.
func NewCoordinator(q wmiquery.Querier, env collector.Environment, opts ...Option) *Coordinator {
	c := &Coordinator{
		env:       env,
		supported: isWindows,
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cpu = collector.NewCPUCollector(q, c.log)
	c.banks = collector.NewMemoryBankCollector(q, c.log)
	c.platform = collector.NewPlatformCollector(env, c.log)
	c.drives = collector.NewDiskDriveCollector(q, c.log)
	c.partitions = collector.NewDiskPartitionCollector(q, c.log)
	c.video = collector.NewVideoControllerCollector(q, c.log)
	return c
}

// outcome is written by exactly one worker and read after the barrier.
type outcome struct {
	status   Status
	err      error
	duration time.Duration
}

// Assemble collects every category enabled by policy and merges the results
// into a new Snapshot. A category that fails is logged and left empty.
// Assemble fails only when the platform is unsupported or ctx ends before
// the collectors finish; no partial snapshot is returned in either case.
func (c *Coordinator) Assemble(ctx context.Context, policy Policy) (*Snapshot, error) {
	if !c.supported() {
		assembleTotal.WithLabelValues("unsupported").Inc()
		return nil, ErrUnsupportedPlatform
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		assembleDuration.Observe(time.Since(start).Seconds())
	}()

	outcomes := make(map[collector.Category]*outcome, len(collector.Categories))
	for _, cat := range collector.Categories {
		outcomes[cat] = &outcome{status: StatusDisabled}
	}

	// The bank list and the summary share one Win32_PhysicalMemory query so
	// the summary always totals exactly the banks in the snapshot.
	memBanks := &sharedRows[collector.MemoryBankInfo]{src: c.banks}
	memSummary := collector.NewMemorySummaryCollector(memBanks)

	var (
		g          errgroup.Group
		cpus       []collector.CPUInfo
		banks      []collector.MemoryBankInfo
		memory     *collector.MemorySummary
		platform   *collector.PlatformInfo
		drives     []collector.DiskDriveInfo
		partitions []collector.DiskPartitionInfo
		video      []collector.VideoControllerInfo
	)

	// Workers never return an error to the group, so one failing category
	// cannot cancel its siblings.
	run := func(cat collector.Category, collect func() error) {
		if !policy.Enabled(cat) {
			return
		}
		o := outcomes[cat]
		g.Go(func() error {
			begin := time.Now()
			o.err = collect()
			o.duration = time.Since(begin)
			return nil
		})
	}

	run(collector.CategoryPlatform, func() (err error) {
		platform, err = c.platform.Collect(ctx)
		return err
	})
	run(collector.CategoryMemorySummary, func() (err error) {
		memory, err = memSummary.Collect(ctx)
		return err
	})
	run(collector.CategoryCPU, func() (err error) {
		cpus, err = c.cpu.Collect(ctx)
		return err
	})
	run(collector.CategoryMemoryBanks, func() (err error) {
		banks, err = memBanks.Collect(ctx)
		return err
	})
	run(collector.CategoryDiskDrives, func() (err error) {
		drives, err = c.drives.Collect(ctx)
		return err
	})
	run(collector.CategoryDiskPartitions, func() (err error) {
		partitions, err = c.partitions.Collect(ctx)
		return err
	})
	run(collector.CategoryVideoControllers, func() (err error) {
		video, err = c.video.Collect(ctx)
		return err
	})

	// A worker blocked in a query that ignores ctx is abandoned, not
	// awaited. It only writes its own slot, which is never read once
	// Assemble has returned.
	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	if err := ctx.Err(); err != nil {
		assembleTotal.WithLabelValues("cancelled").Inc()
		c.log.Debug().Err(err).Msg("Snapshot assembly cancelled")
		return nil, err
	}

	var failures error
	for _, cat := range collector.Categories {
		if !policy.Enabled(cat) {
			continue
		}
		o := outcomes[cat]
		categoryDuration.WithLabelValues(string(cat)).Observe(o.duration.Seconds())
		if o.err != nil {
			o.status = StatusFailed
			failures = multierr.Append(failures, o.err)
		} else {
			o.status = StatusOK
		}
		categoryTotal.WithLabelValues(string(cat), string(o.status)).Inc()
	}

	snap := &Snapshot{
		CollectedAt:      c.now().UTC(),
		Hostname:         c.hostname(platform),
		CPUs:             orEmpty(cpus),
		MemoryBanks:      orEmpty(banks),
		DiskDrives:       orEmpty(drives),
		DiskPartitions:   orEmpty(partitions),
		VideoControllers: orEmpty(video),
		Status:           make(map[collector.Category]Status, len(outcomes)),
	}
	if outcomes[collector.CategoryPlatform].status == StatusOK {
		snap.Platform = platform
	}
	if outcomes[collector.CategoryMemorySummary].status == StatusOK {
		snap.Memory = memory
	}
	for cat, o := range outcomes {
		snap.Status[cat] = o.status
		if o.status != StatusFailed {
			categoryRecords.WithLabelValues(string(cat)).Set(float64(snap.Records(cat)))
		}
	}

	if failures != nil {
		c.log.Warn().
			Err(failures).
			Int("failed", len(multierr.Errors(failures))).
			Msg("Some categories could not be collected")
	}
	assembleTotal.WithLabelValues("success").Inc()
	c.log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("cpus", len(snap.CPUs)).
		Int("memory_banks", len(snap.MemoryBanks)).
		Int("disk_drives", len(snap.DiskDrives)).
		Int("disk_partitions", len(snap.DiskPartitions)).
		Int("video_controllers", len(snap.VideoControllers)).
		Msg("Snapshot assembled")

	return snap, nil
}

func (c *Coordinator) hostname(platform *collector.PlatformInfo) string {
	if platform != nil {
		return platform.MachineName
	}
	if c.env == nil {
		return ""
	}
	name, err := c.env.MachineName()
	if err != nil {
		return ""
	}
	return name
}

// sharedRows runs src once per Assemble call and hands every caller the
// same result.
type sharedRows[T any] struct {
	src  collector.Collector[T]
	once sync.Once
	rows []T
	err  error
}

func (s *sharedRows[T]) Collect(ctx context.Context) ([]T, error) {
	s.once.Do(func() {
		s.rows, s.err = s.src.Collect(ctx)
	})
	return s.rows, s.err
}
