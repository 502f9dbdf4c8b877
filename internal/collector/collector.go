// Package collector holds the category collectors. Each row collector issues
// a single WMI query, decodes every returned row into a typed record and
// drops the rows that fail to decode. Only a failure of the query itself is
// reported to the caller. The memory summary is reduced from the bank
// records and issues no query of its own.
package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

// Category names one slot of a snapshot.
type Category string

const (
	CategoryCPU              Category = "cpu"
	CategoryMemoryBanks      Category = "memory_banks"
	CategoryMemorySummary    Category = "memory_summary"
	CategoryPlatform         Category = "platform"
	CategoryDiskDrives       Category = "disk_drives"
	CategoryDiskPartitions   Category = "disk_partitions"
	CategoryVideoControllers Category = "video_controllers"
)

// Categories lists every category in snapshot order.
var Categories = []Category{
	CategoryPlatform,
	CategoryMemorySummary,
	CategoryCPU,
	CategoryMemoryBanks,
	CategoryDiskDrives,
	CategoryDiskPartitions,
	CategoryVideoControllers,
}

// WMI classes queried by the collectors.
const (
	ClassProcessor       = "Win32_Processor"
	ClassPhysicalMemory  = "Win32_PhysicalMemory"
	ClassDiskDrive       = "Win32_DiskDrive"
	ClassDiskPartition   = "Win32_DiskPartition"
	ClassVideoController = "Win32_VideoController"
)

// ErrRecordDecode marks a row that was dropped because a field could not be
// extracted.
var ErrRecordDecode = errors.New("record decode failed")

// CategoryQueryError reports that a category could not be collected at all.
type CategoryQueryError struct {
	Category Category
	Class    string
	Err      error
}

func (e *CategoryQueryError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("collect %s: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("collect %s (%s): %v", e.Category, e.Class, e.Err)
}

func (e *CategoryQueryError) Unwrap() error { return e.Err }

// Collector gathers every instance of one hardware category.
type Collector[T any] interface {
	Collect(ctx context.Context) ([]T, error)
}

// SingleCollector gathers a per-machine singleton record.
type SingleCollector[T any] interface {
	Collect(ctx context.Context) (*T, error)
}

// RowCollector is the Collector shared by every bag-driven category.
type RowCollector[T any] struct {
	category Category
	class    string
	querier  wmiquery.Querier
	decode   func(wmiquery.PropertyBag) (T, error)
	log      zerolog.Logger
}

func newRowCollector[T any](category Category, class string, q wmiquery.Querier, decode func(wmiquery.PropertyBag) (T, error), log zerolog.Logger) *RowCollector[T] {
	return &RowCollector[T]{
		category: category,
		class:    class,
		querier:  q,
		decode:   decode,
		log:      log.With().Str("category", string(category)).Logger(),
	}
}

// Collect queries the category's class and decodes every row, preserving
// query order. Rows that fail to decode are skipped.
func (c *RowCollector[T]) Collect(ctx context.Context) ([]T, error) {
	rows, err := c.querier.Query(ctx, c.class)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &CategoryQueryError{Category: c.category, Class: c.class, Err: err}
	}

	records := make([]T, 0, len(rows))
	for i, row := range rows {
		rec, err := c.decode(row)
		if err != nil {
			c.log.Debug().
				Err(fmt.Errorf("%w: %s row %d: %w", ErrRecordDecode, c.class, i, err)).
				Msg("Skipping malformed row")
			continue
		}
		records = append(records, rec)
	}

	c.log.Debug().
		Int("rows", len(rows)).
		Int("records", len(records)).
		Msgf("Collected information about %d %s", len(records), c.category)

	return records, nil
}
