package wmiquery

import (
	"context"
	"fmt"
	"sync"
)

// StaticQuerier serves canned rows per class. It is deterministic and safe
// for concurrent use, which makes it the querier of choice in tests and in
// dry runs on non-Windows hosts.
type StaticQuerier struct {
	mu    sync.Mutex
	rows  map[string][]PropertyBag
	errs  map[string]error
	calls map[string]int
}

// NewStaticQuerier creates an empty StaticQuerier.
func NewStaticQuerier() *StaticQuerier {
	return &StaticQuerier{
		rows:  make(map[string][]PropertyBag),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// Set registers the rows returned for class.
func (q *StaticQuerier) Set(class string, rows ...PropertyBag) *StaticQuerier {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rows[class] = rows
	return q
}

// Fail makes every query for class return err wrapped in ErrQuery.
func (q *StaticQuerier) Fail(class string, err error) *StaticQuerier {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs[class] = err
	return q
}

// Calls reports how many times class was queried.
func (q *StaticQuerier) Calls(class string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls[class]
}

// TotalCalls reports the number of queries across all classes.
func (q *StaticQuerier) TotalCalls() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, c := range q.calls {
		n += c
	}
	return n
}

// Query implements Querier.
func (q *StaticQuerier) Query(ctx context.Context, class string) ([]PropertyBag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.calls[class]++
	if err, ok := q.errs[class]; ok {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, SelectAll(class), err)
	}

	rows := q.rows[class]
	out := make([]PropertyBag, len(rows))
	copy(out, rows)
	return out, nil
}
