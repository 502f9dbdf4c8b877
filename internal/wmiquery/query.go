// Package wmiquery is the boundary to the Windows management-data query
// subsystem. Callers see one operation, Query, that returns the rows of a
// WMI class as loosely typed property bags.
package wmiquery

//go:generate mockgen -destination=mock_querier.go -package=wmiquery github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery Querier

import (
	"context"
	"errors"
)

// DefaultNamespace is the WMI namespace holding the Win32_* hardware classes.
const DefaultNamespace = `root\cimv2`

var (
	// ErrQuery marks a failed class query: the service is unreachable, the
	// class is unsupported or access was denied.
	ErrQuery = errors.New("wmi query failed")

	// ErrUnsupported is returned by the querier on hosts without WMI.
	ErrUnsupported = errors.New("wmi is not available on this platform")
)

// PropertyBag is one row of a query result. Get reports false when the key
// is missing or its value is NULL.
type PropertyBag interface {
	Get(key string) (any, bool)
}

// Querier runs a "SELECT * FROM <class>" query and returns the rows in the
// order the subsystem produced them.
type Querier interface {
	Query(ctx context.Context, class string) ([]PropertyBag, error)
}

// Bag is an in-memory PropertyBag.
type Bag map[string]any

// Get implements PropertyBag. Nil values are treated as absent.
func (b Bag) Get(key string) (any, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// SelectAll builds the WQL statement used for every category.
func SelectAll(class string) string {
	return "SELECT * FROM " + class
}
