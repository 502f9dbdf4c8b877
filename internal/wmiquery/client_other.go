//go:build !windows

package wmiquery

import (
	"context"
	"fmt"
)

// Client is the WMI querier. Off Windows every query fails with
// ErrUnsupported.
type Client struct {
	namespace string
}

// NewClient returns a Client bound to namespace, or DefaultNamespace when
// namespace is empty.
func NewClient(namespace string) *Client {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Client{namespace: namespace}
}

// Query implements Querier.
func (c *Client) Query(ctx context.Context, class string) ([]PropertyBag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrQuery, SelectAll(class), ErrUnsupported)
}
