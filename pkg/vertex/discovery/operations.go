package discovery

import (
	"context"
	"log"
	"time"
)

// Polling defaults. Twenty fetches five seconds apart covers the creation
// and deletion times observed for data stores.
const (
	DefaultPollMaxRetries = 20
	DefaultPollInterval   = 5 * time.Second
)

// PollOptions controls PollOperation. A nil options value means defaults.
type PollOptions struct {
	// MaxRetries is the total number of snapshot fetches. Zero means
	// DefaultPollMaxRetries.
	MaxRetries int
	// Interval is the wait between fetches. Zero means no wait, which is
	// only sensible against a stub.
	Interval time.Duration
}

// PollOperation fetches snapshots of the named operation until it reports
// done, the retry budget runs out, or ctx is cancelled.
//
// The returned bool reports whether the operation resolved. On exhaustion
// the last snapshot is returned with resolved == false and a nil error: an
// operation still running after the budget is a reportable outcome, not a
// failure. A fetch error aborts polling immediately. A done operation
// carrying an error status still resolves; the caller inspects op.Error.
func (c *Client) PollOperation(ctx context.Context, name string, opts *PollOptions) (*Operation, bool, error) {
	maxRetries := DefaultPollMaxRetries
	interval := DefaultPollInterval
	if opts != nil {
		if opts.MaxRetries > 0 {
			maxRetries = opts.MaxRetries
		}
		interval = opts.Interval
	}

	var last *Operation
	for attempt := 1; attempt <= maxRetries; attempt++ {
		op, err := c.GetOperation(ctx, name)
		if err != nil {
			return nil, false, err
		}
		if op.Done {
			return op, true, nil
		}
		last = op

		if attempt == maxRetries {
			break
		}
		if err := ctx.Err(); err != nil {
			return last, false, err
		}
		select {
		case <-ctx.Done():
			return last, false, ctx.Err()
		case <-time.After(interval):
		}
	}

	log.Printf("[POLL] operation %s still running after %d fetches", name, maxRetries)
	return last, false, nil
}
