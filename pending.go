package mockflow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Pending is the result of a single Send. It settles at most once: with the
// first value the fulfillment captures, or with the error it fails with.
// A fulfillment that does neither leaves it pending forever.
type Pending struct {
	done   chan struct{}
	once   sync.Once
	value  any
	err    error
	logger *slog.Logger
}

func newPending(logger *slog.Logger) *Pending {
	return &Pending{
		done:   make(chan struct{}),
		logger: logger,
	}
}

func (p *Pending) resolve(v any) {
	if !p.settle(v, nil) {
		p.logger.Debug("ignoring repeated response capture", "value", v)
	}
}

func (p *Pending) reject(err error) {
	if !p.settle(nil, err) {
		p.logger.Debug("ignoring fulfillment error after response capture", "error", err)
	}
}

func (p *Pending) settle(v any, err error) bool {
	settled := false
	p.once.Do(func() {
		p.value = v
		p.err = err
		settled = true
		close(p.done)
	})
	return settled
}

// Done is closed once the result is settled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

func (p *Pending) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the result settles or ctx is done. The fulfillment's own
// error is returned as is; a ctx expiry is wrapped and still matches
// context.DeadlineExceeded / context.Canceled with errors.Is.
func (p *Pending) Wait(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return nil, goerr.Wrap(ctx.Err(), "fulfillment did not respond")
	}
}
