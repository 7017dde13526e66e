// Package mockflow emulates the Dialogflow v2 service far enough to drive a
// fulfillment webhook from tests: build a request for an intent, send it
// through the fulfillment in-process and read back what it responded.
package mockflow

import (
	"log/slog"

	"github.com/YevheniiGera/mockflow/internal/logging"
)

// Agent binds an agent name to the fulfillment under test.
type Agent struct {
	name        string
	fulfillment Fulfillment
	logger      *slog.Logger
}

type Option func(*Agent)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

func New(name string, fulfillment Fulfillment, opts ...Option) *Agent {
	a := &Agent{
		name:        name,
		fulfillment: fulfillment,
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Agent) Name() string {
	return a.name
}

// Intent starts a new request that claims to have matched intentName.
func (a *Agent) Intent(intentName string) *Request {
	return newRequest(a.name, a.fulfillment, intentName, a.logger)
}

// FromFixture starts a request for the fixture's intent with the fixture
// applied to it.
func (a *Agent) FromFixture(f *Fixture) (*Request, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return a.Intent(f.Intent).WithFixture(f), nil
}
