package cli

import (
	"strings"

	"github.com/YevheniiGera/mockflow"
	"github.com/YevheniiGera/mockflow/internal/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	logLevel string
	agent    string

	// Request content
	intent   string
	query    string
	language string
	fixture  string
}

func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "warn",
			Sources:     cli.EnvVars("MOCKFLOW_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "agent",
			Aliases:     []string{"a"},
			Usage:       "Agent name used in session and intent paths",
			Value:       "mockflow",
			Sources:     cli.EnvVars("MOCKFLOW_AGENT"),
			Destination: &cfg.agent,
		},
	}
}

// requestFlags returns flags describing the request content
func requestFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "intent",
			Aliases:     []string{"i"},
			Usage:       "Display name of the matched intent",
			Destination: &cfg.intent,
		},
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "User query text",
			Destination: &cfg.query,
		},
		&cli.StringSliceFlag{
			Name:    "param",
			Aliases: []string{"p"},
			Usage:   "Intent parameter as name=value (repeatable)",
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "Language code",
			Destination: &cfg.language,
		},
		&cli.FloatFlag{
			Name:  "confidence",
			Usage: "Intent detection confidence",
		},
		&cli.StringFlag{
			Name:        "fixture",
			Aliases:     []string{"f"},
			Usage:       "Path to YAML fixture describing the request",
			Destination: &cfg.fixture,
		},
	}
}

func (cfg *config) setupLogger() {
	logging.SetDefault(logging.New(cfg.logLevel, nil))
}

// buildRequest creates a request from the fixture, if any, with flags
// applied on top of it.
func (cfg *config) buildRequest(c *cli.Command, fulfillment mockflow.Fulfillment) (*mockflow.Request, error) {
	agent := mockflow.New(cfg.agent, fulfillment, mockflow.WithLogger(logging.Default()))

	var req *mockflow.Request
	if cfg.fixture != "" {
		f, err := mockflow.LoadFixture(cfg.fixture)
		if err != nil {
			return nil, err
		}
		if cfg.intent != "" {
			f.Intent = cfg.intent
		}
		req, err = agent.FromFixture(f)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid fixture", goerr.V("path", cfg.fixture))
		}
	} else {
		if cfg.intent == "" {
			return nil, goerr.New("intent is required")
		}
		req = agent.Intent(cfg.intent)
	}

	if cfg.query != "" {
		req.WithQueryText(cfg.query)
	}
	for _, p := range c.StringSlice("param") {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, goerr.New("invalid parameter, expected name=value", goerr.V("param", p))
		}
		req.WithParameter(name, value)
	}
	if cfg.language != "" {
		req.WithLanguageCode(cfg.language)
	}
	if c.IsSet("confidence") {
		req.WithIntentDetectionConfidence(c.Float("confidence"))
	}

	return req, nil
}
