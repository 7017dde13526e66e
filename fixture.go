package mockflow

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

var ErrNoIntent = goerr.New("fixture has no intent")

// Fixture describes a request in YAML. Unset scalar fields keep the
// request's defaults.
type Fixture struct {
	Intent                      string         `yaml:"intent"`
	QueryText                   *string        `yaml:"queryText"`
	Parameters                  map[string]any `yaml:"parameters"`
	AllRequiredParamsPresent    *bool          `yaml:"allRequiredParamsPresent"`
	FulfillmentText             *string        `yaml:"fulfillmentText"`
	FulfillmentMessages         []any          `yaml:"fulfillmentMessages"`
	OutputContexts              []any          `yaml:"outputContexts"`
	IntentDetectionConfidence   *float64       `yaml:"intentDetectionConfidence"`
	DiagnosticInfo              map[string]any `yaml:"diagnosticInfo"`
	LanguageCode                *string        `yaml:"languageCode"`
	OriginalDetectIntentRequest any            `yaml:"originalDetectIntentRequest"`
}

func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse fixture")
	}
	return &f, nil
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read fixture", goerr.V("path", path))
	}

	f, err := ParseFixture(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid fixture", goerr.V("path", path))
	}
	return f, nil
}

func (f *Fixture) Validate() error {
	if f == nil || f.Intent == "" {
		return ErrNoIntent
	}
	return nil
}

// WithFixture applies every field set in f. The fixture's intent is ignored:
// the display name is fixed when the request is created.
func (r *Request) WithFixture(f *Fixture) *Request {
	if f.QueryText != nil {
		r.WithQueryText(*f.QueryText)
	}
	for name, value := range f.Parameters {
		r.WithParameter(name, value)
	}
	if f.AllRequiredParamsPresent != nil {
		r.WithAllRequiredParamsPresent(*f.AllRequiredParamsPresent)
	}
	if f.FulfillmentText != nil {
		r.WithFulfillmentText(*f.FulfillmentText)
	}
	for _, msg := range f.FulfillmentMessages {
		r.WithFulfillmentMessage(msg)
	}
	for _, c := range f.OutputContexts {
		r.WithOutputContext(c)
	}
	if f.IntentDetectionConfidence != nil {
		r.WithIntentDetectionConfidence(*f.IntentDetectionConfidence)
	}
	for name, value := range f.DiagnosticInfo {
		r.WithDiagnosticInfo(name, value)
	}
	if f.LanguageCode != nil {
		r.WithLanguageCode(*f.LanguageCode)
	}
	if f.OriginalDetectIntentRequest != nil {
		r.WithOriginalDetectIntentRequest(f.OriginalDetectIntentRequest)
	}
	return r
}
