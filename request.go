package mockflow

import (
	"context"
	"log/slog"

	"github.com/YevheniiGera/mockflow/internal/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Req is the request handed to a Fulfillment. Body holds the webhook payload.
type Req struct {
	Body *WebhookRequest
	ctx  context.Context
}

func (r *Req) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Res captures the fulfillment's reply.
type Res struct {
	pending *Pending
}

// JSON captures v as the response. Only the first call counts.
func (r *Res) JSON(v any) {
	r.pending.resolve(v)
}

// Fulfillment is the webhook code under test. Returning an error (or
// panicking) before JSON is called fails the request.
type Fulfillment func(req *Req, res *Res) error

// Request builds one synthetic webhook call. All With methods return the
// receiver so calls can be chained.
type Request struct {
	agentName   string
	fulfillment Fulfillment
	logger      *slog.Logger
	body        *WebhookRequest
}

// NewRequest creates a request for intentName against the agent agentName.
func NewRequest(agentName string, fulfillment Fulfillment, intentName string) *Request {
	return newRequest(agentName, fulfillment, intentName, logging.Default())
}

func newRequest(agentName string, fulfillment Fulfillment, intentName string, logger *slog.Logger) *Request {
	return &Request{
		agentName:   agentName,
		fulfillment: fulfillment,
		logger:      logger,
		body: &WebhookRequest{
			ResponseID: uuid.New().String(),
			Session:    sessionPath(agentName),
			QueryResult: QueryResult{
				QueryText:                "",
				Parameters:               map[string]any{},
				AllRequiredParamsPresent: true,
				FulfillmentText:          "",
				FulfillmentMessages:      []any{},
				OutputContexts:           []any{},
				Intent: Intent{
					Name:        intentPath(agentName),
					DisplayName: intentName,
				},
				IntentDetectionConfidence: 1,
				DiagnosticInfo:            map[string]any{},
				LanguageCode:              "en",
			},
			OriginalDetectIntentRequest: map[string]any{},
		},
	}
}

// Body returns the payload built so far.
func (r *Request) Body() *WebhookRequest {
	return r.body
}

func (r *Request) WithQueryText(queryText string) *Request {
	r.body.QueryResult.QueryText = queryText
	return r
}

func (r *Request) WithParameter(name string, value any) *Request {
	r.body.QueryResult.Parameters[name] = value
	return r
}

func (r *Request) WithAllRequiredParamsPresent(present bool) *Request {
	r.body.QueryResult.AllRequiredParamsPresent = present
	return r
}

func (r *Request) WithFulfillmentText(text string) *Request {
	r.body.QueryResult.FulfillmentText = text
	return r
}

func (r *Request) WithFulfillmentMessage(msg any) *Request {
	r.body.QueryResult.FulfillmentMessages = append(r.body.QueryResult.FulfillmentMessages, msg)
	return r
}

func (r *Request) WithOutputContext(outputContext any) *Request {
	r.body.QueryResult.OutputContexts = append(r.body.QueryResult.OutputContexts, outputContext)
	return r
}

// WithContext appends an output context named relative to the session.
func (r *Request) WithContext(name string, lifespanCount int, params map[string]any) *Request {
	return r.WithOutputContext(OutputContext{
		Name:          contextPath(r.body.Session, name),
		LifespanCount: lifespanCount,
		Parameters:    params,
	})
}

// WithIntentDetectionConfidence sets the confidence. Dialogflow reports a
// value in [0, 1] but nothing is clamped here.
func (r *Request) WithIntentDetectionConfidence(confidence float64) *Request {
	r.body.QueryResult.IntentDetectionConfidence = confidence
	return r
}

func (r *Request) WithDiagnosticInfo(name string, value any) *Request {
	r.body.QueryResult.DiagnosticInfo[name] = value
	return r
}

func (r *Request) WithLanguageCode(languageCode string) *Request {
	r.body.QueryResult.LanguageCode = languageCode
	return r
}

func (r *Request) WithOriginalDetectIntentRequest(original any) *Request {
	r.body.OriginalDetectIntentRequest = original
	return r
}

// Send runs the fulfillment once, synchronously, and returns its pending
// result.
func (r *Request) Send(ctx context.Context) *Pending {
	pending := newPending(r.logger)
	req := &Req{Body: r.body, ctx: ctx}
	res := &Res{pending: pending}

	r.logger.Debug("sending webhook request",
		"intent", r.body.QueryResult.Intent.DisplayName,
		"session", r.body.Session,
	)

	if err := r.call(req, res); err != nil {
		pending.reject(err)
	}

	if pending.Settled() {
		r.logger.Debug("fulfillment settled", "response_id", r.body.ResponseID)
	}

	return pending
}

func (r *Request) call(req *Req, res *Res) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			err = goerr.New("fulfillment panicked", goerr.V("panic", rec))
		}
	}()

	if r.fulfillment == nil {
		return goerr.New("fulfillment is nil", goerr.V("agent", r.agentName))
	}
	return r.fulfillment(req, res)
}
