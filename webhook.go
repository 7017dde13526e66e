package mockflow

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type QueryResult struct {
	QueryText                 string         `json:"queryText"`
	Parameters                map[string]any `json:"parameters"`
	AllRequiredParamsPresent  bool           `json:"allRequiredParamsPresent"`
	FulfillmentText           string         `json:"fulfillmentText"`
	FulfillmentMessages       []any          `json:"fulfillmentMessages"`
	OutputContexts            []any          `json:"outputContexts"`
	Intent                    Intent         `json:"intent"`
	IntentDetectionConfidence float64        `json:"intentDetectionConfidence"`
	DiagnosticInfo            map[string]any `json:"diagnosticInfo"`
	LanguageCode              string         `json:"languageCode"`
}

// WebhookRequest is the body Dialogflow POSTs to a fulfillment webhook.
type WebhookRequest struct {
	ResponseID                  string      `json:"responseId"`
	Session                     string      `json:"session"`
	QueryResult                 QueryResult `json:"queryResult"`
	OriginalDetectIntentRequest any         `json:"originalDetectIntentRequest"`
}

type OutputContext struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount,omitempty"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

type FulfillmentMessageText struct {
	Text []string `json:"text"`
}

type FulfillmentMessage struct {
	Text *FulfillmentMessageText `json:"text,omitempty"`
}

// WebhookResponse is what a fulfillment usually replies with.
type WebhookResponse struct {
	FulfillmentText     string               `json:"fulfillmentText,omitempty"`
	FulfillmentMessages []FulfillmentMessage `json:"fulfillmentMessages,omitempty"`
	OutputContexts      []OutputContext      `json:"outputContexts,omitempty"`
}

// TextResponse builds a response with a single text message.
func TextResponse(msg string) *WebhookResponse {
	return &WebhookResponse{
		FulfillmentMessages: []FulfillmentMessage{
			{Text: &FulfillmentMessageText{Text: []string{msg}}},
		},
	}
}
