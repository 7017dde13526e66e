package mockflow

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/protobuf/encoding/protojson"
)

// ProtoHandler is a fulfillment written against the generated Dialogflow
// types.
type ProtoHandler func(ctx context.Context, req *dialogflowpb.WebhookRequest) (*dialogflowpb.WebhookResponse, error)

// Proto converts the request to its dialogflowpb form. Fields the proto
// schema does not know are dropped; values that do not fit it are an error.
func (w *WebhookRequest) Proto() (*dialogflowpb.WebhookRequest, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode webhook request")
	}

	var msg dialogflowpb.WebhookRequest
	opts := protojson.UnmarshalOptions{DiscardUnknown: true}
	if err := opts.Unmarshal(raw, &msg); err != nil {
		return nil, goerr.Wrap(err, "webhook request does not fit dialogflowpb.WebhookRequest",
			goerr.V("session", w.Session))
	}
	return &msg, nil
}

// ProtoFulfillment adapts handler to a Fulfillment. The captured value is the
// *dialogflowpb.WebhookResponse it returns.
func ProtoFulfillment(handler ProtoHandler) Fulfillment {
	return func(req *Req, res *Res) error {
		msg, err := req.Body.Proto()
		if err != nil {
			return err
		}

		resp, err := handler(req.Context(), msg)
		if err != nil {
			return err
		}

		res.JSON(resp)
		return nil
	}
}
