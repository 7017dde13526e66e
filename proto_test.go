package mockflow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
	"github.com/YevheniiGera/mockflow"
	"github.com/m-mizutani/gt"
)

func TestProto(t *testing.T) {
	req := mockflow.New("myagent", noop).Intent("Greeting").
		WithQueryText("hello").
		WithParameter("name", "Bob").
		WithContext("awaiting-name", 2, map[string]any{"step": "ask"}).
		WithIntentDetectionConfidence(0.5).
		WithLanguageCode("en-US").
		WithDiagnosticInfo("webhook_latency_ms", 12)

	msg, err := req.Body().Proto()
	gt.NoError(t, err)

	body := req.Body()
	gt.Equal(t, msg.GetResponseId(), body.ResponseID)
	gt.Equal(t, msg.GetSession(), body.Session)

	qr := msg.GetQueryResult()
	gt.Equal(t, qr.GetQueryText(), "hello")
	gt.Equal(t, qr.GetParameters().GetFields()["name"].GetStringValue(), "Bob")
	gt.True(t, qr.GetAllRequiredParamsPresent())
	gt.Equal(t, qr.GetIntent().GetDisplayName(), "Greeting")
	gt.Equal(t, qr.GetIntent().GetName(), body.QueryResult.Intent.Name)
	gt.Equal(t, qr.GetIntentDetectionConfidence(), float32(0.5))
	gt.Equal(t, qr.GetLanguageCode(), "en-US")
	gt.Equal(t, qr.GetDiagnosticInfo().GetFields()["webhook_latency_ms"].GetNumberValue(), 12.0)

	gt.A(t, qr.GetOutputContexts()).Length(1)
	gt.Equal(t, qr.GetOutputContexts()[0].GetName(), body.Session+"/contexts/awaiting-name")
	gt.Equal(t, qr.GetOutputContexts()[0].GetLifespanCount(), int32(2))
}

func TestProtoRejectsMismatchedShape(t *testing.T) {
	req := mockflow.New("myagent", noop).Intent("Greeting").
		WithOutputContext("not a context")

	_, err := req.Body().Proto()
	gt.Error(t, err)
}

func TestProtoFulfillment(t *testing.T) {
	handler := func(ctx context.Context, req *dialogflowpb.WebhookRequest) (*dialogflowpb.WebhookResponse, error) {
		return &dialogflowpb.WebhookResponse{
			FulfillmentText: "hi " + req.GetQueryResult().GetParameters().GetFields()["name"].GetStringValue(),
		}, nil
	}

	agent := mockflow.New("myagent", mockflow.ProtoFulfillment(handler))
	ctx := waitCtx(t, time.Second)

	result, err := agent.Intent("Greeting").WithParameter("name", "Bob").Send(ctx).Wait(ctx)
	gt.NoError(t, err)

	resp, ok := result.(*dialogflowpb.WebhookResponse)
	gt.True(t, ok)
	gt.Equal(t, resp.GetFulfillmentText(), "hi Bob")
}

func TestProtoFulfillmentError(t *testing.T) {
	boom := errors.New("boom")
	handler := func(ctx context.Context, req *dialogflowpb.WebhookRequest) (*dialogflowpb.WebhookResponse, error) {
		return nil, boom
	}

	agent := mockflow.New("myagent", mockflow.ProtoFulfillment(handler))
	ctx := waitCtx(t, time.Second)

	_, err := agent.Intent("Greeting").Send(ctx).Wait(ctx)
	gt.True(t, err == boom)
}
