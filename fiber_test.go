package mockflow_test

import (
	"errors"
	"testing"
	"time"

	"github.com/YevheniiGera/mockflow"
	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/gt"
)

func TestFiberHandler(t *testing.T) {
	handler := func(c *fiber.Ctx) error {
		req := &mockflow.WebhookRequest{}
		if err := c.BodyParser(req); err != nil {
			return err
		}
		return c.JSON(mockflow.TextResponse("you said " + req.QueryResult.QueryText))
	}

	agent := mockflow.New("myagent", mockflow.FiberHandler(handler))
	ctx := waitCtx(t, 5*time.Second)

	result, err := agent.Intent("Echo").WithQueryText("hello").Send(ctx).Wait(ctx)
	gt.NoError(t, err)

	var resp mockflow.WebhookResponse
	gt.NoError(t, mockflow.Unmarshal(result, &resp))
	gt.A(t, resp.FulfillmentMessages).Length(1)
	gt.Equal(t, resp.FulfillmentMessages[0].Text.Text[0], "you said hello")
}

func TestFiberFulfillmentRoute(t *testing.T) {
	app := fiber.New()
	app.Post("/webhook", func(c *fiber.Ctx) error {
		req := &mockflow.WebhookRequest{}
		if err := c.BodyParser(req); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"intent": req.QueryResult.Intent.DisplayName,
			"size":   req.QueryResult.Parameters["size"],
		})
	})

	agent := mockflow.New("myagent", mockflow.FiberFulfillment(app, "/webhook"))
	ctx := waitCtx(t, 5*time.Second)

	result, err := agent.Intent("Order").WithParameter("size", "large").Send(ctx).Wait(ctx)
	gt.NoError(t, err)

	m, ok := result.(map[string]any)
	gt.True(t, ok)
	gt.V(t, m["intent"]).Equal("Order")
	gt.V(t, m["size"]).Equal("large")
}

func TestFiberFulfillmentErrorStatus(t *testing.T) {
	handler := func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "database down")
	}

	agent := mockflow.New("myagent", mockflow.FiberHandler(handler))
	ctx := waitCtx(t, 5*time.Second)

	_, err := agent.Intent("Order").Send(ctx).Wait(ctx)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, mockflow.ErrFulfillmentStatus))
}

func TestFiberFulfillmentEmptyBody(t *testing.T) {
	handler := func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}

	agent := mockflow.New("myagent", mockflow.FiberHandler(handler))
	ctx := waitCtx(t, 5*time.Second)

	pending := agent.Intent("Order").Send(ctx)
	gt.True(t, pending.Settled())

	result, err := pending.Wait(ctx)
	gt.NoError(t, err)
	gt.True(t, result.(map[string]any) == nil)
}

func TestUnmarshalMismatch(t *testing.T) {
	var resp mockflow.WebhookResponse
	gt.Error(t, mockflow.Unmarshal("not an object", &resp))
}
