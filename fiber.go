package mockflow

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/goerr/v2"
)

var ErrFulfillmentStatus = goerr.New("fulfillment returned error status")

// FiberFulfillment runs the webhook route mounted at path on app. The request
// body is POSTed through app.Test, so nothing listens on a socket. The JSON
// reply is captured as a map.
func FiberFulfillment(app *fiber.App, path string) Fulfillment {
	return func(req *Req, res *Res) error {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode webhook request")
		}

		httpReq := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		httpReq.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		httpReq = httpReq.WithContext(req.Context())

		resp, err := app.Test(httpReq, -1)
		if err != nil {
			return goerr.Wrap(err, "failed to call fiber app", goerr.V("path", path))
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return goerr.Wrap(err, "failed to read fulfillment response")
		}

		if resp.StatusCode >= http.StatusBadRequest {
			return goerr.Wrap(ErrFulfillmentStatus, "fulfillment failed",
				goerr.V("status", resp.StatusCode),
				goerr.V("body", string(body)),
			)
		}

		var out map[string]any
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &out); err != nil {
				return goerr.Wrap(err, "failed to decode fulfillment response", goerr.V("body", string(body)))
			}
		}

		res.JSON(out)
		return nil
	}
}

// FiberHandler runs a single fiber handler as the fulfillment.
func FiberHandler(handler fiber.Handler) Fulfillment {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/", handler)
	return FiberFulfillment(app, "/")
}

// Unmarshal converts a captured response into out through its JSON form.
func Unmarshal(v any, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return goerr.Wrap(err, "failed to encode response")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("json", string(raw)))
	}
	return nil
}
