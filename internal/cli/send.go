package cli

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/YevheniiGera/mockflow"
	"github.com/YevheniiGera/mockflow/internal/logging"
	"github.com/YevheniiGera/mockflow/internal/sample"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func sendCommand(cfg *config, w io.Writer) *cli.Command {
	flags := append(requestFlags(cfg), &cli.DurationFlag{
		Name:  "timeout",
		Usage: "How long to wait for the fulfillment to respond",
		Value: 10 * time.Second,
	})

	return &cli.Command{
		Name:  "send",
		Usage: "Send a request to the sample fulfillment and print its response",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogger()

			fulfillment := mockflow.FiberFulfillment(sample.NewApp(), sample.Path)
			req, err := cfg.buildRequest(c, fulfillment)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, c.Duration("timeout"))
			defer cancel()

			logging.Default().Info("sending request",
				"intent", req.Body().QueryResult.Intent.DisplayName,
				"session", req.Body().Session,
			)

			result, err := req.Send(ctx).Wait(ctx)
			if err != nil {
				return goerr.Wrap(err, "fulfillment failed")
			}

			return writeJSON(w, result)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}
