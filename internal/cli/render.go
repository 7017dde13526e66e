package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"google.golang.org/protobuf/encoding/protojson"
)

func renderCommand(cfg *config, w io.Writer) *cli.Command {
	flags := append(requestFlags(cfg), &cli.BoolFlag{
		Name:  "proto",
		Usage: "Render through dialogflowpb.WebhookRequest",
	})

	return &cli.Command{
		Name:  "render",
		Usage: "Print the request that would be sent",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogger()

			req, err := cfg.buildRequest(c, nil)
			if err != nil {
				return err
			}

			if !c.Bool("proto") {
				return writeJSON(w, req.Body())
			}

			msg, err := req.Body().Proto()
			if err != nil {
				return err
			}
			raw, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
			if err != nil {
				return goerr.Wrap(err, "failed to render proto request")
			}
			raw = append(raw, '\n')
			if _, err := w.Write(raw); err != nil {
				return goerr.Wrap(err, "failed to write output")
			}
			return nil
		},
	}
}
