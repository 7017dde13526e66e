package cli

import (
	"context"
	"io"

	"github.com/YevheniiGera/mockflow/internal/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string, w io.Writer) *Error {
	var cfg config

	cmd := &cli.Command{
		Name:  "mockflow",
		Usage: "Send synthetic Dialogflow webhook requests to a fulfillment",
		Flags: globalFlags(&cfg),
		Commands: []*cli.Command{
			sendCommand(&cfg, w),
			renderCommand(&cfg, w),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
