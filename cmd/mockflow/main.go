package main

import (
	"context"
	"fmt"
	"os"

	"github.com/YevheniiGera/mockflow/internal/cli"
)

func main() {
	ctx := context.Background()
	if err := cli.Run(ctx, os.Args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Message)
		os.Exit(err.Code)
	}
}
