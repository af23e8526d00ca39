package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/polyfold/polyfold/internal/cli"
	perrors "github.com/polyfold/polyfold/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes bad input (2) and timeouts (3) from other failures.
func exitCode(err error) int {
	switch perrors.GetCode(err) {
	case perrors.ErrCodeMalformedInput, perrors.ErrCodeInvalidInput,
		perrors.ErrCodeInvalidFormat, perrors.ErrCodeInvalidSequence,
		perrors.ErrCodeInvalidPath, perrors.ErrCodeFileNotFound:
		return 2
	case perrors.ErrCodeTimeout:
		return 3
	}
	return 1
}
