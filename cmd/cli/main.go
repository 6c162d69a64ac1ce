package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/crouilla/phaserunner/internal/app"
	"github.com/crouilla/phaserunner/internal/cli"
	"github.com/crouilla/phaserunner/internal/hcl"
)

// main is the entrypoint for the phaserunner application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) (err error) {
	// The app panics on critical startup errors, so we recover here to
	// provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hcl.NewLoader()
	runnerApp := app.NewApp(outW, appConfig, loader)

	ok, err := runnerApp.Run(context.Background())
	if err != nil {
		var usageErr *app.UsageError
		if errors.As(err, &usageErr) {
			return &cli.ExitError{Code: 2, Message: usageErr.Message}
		}
		return err
	}
	if !ok {
		return &cli.ExitError{Code: 1, Message: "run failed"}
	}
	return nil
}
