package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/bootstrapgo/internal/app"
	"github.com/vk/bootstrapgo/internal/cli"
)

// main is the entrypoint for the bootstrapgo launcher.
func main() {
	// Use a minimal logger until the profile-configured one takes over.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the launcher logic for easier testing and error handling.
// A non-zero entry point status comes back as an ExitError so main can map
// it to the process exit code.
func run(outW io.Writer, args []string) (err error) {
	// Startup code panics only on programmer errors, like a duplicate entry
	// point registration. Recover to report them cleanly.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	appConfig, err := cli.Parse(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	launcher, err := app.New(ctx, outW, appConfig, app.DefaultTable())
	if err != nil {
		return err
	}
	defer launcher.Close()

	status, err := launcher.Run(ctx)
	if err != nil {
		if status > 0 {
			return &cli.ExitError{Code: status, Message: err.Error()}
		}
		return err
	}
	if status > 0 {
		// The application reported its own diagnostics; only the status
		// needs to reach the caller.
		return &cli.ExitError{Code: status}
	}
	return nil
}
