// Package cli parses the command line into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/crouilla/phaserunner/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// argsFlag collects repeated --arg key=value pairs.
type argsFlag map[string]any

func (a argsFlag) String() string {
	return fmt.Sprintf("%v", map[string]any(a))
}

func (a argsFlag) Set(raw string) error {
	key, value, found := strings.Cut(raw, "=")
	if !found || key == "" {
		return fmt.Errorf("argument %q must be of the form key=value", raw)
	}
	a[key] = value
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("phaserunner", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
PhaseRunner - a sequential phase executor with a shared argument pool.

Usage:
  phaserunner [options] [PLAN_PATH]

Arguments:
  PLAN_PATH
    Path to a single .hcl plan file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	planFlag := flagSet.String("plan", "", "Path to the plan file or directory.")
	pFlag := flagSet.String("p", "", "Path to the plan file or directory (shorthand).")
	startFlag := flagSet.String("startwith", "", "Phase to start the run with.")
	sFlag := flagSet.String("s", "", "Phase to start the run with (shorthand).")
	endFlag := flagSet.String("endwith", "", "Phase to end the run with (inclusive).")
	eFlag := flagSet.String("e", "", "Phase to end the run with, inclusive (shorthand).")
	exactFlag := flagSet.String("exact", "", "The exact (and only) phase to run. Cannot be used with startwith/endwith.")
	xFlag := flagSet.String("x", "", "The exact (and only) phase to run (shorthand).")
	listFlag := flagSet.Bool("list-phases", false, "List the plan's phase names and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	poolArgs := make(argsFlag)
	flagSet.Var(poolArgs, "arg", "Seed a pool entry as key=value. May be repeated.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	switch {
	case *planFlag != "":
		path = *planFlag
	case *pFlag != "":
		path = *pFlag
	case flagSet.NArg() > 0:
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	startWith := firstNonEmpty(*startFlag, *sFlag)
	endWith := firstNonEmpty(*endFlag, *eFlag)
	exact := firstNonEmpty(*exactFlag, *xFlag)
	if exact != "" && (startWith != "" || endWith != "") {
		return nil, false, &ExitError{Code: 2, Message: "both --exact and (--startwith/--endwith) cannot be used at the same time"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		PlanPath:   path,
		StartWith:  startWith,
		EndWith:    endWith,
		Exact:      exact,
		Args:       poolArgs,
		ListPhases: *listFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

// firstNonEmpty returns the first non-empty string of the pair.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
