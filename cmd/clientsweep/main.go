package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/endpointops/clientsweep/internal/app"
	"github.com/endpointops/clientsweep/internal/logging"
	"github.com/endpointops/clientsweep/internal/sepm"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
	verbose bool
)

// Exit codes for structured error reporting.
const (
	ExitSuccess    = 0
	ExitInternal   = 1
	ExitInvalidArg = 2
	ExitAuth       = 4
	ExitNetwork    = 5
)

func main() {
	logging.Init(false)

	if app.IsFirstRun() {
		fmt.Fprintln(os.Stderr, "First run: deletions are disabled by default. Pass --delete to leave dry-run mode.")
	}

	root := &cobra.Command{
		Use:   "clientsweep",
		Short: "Duplicate client record cleaner",
		Long: `clientsweep removes duplicate client records from a management
server's inventory, keeping the most recently active record per
duplicate group.

It runs one pass on demand: fetch the full inventory, group records by
display name, and delete every stale duplicate. Deletions are disabled
unless --delete is given.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewSweepCmd())
	root.AddCommand(NewVersionCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(classifyError(err))
	}
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if sepm.IsAuthError(err) {
		return ExitAuth
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "dial") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "certificate") ||
		strings.Contains(msg, "network is unreachable") {
		return ExitNetwork
	}

	if strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") ||
		strings.Contains(msg, "expected") {
		return ExitInvalidArg
	}

	return ExitInternal
}
