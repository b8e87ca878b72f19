package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/endpointops/clientsweep/internal/logging"
	"github.com/endpointops/clientsweep/internal/reporter"
	"github.com/endpointops/clientsweep/internal/run"
	"github.com/endpointops/clientsweep/internal/sepm"
	"github.com/endpointops/clientsweep/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewSweepCmd creates the sweep command
func NewSweepCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	// String variables for custom duration parsing
	var timeoutStr string
	var deletePauseStr string
	var doDelete bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Find and remove duplicate client records",
		Long: `Fetch the full client inventory, group records by duplication key,
and delete every record except the most recently active one in each
group larger than the threshold.

Runs in dry-run mode unless --delete is given: candidates are reported
but nothing is removed.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			var err error

			if timeoutStr != "" {
				cfg.RequestTimeout, err = config.ParseDuration(timeoutStr)
				if err != nil {
					return fmt.Errorf("invalid --timeout duration: %w", err)
				}
			}

			if deletePauseStr != "" {
				cfg.DeletePause, err = config.ParseDuration(deletePauseStr)
				if err != nil {
					return fmt.Errorf("invalid --delete-pause duration: %w", err)
				}
			}

			cfg.DryRun = !doDelete

			// File config fills whatever flags left at defaults.
			fileCfg, path, err := config.AutoLoadFile()
			if err != nil {
				return err
			}
			if fileCfg != nil {
				slog.Debug("loaded config file", slog.String("path", path))
				if err := fileCfg.Apply(cfg); err != nil {
					return err
				}
			}
			cfg.Normalize()

			// Validate after the merge so file-sourced values face the
			// same checks as flags.
			if !config.ValidGroupBy(cfg.GroupBy) {
				return fmt.Errorf("invalid --group-by %q: expected %q or %q",
					cfg.GroupBy, config.GroupByName, config.GroupByHardwareKey)
			}
			if cfg.Threshold < 1 {
				return fmt.Errorf("invalid threshold %d: must be at least 1", cfg.Threshold)
			}
			if cfg.PageSize < 1 {
				return fmt.Errorf("invalid page size %d: must be at least 1", cfg.PageSize)
			}

			if cfg.Server == "" {
				return fmt.Errorf("server address is required (--server or config file)")
			}
			if cfg.Username == "" {
				return fmt.Errorf("username is required (--username or config file)")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cfg)
		},
	}

	// Server flags
	cmd.Flags().StringVar(&cfg.Server, "server", "", "Management server address (required unless configured)")
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "Management server port")
	cmd.Flags().StringVar(&cfg.Domain, "domain", "", "Authentication domain")
	cmd.Flags().StringVar(&cfg.Username, "username", cfg.Username, "Principal name (default: invoking user)")
	cmd.Flags().StringVar(&cfg.Password, "password", "", "Secret (prompted when blank; never stored)")
	cmd.Flags().StringVar(&timeoutStr, "timeout", "", "Request timeout (e.g. 30s, 2m)")
	cmd.Flags().BoolVar(&cfg.InsecureSkipVerify, "insecure-skip-verify", false, "Skip TLS certificate verification")

	// Dedup policy flags
	cmd.Flags().StringVar(&cfg.GroupBy, "group-by", cfg.GroupBy, "Duplication key (name or hardware-key)")
	cmd.Flags().IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "Act only on groups strictly larger than this")
	cmd.Flags().IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Inventory page size")

	// Deletion flags
	cmd.Flags().BoolVar(&doDelete, "delete", false, "Actually delete records (default is dry run)")
	cmd.Flags().StringVar(&deletePauseStr, "delete-pause", "", "Pause between deletions (e.g. 1300ms)")

	// Output flags
	cmd.Flags().StringVar(&cfg.OutputDir, "output", "", "Directory for a JSON run report (no file output when unset)")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Verbose logging")

	return cmd
}

// runSweep executes the sweep workflow
func runSweep(cfg *config.Config) error {
	startTime := time.Now()
	ctx := context.Background()

	if cfg.Verbose {
		logging.Init(true)
	}

	if cfg.Password == "" {
		password, err := promptPassword(cfg.Username)
		if err != nil {
			return err
		}
		cfg.Password = password
	}

	client, err := sepm.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	runner := run.New(cfg, client, os.Stdout, version)
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if err := reporter.New(cfg).Generate(result); err != nil {
		return fmt.Errorf("failed to report results: %w", err)
	}

	fmt.Printf("\n✅ Sweep complete in %s\n", time.Since(startTime).Round(time.Second))
	if cfg.DryRun && result.CandidatesMarked > 0 {
		fmt.Println("Re-run with --delete to remove the marked records.")
	}

	return nil
}

// promptPassword reads the secret from the terminal without echo. The
// secret is held in memory for the run only.
func promptPassword(username string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password is required: stdin is not a terminal, pass --password")
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}
