// Package run drives one sweep end to end: authenticate, fetch, group,
// process, finalize. One pass, strictly sequential, no retries: every
// stage failure aborts the run.
package run

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/endpointops/clientsweep/internal/dedupe"
	"github.com/endpointops/clientsweep/internal/executor"
	"github.com/endpointops/clientsweep/internal/inventory"
	"github.com/endpointops/clientsweep/internal/models"
	"github.com/endpointops/clientsweep/pkg/config"
)

// Phase names one stage of the run's state machine.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAuthenticating Phase = "authenticating"
	PhaseFetching       Phase = "fetching"
	PhaseGrouping       Phase = "grouping"
	PhaseNoDuplicates   Phase = "no-duplicates"
	PhaseProcessing     Phase = "processing"
	PhaseFinalizing     Phase = "finalizing"
)

// API is the full management-server surface the run needs.
type API interface {
	Authenticate(ctx context.Context, username, password string) error
	ListPage(ctx context.Context, pageIndex, pageSize int) (*models.Page, error)
	DeleteRecord(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// Runner owns all run-wide state: the accumulated inventory, counters,
// and the current phase. Nothing here is shared across goroutines.
type Runner struct {
	cfg     *config.Config
	api     API
	out     io.Writer
	version string
	phase   Phase
}

// New creates a runner for one sweep.
func New(cfg *config.Config, api API, out io.Writer, version string) *Runner {
	return &Runner{
		cfg:     cfg,
		api:     api,
		out:     out,
		version: version,
		phase:   PhaseIdle,
	}
}

// Phase returns the stage the run last entered.
func (r *Runner) Phase() Phase {
	return r.phase
}

// Run executes the sweep. On any fatal error the result is nil; fatal
// errors never produce a partial summary. Session teardown is
// best-effort and runs even when a stage fails after authentication.
func (r *Runner) Run(ctx context.Context) (*models.RunResult, error) {
	r.phase = PhaseAuthenticating
	fmt.Fprintf(r.out, "🔐 Authenticating to %s as %s...\n", r.cfg.Server, r.cfg.Username)
	if err := r.api.Authenticate(ctx, r.cfg.Username, r.cfg.Password); err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	defer r.finalize(ctx)

	r.phase = PhaseFetching
	fmt.Fprintf(r.out, "📥 Fetching inventory (page size %d)...\n", r.cfg.PageSize)
	fetcher := inventory.New(r.api, r.cfg.PageSize)
	records, err := fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory fetch failed: %w", err)
	}
	fmt.Fprintf(r.out, "✓ Fetched %d records\n", len(records))

	kept, excluded := r.applyExclusions(records)

	r.phase = PhaseGrouping
	groups := dedupe.Group(kept, r.cfg.GroupBy, r.cfg.Threshold)

	result := &models.RunResult{
		Tool:            "clientsweep",
		Version:         r.version,
		GeneratedAt:     time.Now().UTC(),
		Server:          r.cfg.Server,
		GroupKey:        r.cfg.GroupBy,
		Threshold:       r.cfg.Threshold,
		DryRun:          r.cfg.DryRun,
		TotalRecords:    len(records),
		ExcludedRecords: excluded,
		GroupsFound:     len(groups),
	}

	if len(groups) == 0 {
		r.phase = PhaseNoDuplicates
		fmt.Fprintf(r.out, "✓ No duplicate groups above threshold %d\n", r.cfg.Threshold)
		return result, nil
	}

	r.phase = PhaseProcessing
	fmt.Fprintf(r.out, "✓ Found %d duplicate groups above threshold %d\n", len(groups), r.cfg.Threshold)
	if r.cfg.DryRun {
		fmt.Fprintf(r.out, "🏃 Dry run mode - no records will be deleted\n")
	}

	ex := executor.New(r.api, r.cfg, r.out)
	for _, group := range groups {
		candidates := dedupe.Select(group)
		outcomes, err := ex.ProcessGroup(ctx, group.Key, candidates)
		result.Outcomes = append(result.Outcomes, outcomes...)
		for _, o := range outcomes {
			result.CandidatesMarked++
			if o.Deleted {
				result.RecordsDeleted++
			}
		}
		if err != nil {
			// Fail fast: remaining candidates in this and later groups
			// stay untouched, and no summary is produced.
			return nil, err
		}
	}

	return result, nil
}

// finalize tears the session down. Its failure never changes the run's
// primary outcome.
func (r *Runner) finalize(ctx context.Context) {
	r.phase = PhaseFinalizing
	if err := r.api.Logout(ctx); err != nil {
		slog.Warn("failed to invalidate session", slog.String("error", err.Error()))
	}
}

func (r *Runner) applyExclusions(records []models.ClientRecord) (kept []models.ClientRecord, excluded int) {
	if len(r.cfg.ExcludeNames) == 0 {
		return records, 0
	}

	kept = make([]models.ClientRecord, 0, len(records))
	for _, rec := range records {
		if r.cfg.IsNameExcluded(rec.Name) {
			excluded++
			continue
		}
		kept = append(kept, rec)
	}

	if excluded > 0 {
		fmt.Fprintf(r.out, "✓ Excluded %d records by name pattern\n", excluded)
	}
	return kept, excluded
}
