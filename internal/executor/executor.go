// Package executor carries out the deletion decisions made by the
// dedupe engine, honoring dry-run mode and the server's rate ceiling.
package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/endpointops/clientsweep/internal/models"
	"github.com/endpointops/clientsweep/pkg/config"
)

// Deleter is the single destructive operation the executor needs.
type Deleter interface {
	DeleteRecord(ctx context.Context, id string) error
}

// Executor issues delete requests for non-retained candidates, strictly
// sequentially, aborting the whole run on the first failure. Partial
// unknown state across a large batch is worse than an incomplete sweep.
type Executor struct {
	deleter Deleter
	pacer   *Pacer
	dryRun  bool
	out     io.Writer
}

// New creates an executor. In dry-run mode the deleter is never called.
func New(deleter Deleter, cfg *config.Config, out io.Writer) *Executor {
	return &Executor{
		deleter: deleter,
		pacer:   NewPacer(cfg.DeletePause),
		dryRun:  cfg.DryRun,
		out:     out,
	}
}

// ProcessGroup walks one group's candidates in their selected order.
// The retained record is reported; every other record is deleted (or,
// in dry-run mode, only reported). A delete failure returns immediately
// with the outcomes recorded so far; callers must not continue with
// remaining groups.
func (e *Executor) ProcessGroup(ctx context.Context, key string, candidates []models.Candidate) ([]models.DeleteOutcome, error) {
	fmt.Fprintf(e.out, "\nGroup %q (%d records):\n", key, len(candidates))

	outcomes := make([]models.DeleteOutcome, 0, len(candidates))
	for _, candidate := range candidates {
		rec := candidate.Record

		if candidate.Retain {
			fmt.Fprintf(e.out, "  keep    %s\n", describeRecord(rec))
			continue
		}

		outcome := models.DeleteOutcome{
			ID:          rec.ID,
			Name:        rec.Name,
			HardwareKey: rec.HardwareKey,
			LastCheckin: rec.CheckinTime(),
			DryRun:      e.dryRun,
		}

		if e.dryRun {
			fmt.Fprintf(e.out, "  remove  %s (dry run)\n", describeRecord(rec))
			outcomes = append(outcomes, outcome)
			continue
		}

		if err := e.deleter.DeleteRecord(ctx, rec.ID); err != nil {
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)
			slog.Error("delete failed, aborting run",
				slog.String("id", rec.ID),
				slog.String("name", rec.Name),
				slog.String("error", err.Error()),
			)
			return outcomes, fmt.Errorf("failed to delete record %s: %w", rec.ID, err)
		}

		outcome.Deleted = true
		outcomes = append(outcomes, outcome)
		fmt.Fprintf(e.out, "  deleted %s\n", describeRecord(rec))

		// The pause follows every deletion, including the last one.
		if err := e.pacer.Wait(ctx); err != nil {
			return outcomes, fmt.Errorf("canceled while pacing deletes: %w", err)
		}
	}

	return outcomes, nil
}

func describeRecord(rec models.ClientRecord) string {
	return fmt.Sprintf("%s (id=%s, hwkey=%s, last checkin=%s)",
		rec.Name, rec.ID, rec.HardwareKey,
		rec.CheckinTime().UTC().Format(time.RFC3339))
}
