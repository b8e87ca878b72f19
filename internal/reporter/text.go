package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/endpointops/clientsweep/internal/models"
)

const (
	textANSIReset = "\x1b[0m"
	textANSIBold  = "\x1b[1m"
)

// WriteText writes a human-readable run summary to stdout.
func WriteText(result *models.RunResult) error {
	return writeText(result, os.Stdout)
}

func writeText(result *models.RunResult, out io.Writer) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}
	if out == nil {
		return fmt.Errorf("writer is nil")
	}

	rendered := renderTextSummary(result, supportsANSI(out))
	if _, err := io.WriteString(out, rendered); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func renderTextSummary(result *models.RunResult, useANSI bool) string {
	var b strings.Builder

	mode := "LIVE"
	if result.DryRun {
		mode = "DRY RUN"
	}

	b.WriteString("\n")
	writeTextSectionHeader(&b, "Sweep Summary", useANSI)
	fmt.Fprintf(&b, "Generated: %s\n", result.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Server: %s\n", result.Server)
	fmt.Fprintf(&b, "Mode: %s\n", mode)
	fmt.Fprintf(&b, "Duplication key: %s (threshold >%d)\n", result.GroupKey, result.Threshold)
	fmt.Fprintf(&b, "Records fetched: %d\n", result.TotalRecords)
	if result.ExcludedRecords > 0 {
		fmt.Fprintf(&b, "Records excluded: %d\n", result.ExcludedRecords)
	}
	fmt.Fprintf(&b, "Duplicate groups: %d\n", result.GroupsFound)
	fmt.Fprintf(&b, "Candidates marked: %d\n", result.CandidatesMarked)
	fmt.Fprintf(&b, "Records deleted: %d\n", result.RecordsDeleted)

	if failures := failedOutcomes(result); len(failures) > 0 {
		b.WriteString("\n")
		writeTextSectionHeader(&b, "Failures", useANSI)
		for _, o := range failures {
			fmt.Fprintf(&b, "- %s (id=%s): %s\n", o.Name, o.ID, o.Error)
		}
	}

	return b.String()
}

func failedOutcomes(result *models.RunResult) []models.DeleteOutcome {
	var failures []models.DeleteOutcome
	for _, o := range result.Outcomes {
		if o.Error != "" {
			failures = append(failures, o)
		}
	}
	return failures
}

func writeTextSectionHeader(b *strings.Builder, title string, useANSI bool) {
	header := title
	if useANSI {
		header = textANSIBold + title + textANSIReset
	}
	fmt.Fprintf(b, "%s\n", header)
	fmt.Fprintf(b, "%s\n", strings.Repeat("-", len(title)))
}

func supportsANSI(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
