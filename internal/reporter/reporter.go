// Package reporter renders the run summary for the console and,
// optionally, as a machine-readable JSON file.
package reporter

import (
	"github.com/endpointops/clientsweep/internal/models"
	"github.com/endpointops/clientsweep/pkg/config"
)

// Reporter interface for emitting run results
type Reporter interface {
	Generate(result *models.RunResult) error
}

// reporter implements the Reporter interface
type reporter struct {
	config *config.Config
}

// New creates a new reporter instance
func New(cfg *config.Config) Reporter {
	return &reporter{
		config: cfg,
	}
}

// Generate writes the summary to stdout and, when an output directory
// is configured, a report.json next to it.
func (r *reporter) Generate(result *models.RunResult) error {
	if err := WriteText(result); err != nil {
		return err
	}

	if r.config.OutputDir != "" {
		if err := WriteJSON(result, r.config); err != nil {
			return err
		}
	}

	return nil
}
