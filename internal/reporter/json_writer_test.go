package reporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/endpointops/clientsweep/internal/models"
	"github.com/endpointops/clientsweep/pkg/config"
)

func TestWriteJSONRoundTrips(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()

	result := sampleResult()
	result.Outcomes = []models.DeleteOutcome{
		{ID: "a1", Name: "HOST-A", DryRun: true},
	}

	if err := WriteJSON(result, cfg); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "report.json"))
	if err != nil {
		t.Fatalf("failed to read report.json: %v", err)
	}

	var got models.RunResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report.json is not valid JSON: %v", err)
	}
	if got.Server != result.Server || got.GroupsFound != result.GroupsFound {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
	if len(got.Outcomes) != 1 || got.Outcomes[0].ID != "a1" {
		t.Fatalf("unexpected outcomes: %+v", got.Outcomes)
	}
}

func TestWriteJSONCreatesOutputDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "nested", "out")

	if err := WriteJSON(sampleResult(), cfg); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "report.json")); err != nil {
		t.Fatalf("report.json missing: %v", err)
	}
}

func TestGenerateSkipsJSONWithoutOutputDir(t *testing.T) {
	cfg := config.DefaultConfig()
	rep := New(cfg)

	// stdout-only path; must not error without an output directory.
	if err := rep.Generate(sampleResult()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}
