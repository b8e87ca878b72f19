package models

import "time"

// RunResult is the complete outcome of one sweep run. It is reported at
// the end of the run and never persisted unless an output directory is
// configured.
type RunResult struct {
	Tool        string    `json:"tool"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	Server      string    `json:"server"`
	GroupKey    string    `json:"group_key"`
	Threshold   int       `json:"threshold"`
	DryRun      bool      `json:"dry_run"`

	TotalRecords     int `json:"total_records"`
	ExcludedRecords  int `json:"excluded_records"`
	GroupsFound      int `json:"groups_found"`
	CandidatesMarked int `json:"candidates_marked"`
	RecordsDeleted   int `json:"records_deleted"`

	Outcomes []DeleteOutcome `json:"outcomes,omitempty"`
}

// DeleteOutcome records the fate of a single non-retained candidate.
type DeleteOutcome struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	HardwareKey string    `json:"hardware_key,omitempty"`
	LastCheckin time.Time `json:"last_checkin"`
	Deleted     bool      `json:"deleted"`
	DryRun      bool      `json:"dry_run"`
	Error       string    `json:"error,omitempty"`
}
