package config

import (
	"os/user"
	"time"
)

// Duplication keys recognized by --group-by.
const (
	GroupByName        = "name"
	GroupByHardwareKey = "hardware-key"
)

// Config holds all runtime configuration
type Config struct {
	// Server settings
	Server   string
	Port     int
	Domain   string
	Username string
	Password string

	// Transport settings
	RequestTimeout     time.Duration
	InsecureSkipVerify bool

	// Fetch settings
	PageSize int

	// Dedup policy
	GroupBy      string
	Threshold    int
	ExcludeNames []string

	// Deletion settings
	DryRun      bool
	DeletePause time.Duration

	// Output settings
	OutputDir string

	// Operational flags
	Verbose bool
}

// DefaultConfig returns sensible defaults. Deletions are disabled by
// default; live mode requires an explicit opt-out of dry-run.
func DefaultConfig() *Config {
	return &Config{
		Port:           8446,
		Username:       currentUsername(),
		RequestTimeout: 60 * time.Second,
		PageSize:       1000,
		GroupBy:        GroupByName,
		Threshold:      2,
		ExcludeNames:   []string{},
		DryRun:         true,
		DeletePause:    1300 * time.Millisecond,
		Verbose:        false,
	}
}

// ValidGroupBy reports whether value names a recognized duplication key.
func ValidGroupBy(value string) bool {
	return value == GroupByName || value == GroupByHardwareKey
}

func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}
