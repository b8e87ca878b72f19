package models

import "time"

// epochMillisFloor separates second-resolution epochs from
// millisecond-resolution ones. The inventory API reports check-in times
// as bare integers and does not document the unit; anything above this
// magnitude can only be milliseconds.
const epochMillisFloor = 1_000_000_000_000

// ClientRecord is one inventory entry as reported by the management server.
// Records are read-only from this tool's perspective except for deletion,
// which is terminal server-side.
type ClientRecord struct {
	ID          string `json:"uniqueId"`
	Name        string `json:"computerName"`
	HardwareKey string `json:"hardwareKey"`
	LastCheckin int64  `json:"lastUpdateTime"`
}

// CheckinTime decodes the raw last-check-in epoch, resolving the
// seconds/milliseconds ambiguity by magnitude.
func (r ClientRecord) CheckinTime() time.Time {
	if r.LastCheckin > epochMillisFloor {
		return time.UnixMilli(r.LastCheckin)
	}
	return time.Unix(r.LastCheckin, 0)
}

// Page is one page of the inventory listing endpoint.
type Page struct {
	Content       []ClientRecord `json:"content"`
	TotalElements int            `json:"totalElements"`
}

// DuplicateGroup is a transient, in-memory grouping of records sharing
// the same duplication key. Records keep their original fetch order.
type DuplicateGroup struct {
	Key     string
	Records []ClientRecord
}

// Candidate is a group member after retention selection. Exactly one
// candidate per group carries Retain.
type Candidate struct {
	Record ClientRecord
	Retain bool
}
