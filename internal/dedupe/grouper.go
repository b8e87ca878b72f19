// Package dedupe holds the deduplication decision engine: grouping
// records by duplication key and selecting which member of each group
// to retain.
package dedupe

import (
	"github.com/endpointops/clientsweep/internal/models"
	"github.com/endpointops/clientsweep/pkg/config"
)

// Key extracts the duplication key from a record.
func Key(record models.ClientRecord, groupBy string) string {
	if groupBy == config.GroupByHardwareKey {
		return record.HardwareKey
	}
	return record.Name
}

// Group partitions records by duplication key and returns only the
// groups whose size is strictly greater than threshold. Groups at or
// below threshold are excluded entirely: two same-named clients are
// common during legitimate reinstall windows and must not be
// auto-collapsed. Keys follow the server's collation; no normalization
// is applied. Group order follows first appearance in the fetch
// sequence, and members keep fetch order within each group.
func Group(records []models.ClientRecord, groupBy string, threshold int) []models.DuplicateGroup {
	byKey := make(map[string][]models.ClientRecord)
	var keyOrder []string

	for _, rec := range records {
		key := Key(rec, groupBy)
		if key == "" {
			continue
		}
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], rec)
	}

	var groups []models.DuplicateGroup
	for _, key := range keyOrder {
		members := byKey[key]
		if len(members) <= threshold {
			continue
		}
		groups = append(groups, models.DuplicateGroup{Key: key, Records: members})
	}

	return groups
}
