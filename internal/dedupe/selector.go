package dedupe

import (
	"sort"

	"github.com/endpointops/clientsweep/internal/models"
)

// Select orders a group's members by last-check-in descending and marks
// the most recent for retention; every other member becomes a deletion
// candidate. Identical timestamps fall back to original fetch order
// (stable sort), so the first-encountered record wins the tie.
func Select(group models.DuplicateGroup) []models.Candidate {
	ordered := make([]models.ClientRecord, len(group.Records))
	copy(ordered, group.Records)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LastCheckin > ordered[j].LastCheckin
	})

	candidates := make([]models.Candidate, len(ordered))
	for i, rec := range ordered {
		candidates[i] = models.Candidate{Record: rec, Retain: i == 0}
	}
	return candidates
}
