package dedupe

import (
	"testing"

	"github.com/endpointops/clientsweep/internal/models"
	"github.com/endpointops/clientsweep/pkg/config"
)

func rec(id, name, hwkey string, checkin int64) models.ClientRecord {
	return models.ClientRecord{ID: id, Name: name, HardwareKey: hwkey, LastCheckin: checkin}
}

func TestGroupThresholdIsStrict(t *testing.T) {
	records := []models.ClientRecord{
		rec("a1", "HOST-A", "hw-a1", 100),
		rec("a2", "HOST-A", "hw-a2", 300),
		rec("a3", "HOST-A", "hw-a3", 200),
		rec("b1", "HOST-B", "hw-b1", 400),
		rec("b2", "HOST-B", "hw-b2", 500),
		rec("c1", "HOST-C", "hw-c1", 600),
	}

	groups := Group(records, config.GroupByName, 2)

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 (pairs and singletons stay untouched)", len(groups))
	}
	if groups[0].Key != "HOST-A" {
		t.Fatalf("group key = %q, want HOST-A", groups[0].Key)
	}
	if len(groups[0].Records) != 3 {
		t.Fatalf("group size = %d, want 3", len(groups[0].Records))
	}
}

func TestGroupIsCaseSensitive(t *testing.T) {
	records := []models.ClientRecord{
		rec("a1", "host-a", "", 1),
		rec("a2", "HOST-A", "", 2),
		rec("a3", "HOST-A", "", 3),
		rec("a4", "HOST-A", "", 4),
	}

	groups := Group(records, config.GroupByName, 2)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Records) != 3 {
		t.Fatalf("group size = %d, want 3 (case variants are distinct keys)", len(groups[0].Records))
	}
}

func TestGroupByHardwareKey(t *testing.T) {
	records := []models.ClientRecord{
		rec("a1", "HOST-A", "hw-shared", 100),
		rec("a2", "HOST-B", "hw-shared", 200),
		rec("a3", "HOST-C", "hw-shared", 300),
		rec("a4", "HOST-D", "hw-other", 400),
	}

	groups := Group(records, config.GroupByHardwareKey, 2)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Key != "hw-shared" {
		t.Fatalf("group key = %q, want hw-shared", groups[0].Key)
	}
}

func TestGroupSkipsEmptyKeys(t *testing.T) {
	records := []models.ClientRecord{
		rec("a1", "", "", 1),
		rec("a2", "", "", 2),
		rec("a3", "", "", 3),
	}

	if groups := Group(records, config.GroupByName, 2); len(groups) != 0 {
		t.Fatalf("expected no groups for empty keys, got %v", groups)
	}
}

func TestGroupPreservesFetchOrder(t *testing.T) {
	records := []models.ClientRecord{
		rec("b1", "HOST-B", "", 1),
		rec("a1", "HOST-A", "", 1),
		rec("b2", "HOST-B", "", 2),
		rec("a2", "HOST-A", "", 2),
		rec("b3", "HOST-B", "", 3),
		rec("a3", "HOST-A", "", 3),
	}

	groups := Group(records, config.GroupByName, 2)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key != "HOST-B" || groups[1].Key != "HOST-A" {
		t.Fatalf("group order = [%s %s], want first-appearance order [HOST-B HOST-A]",
			groups[0].Key, groups[1].Key)
	}
	if groups[0].Records[0].ID != "b1" || groups[0].Records[2].ID != "b3" {
		t.Fatalf("members not in fetch order: %+v", groups[0].Records)
	}
}

func TestGroupEmptyInventory(t *testing.T) {
	if groups := Group(nil, config.GroupByName, 2); len(groups) != 0 {
		t.Fatalf("expected no groups, got %v", groups)
	}
}
