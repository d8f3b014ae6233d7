package usage

import "testing"

func TestNewRecord_PercentPresence(t *testing.T) {
	r := newRecord("gpt-4", 80, 100)
	if !r.HasLimit {
		t.Fatal("Expected a limit")
	}
	if r.PercentUsed != 80 {
		t.Errorf("Expected 80%% used, got %d", r.PercentUsed)
	}
	if r.DisplayName != "Premium" {
		t.Errorf("Expected display name 'Premium', got %q", r.DisplayName)
	}

	unlimited := newRecord("gpt-3.5-turbo", 12, 0)
	if unlimited.HasLimit {
		t.Error("Expected no limit when maxRequestUsage is 0")
	}
}

func TestNewRecord_PercentRounds(t *testing.T) {
	if r := newRecord("gpt-4", 1, 3); r.PercentUsed != 33 {
		t.Errorf("Expected 33, got %d", r.PercentUsed)
	}
	if r := newRecord("gpt-4", 2, 3); r.PercentUsed != 67 {
		t.Errorf("Expected 67, got %d", r.PercentUsed)
	}
}

func TestNewRecord_UnknownKeyPassesThrough(t *testing.T) {
	r := newRecord("o1-preview", 5, 50)
	if r.DisplayName != "o1-preview" {
		t.Errorf("Expected raw key as display name, got %q", r.DisplayName)
	}
}

func TestSortRecords_DescendingPercentAbsentLast(t *testing.T) {
	records := []Record{
		newRecord("a", 10, 0),  // no limit
		newRecord("b", 30, 100), // 30%
		newRecord("c", 90, 100), // 90%
		newRecord("d", 20, 0),  // no limit
		newRecord("e", 60, 100), // 60%
	}
	sortRecords(records)

	wantOrder := []string{"c", "e", "b", "a", "d"}
	for i, key := range wantOrder {
		if records[i].ModelKey != key {
			t.Fatalf("Position %d: expected %q, got %q (order %+v)", i, key, records[i].ModelKey, records)
		}
	}
}

func TestSortRecords_StableForEqualPercent(t *testing.T) {
	records := []Record{
		newRecord("first", 50, 100),
		newRecord("second", 5, 10),
	}
	sortRecords(records)
	if records[0].ModelKey != "first" || records[1].ModelKey != "second" {
		t.Errorf("Expected stable order for equal percentages, got %+v", records)
	}
}
