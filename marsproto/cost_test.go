package marsproto

import "testing"

func TestCostAddSumsCounters(t *testing.T) {
	a := NewCost()
	a.OnLineBytes = 100
	a.Tapes = 2

	b := NewCost()
	b.OnLineBytes = 50
	b.Disks = 3

	a.Add(b)

	if a.OnLineBytes != 150 {
		t.Errorf("OnLineBytes = %d, want 150", a.OnLineBytes)
	}
	if a.Tapes != 2 {
		t.Errorf("Tapes = %d, want 2", a.Tapes)
	}
	if a.Disks != 3 {
		t.Errorf("Disks = %d, want 3", a.Disks)
	}
}

func TestCostAddUnionsStringSets(t *testing.T) {
	a := NewCost()
	a.Media["tape1"] = struct{}{}

	b := NewCost()
	b.Media["tape1"] = struct{}{}
	b.Media["tape2"] = struct{}{}
	b.Nodes["node-a"] = struct{}{}

	a.Add(b)

	if len(a.Media) != 2 {
		t.Errorf("len(Media) = %d, want 2", len(a.Media))
	}
	if _, ok := a.Media["tape2"]; !ok {
		t.Error("Media should contain tape2 after union")
	}
	if len(a.Nodes) != 1 {
		t.Errorf("len(Nodes) = %d, want 1", len(a.Nodes))
	}
}

func TestCostAddLeavesOtherUnmodified(t *testing.T) {
	a := NewCost()
	b := NewCost()
	b.Layout = 7
	b.Libraries["libA"] = struct{}{}

	a.Add(b)

	if b.Layout != 7 {
		t.Errorf("other.Layout mutated: got %d, want 7", b.Layout)
	}
	if len(b.Libraries) != 1 {
		t.Errorf("other.Libraries mutated: got %d entries, want 1", len(b.Libraries))
	}
}
