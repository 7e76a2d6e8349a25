package plinko

import "testing"

func TestPayoutMultiplier_Symmetric(t *testing.T) {
	for i := 0; i < Bins; i++ {
		if a, b := PayoutMultiplier(i), PayoutMultiplier(Bins-1-i); a != b {
			t.Errorf("bin %d = %v, bin %d = %v", i, a, Bins-1-i, b)
		}
	}
}

func TestPayoutMultiplier_CenterLowest(t *testing.T) {
	if PayoutMultiplier(6) >= PayoutMultiplier(0) {
		t.Fatal("center bin should pay less than the edge")
	}
	for i := 0; i < Bins; i++ {
		if PayoutMultiplier(i) < PayoutMultiplier(6) {
			t.Errorf("bin %d pays less than the center", i)
		}
	}
}

func TestPayoutTable_Copy(t *testing.T) {
	tbl := PayoutTable()
	if len(tbl) != Bins || tbl[0] != 1000 || tbl[6] != 0.2 {
		t.Fatalf("table %v", tbl)
	}
	tbl[0] = 1
	if PayoutMultiplier(0) != 1000 {
		t.Fatal("PayoutTable must return a copy")
	}
}
