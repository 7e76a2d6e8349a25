package plinko

import (
	"errors"
	"reflect"
	"regexp"
	"testing"
)

var hex64 = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestComputeOutcome_EndToEnd(t *testing.T) {
	out, err := ComputeOutcome(vectorSeed, 6)
	if err != nil {
		t.Fatal(err)
	}
	if out.BinIndex < 0 || out.BinIndex > 12 {
		t.Fatalf("bin %d out of range", out.BinIndex)
	}
	if len(out.Path) != Rows {
		t.Fatalf("path length %d", len(out.Path))
	}
	if len(out.PegField.Rows) != Rows {
		t.Fatalf("field rows %d", len(out.PegField.Rows))
	}
	if !hex64.MatchString(out.PegFieldHash) {
		t.Fatalf("field hash %q", out.PegFieldHash)
	}

	again, err := ComputeOutcome(vectorSeed, 6)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, again) {
		t.Fatal("same inputs should give identical outcomes")
	}
}

func TestComputeOutcome_Vectors(t *testing.T) {
	want := map[int]int{0: 7, 6: 6, 12: 5}
	for drop, bin := range want {
		out, err := ComputeOutcome(vectorSeed, drop)
		if err != nil {
			t.Fatal(err)
		}
		if out.BinIndex != bin {
			t.Errorf("drop %d: bin %d want %d", drop, out.BinIndex, bin)
		}
		// The field depends only on the seed.
		if out.PegFieldHash != vectorFieldHash {
			t.Errorf("drop %d: field hash %s", drop, out.PegFieldHash)
		}
	}
}

func TestComputeOutcome_DropColumnShiftsBias(t *testing.T) {
	a, _ := ComputeOutcome(vectorSeed, 0)
	b, _ := ComputeOutcome(vectorSeed, 12)
	if a.Path[0].Bias == b.Path[0].Bias {
		t.Fatal("drop column should change the effective bias")
	}
}

func TestComputeOutcome_InvalidDropColumn(t *testing.T) {
	for _, d := range []int{-1, 13, 100} {
		_, err := ComputeOutcome(vectorSeed, d)
		if !errors.Is(err, ErrInvalidDropColumn) {
			t.Errorf("drop %d: err %v", d, err)
		}
	}
}

func TestComputeOutcome_RangeAcrossSeeds(t *testing.T) {
	seeds := []string{"", "zz", "00000000", "ffffffff", vectorSeed, "deadbeef" + vectorSeed[8:]}
	for _, s := range seeds {
		for d := 0; d <= MaxDropColumn; d++ {
			out, err := ComputeOutcome(s, d)
			if err != nil {
				t.Fatal(err)
			}
			if out.BinIndex < 0 || out.BinIndex >= Bins || len(out.Path) != Rows {
				t.Errorf("seed %q drop %d: bin %d path %d", s, d, out.BinIndex, len(out.Path))
			}
		}
	}
}
