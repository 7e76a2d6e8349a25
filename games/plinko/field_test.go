package plinko

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

const vectorFieldHash = "0d8eb3e00eb18ef9b626e5129407791bf713430b884f9e3efbf300a063f4d783"

func TestGeneratePegField_Structure(t *testing.T) {
	field := GeneratePegField(NewXorshift32(vectorSeed))
	if len(field.Rows) != Rows {
		t.Fatalf("rows %d want %d", len(field.Rows), Rows)
	}
	total := 0
	for r, row := range field.Rows {
		if len(row) != r+1 {
			t.Errorf("row %d has %d pegs", r, len(row))
		}
		for p, peg := range row {
			if peg.LeftBias < 0.4 || peg.LeftBias > 0.6 {
				t.Errorf("row %d peg %d bias %v outside [0.4,0.6]", r, p, peg.LeftBias)
			}
			if Round6(peg.LeftBias) != peg.LeftBias {
				t.Errorf("row %d peg %d bias %v not rounded", r, p, peg.LeftBias)
			}
		}
		total += len(row)
	}
	if total != PegCount {
		t.Errorf("total pegs %d want %d", total, PegCount)
	}
}

func TestGeneratePegField_Vector(t *testing.T) {
	field := GeneratePegField(NewXorshift32(vectorSeed))
	want := [][]float64{
		{0.422123},
		{0.552503, 0.408786},
		{0.491574, 0.468780, 0.436540},
	}
	for r, row := range want {
		for p, w := range row {
			if got := field.Rows[r][p].LeftBias; math.Abs(got-w) > 1e-6 {
				t.Errorf("row %d peg %d = %v want %v", r, p, got, w)
			}
		}
	}
}

func TestGeneratePegField_ConsumesOneDrawPerPeg(t *testing.T) {
	a := NewXorshift32(vectorSeed)
	GeneratePegField(a)
	b := NewXorshift32(vectorSeed)
	for i := 0; i < PegCount; i++ {
		b.Next()
	}
	if a.Next() != b.Next() {
		t.Fatal("field generation should leave the stream after exactly PegCount draws")
	}
}

func TestPegField_CanonicalJSON(t *testing.T) {
	field := GeneratePegField(NewXorshift32(vectorSeed))
	got := string(field.CanonicalJSON())
	prefix := `{"rows":[[{"leftBias":0.422123}],[{"leftBias":0.552503},{"leftBias":0.408786}],[{"leftBias":0.491574},{"leftBias":0.46878},`
	if !strings.HasPrefix(got, prefix) {
		t.Errorf("canonical encoding starts %q", got[:len(prefix)])
	}
	if strings.ContainsAny(got, " \n\t") {
		t.Error("canonical encoding must not contain whitespace")
	}
	std, err := json.Marshal(field)
	if err != nil {
		t.Fatal(err)
	}
	if string(std) != got {
		t.Errorf("canonical encoding differs from encoding/json:\n%s\n%s", got, std)
	}
}

func TestPegField_Hash(t *testing.T) {
	field := GeneratePegField(NewXorshift32(vectorSeed))
	if got := field.Hash(); got != vectorFieldHash {
		t.Fatalf("hash %s want %s", got, vectorFieldHash)
	}
}
