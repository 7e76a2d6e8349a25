package plinko

import (
	"strconv"

	"github.com/yashsinghal2004/plinko-rgs/fairness"
)

const (
	// Rows is the number of peg rows a ball falls through.
	Rows = 12
	// Bins is the number of landing slots below the last row.
	Bins = Rows + 1
	// PegCount is the number of pegs in the triangular field (12th triangular number).
	PegCount = Rows * (Rows + 1) / 2

	biasSpread = 0.2
)

// Peg is a single peg and its probability of deflecting the ball left.
type Peg struct {
	LeftBias float64 `json:"leftBias"`
}

// PegField is the triangular peg grid: row r holds r+1 pegs.
type PegField struct {
	Rows [][]Peg `json:"rows"`
}

// GeneratePegField draws one value per peg, row by row and left to right, and
// maps it into [0.4, 0.6]. It consumes PegCount draws from prng and leaves the
// stream where path simulation must continue.
func GeneratePegField(prng *Xorshift32) PegField {
	rows := make([][]Peg, Rows)
	for r := 0; r < Rows; r++ {
		row := make([]Peg, r+1)
		for p := range row {
			draw := prng.Next()
			row[p] = Peg{LeftBias: Round6(0.5 + (draw-0.5)*biasSpread)}
		}
		rows[r] = row
	}
	return PegField{Rows: rows}
}

// CanonicalJSON is the byte encoding hashed into pegFieldHash:
//
//	{"rows":[[{"leftBias":0.422123}],[{"leftBias":0.552503},{"leftBias":0.408786}],...]}
//
// No whitespace, and every bias is written as the shortest decimal that round-trips
// to its float64 value, without exponent or trailing zeros. This matches
// ECMAScript JSON.stringify byte for byte for biases in [0.4, 0.6].
func (f PegField) CanonicalJSON() []byte {
	b := make([]byte, 0, 24*PegCount+16)
	b = append(b, `{"rows":[`...)
	for r, row := range f.Rows {
		if r > 0 {
			b = append(b, ',')
		}
		b = append(b, '[')
		for p, peg := range row {
			if p > 0 {
				b = append(b, ',')
			}
			b = append(b, `{"leftBias":`...)
			b = strconv.AppendFloat(b, peg.LeftBias, 'f', -1, 64)
			b = append(b, '}')
		}
		b = append(b, ']')
	}
	b = append(b, "]}"...)
	return b
}

// Hash returns the hex SHA-256 of the canonical encoding.
func (f PegField) Hash() string {
	return fairness.DigestHex(string(f.CanonicalJSON()))
}
