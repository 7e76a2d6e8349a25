// Package plinko is the provably-fair Plinko outcome engine. Every function is a
// pure function of its arguments: a combined seed and a drop column fix the peg
// field, the path and the landing bin forever.
package plinko

import (
	"errors"
	"fmt"
)

// MaxDropColumn is the highest column a ball may be dropped from.
const MaxDropColumn = Rows

var ErrInvalidDropColumn = errors.New("dropColumn must be between 0 and 12")

// Outcome is the full result of one drop.
type Outcome struct {
	BinIndex     int            `json:"binIndex"`
	PegField     PegField       `json:"pegField"`
	PegFieldHash string         `json:"pegFieldHash"`
	Path         []PathDecision `json:"path"`
}

// ValidDropColumn reports whether d is in [0, MaxDropColumn].
func ValidDropColumn(d int) bool {
	return d >= 0 && d <= MaxDropColumn
}

// ComputeOutcome derives the outcome for combinedSeed and dropColumn. One PRNG
// is created per call and shared by field generation (78 draws) and path
// simulation (12 draws), in that order.
func ComputeOutcome(combinedSeed string, dropColumn int) (Outcome, error) {
	if !ValidDropColumn(dropColumn) {
		return Outcome{}, fmt.Errorf("plinko: %w (got %d)", ErrInvalidDropColumn, dropColumn)
	}
	prng := NewXorshift32(combinedSeed)
	field := GeneratePegField(prng)
	path, bin := SimulatePath(field, dropColumn, prng)
	return Outcome{
		BinIndex:     bin,
		PegField:     field,
		PegFieldHash: field.Hash(),
		Path:         path,
	}, nil
}
