package plinko

// Decision is the direction taken at a peg.
type Decision string

const (
	Left  Decision = "left"
	Right Decision = "right"
)

// centerColumn is the structural middle of the board, floor(Rows/2).
const centerColumn = Rows / 2

const dropColumnStep = 0.01

// PathDecision records one row of the descent.
type PathDecision struct {
	Row         int      `json:"row"`
	PegIndex    int      `json:"pegIndex"`
	Decision    Decision `json:"decision"`
	RandomValue float64  `json:"randomValue"`
	Bias        float64  `json:"bias"`
}

// SimulatePath walks field from the top, drawing one value per row from prng,
// which must continue the stream used to generate field. The drop column shifts
// every peg's left bias by (dropColumn-6)*0.01. It returns the decisions and the
// landing bin, which equals the number of right turns.
//
// dropColumn must already be validated; ComputeOutcome does that.
func SimulatePath(field PegField, dropColumn int, prng *Xorshift32) ([]PathDecision, int) {
	adjust := float64(dropColumn-centerColumn) * dropColumnStep
	path := make([]PathDecision, 0, Rows)
	pos := 0
	for r := 0; r < Rows; r++ {
		// pos counts right turns so far and never exceeds r.
		pegIndex := min(pos, r)
		bias := clamp01(field.Rows[r][pegIndex].LeftBias + adjust)

		rnd := prng.Next()
		d := Right
		if rnd < bias {
			d = Left
		}
		path = append(path, PathDecision{
			Row:         r,
			PegIndex:    pegIndex,
			Decision:    d,
			RandomValue: rnd,
			Bias:        Round6(bias),
		})
		if d == Right {
			pos++
		}
	}
	return path, pos
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
