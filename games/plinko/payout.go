package plinko

// payoutTable maps bin index to payout multiplier. Symmetric, lowest in the centre.
var payoutTable = [Bins]float64{1000, 100, 26, 9, 4, 2, 0.2, 2, 4, 9, 26, 100, 1000}

// PayoutMultiplier returns the multiplier for binIndex. binIndex must be in
// [0, Bins); SimulatePath never produces anything else, and an out-of-range
// index panics.
func PayoutMultiplier(binIndex int) float64 {
	return payoutTable[binIndex]
}

// PayoutTable returns a copy of the full table.
func PayoutTable() []float64 {
	out := make([]float64, Bins)
	copy(out, payoutTable[:])
	return out
}
