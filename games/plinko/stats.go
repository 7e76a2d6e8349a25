package plinko

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Stats summarises many drops from one column.
type Stats struct {
	Rounds      int         `json:"rounds"`
	DropColumn  int         `json:"drop_column"`
	BinCounts   [Bins]int64 `json:"bin_counts"`
	ComputedRTP float64     `json:"computed_rtp"`
	HitRate     float64     `json:"hit_rate"`
	Variance    float64     `json:"variance"`
}

// Simulate computes the outcome of every combined seed for dropColumn and
// aggregates the payout distribution. HitRate is the share of drops paying at
// least the stake back.
func Simulate(ctx context.Context, combinedSeeds []string, dropColumn int) (Stats, error) {
	if !ValidDropColumn(dropColumn) {
		return Stats{}, fmt.Errorf("plinko: %w (got %d)", ErrInvalidDropColumn, dropColumn)
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > len(combinedSeeds) {
		workers = len(combinedSeeds)
	}
	partial := make([][Bins]int64, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < len(combinedSeeds); i += workers {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				out, err := ComputeOutcome(combinedSeeds[i], dropColumn)
				if err != nil {
					return err
				}
				partial[w][out.BinIndex]++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	st := Stats{Rounds: len(combinedSeeds), DropColumn: dropColumn}
	for _, p := range partial {
		for b, n := range p {
			st.BinCounts[b] += n
		}
	}
	if st.Rounds == 0 {
		return st, nil
	}
	var sum, sumSq float64
	var hits int64
	for b, n := range st.BinCounts {
		m := PayoutMultiplier(b)
		sum += m * float64(n)
		sumSq += m * m * float64(n)
		if m >= 1 {
			hits += n
		}
	}
	total := float64(st.Rounds)
	st.ComputedRTP = sum / total
	st.HitRate = float64(hits) / total
	st.Variance = sumSq/total - st.ComputedRTP*st.ComputedRTP
	return st, nil
}
