// Package cache keeps recently computed Plinko outcomes. Outcomes are pure
// functions of (combined seed, drop column), so entries never go stale; the TTL
// only bounds memory.
package cache

import (
	"context"
	"strconv"

	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
)

// Outcomes is an outcome cache keyed by combined seed and drop column.
type Outcomes interface {
	Get(ctx context.Context, combinedSeed string, dropColumn int) (plinko.Outcome, bool)
	Set(ctx context.Context, combinedSeed string, dropColumn int, out plinko.Outcome)
}

// Compute returns the cached outcome or computes and stores it. A nil cache
// always computes.
func Compute(ctx context.Context, c Outcomes, combinedSeed string, dropColumn int) (plinko.Outcome, error) {
	if c != nil {
		if out, ok := c.Get(ctx, combinedSeed, dropColumn); ok {
			return out, nil
		}
	}
	out, err := plinko.ComputeOutcome(combinedSeed, dropColumn)
	if err != nil {
		return plinko.Outcome{}, err
	}
	if c != nil {
		c.Set(ctx, combinedSeed, dropColumn, out)
	}
	return out, nil
}

func key(combinedSeed string, dropColumn int) string {
	return "plinko:outcome:" + combinedSeed + ":" + strconv.Itoa(dropColumn)
}
