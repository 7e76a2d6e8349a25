package plinko

import (
	"context"
	"runtime"

	"github.com/yashsinghal2004/plinko-rgs/fairness"

	"golang.org/x/sync/errgroup"
)

// Failure names the first check a verification failed.
type Failure string

const (
	FailureNone              Failure = ""
	FailureCommitment        Failure = "commitment_mismatch"
	FailureCombinedSeed      Failure = "combined_seed_mismatch"
	FailurePegFieldHash      Failure = "peg_field_hash_mismatch"
	FailureBinIndex          Failure = "bin_index_mismatch"
	FailureInvalidDropColumn Failure = "invalid_drop_column"
)

// Claim is what a round published plus the server seed revealed afterwards.
// CombinedSeed is optional; when set it is checked against the recomputed value.
type Claim struct {
	CommitmentHash string `json:"commitmentHash" validate:"required"`
	ServerSeed     string `json:"serverSeed" validate:"required"`
	ClientSeed     string `json:"clientSeed" validate:"required"`
	Nonce          string `json:"nonce" validate:"required"`
	DropColumn     int    `json:"dropColumn" validate:"min=0,max=12"`
	CombinedSeed   string `json:"combinedSeed,omitempty"`
	PegFieldHash   string `json:"pegFieldHash" validate:"required"`
	BinIndex       int    `json:"binIndex" validate:"min=0,max=12"`
}

// Verification is the verdict on a Claim. A mismatch is reported here, never as
// an error. Recomputed values are filled in as far as the checks got.
type Verification struct {
	Verified       bool     `json:"verified"`
	Failure        Failure  `json:"failure,omitempty"`
	CommitmentHash string   `json:"commitmentHash"`
	CombinedSeed   string   `json:"combinedSeed,omitempty"`
	Outcome        *Outcome `json:"outcome,omitempty"`
}

// Verify recomputes the commitment, the combined seed and the outcome from the
// revealed seeds and compares them to what the round published.
func Verify(c Claim) Verification {
	v := Verification{CommitmentHash: fairness.CommitmentHash(c.ServerSeed, c.Nonce)}
	if v.CommitmentHash != c.CommitmentHash {
		v.Failure = FailureCommitment
		return v
	}
	v.CombinedSeed = fairness.CombinedSeed(c.ServerSeed, c.ClientSeed, c.Nonce)
	if c.CombinedSeed != "" && c.CombinedSeed != v.CombinedSeed {
		v.Failure = FailureCombinedSeed
		return v
	}
	out, err := ComputeOutcome(v.CombinedSeed, c.DropColumn)
	if err != nil {
		v.Failure = FailureInvalidDropColumn
		return v
	}
	v.Outcome = &out
	switch {
	case out.PegFieldHash != c.PegFieldHash:
		v.Failure = FailurePegFieldHash
	case out.BinIndex != c.BinIndex:
		v.Failure = FailureBinIndex
	default:
		v.Verified = true
	}
	return v
}

// VerifyAll verifies claims in parallel. Rounds share no state, so each claim
// runs on its own goroutine with its own PRNG. Results keep the input order.
// The only error is ctx's.
func VerifyAll(ctx context.Context, claims []Claim) ([]Verification, error) {
	out := make([]Verification, len(claims))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range claims {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Verify(claims[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
