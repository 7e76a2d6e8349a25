package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/yashsinghal2004/plinko-rgs"
	"github.com/yashsinghal2004/plinko-rgs/fairness"
	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
	"github.com/yashsinghal2004/plinko-rgs/round"
)

var errNotVerified = errors.New("round did not verify")

func main() {
	roundID := flag.String("round", "", "Verify a stored round by id (Postgres when DATABASE_URL is set, else -data-dir)")
	dataDir := flag.String("data-dir", "data", "Directory of the file round store")
	serverSeed := flag.String("server-seed", "", "Revealed server seed")
	clientSeed := flag.String("client-seed", "", "Client seed")
	nonce := flag.String("nonce", "", "Round nonce")
	dropColumn := flag.Int("drop-column", plinko.MaxDropColumn/2, "Drop column (0-12)")
	commitment := flag.String("commitment", "", "Published commitment hash")
	pegFieldHash := flag.String("peg-field-hash", "", "Published peg field hash")
	binIndex := flag.Int("bin-index", -1, "Published bin index")
	flag.Parse()

	var claim plinko.Claim
	if *roundID != "" {
		c, err := loadClaim(context.Background(), *roundID, *dataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load round: %v\n", err)
			os.Exit(1)
		}
		claim = c
	} else {
		if *serverSeed == "" || *clientSeed == "" || *nonce == "" {
			fmt.Fprintln(os.Stderr, "missing required -server-seed, -client-seed or -nonce argument")
			os.Exit(1)
		}
		claim = plinko.Claim{
			CommitmentHash: *commitment,
			ServerSeed:     *serverSeed,
			ClientSeed:     *clientSeed,
			Nonce:          *nonce,
			DropColumn:     *dropColumn,
			PegFieldHash:   *pegFieldHash,
			BinIndex:       *binIndex,
		}
	}

	if err := run(claim); err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		os.Exit(1)
	}
}

// run prints the recomputed round. With published values to compare against
// it prints the verdict and fails unless the round verifies.
func run(c plinko.Claim) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if c.CommitmentHash == "" || c.PegFieldHash == "" || c.BinIndex < 0 {
		combined := fairness.CombinedSeed(c.ServerSeed, c.ClientSeed, c.Nonce)
		out, err := plinko.ComputeOutcome(combined, c.DropColumn)
		if err != nil {
			return err
		}
		return enc.Encode(map[string]any{
			"commitmentHash":   fairness.CommitmentHash(c.ServerSeed, c.Nonce),
			"combinedSeed":     combined,
			"pegFieldHash":     out.PegFieldHash,
			"binIndex":         out.BinIndex,
			"payoutMultiplier": plinko.PayoutMultiplier(out.BinIndex),
			"path":             out.Path,
		})
	}

	v := plinko.Verify(c)
	v.Outcome = nil
	if err := enc.Encode(v); err != nil {
		return err
	}
	if !v.Verified {
		return fmt.Errorf("%w: %s", errNotVerified, v.Failure)
	}
	return nil
}

func loadClaim(ctx context.Context, id, dataDir string) (plinko.Claim, error) {
	db, err := rgs.GetDB()
	if err != nil {
		return plinko.Claim{}, fmt.Errorf("connect db: %w", err)
	}
	var repo round.Repository
	if db != nil {
		defer db.Close()
		repo = round.NewPGStore(db)
	} else {
		repo = round.NewStore(dataDir)
	}
	r, err := repo.Get(ctx, id)
	if err != nil {
		return plinko.Claim{}, err
	}
	if r.Status != round.StatusRevealed {
		return plinko.Claim{}, fmt.Errorf("round %s is %s; the server seed is not revealed yet", id, r.Status)
	}
	return plinko.Claim{
		CommitmentHash: r.CommitmentHash,
		ServerSeed:     r.ServerSeed,
		ClientSeed:     r.ClientSeed,
		Nonce:          r.Nonce,
		DropColumn:     r.DropColumn,
		CombinedSeed:   r.CombinedSeed,
		PegFieldHash:   r.PegFieldHash,
		BinIndex:       r.BinIndex,
	}, nil
}
