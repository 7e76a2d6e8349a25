package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/yashsinghal2004/plinko-rgs/fairness"
	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
)

func main() {
	rounds := flag.Int("rounds", 100000, "Number of simulated drops per column")
	dropColumn := flag.Int("drop-column", -1, "Drop column to simulate (default: all columns)")
	clientSeed := flag.String("client-seed", "rtpsim", "Client seed mixed into every round")
	flag.Parse()

	if *rounds <= 0 {
		fmt.Fprintln(os.Stderr, "-rounds must be positive")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *rounds, *dropColumn, *clientSeed); err != nil {
		fmt.Fprintf(os.Stderr, "simulation failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, rounds, dropColumn int, clientSeed string) error {
	seeds, err := combinedSeeds(rounds, clientSeed)
	if err != nil {
		return err
	}
	columns := []int{dropColumn}
	if dropColumn < 0 {
		columns = columns[:0]
		for c := 0; c <= plinko.MaxDropColumn; c++ {
			columns = append(columns, c)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, c := range columns {
		st, err := plinko.Simulate(ctx, seeds, c)
		if err != nil {
			return err
		}
		if err := enc.Encode(st); err != nil {
			return err
		}
	}
	return nil
}

// combinedSeeds draws fresh server seeds and nonces the way live rounds do.
func combinedSeeds(n int, clientSeed string) ([]string, error) {
	seeds := make([]string, n)
	for i := range seeds {
		serverSeed, err := fairness.NewServerSeed()
		if err != nil {
			return nil, err
		}
		nonce, err := fairness.NewNonce()
		if err != nil {
			return nil, err
		}
		seeds[i] = fairness.CombinedSeed(serverSeed, clientSeed, nonce)
	}
	return seeds, nil
}
