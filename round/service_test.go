package round

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yashsinghal2004/plinko-rgs/cache"
	"github.com/yashsinghal2004/plinko-rgs/fairness"
	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
	"github.com/yashsinghal2004/plinko-rgs/lib/logger"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func newTestService(t *testing.T, opts ...Option) (*Service, *recorder) {
	rec := &recorder{}
	opts = append(opts, WithNotifier(rec))
	return NewService(NewStore(t.TempDir()), logger.Discard(), opts...), rec
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t, WithOutcomeCache(cache.NewMemory(time.Minute)))

	r, err := svc.Commit(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != StatusCreated || r.Rows != plinko.Rows {
		t.Fatalf("committed %+v", r)
	}
	if r.CommitmentHash != fairness.CommitmentHash(r.ServerSeed, r.Nonce) {
		t.Fatal("commitment does not bind the server seed")
	}

	started, err := svc.Start(ctx, r.ID, StartParams{ClientSeed: "player-1", BetCents: 100, DropColumn: 4})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := plinko.ComputeOutcome(fairness.CombinedSeed(r.ServerSeed, "player-1", r.Nonce), 4)
	if started.Status != StatusStarted || started.BinIndex != want.BinIndex || started.PegFieldHash != want.PegFieldHash {
		t.Fatalf("started %+v", started)
	}
	if started.PayoutMultiplier != plinko.PayoutMultiplier(want.BinIndex) || len(started.Path) != plinko.Rows {
		t.Fatalf("payout %v path %d", started.PayoutMultiplier, len(started.Path))
	}
	if started.StartedAt == nil {
		t.Fatal("startedAt not set")
	}

	revealed, err := svc.Reveal(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if revealed.Status != StatusRevealed || revealed.RevealedAt == nil || revealed.ServerSeed != r.ServerSeed {
		t.Fatalf("revealed %+v", revealed)
	}

	// Anyone holding the published values can now check the round.
	v := plinko.Verify(plinko.Claim{
		CommitmentHash: r.CommitmentHash,
		ServerSeed:     revealed.ServerSeed,
		ClientSeed:     revealed.ClientSeed,
		Nonce:          revealed.Nonce,
		DropColumn:     revealed.DropColumn,
		CombinedSeed:   revealed.CombinedSeed,
		PegFieldHash:   revealed.PegFieldHash,
		BinIndex:       revealed.BinIndex,
	})
	if !v.Verified {
		t.Fatalf("stored round does not verify: %s", v.Failure)
	}

	if len(rec.events) != 3 {
		t.Fatalf("events %d", len(rec.events))
	}
	for i, typ := range []string{EventCommitted, EventStarted, EventRevealed} {
		if rec.events[i].Type != typ {
			t.Errorf("event %d = %s want %s", i, rec.events[i].Type, typ)
		}
	}
	if rec.events[1].Round.ServerSeed != "" {
		t.Error("start event leaked the server seed")
	}
	if rec.events[2].Round.ServerSeed == "" {
		t.Error("reveal event should carry the server seed")
	}
}

func TestService_StartValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	r, err := svc.Commit(ctx)
	if err != nil {
		t.Fatal(err)
	}
	bad := []StartParams{
		{ClientSeed: "", BetCents: 100, DropColumn: 6},
		{ClientSeed: "   ", BetCents: 100, DropColumn: 6},
		{ClientSeed: "c", BetCents: 0, DropColumn: 6},
		{ClientSeed: "c", BetCents: 100, DropColumn: -1},
		{ClientSeed: "c", BetCents: 100, DropColumn: 13},
	}
	for _, p := range bad {
		if _, err := svc.Start(ctx, r.ID, p); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("params %+v: err %v", p, err)
		}
	}
	got, _ := svc.Get(ctx, r.ID)
	if got.Status != StatusCreated {
		t.Fatal("invalid start must not change the round")
	}
}

func TestService_StartTwice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	r, _ := svc.Commit(ctx)
	p := StartParams{ClientSeed: "c", BetCents: 1, DropColumn: 6}
	if _, err := svc.Start(ctx, r.ID, p); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Start(ctx, r.ID, p); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second start: %v", err)
	}
}

func TestService_ConcurrentStart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	r, _ := svc.Commit(ctx)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Start(ctx, r.ID, StartParams{ClientSeed: "c", BetCents: 1, DropColumn: i % 13})
		}(i)
	}
	wg.Wait()
	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, ErrAlreadyStarted):
			t.Errorf("unexpected error %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("%d starts succeeded, want exactly 1", ok)
	}
}

func TestService_RevealRules(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)
	r, _ := svc.Commit(ctx)

	if _, err := svc.Reveal(ctx, r.ID); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("reveal before start: %v", err)
	}
	if _, err := svc.Start(ctx, r.ID, StartParams{ClientSeed: "c", BetCents: 1, DropColumn: 0}); err != nil {
		t.Fatal(err)
	}
	first, err := svc.Reveal(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Reveal(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !first.RevealedAt.Equal(*second.RevealedAt) {
		t.Error("second reveal should return the stored round unchanged")
	}
	if got := len(rec.events); got != 3 {
		t.Errorf("repeat reveal should not publish again: %d events", got)
	}
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: %v", err)
	}
	if _, err := svc.Start(ctx, "missing", StartParams{ClientSeed: "c", BetCents: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Start: %v", err)
	}
	if _, err := svc.Reveal(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reveal: %v", err)
	}
}
