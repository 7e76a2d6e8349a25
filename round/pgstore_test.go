package round

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	rgs "github.com/yashsinghal2004/plinko-rgs"
	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
)

func TestPGStore(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := rgs.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	s := NewPGStore(db)
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}

	r := testRound(uuid.NewString())
	if err := s.Create(ctx, r); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(ctx, r); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate create: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	r.Status = StatusStarted
	r.ClientSeed = "c"
	r.BinIndex = 7
	r.StartedAt = &now
	r.Path = []plinko.PathDecision{{Row: 0, Decision: plinko.Right, RandomValue: 0.7, Bias: 0.5}}
	if err := s.Update(ctx, r, StatusCreated); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(ctx, r, StatusCreated); !errors.Is(err, ErrStatusConflict) {
		t.Errorf("stale update: %v", err)
	}

	got, err := s.Get(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusStarted || got.BinIndex != 7 || len(got.Path) != 1 || got.StartedAt == nil || got.RevealedAt != nil {
		t.Errorf("got %+v", got)
	}
	if _, err := s.Get(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing: %v", err)
	}
	if err := s.Update(ctx, testRound(uuid.NewString()), StatusCreated); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: %v", err)
	}
}
