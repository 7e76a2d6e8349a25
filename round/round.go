package round

import (
	"context"
	"errors"
	"time"

	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
)

// Status is a round's lifecycle state. Rounds only move forward:
// CREATED -> STARTED -> REVEALED.
type Status string

const (
	StatusCreated  Status = "CREATED"
	StatusStarted  Status = "STARTED"
	StatusRevealed Status = "REVEALED"
)

var (
	ErrNotFound       = errors.New("round not found")
	ErrExists         = errors.New("round already exists")
	ErrStatusConflict = errors.New("round status changed")
	ErrAlreadyStarted = errors.New("round already started")
	ErrNotStarted     = errors.New("round not started")
	ErrInvalidInput   = errors.New("invalid input")
)

// Round is the persisted record of one drop, from commitment to reveal.
type Round struct {
	ID               string                `json:"id"`
	Status           Status                `json:"status"`
	Nonce            string                `json:"nonce"`
	CommitmentHash   string                `json:"commitmentHash"`
	ServerSeed       string                `json:"serverSeed,omitempty"`
	ClientSeed       string                `json:"clientSeed"`
	CombinedSeed     string                `json:"combinedSeed"`
	PegFieldHash     string                `json:"pegFieldHash"`
	Rows             int                   `json:"rows"`
	DropColumn       int                   `json:"dropColumn"`
	BinIndex         int                   `json:"binIndex"`
	PayoutMultiplier float64               `json:"payoutMultiplier"`
	BetCents         int64                 `json:"betCents"`
	Path             []plinko.PathDecision `json:"path"`
	CreatedAt        time.Time             `json:"createdAt"`
	StartedAt        *time.Time            `json:"startedAt,omitempty"`
	RevealedAt       *time.Time            `json:"revealedAt,omitempty"`
}

// Clone returns a deep copy.
func (r *Round) Clone() *Round {
	if r == nil {
		return nil
	}
	c := *r
	if r.Path != nil {
		c.Path = append([]plinko.PathDecision(nil), r.Path...)
	}
	if r.StartedAt != nil {
		t := *r.StartedAt
		c.StartedAt = &t
	}
	if r.RevealedAt != nil {
		t := *r.RevealedAt
		c.RevealedAt = &t
	}
	return &c
}

// Public is the view safe to show anyone: the server seed stays hidden until
// the round is revealed.
func (r *Round) Public() *Round {
	c := r.Clone()
	if c != nil && c.Status != StatusRevealed {
		c.ServerSeed = ""
	}
	return c
}

// Repository persists rounds.
type Repository interface {
	Create(ctx context.Context, r *Round) error
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*Round, error)
	// Update stores r only if the stored round still has status from, and
	// returns ErrStatusConflict otherwise.
	Update(ctx context.Context, r *Round, from Status) error
}
