package round

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/yashsinghal2004/plinko-rgs/cache"
	"github.com/yashsinghal2004/plinko-rgs/fairness"
	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
)

const (
	EventCommitted = "round.committed"
	EventStarted   = "round.started"
	EventRevealed  = "round.revealed"
)

// Event announces a lifecycle transition. Round is always the public view.
type Event struct {
	Type  string `json:"type"`
	Round *Round `json:"round"`
}

// Notifier receives lifecycle events. Publish must not block.
type Notifier interface {
	Publish(Event)
}

// StartParams is what the player supplies when dropping the ball.
type StartParams struct {
	ClientSeed string
	BetCents   int64
	DropColumn int
}

// Service drives rounds through commit, start and reveal.
type Service struct {
	repo     Repository
	outcomes cache.Outcomes
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithOutcomeCache stores computed outcomes so verification requests for the
// same round can skip recomputation.
func WithOutcomeCache(c cache.Outcomes) Option {
	return func(s *Service) { s.outcomes = c }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  log.With(slog.String("component", "round.Service")),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Commit creates a round with a fresh secret server seed and publishes only
// its commitment hash and nonce.
func (s *Service) Commit(ctx context.Context) (*Round, error) {
	const op = "round.Service.Commit"

	serverSeed, err := fairness.NewServerSeed()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	nonce, err := fairness.NewNonce()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r := &Round{
		ID:             uuid.NewString(),
		Status:         StatusCreated,
		Nonce:          nonce,
		CommitmentHash: fairness.CommitmentHash(serverSeed, nonce),
		ServerSeed:     serverSeed,
		Rows:           plinko.Rows,
		Path:           []plinko.PathDecision{},
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("round committed", slog.String("round_id", r.ID))
	s.publish(EventCommitted, r)
	return r, nil
}

// Start fixes the client seed and drop column and computes the outcome.
func (s *Service) Start(ctx context.Context, id string, p StartParams) (*Round, error) {
	const op = "round.Service.Start"

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if r.Status != StatusCreated {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyStarted)
	}

	combined := fairness.CombinedSeed(r.ServerSeed, p.ClientSeed, r.Nonce)
	out, err := cache.Compute(ctx, s.outcomes, combined, p.DropColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now()
	r.Status = StatusStarted
	r.ClientSeed = p.ClientSeed
	r.CombinedSeed = combined
	r.PegFieldHash = out.PegFieldHash
	r.DropColumn = p.DropColumn
	r.BinIndex = out.BinIndex
	r.PayoutMultiplier = plinko.PayoutMultiplier(out.BinIndex)
	r.BetCents = p.BetCents
	r.Path = out.Path
	r.StartedAt = &now

	if err := s.repo.Update(ctx, r, StatusCreated); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			err = ErrAlreadyStarted
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("round started",
		slog.String("round_id", r.ID),
		slog.Int("drop_column", r.DropColumn),
		slog.Int("bin_index", r.BinIndex),
		slog.Float64("payout_multiplier", r.PayoutMultiplier),
	)
	s.publish(EventStarted, r)
	return r, nil
}

// Reveal discloses the server seed of a started round. Revealing twice returns
// the same round.
func (s *Service) Reveal(ctx context.Context, id string) (*Round, error) {
	const op = "round.Service.Reveal"

	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	switch r.Status {
	case StatusRevealed:
		return r, nil
	case StatusCreated:
		// The client seed is not fixed yet; revealing now would hand the player the outcome.
		return nil, fmt.Errorf("%s: %w", op, ErrNotStarted)
	}

	now := s.now()
	r.Status = StatusRevealed
	r.RevealedAt = &now
	if err := s.repo.Update(ctx, r, StatusStarted); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			if cur, gerr := s.repo.Get(ctx, id); gerr == nil && cur.Status == StatusRevealed {
				return cur, nil
			}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("round revealed", slog.String("round_id", r.ID))
	s.publish(EventRevealed, r)
	return r, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Round, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("round.Service.Get: %w", err)
	}
	return r, nil
}

func (s *Service) publish(typ string, r *Round) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(Event{Type: typ, Round: r.Public()})
}

func (p StartParams) validate() error {
	switch {
	case strings.TrimSpace(p.ClientSeed) == "":
		return fmt.Errorf("%w: clientSeed is required", ErrInvalidInput)
	case p.BetCents <= 0:
		return fmt.Errorf("%w: betCents must be a positive number", ErrInvalidInput)
	case !plinko.ValidDropColumn(p.DropColumn):
		return fmt.Errorf("%w: %s", ErrInvalidInput, plinko.ErrInvalidDropColumn)
	}
	return nil
}
