package round

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const roundsSchema = `
CREATE TABLE IF NOT EXISTS plinko_rounds (
	id                TEXT PRIMARY KEY,
	status            TEXT NOT NULL,
	nonce             TEXT NOT NULL,
	commitment_hash   TEXT NOT NULL,
	server_seed       TEXT NOT NULL,
	client_seed       TEXT NOT NULL DEFAULT '',
	combined_seed     TEXT NOT NULL DEFAULT '',
	peg_field_hash    TEXT NOT NULL DEFAULT '',
	row_count         INTEGER NOT NULL DEFAULT 12,
	drop_column       INTEGER NOT NULL DEFAULT 0,
	bin_index         INTEGER NOT NULL DEFAULT 0,
	payout_multiplier DOUBLE PRECISION NOT NULL DEFAULT 0,
	bet_cents         BIGINT NOT NULL DEFAULT 0,
	path_json         JSONB NOT NULL DEFAULT '[]',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	started_at        TIMESTAMPTZ,
	revealed_at       TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_plinko_rounds_created_at ON plinko_rounds(created_at DESC);
`

const selectRound = `
SELECT id, status, nonce, commitment_hash, server_seed, client_seed, combined_seed,
       peg_field_hash, row_count, drop_column, bin_index, payout_multiplier, bet_cents,
       path_json, created_at, started_at, revealed_at
FROM plinko_rounds WHERE id = $1`

// PGStore persists rounds in Postgres.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

// EnsureSchema creates the rounds table if it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, roundsSchema); err != nil {
		return fmt.Errorf("round.PGStore.EnsureSchema: %w", err)
	}
	return nil
}

func (s *PGStore) Create(ctx context.Context, r *Round) error {
	const op = "round.PGStore.Create"

	pathJSON, err := encodePath(r)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO plinko_rounds (id, status, nonce, commitment_hash, server_seed, client_seed,
			combined_seed, peg_field_hash, row_count, drop_column, bin_index, payout_multiplier,
			bet_cents, path_json, created_at, started_at, revealed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		r.ID, string(r.Status), r.Nonce, r.CommitmentHash, r.ServerSeed, r.ClientSeed,
		r.CombinedSeed, r.PegFieldHash, r.Rows, r.DropColumn, r.BinIndex, r.PayoutMultiplier,
		r.BetCents, pathJSON, r.CreatedAt, nullTime(r.StartedAt), nullTime(r.RevealedAt))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("%s: %w", op, ErrExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id string) (*Round, error) {
	const op = "round.PGStore.Get"

	var (
		r          Round
		status     string
		pathJSON   []byte
		startedAt  sql.NullTime
		revealedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, selectRound, id).Scan(
		&r.ID, &status, &r.Nonce, &r.CommitmentHash, &r.ServerSeed, &r.ClientSeed,
		&r.CombinedSeed, &r.PegFieldHash, &r.Rows, &r.DropColumn, &r.BinIndex,
		&r.PayoutMultiplier, &r.BetCents, &pathJSON, &r.CreatedAt, &startedAt, &revealedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r.Status = Status(status)
	if len(pathJSON) > 0 {
		if err := json.Unmarshal(pathJSON, &r.Path); err != nil {
			return nil, fmt.Errorf("%s: decode path: %w", op, err)
		}
	}
	r.StartedAt = timePtr(startedAt)
	r.RevealedAt = timePtr(revealedAt)
	return &r, nil
}

func (s *PGStore) Update(ctx context.Context, r *Round, from Status) error {
	const op = "round.PGStore.Update"

	pathJSON, err := encodePath(r)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE plinko_rounds SET status = $2, client_seed = $3, combined_seed = $4,
			peg_field_hash = $5, drop_column = $6, bin_index = $7, payout_multiplier = $8,
			bet_cents = $9, path_json = $10, started_at = $11, revealed_at = $12
		WHERE id = $1 AND status = $13`,
		r.ID, string(r.Status), r.ClientSeed, r.CombinedSeed, r.PegFieldHash, r.DropColumn,
		r.BinIndex, r.PayoutMultiplier, r.BetCents, pathJSON, nullTime(r.StartedAt),
		nullTime(r.RevealedAt), string(from))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 1 {
		return nil
	}
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM plinko_rounds WHERE id = $1)`, r.ID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStatusConflict
}

func encodePath(r *Round) (string, error) {
	if r.Path == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r.Path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
