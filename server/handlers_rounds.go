package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
	"github.com/yashsinghal2004/plinko-rgs/lib/logger/sl"
	"github.com/yashsinghal2004/plinko-rgs/round"
)

type CommitResponse struct {
	RoundID        string `json:"roundId"`
	CommitmentHash string `json:"commitmentHash"`
	Nonce          string `json:"nonce"`
}

type StartRequest struct {
	ClientSeed string `json:"clientSeed" validate:"required"`
	BetCents   int64  `json:"betCents" validate:"required,gt=0"`
	DropColumn *int   `json:"dropColumn" validate:"required,min=0,max=12"`
}

type StartResponse struct {
	RoundID          string                `json:"roundId"`
	PegFieldHash     string                `json:"pegFieldHash"`
	Rows             int                   `json:"rows"`
	BinIndex         int                   `json:"binIndex"`
	PayoutMultiplier float64               `json:"payoutMultiplier"`
	Path             []plinko.PathDecision `json:"path"`
}

type RevealResponse struct {
	RoundID    string `json:"roundId"`
	ServerSeed string `json:"serverSeed"`
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	rd, err := s.rounds.Commit(r.Context())
	if err != nil {
		s.log.Error("commit round", sl.Err(err))
		writeServiceError(w, r, err)
		return
	}
	render.JSON(w, r, CommitResponse{
		RoundID:        rd.ID,
		CommitmentHash: rd.CommitmentHash,
		Nonce:          rd.Nonce,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req StartRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body", "INVALID_JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}
	rd, err := s.rounds.Start(r.Context(), id, round.StartParams{
		ClientSeed: req.ClientSeed,
		BetCents:   req.BetCents,
		DropColumn: *req.DropColumn,
	})
	if err != nil {
		s.logServiceError("start round", id, err)
		writeServiceError(w, r, err)
		return
	}
	render.JSON(w, r, StartResponse{
		RoundID:          rd.ID,
		PegFieldHash:     rd.PegFieldHash,
		Rows:             rd.Rows,
		BinIndex:         rd.BinIndex,
		PayoutMultiplier: rd.PayoutMultiplier,
		Path:             rd.Path,
	})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rd, err := s.rounds.Reveal(r.Context(), id)
	if err != nil {
		s.logServiceError("reveal round", id, err)
		writeServiceError(w, r, err)
		return
	}
	render.JSON(w, r, RevealResponse{RoundID: rd.ID, ServerSeed: rd.ServerSeed})
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rd, err := s.rounds.Get(r.Context(), id)
	if err != nil {
		s.logServiceError("get round", id, err)
		writeServiceError(w, r, err)
		return
	}
	render.JSON(w, r, rd.Public())
}

// logServiceError logs only unexpected failures; client errors are not noise worth logging.
func (s *Server) logServiceError(msg, id string, err error) {
	switch {
	case errors.Is(err, round.ErrNotFound),
		errors.Is(err, round.ErrInvalidInput),
		errors.Is(err, round.ErrAlreadyStarted),
		errors.Is(err, round.ErrNotStarted):
		return
	}
	s.log.Error(msg, slog.String("round_id", id), sl.Err(err))
}
