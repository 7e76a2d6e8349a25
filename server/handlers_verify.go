package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/yashsinghal2004/plinko-rgs/cache"
	"github.com/yashsinghal2004/plinko-rgs/fairness"
	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
	"github.com/yashsinghal2004/plinko-rgs/lib/logger/sl"
)

// VerifyResponse is the recomputed outcome for a set of revealed seeds. When
// the caller also sends the published values, Verification holds the verdict.
type VerifyResponse struct {
	CommitmentHash string                `json:"commitmentHash"`
	CombinedSeed   string                `json:"combinedSeed"`
	PegFieldHash   string                `json:"pegFieldHash"`
	BinIndex       int                   `json:"binIndex"`
	Path           []plinko.PathDecision `json:"path"`
	PegField       plinko.PegField       `json:"pegField"`
	Verification   *plinko.Verification  `json:"verification,omitempty"`
}

type BatchVerifyRequest struct {
	Rounds []plinko.Claim `json:"rounds" validate:"required,min=1,max=500,dive"`
}

type BatchVerifyResponse struct {
	Results []plinko.Verification `json:"results"`
}

type PayoutsResponse struct {
	Rows        int       `json:"rows"`
	Multipliers []float64 `json:"multipliers"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	serverSeed, clientSeed, nonce := q.Get("serverSeed"), q.Get("clientSeed"), q.Get("nonce")
	if serverSeed == "" || clientSeed == "" || nonce == "" || q.Get("dropColumn") == "" {
		writeError(w, r, http.StatusBadRequest, "serverSeed, clientSeed, nonce and dropColumn are required", "INVALID_INPUT")
		return
	}
	dropColumn, err := strconv.Atoi(q.Get("dropColumn"))
	if err != nil || !plinko.ValidDropColumn(dropColumn) {
		writeError(w, r, http.StatusBadRequest, plinko.ErrInvalidDropColumn.Error(), "INVALID_INPUT")
		return
	}

	combined := fairness.CombinedSeed(serverSeed, clientSeed, nonce)
	out, err := cache.Compute(r.Context(), s.outcomes, combined, dropColumn)
	if err != nil {
		s.log.Error("compute outcome", sl.Err(err))
		writeServiceError(w, r, err)
		return
	}
	resp := VerifyResponse{
		CommitmentHash: fairness.CommitmentHash(serverSeed, nonce),
		CombinedSeed:   combined,
		PegFieldHash:   out.PegFieldHash,
		BinIndex:       out.BinIndex,
		Path:           out.Path,
		PegField:       out.PegField,
	}

	// The published values are optional; with all three present the
	// recomputation is also checked against them.
	if q.Has("commitmentHash") && q.Has("pegFieldHash") && q.Has("binIndex") {
		binIndex, err := strconv.Atoi(q.Get("binIndex"))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "binIndex must be an integer", "INVALID_INPUT")
			return
		}
		v := plinko.Verify(plinko.Claim{
			CommitmentHash: q.Get("commitmentHash"),
			ServerSeed:     serverSeed,
			ClientSeed:     clientSeed,
			Nonce:          nonce,
			DropColumn:     dropColumn,
			CombinedSeed:   q.Get("combinedSeed"),
			PegFieldHash:   q.Get("pegFieldHash"),
			BinIndex:       binIndex,
		})
		v.Outcome = nil
		resp.Verification = &v
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleVerifyBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchVerifyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body", "INVALID_JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}
	results, err := plinko.VerifyAll(r.Context(), req.Rounds)
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "verification cancelled", "CANCELLED")
		return
	}
	for i := range results {
		results[i].Outcome = nil
	}
	render.JSON(w, r, BatchVerifyResponse{Results: results})
}

func (s *Server) handlePayouts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, PayoutsResponse{Rows: plinko.Rows, Multipliers: plinko.PayoutTable()})
}
