package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/deduction-engine/internal/config"
	"github.com/vancomm/deduction-engine/internal/hintengine"
	"github.com/vancomm/deduction-engine/internal/middleware"
	"github.com/vancomm/deduction-engine/internal/puzzle"
	"github.com/vancomm/deduction-engine/internal/repository"
)

// PuzzleHandler exposes internal/hintengine over HTTP and websocket: start a
// placement session against a stored puzzle, record placements, and ask the
// engine for a hint, a full solve trace, or raw debug state.
type PuzzleHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
}

func NewPuzzleHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
) *PuzzleHandler {
	return &PuzzleHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
	}
}

var ErrPuzzleNotFound = fmt.Errorf("puzzle not found")

// NewSession starts a placement session for a stored puzzle, attaching the
// caller's player id if they're authenticated (an anonymous session is
// still playable, it just can't appear on a per-player leaderboard row).
func (h PuzzleHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	puzzleId := r.PathValue("puzzleId")

	if _, err := h.repo.FetchPuzzleRecord(r.Context(), puzzleId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			w.WriteHeader(http.StatusNotFound)
			sendJSONOrLog(w, h.logger, wrapError(ErrPuzzleNotFound))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch puzzle", "error", err)
		return
	}

	params := repository.CreatePlacementSessionParams{PuzzleId: puzzleId}
	if claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); ok {
		playerId := int(claims.PlayerId)
		params.PlayerId = &playerId
	}

	session, err := h.repo.CreatePlacementSession(r.Context(), params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create placement session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(session, nil))
}

func (h PuzzleHandler) sessionId(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

func (h PuzzleHandler) fetchSession(r *http.Request) (*repository.PlacementSession, map[puzzle.CellKey]puzzle.SuspectID, error) {
	sessionId, err := h.sessionId(r)
	if err != nil {
		return nil, nil, err
	}
	session, err := h.repo.FetchPlacementSession(r.Context(), sessionId)
	if err != nil {
		return nil, nil, err
	}
	placements, err := session.DecodePlacements()
	if err != nil {
		return nil, nil, err
	}
	return session, placements, nil
}

func (h PuzzleHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, placements, err := h.fetchSession(r)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch placement session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(session, placements))
}

// Place records or clears one cell's suspect assignment. It doesn't run the
// technique pipeline itself -- that's what Hint and Solve are for -- it
// just persists what the player asserted.
func (h PuzzleHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	session, placements, err := h.fetchSession(r)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch placement session", "error", err)
		return
	}

	if placements == nil {
		placements = make(map[puzzle.CellKey]puzzle.SuspectID)
	}
	if req.Clear {
		delete(placements, req.Cell)
	} else {
		placements[req.Cell] = req.Suspect
	}

	updated, err := h.repo.UpdatePlacementSession(r.Context(), session.SessionId, repository.UpdatePlacementSessionParams{
		Placements: &placements,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to persist placement", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(updated, placements))
}

// Hint answers the "what should I try next" question and records that a
// hint was spent against the session.
func (h PuzzleHandler) Hint(w http.ResponseWriter, r *http.Request) {
	session, placements, err := h.fetchSession(r)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch placement session", "error", err)
		return
	}

	p, err := h.repo.FetchPuzzle(r.Context(), session.PuzzleId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch puzzle definition", "error", err)
		return
	}

	hint := hintengine.GetNextHint(p, placements)

	hintsUsed := session.HintsUsed + 1
	if _, err := h.repo.UpdatePlacementSession(r.Context(), session.SessionId, repository.UpdatePlacementSessionParams{
		HintsUsed: &hintsUsed,
	}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to record hint usage", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewHintDTO(hint))
}

// Solve replays every remaining deduction from the session's current
// placements and stores the resulting trace, without mutating placements
// themselves -- it answers "what does the rest look like," it doesn't play
// the rest for the player.
func (h PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	session, placements, err := h.fetchSession(r)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch placement session", "error", err)
		return
	}

	p, err := h.repo.FetchPuzzle(r.Context(), session.PuzzleId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch puzzle definition", "error", err)
		return
	}

	result := hintengine.SolveFromState(p, placements)

	steps := result.Steps
	solved := result.Solved
	if _, err := h.repo.UpdatePlacementSession(r.Context(), session.SessionId, repository.UpdatePlacementSessionParams{
		StepLog: &steps,
		Solved:  &solved,
	}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to persist solve trace", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSolveResultDTO(result))
}

// Debug exposes the solver's raw candidate bookkeeping for developer
// tooling; it never touches the stored session.
func (h PuzzleHandler) Debug(w http.ResponseWriter, r *http.Request) {
	session, placements, err := h.fetchSession(r)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch placement session", "error", err)
		return
	}

	p, err := h.repo.FetchPuzzle(r.Context(), session.PuzzleId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch puzzle definition", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewDebugStateDTO(hintengine.GetDebugState(p, placements)))
}
