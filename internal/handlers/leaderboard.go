package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/deduction-engine/internal/repository"
)

// Leaderboard exposes the fewest-hints, then fastest-solve ranking: decode the query-string
// filter, query the store, reply JSON.
type Leaderboard struct {
	logger *slog.Logger
	repo   *repository.Queries
}

func NewLeaderboard(logger *slog.Logger, db *pgxpool.Pool) *Leaderboard {
	return &Leaderboard{logger: logger, repo: repository.New(db)}
}

// HighscoreQueryDTO is the query-string shape of a leaderboard filter,
// decoded with gorilla/schema.
type HighscoreQueryDTO struct {
	Username *string `schema:"username"`
	PuzzleId *string `schema:"puzzle_id"`
}

func (h Leaderboard) Fetch(w http.ResponseWriter, r *http.Request) {
	var dto HighscoreQueryDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	filter := repository.HighscoreFilter{
		Username: dto.Username,
		PuzzleId: dto.PuzzleId,
	}

	highscores, err := h.repo.GetHighscores(r.Context(), filter)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("failed to fetch highscores", "error", err, "filter", filter)
		return
	}

	sendJSONOrLog(w, h.logger, highscores)
}
