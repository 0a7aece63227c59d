package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/deduction-engine/internal/hintengine"
	"github.com/vancomm/deduction-engine/internal/puzzle"
	"github.com/vancomm/deduction-engine/internal/repository"
)

// parseWSCommand turns one line of the session's tiny text protocol into a
// mutation of placements: a single-letter verb followed by space-separated
// cell/suspect identifiers.
func parseWSCommand(placements map[puzzle.CellKey]puzzle.SuspectID, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return fmt.Errorf("empty command")
	}
	switch parts[0] {
	case "p":
		if len(parts) != 3 {
			return fmt.Errorf("place requires a cell and a suspect")
		}
		placements[puzzle.CellKey(parts[1])] = puzzle.SuspectID(parts[2])
		return nil
	case "u":
		if len(parts) != 2 {
			return fmt.Errorf("unplace requires a cell")
		}
		delete(placements, puzzle.CellKey(parts[1]))
		return nil
	case "h", "g":
		return nil
	default:
		return fmt.Errorf("unknown command %q", parts[0])
	}
}

// ConnectWS streams session state over a websocket: the client sends one
// command per line ("p <cell> <suspect>" to place, "u <cell>" to clear, "h"
// to request a hint, "g" to just resync), and after every message the
// handler persists the resulting placements and writes back the current
// session plus, for "h", a fresh hint.
func (h PuzzleHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sessionId, err := h.sessionId(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := h.repo.FetchPlacementSession(r.Context(), sessionId)
	if err == pgx.ErrNoRows {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("could not fetch session from db", slog.Any("error", err))
		return
	}

	placements, err := session.DecodePlacements()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if placements == nil {
		placements = make(map[puzzle.CellKey]puzzle.SuspectID)
	}

	p, err := h.repo.FetchPuzzle(r.Context(), session.PuzzleId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch puzzle definition", slog.Any("error", err))
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		h.logger.Debug(fmt.Sprintf("\t> %s", text))

		var hint *hintengine.Hint
		var cmdErr error
		for _, line := range strings.Split(text, "\n") {
			if cmdErr = parseWSCommand(placements, line); cmdErr != nil {
				h.logger.Error("unable to process command", slog.Any("error", cmdErr))
				break
			}
			if strings.HasPrefix(line, "h") {
				hint = hintengine.GetNextHint(p, placements)
			}
		}
		if cmdErr != nil {
			continue
		}

		hintsUsed := session.HintsUsed
		if hint != nil {
			hintsUsed++
		}
		updated, err := h.repo.UpdatePlacementSession(r.Context(), session.SessionId, repository.UpdatePlacementSessionParams{
			Placements: &placements,
			HintsUsed:  &hintsUsed,
		})
		if err != nil {
			h.logger.Error("unable to update session in db", slog.Any("error", err))
			break
		}
		session = updated

		payload := struct {
			Session *SessionDTO `json:"session"`
			Hint    *HintDTO    `json:"hint,omitempty"`
		}{
			Session: NewSessionDTO(session, placements),
			Hint:    NewHintDTO(hint),
		}
		if err := c.WriteJSON(payload); err != nil {
			h.logger.Error("unable to write json", slog.Any("error", err))
			break
		}
		h.logger.Debug("\t< <session data>")
	}
}
