package repository

import (
	"bytes"
	"context"
	"encoding/gob"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/deduction-engine/internal/puzzle"
	"github.com/vancomm/deduction-engine/internal/solver"
)

// PlacementSession is one player's in-progress (or finished) attempt at a
// puzzle: which cells they've assigned to which suspects so far, and the
// trace of engine steps recorded along the way. It isn't undo history for
// a puzzle author, it's "where a player left off."
type PlacementSession struct {
	SessionId  int
	PuzzleId   string
	PlayerId   *int
	Placements []byte
	StepLog    []byte
	HintsUsed  int
	Solved     bool
	StartedAt  pgtype.Timestamptz
	EndedAt    pgtype.Timestamptz
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

// DecodePlacements unmarshals the session's gob-encoded placements column.
func (s *PlacementSession) DecodePlacements() (map[puzzle.CellKey]puzzle.SuspectID, error) {
	if len(s.Placements) == 0 {
		return nil, nil
	}
	var out map[puzzle.CellKey]puzzle.SuspectID
	if err := gob.NewDecoder(bytes.NewReader(s.Placements)).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PlacementSession) DecodeSteps() ([]solver.Step, error) {
	if len(s.StepLog) == 0 {
		return nil, nil
	}
	var out []solver.Step
	if err := gob.NewDecoder(bytes.NewReader(s.StepLog)).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

type CreatePlacementSessionParams struct {
	PuzzleId string
	PlayerId *int
}

func (p CreatePlacementSessionParams) updateArgs(args pgx.NamedArgs) pgx.NamedArgs {
	if p.PlayerId != nil {
		args["player_id"] = *p.PlayerId
	}
	return args
}

func (q *Queries) CreatePlacementSession(
	ctx context.Context, params CreatePlacementSessionParams,
) (*PlacementSession, error) {
	args := params.updateArgs(pgx.NamedArgs{"puzzle_id": params.PuzzleId})
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO placement_session (puzzle_id, player_id)
		VALUES (@puzzle_id, @player_id)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PlacementSession])
}

func (q *Queries) FetchPlacementSession(ctx context.Context, sessionId int) (*PlacementSession, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM placement_session WHERE session_id = $1", sessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PlacementSession])
}

type UpdatePlacementSessionParams struct {
	Placements *map[puzzle.CellKey]puzzle.SuspectID
	StepLog    *[]solver.Step
	HintsUsed  *int
	Solved     *bool
	EndedAt    *time.Time
}

func (p UpdatePlacementSessionParams) setClause() (string, map[string]any, error) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.Placements != nil {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(*p.Placements); err != nil {
			return "", nil, err
		}
		parts = append(parts, "placements = @placements")
		args["placements"] = buf.Bytes()
	}
	if p.StepLog != nil {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(*p.StepLog); err != nil {
			return "", nil, err
		}
		parts = append(parts, "step_log = @step_log")
		args["step_log"] = buf.Bytes()
	}
	if p.HintsUsed != nil {
		parts = append(parts, "hints_used = @hints_used")
		args["hints_used"] = *p.HintsUsed
	}
	if p.Solved != nil {
		parts = append(parts, "solved = @solved")
		args["solved"] = *p.Solved
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}

	return strings.Join(parts, ", "), args, nil
}

func (q *Queries) UpdatePlacementSession(
	ctx context.Context, sessionId int, params UpdatePlacementSessionParams,
) (*PlacementSession, error) {
	setClause, args, err := params.setClause()
	if err != nil {
		return nil, err
	}
	args["session_id"] = sessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE placement_session SET "+setClause+" WHERE session_id = @session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PlacementSession])
}
