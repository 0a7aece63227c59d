// custom query
package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Highscore is one leaderboard row: a finished placement session ranked by
// how few hints it took, then by wall-clock time.
type Highscore struct {
	SessionId string  `json:"session_id"`
	Username  *string `json:"username"`
	PuzzleId  string  `json:"puzzle_id"`
	HintsUsed int     `json:"hints_used"`
	SolveMs   float64 `json:"solve_ms"`
}

type HighscoreFilter struct {
	Username *string
	PuzzleId *string
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.PuzzleId != nil {
		clauses = append(clauses, "puzzle_id = @puzzle_id")
		args["puzzle_id"] = *f.PuzzleId
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) GetHighscores(ctx context.Context, filter HighscoreFilter) ([]Highscore, error) {
	query := `
	SELECT
		session_id,
		username,
		puzzle_id,
		hints_used,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 solve_ms
	FROM placement_session
		LEFT OUTER JOIN player USING (player_id)
	WHERE
		solved = true
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY hints_used, solve_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
