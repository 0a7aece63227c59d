package repository

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// PuzzleRecord is a puzzle definition as stored, gob-encoded, in Postgres.
// The puzzle-definition loader that authors puzzle.Puzzle values lives
// elsewhere; this package only stores and retrieves what it is handed.
type PuzzleRecord struct {
	PuzzleId   string
	Definition []byte
	CreatedAt  pgtype.Timestamptz
}

type CreatePuzzleParams struct {
	PuzzleId   string
	Definition *puzzle.Puzzle
}

func (q *Queries) CreatePuzzle(ctx context.Context, params CreatePuzzleParams) (*PuzzleRecord, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(params.Definition); err != nil {
		return nil, err
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle (puzzle_id, definition) VALUES (@puzzle_id, @definition) RETURNING *;`,
		pgx.NamedArgs{
			"puzzle_id":  params.PuzzleId,
			"definition": buf.Bytes(),
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleRecord])
}

func (q *Queries) FetchPuzzleRecord(ctx context.Context, puzzleId string) (*PuzzleRecord, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM puzzle WHERE puzzle_id = $1", puzzleId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleRecord])
}

// FetchPuzzle fetches and decodes a puzzle definition in one call, the shape
// every hint-engine caller actually wants.
func (q *Queries) FetchPuzzle(ctx context.Context, puzzleId string) (*puzzle.Puzzle, error) {
	record, err := q.FetchPuzzleRecord(ctx, puzzleId)
	if err != nil {
		return nil, err
	}
	var p puzzle.Puzzle
	if err := gob.NewDecoder(bytes.NewReader(record.Definition)).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
