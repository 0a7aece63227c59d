package puzzle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/deduction-engine/internal/puzzle"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	k := puzzle.Encode(3, 5)
	assert.Equal(t, puzzle.CellKey("3-5"), k)

	row, col := puzzle.Decode(k)
	assert.Equal(t, 3, row)
	assert.Equal(t, 5, col)
}

func TestDecodeMalformedPanics(t *testing.T) {
	assert.Panics(t, func() {
		puzzle.Decode("not-a-key-at-all-3")
	})
}

func TestIsOccupiable(t *testing.T) {
	assert.True(t, puzzle.IsOccupiable(puzzle.CellCarpet))
	assert.True(t, puzzle.IsOccupiable(puzzle.CellTrack))
	assert.False(t, puzzle.IsOccupiable(puzzle.CellTV))
	assert.False(t, puzzle.IsOccupiable(puzzle.CellTree))
}

func minimalPuzzle() *puzzle.Puzzle {
	return &puzzle.Puzzle{
		ID:       "test",
		GridSize: 2,
		Board: [][]puzzle.Cell{
			{{Room: "r1", Type: puzzle.CellEmpty}, {Room: "r1", Type: puzzle.CellEmpty}},
			{{Room: "r1", Type: puzzle.CellEmpty}, {Room: "r1", Type: puzzle.CellEmpty}},
		},
		Rooms: map[puzzle.RoomID]puzzle.Room{"r1": {DisplayName: "Room 1"}},
		Suspects: []puzzle.Suspect{
			{ID: "a", Clue: "a's clue"},
			{ID: "b", Clue: "b's clue", Constraints: []puzzle.Constraint{
				puzzle.AloneWith("a"),
			}},
		},
	}
}

func TestValidateAcceptsWellFormedPuzzle(t *testing.T) {
	p := minimalPuzzle()
	require.NotPanics(t, p.Validate)
}

func TestValidateRejectsUnknownRoom(t *testing.T) {
	p := minimalPuzzle()
	p.Board[0][0].Room = "does-not-exist"
	assert.Panics(t, p.Validate)
}

func TestValidateRejectsDuplicateSuspectID(t *testing.T) {
	p := minimalPuzzle()
	p.Suspects = append(p.Suspects, puzzle.Suspect{ID: "a"})
	assert.Panics(t, p.Validate)
}

func TestValidateRejectsSelfReferentialConstraint(t *testing.T) {
	p := minimalPuzzle()
	p.Suspects[0].Constraints = []puzzle.Constraint{puzzle.AloneWith("a")}
	assert.Panics(t, p.Validate)
}

func TestValidateRejectsUnknownSuspectReference(t *testing.T) {
	p := minimalPuzzle()
	p.Suspects[0].Constraints = []puzzle.Constraint{puzzle.AloneWith("ghost")}
	assert.Panics(t, p.Validate)
}

func TestSuspectByID(t *testing.T) {
	p := minimalPuzzle()
	require.NotNil(t, p.SuspectByID("a"))
	assert.Nil(t, p.SuspectByID("ghost"))
}
