package boardindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/deduction-engine/internal/boardindex"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// a 3x3 board with a single room except a TV in the middle:
//
//	. . .
//	. TV .
//	. . .
func fixtureBoard() *puzzle.Puzzle {
	mk := func(t puzzle.CellType) puzzle.Cell { return puzzle.Cell{Room: "living", Type: t} }
	return &puzzle.Puzzle{
		ID:       "fixture",
		GridSize: 3,
		Board: [][]puzzle.Cell{
			{mk(puzzle.CellCarpet), mk(puzzle.CellCarpet), mk(puzzle.CellCarpet)},
			{mk(puzzle.CellCarpet), mk(puzzle.CellTV), mk(puzzle.CellCarpet)},
			{mk(puzzle.CellCarpet), mk(puzzle.CellCarpet), mk(puzzle.CellCarpet)},
		},
		Rooms: map[puzzle.RoomID]puzzle.Room{"living": {DisplayName: "Living Room"}},
	}
}

func TestBuildOccupiableCells(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())

	assert.True(t, idx.IsOccupiable(puzzle.Encode(0, 0)))
	assert.False(t, idx.IsOccupiable(puzzle.Encode(1, 1)), "TV cell must not be occupiable")
	assert.Len(t, idx.OccupiableCells(), 8)
}

func TestRowAndColCellsExcludeNonOccupiable(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())

	row1 := idx.RowCells(1)
	assert.Len(t, row1, 2)
	for _, k := range row1 {
		assert.NotEqual(t, puzzle.Encode(1, 1), k)
	}

	col1 := idx.ColCells(1)
	assert.Len(t, col1, 2)
}

func TestAdjacentSameRoomIsFourConnected(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())

	neighbours := idx.AdjacentSameRoom(puzzle.Encode(0, 0))
	// (0,0) has orthogonal neighbours (0,1) and (1,0); no diagonal (1,1),
	// which also isn't occupiable anyway.
	assert.ElementsMatch(t, []puzzle.CellKey{puzzle.Encode(0, 1), puzzle.Encode(1, 0)}, neighbours)
}

func TestAdjacentSameRoomExcludesOtherRooms(t *testing.T) {
	p := fixtureBoard()
	p.Board[0][1].Room = "hallway"
	p.Rooms["hallway"] = puzzle.Room{DisplayName: "Hallway"}
	idx := boardindex.Build(p)

	neighbours := idx.AdjacentSameRoom(puzzle.Encode(0, 0))
	assert.ElementsMatch(t, []puzzle.CellKey{puzzle.Encode(1, 0)}, neighbours)
}

func TestCellsBesideType(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())

	beside := idx.CellsBesideType(puzzle.CellTV)
	want := map[puzzle.CellKey]bool{
		puzzle.Encode(0, 1): true,
		puzzle.Encode(1, 0): true,
		puzzle.Encode(1, 2): true,
		puzzle.Encode(2, 1): true,
	}
	assert.Equal(t, want, beside)
}

func TestBuildPanicsOnUnknownRoom(t *testing.T) {
	p := fixtureBoard()
	p.Board[0][0].Room = "ghost-room"
	assert.Panics(t, func() { boardindex.Build(p) })
}

func TestCellInfoLookup(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())
	info := idx.CellInfo(puzzle.Encode(1, 1))
	require.Equal(t, puzzle.CellTV, info.Type)
	assert.Equal(t, 1, info.Row)
	assert.Equal(t, 1, info.Col)
}
