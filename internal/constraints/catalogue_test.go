package constraints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/deduction-engine/internal/boardindex"
	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

func fixtureBoard() *puzzle.Puzzle {
	mk := func(room puzzle.RoomID, t puzzle.CellType) puzzle.Cell { return puzzle.Cell{Room: room, Type: t} }
	return &puzzle.Puzzle{
		ID:       "fixture",
		GridSize: 3,
		Board: [][]puzzle.Cell{
			{mk("kitchen", puzzle.CellCarpet), mk("kitchen", puzzle.CellCarpet), mk("hall", puzzle.CellCarpet)},
			{mk("kitchen", puzzle.CellTV), mk("kitchen", puzzle.CellCarpet), mk("hall", puzzle.CellCarpet)},
			{mk("hall", puzzle.CellCarpet), mk("hall", puzzle.CellCarpet), mk("hall", puzzle.CellCarpet)},
		},
		Rooms: map[puzzle.RoomID]puzzle.Room{
			"kitchen": {DisplayName: "Kitchen"},
			"hall":    {DisplayName: "Hall"},
		},
	}
}

func TestIsStatic(t *testing.T) {
	assert.True(t, constraints.IsStatic(puzzle.KindInRoom))
	assert.True(t, constraints.IsStatic(puzzle.KindBeside))
	assert.False(t, constraints.IsStatic(puzzle.KindAlone))
	assert.False(t, constraints.IsStatic(puzzle.KindAheadOf))
}

func TestApplyStaticInRoom(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())
	all := constraints.NewCellSet(idx.OccupiableCells())

	filtered := constraints.ApplyStatic(all, puzzle.InRoom("kitchen"), idx)

	for k := range filtered {
		assert.Equal(t, puzzle.RoomID("kitchen"), idx.CellInfo(k).Room)
	}
	assert.NotEmpty(t, filtered)
}

func TestApplyStaticOnCellType(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())
	all := constraints.NewCellSet(idx.OccupiableCells())

	filtered := constraints.ApplyStatic(all, puzzle.OnCellType(puzzle.CellCarpet), idx)
	assert.Equal(t, len(all), len(filtered), "every occupiable cell in the fixture is carpet")

	filteredTV := constraints.ApplyStatic(all, puzzle.OnCellType(puzzle.CellTV), idx)
	assert.Empty(t, filteredTV, "TV cells are not occupiable so can never appear as candidates")
}

func TestApplyStaticBeside(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())
	all := constraints.NewCellSet(idx.OccupiableCells())

	filtered := constraints.ApplyStatic(all, puzzle.Beside(puzzle.CellTV), idx)
	want := constraints.NewCellSet([]puzzle.CellKey{puzzle.Encode(0, 0), puzzle.Encode(1, 1)})
	assert.Equal(t, want, filtered)
}

func TestApplyStaticNotBeside(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())
	all := constraints.NewCellSet(idx.OccupiableCells())

	filtered := constraints.ApplyStatic(all, puzzle.NotBeside(puzzle.CellTV), idx)
	assert.NotContains(t, filtered, puzzle.Encode(0, 0))
	assert.NotContains(t, filtered, puzzle.Encode(1, 1))
	assert.Contains(t, filtered, puzzle.Encode(2, 2))
}

func TestApplyStaticPanicsOnDynamicKind(t *testing.T) {
	idx := boardindex.Build(fixtureBoard())
	all := constraints.NewCellSet(idx.OccupiableCells())

	assert.Panics(t, func() {
		constraints.ApplyStatic(all, puzzle.Alone(), idx)
	})
}

func TestCellSetCloneIsIndependent(t *testing.T) {
	original := constraints.NewCellSet([]puzzle.CellKey{"0-0", "0-1"})
	clone := original.Clone()
	delete(clone, "0-0")

	assert.Contains(t, original, puzzle.CellKey("0-0"))
	assert.NotContains(t, clone, puzzle.CellKey("0-0"))
}

func TestDescribe(t *testing.T) {
	p := fixtureBoard()
	p.Suspects = []puzzle.Suspect{{ID: "a", Name: "Anthony"}}

	desc := constraints.Describe(puzzle.InRoom("kitchen"), p)
	assert.Contains(t, desc, "Kitchen")

	desc = constraints.Describe(puzzle.AloneWith("a"), p)
	assert.Contains(t, desc, "Anthony")
}
