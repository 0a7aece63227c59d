package hintengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/deduction-engine/internal/hintengine"
	"github.com/vancomm/deduction-engine/internal/puzzle"
	"github.com/vancomm/deduction-engine/internal/solver"
)

func fixturePuzzle(hints ...puzzle.CuratedHint) *puzzle.Puzzle {
	cell := func() puzzle.Cell { return puzzle.Cell{Room: "hall", Type: puzzle.CellCarpet} }
	return &puzzle.Puzzle{
		ID:       "fixture",
		GridSize: 3,
		Board: [][]puzzle.Cell{
			{cell(), cell(), cell()},
			{cell(), cell(), cell()},
			{cell(), cell(), cell()},
		},
		Rooms: map[puzzle.RoomID]puzzle.Room{"hall": {DisplayName: "Hall"}},
		Suspects: []puzzle.Suspect{
			{ID: "alice", Name: "Alice", Constraints: []puzzle.Constraint{
				puzzle.InRow(0), puzzle.InColumns([]int{1}),
			}},
			{ID: "bob", Name: "Bob"},
		},
		Hints: hints,
	}
}

func TestSolveFromStateReportsUnplacedOnDeadEnd(t *testing.T) {
	p := fixturePuzzle()
	result := hintengine.SolveFromState(p, nil)

	assert.False(t, result.Solved, "only alice can be fully pinned; bob is underconstrained")
	assert.Contains(t, result.Unplaced, puzzle.SuspectID("bob"))
	// alice's naked single resolves silently inside Initialize, before
	// Solve's step-recording pipeline runs; with bob the only suspect left
	// and no constraint of his own, no technique has anything to report.
	assert.Empty(t, result.Steps)
}

func TestGetDebugStateReflectsPlacements(t *testing.T) {
	p := fixturePuzzle()
	state := hintengine.GetDebugState(p, map[puzzle.CellKey]puzzle.SuspectID{
		puzzle.Encode(0, 1): "alice",
	})

	assert.Equal(t, puzzle.Encode(0, 1), state.Placed["alice"])
	for _, key := range state.SuspectCandidates["bob"] {
		r, c := puzzle.Decode(key)
		assert.False(t, r == 0 || c == 1, "bob shouldn't keep candidates on alice's row/column")
	}
}

func TestGetNextHintPrefersCuratedOverGeneric(t *testing.T) {
	p := fixturePuzzle(puzzle.CuratedHint{
		Suspect: "bob",
		Order:   1,
		Target:  puzzle.HintTarget{Kind: puzzle.TargetRow, Row: 1},
		Messages: puzzle.HintMessages{
			Single:   "Bob is in the middle row, somewhere specific.",
			Multiple: "Bob is somewhere in the middle row.",
		},
	})
	hint := hintengine.GetNextHint(p, nil)
	require.NotNil(t, hint)
	assert.True(t, hint.Curated)
	assert.Equal(t, puzzle.SuspectID("bob"), hint.Suspect)
	assert.Equal(t, "Bob is somewhere in the middle row.", hint.Message)
}

func TestGetNextHintFallsBackToGenericTechnique(t *testing.T) {
	// bob's inRow(2) confines him to row 2 entirely; once alice is pinned
	// (clearing column 0), row claiming rules carol out of row 2 -- a real,
	// non-vacuous generic hint for the pipeline to surface.
	cell := func() puzzle.Cell { return puzzle.Cell{Room: "hall", Type: puzzle.CellCarpet} }
	p := &puzzle.Puzzle{
		ID:       "claiming-fixture",
		GridSize: 3,
		Board: [][]puzzle.Cell{
			{cell(), cell(), cell()},
			{cell(), cell(), cell()},
			{cell(), cell(), cell()},
		},
		Rooms: map[puzzle.RoomID]puzzle.Room{"hall": {DisplayName: "Hall"}},
		Suspects: []puzzle.Suspect{
			{ID: "alice", Name: "Alice", Constraints: []puzzle.Constraint{puzzle.InRow(1)}},
			{ID: "bob", Name: "Bob", Constraints: []puzzle.Constraint{puzzle.InRow(2)}},
			{ID: "carol", Name: "Carol"},
		},
	}
	placements := map[puzzle.CellKey]puzzle.SuspectID{
		puzzle.Encode(1, 0): "alice",
	}

	hint := hintengine.GetNextHint(p, placements)
	require.NotNil(t, hint)
	assert.False(t, hint.Curated)
	assert.Equal(t, puzzle.SuspectID("bob"), hint.Suspect)
	assert.Equal(t, solver.TechRowClaiming, hint.Technique)
}

func TestGetNextHintReturnsNilWhenSolved(t *testing.T) {
	p := fixturePuzzle()
	placements := map[puzzle.CellKey]puzzle.SuspectID{
		puzzle.Encode(0, 1): "alice",
		puzzle.Encode(2, 2): "bob",
	}
	hint := hintengine.GetNextHint(p, placements)
	assert.Nil(t, hint)
}
