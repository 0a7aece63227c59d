package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/deduction-engine/internal/boardindex"
	"github.com/vancomm/deduction-engine/internal/puzzle"
	"github.com/vancomm/deduction-engine/internal/solver"
)

// a 3x3 single-room board, every cell occupiable:
//
//	. . .
//	. . .
//	. . .
func fixtureBoard(suspects ...puzzle.Suspect) *puzzle.Puzzle {
	mk := func() puzzle.Cell { return puzzle.Cell{Room: "hall", Type: puzzle.CellCarpet} }
	return &puzzle.Puzzle{
		ID:       "fixture",
		GridSize: 3,
		Board: [][]puzzle.Cell{
			{mk(), mk(), mk()},
			{mk(), mk(), mk()},
			{mk(), mk(), mk()},
		},
		Rooms:    map[puzzle.RoomID]puzzle.Room{"hall": {DisplayName: "Hall"}},
		Suspects: suspects,
	}
}

func newSolver(t *testing.T, p *puzzle.Puzzle) *solver.Solver {
	t.Helper()
	idx := boardindex.Build(p)
	return solver.New(p, idx)
}

func TestNakedSingleAtInitialize(t *testing.T) {
	p := fixtureBoard(
		puzzle.Suspect{ID: "alice", Name: "Alice", Constraints: []puzzle.Constraint{
			puzzle.InRow(0), puzzle.InColumns([]int{0}),
		}},
		puzzle.Suspect{ID: "bob", Name: "Bob"},
	)
	s := newSolver(t, p)
	s.Initialize(nil)

	key, ok := s.Placed()["alice"]
	require.True(t, ok, "alice should be pinned to a single cell by inRow+inColumns")
	assert.Equal(t, puzzle.Encode(0, 0), key)
}

func TestPlaceClearsLine(t *testing.T) {
	p := fixtureBoard(
		puzzle.Suspect{ID: "alice", Name: "Alice"},
		puzzle.Suspect{ID: "bob", Name: "Bob"},
	)
	s := newSolver(t, p)
	s.Initialize(map[puzzle.CellKey]puzzle.SuspectID{
		puzzle.Encode(0, 0): "alice",
	})

	for k := range s.GetCandidates("bob") {
		r, c := puzzle.Decode(k)
		assert.False(t, r == 0 || c == 0, "bob must not keep candidates on alice's row/column, got %s", k)
	}
}

func TestRowClaimingEliminatesFromOthers(t *testing.T) {
	p := fixtureBoard(
		puzzle.Suspect{ID: "alice", Name: "Alice", Constraints: []puzzle.Constraint{puzzle.InRow(1)}},
		puzzle.Suspect{ID: "bob", Name: "Bob", Constraints: []puzzle.Constraint{puzzle.InRow(2)}},
		puzzle.Suspect{ID: "carol", Name: "Carol"},
	)
	s := newSolver(t, p)
	s.Initialize(map[puzzle.CellKey]puzzle.SuspectID{
		puzzle.Encode(1, 0): "alice",
	})
	require.Contains(t, s.GetCandidates("carol"), puzzle.Encode(2, 1),
		"carol must still be able to reach row 2 before row claiming runs")

	step := s.SolveStep()
	require.NotNil(t, step)
	assert.Equal(t, solver.TechRowClaiming, step.Technique)
	assert.NotContains(t, s.GetCandidates("carol"), puzzle.Encode(2, 1),
		"row 2 is claimed entirely by bob, so carol can no longer be there")
	assert.NotContains(t, s.GetCandidates("carol"), puzzle.Encode(2, 2))
}

func TestSolveSimplePuzzle(t *testing.T) {
	p := fixtureBoard(
		puzzle.Suspect{ID: "alice", Name: "Alice", Constraints: []puzzle.Constraint{
			puzzle.InRow(0), puzzle.InColumns([]int{1}),
		}},
		puzzle.Suspect{ID: "bob", Name: "Bob", Constraints: []puzzle.Constraint{
			puzzle.InRow(1), puzzle.InColumns([]int{2}),
		}},
		puzzle.Suspect{ID: "carol", Name: "Carol", Constraints: []puzzle.Constraint{
			puzzle.InRow(2), puzzle.InColumns([]int{0}),
		}},
	)
	s := newSolver(t, p)
	s.Initialize(nil)
	s.Solve()

	assert.True(t, s.IsSolved())
	placed := s.Placed()
	assert.Equal(t, puzzle.Encode(0, 1), placed["alice"])
	assert.Equal(t, puzzle.Encode(1, 2), placed["bob"])
	assert.Equal(t, puzzle.Encode(2, 0), placed["carol"])
}

func TestAheadOfUsesTrackPositions(t *testing.T) {
	// trackPositions deliberately don't rise with row, so this only passes
	// if aheadOf compares trackPositions rather than grid rows: (2,0) has a
	// higher trackPosition than bob's cell despite sitting on a later row,
	// and (0,0) has a lower one despite sitting on an earlier row. carol has
	// no constraints of her own, and with only two unplaced suspects left
	// (alice, carol) the naked-set search can never claim a pair of lines
	// outright (that would need an outside suspect left over), so the
	// eliminations this test checks are aheadOf's alone.
	cell := func() puzzle.Cell { return puzzle.Cell{Room: "hall", Type: puzzle.CellCarpet} }
	p := &puzzle.Puzzle{
		ID:       "track",
		GridSize: 3,
		Board: [][]puzzle.Cell{
			{cell(), cell(), cell()},
			{cell(), cell(), cell()},
			{cell(), cell(), cell()},
		},
		Rooms: map[puzzle.RoomID]puzzle.Room{"hall": {DisplayName: "Hall"}},
		Suspects: []puzzle.Suspect{
			{ID: "alice", Name: "Alice", Constraints: []puzzle.Constraint{puzzle.AheadOf("bob")}},
			{ID: "bob", Name: "Bob"},
			{ID: "carol", Name: "Carol"},
		},
		TrackPositions: map[puzzle.CellKey]int{
			puzzle.Encode(0, 0): 0,
			puzzle.Encode(0, 1): 1,
			puzzle.Encode(0, 2): 8,
			puzzle.Encode(1, 0): 2,
			puzzle.Encode(1, 1): 3,
			puzzle.Encode(1, 2): 7,
			puzzle.Encode(2, 0): 4,
			puzzle.Encode(2, 1): 5,
			puzzle.Encode(2, 2): 6,
		},
	}
	s := newSolver(t, p)
	s.Initialize(map[puzzle.CellKey]puzzle.SuspectID{
		puzzle.Encode(1, 1): "bob",
	})
	step := s.SolveStep()
	require.NotNil(t, step)
	assert.Equal(t, solver.TechRelativeRow, step.Technique)

	assert.NotContains(t, s.GetCandidates("alice"), puzzle.Encode(0, 0),
		"trackPosition 0 does not exceed bob's trackPosition 3")
	assert.Contains(t, s.GetCandidates("alice"), puzzle.Encode(2, 0),
		"trackPosition 4 exceeds bob's, even on a row numbered after bob's")
	for k := range s.GetCandidates("alice") {
		assert.Greater(t, p.TrackPositions[k], p.TrackPositions[puzzle.Encode(1, 1)],
			"every remaining alice candidate must have a trackPosition ahead of bob's")
	}
}

func TestAloneEliminatesSharedRoom(t *testing.T) {
	// room "a" is the diagonal so that ruling it out for alice can't be
	// explained by row/column claiming alone: (1,1) and (2,2) share neither
	// bob's row nor his column.
	cell := func(room puzzle.RoomID) puzzle.Cell { return puzzle.Cell{Room: room, Type: puzzle.CellCarpet} }
	p := &puzzle.Puzzle{
		ID:       "diagonal-room",
		GridSize: 3,
		Board: [][]puzzle.Cell{
			{cell("a"), cell("b"), cell("b")},
			{cell("b"), cell("a"), cell("b")},
			{cell("b"), cell("b"), cell("a")},
		},
		Rooms: map[puzzle.RoomID]puzzle.Room{
			"a": {DisplayName: "Room A"},
			"b": {DisplayName: "Room B"},
		},
		Suspects: []puzzle.Suspect{
			{ID: "alice", Name: "Alice", Constraints: []puzzle.Constraint{puzzle.Alone()}},
			{ID: "bob", Name: "Bob"},
			{ID: "carol", Name: "Carol"},
		},
	}
	s := newSolver(t, p)
	s.Initialize(map[puzzle.CellKey]puzzle.SuspectID{
		puzzle.Encode(0, 0): "bob",
	})
	require.Contains(t, s.GetCandidates("alice"), puzzle.Encode(1, 1),
		"row/column claiming alone must not yet have ruled out room a's other cells")

	step := s.SolveStep()
	require.NotNil(t, step)
	assert.Equal(t, solver.TechRoomConstraint, step.Technique)

	for k := range s.GetCandidates("alice") {
		info := s.Index().CellInfo(k)
		assert.NotEqual(t, puzzle.RoomID("a"), info.Room, "alice can't join bob's room, she must be alone")
	}
}
