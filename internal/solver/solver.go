package solver

import (
	"sort"

	"github.com/vancomm/deduction-engine/internal/boardindex"
	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// Solver maintains one puzzle's deduction state: a candidate set per
// suspect, the placements made so far, and the append-only trace of
// techniques applied. A Solver owns this state exclusively — never share
// one across goroutines; construct a fresh instance per puzzle interaction
// instead.
type Solver struct {
	puzzle *puzzle.Puzzle
	index  *boardindex.Index

	// order is the puzzle's declared suspect order. Iteration during the
	// technique pipeline always follows this order, never map iteration
	// order, so that identical inputs produce identical step sequences.
	order []puzzle.SuspectID

	candidates candidateMap
	placed     map[puzzle.SuspectID]puzzle.CellKey

	steps []Step
}

// New constructs a Solver for p, reusing the given board index (an Index
// is read-only and safe to share across solver instances built from the
// same puzzle). It panics with a puzzle.AssertionError if idx was not
// built from p. A constraint that references an unknown suspect is caught
// earlier, by the p.Validate call inside boardindex.Build.
func New(p *puzzle.Puzzle, idx *boardindex.Index) *Solver {
	if idx.Puzzle() != p {
		puzzle.Assertf("solver: board index was not built from this puzzle")
	}

	order := make([]puzzle.SuspectID, len(p.Suspects))
	for i, s := range p.Suspects {
		order[i] = s.ID
	}

	return &Solver{
		puzzle: p,
		index:  idx,
		order:  order,
	}
}

// Initialize resets all state and computes each suspect's initial
// candidate set: occupiable cells intersected with every static filter on
// that suspect. placements are then applied via Place, and the state is
// propagated to a fixed point before returning.
//
// It panics with a puzzle.AssertionError if placements assigns a suspect
// to a non-occupiable cell — the host must validate placements against
// the board before calling this, exactly as it must validate the puzzle
// itself.
func (s *Solver) Initialize(placements map[puzzle.CellKey]puzzle.SuspectID) {
	s.candidates = make(candidateMap, len(s.order))
	s.placed = make(map[puzzle.SuspectID]puzzle.CellKey)
	s.steps = nil

	occupiable := constraints.NewCellSet(s.index.OccupiableCells())

	for _, suspect := range s.puzzle.Suspects {
		cset := occupiable.Clone()
		for _, c := range suspect.Constraints {
			if constraints.IsStatic(c.Kind) {
				cset = constraints.ApplyStatic(cset, c, s.index)
			}
		}
		s.candidates[suspect.ID] = cset
	}

	// Deterministic order: sort placements by cell key so identical input
	// maps always apply in the same sequence regardless of Go's random
	// map iteration order.
	keys := make([]puzzle.CellKey, 0, len(placements))
	for k := range placements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, key := range keys {
		id := placements[key]
		if !s.index.IsOccupiable(key) {
			puzzle.Assertf("solver: placement assigns suspect %q to non-occupiable cell %q", id, key)
		}
		if s.puzzle.SuspectByID(id) == nil {
			puzzle.Assertf("solver: placement references unknown suspect %q", id)
		}
		s.Place(id, key)
	}

	s.propagateBasic()
}

// Place is the placement primitive: it records suspect at key, narrows the
// suspect's own candidate set to the singleton, removes key and every
// cell sharing its row or column from every other unplaced suspect's
// candidate set, then runs propagateBasic to a fixed point. Calling it on
// an already-placed suspect is a no-op.
func (s *Solver) Place(id puzzle.SuspectID, key puzzle.CellKey) {
	if _, ok := s.placed[id]; ok {
		return
	}
	s.placeRaw(id, key)
	s.propagateBasic()
}

// placeRaw performs the bookkeeping half of Place without cascading into
// propagateBasic, so propagateBasic's own naked-single loop can call it
// without recursing back into itself. It returns the ids of suspects whose
// candidate sets actually shrank, for worklist seeding.
func (s *Solver) placeRaw(id puzzle.SuspectID, key puzzle.CellKey) []puzzle.SuspectID {
	s.placed[id] = key
	s.candidates[id] = constraints.CellSet{key: true}

	row, col := puzzle.Decode(key)

	var touched []puzzle.SuspectID
	for _, otherID := range s.order {
		if otherID == id {
			continue
		}
		if _, isPlaced := s.placed[otherID]; isPlaced {
			continue
		}
		cset := s.candidates[otherID]
		changed := false
		for k := range cset {
			kr, kc := puzzle.Decode(k)
			if kr == row || kc == col {
				delete(cset, k)
				changed = true
			}
		}
		if changed {
			touched = append(touched, otherID)
		}
	}
	return touched
}

// propagateBasic iterates naked-single placement to a fixed point: any
// unplaced suspect left with exactly one candidate is placed, which may in
// turn strip candidates from others and produce further naked singles. It
// uses a worklist so only suspects whose candidate sets just changed are
// re-examined.
func (s *Solver) propagateBasic() {
	wl := newSuspectTodo()
	for _, id := range s.order {
		if _, ok := s.placed[id]; !ok {
			wl.add(id)
		}
	}

	for {
		id, ok := wl.pop()
		if !ok {
			break
		}
		if _, ok := s.placed[id]; ok {
			continue
		}
		cset := s.candidates[id]
		if len(cset) != 1 {
			continue
		}
		var key puzzle.CellKey
		for k := range cset {
			key = k
		}
		touched := s.placeRaw(id, key)
		wl.addAll(touched)
	}
}

// GetCandidates returns the current candidate set for id, or nil if id is
// unknown. The returned set is the solver's own live map — callers must
// not mutate it.
func (s *Solver) GetCandidates(id puzzle.SuspectID) constraints.CellSet {
	return s.candidates[id]
}

// GetCellCandidates returns the unplaced suspects that still list key as a
// candidate.
func (s *Solver) GetCellCandidates(key puzzle.CellKey) []puzzle.SuspectID {
	var out []puzzle.SuspectID
	for _, id := range s.order {
		if _, ok := s.placed[id]; ok {
			continue
		}
		if s.candidates[id][key] {
			out = append(out, id)
		}
	}
	return out
}

// IsSolved reports whether every suspect has been placed.
func (s *Solver) IsSolved() bool {
	return len(s.placed) == len(s.order)
}

// Placed returns a read-only view of the current placements.
func (s *Solver) Placed() map[puzzle.SuspectID]puzzle.CellKey {
	out := make(map[puzzle.SuspectID]puzzle.CellKey, len(s.placed))
	for id, key := range s.placed {
		out[id] = key
	}
	return out
}

// Steps returns the accumulated step trace.
func (s *Solver) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Puzzle returns the puzzle this solver was built for.
func (s *Solver) Puzzle() *puzzle.Puzzle {
	return s.puzzle
}

// Index returns the board index this solver was built for.
func (s *Solver) Index() *boardindex.Index {
	return s.index
}

func (s *Solver) rowOccupied(row int) bool {
	for _, key := range s.placed {
		r, _ := puzzle.Decode(key)
		if r == row {
			return true
		}
	}
	return false
}

func (s *Solver) colOccupied(col int) bool {
	for _, key := range s.placed {
		_, c := puzzle.Decode(key)
		if c == col {
			return true
		}
	}
	return false
}
