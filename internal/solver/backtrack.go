package solver

import (
	"fmt"
	"sort"

	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// snapshot is a deep copy of everything Solve mutates while testing a
// hypothesis. A shallow copy of candidates would alias the same underlying
// CellSet maps as the live solver and corrupt them the moment the
// hypothesis mutates state — candidateMap.clone deep-copies each set for
// exactly this reason. stepsLen is captured so restore can truncate the
// step log back to its pre-hypothesis length, even though nothing on the
// hypothesis path appends to it today.
type snapshot struct {
	candidates candidateMap
	placed     map[puzzle.SuspectID]puzzle.CellKey
	stepsLen   int
}

func (s *Solver) snapshot() snapshot {
	placed := make(map[puzzle.SuspectID]puzzle.CellKey, len(s.placed))
	for id, key := range s.placed {
		placed[id] = key
	}
	return snapshot{
		candidates: s.candidates.clone(),
		placed:     placed,
		stepsLen:   len(s.steps),
	}
}

func (s *Solver) restore(snap snapshot) {
	s.candidates = snap.candidates
	s.placed = snap.placed
	s.steps = s.steps[:snap.stepsLen]
}

// contradictionTest tentatively places id at key, propagates, and runs the
// technique pipeline (steps 5→1→…→8, plus one further recursive level of
// contradiction elimination when depth allows) to a fixed point, reporting
// whether the resulting state is unsatisfiable — meaning id can never
// actually go there. State is always restored before returning, regardless
// of the outcome.
func (s *Solver) contradictionTest(id puzzle.SuspectID, key puzzle.CellKey, depth int) bool {
	snap := s.snapshot()
	defer s.restore(snap)

	s.placeRaw(id, key)
	s.propagateBasic()
	s.runPipelineToFixedPoint(depth)

	return s.isContradictory()
}

// runPipelineToFixedPoint repeats techniques 5 through 8 then 1 through 4
// until none makes progress, recursing into contradiction elimination
// itself once more when depth > 0 — one further recursive level of
// lookahead beyond the immediate test.
func (s *Solver) runPipelineToFixedPoint(depth int) {
	techniques := []func() *Step{
		s.tryRoomConstraints,
		s.tryOnlyPersonOnCellType,
		s.tryRelativeRow,
		s.tryPointingGroup,
		s.tryNakedSingle,
		s.tryRowClaiming,
		s.tryColumnClaiming,
		s.tryNakedRowSet,
		s.tryNakedColumnSet,
	}

	for i := 0; i < maxSolveIterations; i++ {
		progressed := false
		for _, technique := range techniques {
			if technique() != nil {
				s.propagateBasic()
				progressed = true
			}
		}
		if depth > 0 && s.contradictionEliminationAt(depth-1) != nil {
			progressed = true
		}
		if !progressed || s.isContradictory() {
			break
		}
	}
}

// isContradictory reports whether a state is contradictory: any unplaced
// suspect has zero candidates, or some unoccupied row (or column) has no
// candidate left belonging to any unplaced suspect.
func (s *Solver) isContradictory() bool {
	for _, id := range s.order {
		if _, ok := s.placed[id]; ok {
			continue
		}
		if len(s.candidates[id]) == 0 {
			return true
		}
	}

	size := s.index.GridSize()
	for line := 0; line < size; line++ {
		if !s.rowOccupied(line) && !s.lineHasUnplacedCandidate(line, true) {
			return true
		}
		if !s.colOccupied(line) && !s.lineHasUnplacedCandidate(line, false) {
			return true
		}
	}
	return false
}

func (s *Solver) lineHasUnplacedCandidate(line int, byRow bool) bool {
	for _, id := range s.order {
		if _, ok := s.placed[id]; ok {
			continue
		}
		for key := range s.candidates[id] {
			row, col := puzzle.Decode(key)
			if byRow && row == line {
				return true
			}
			if !byRow && col == line {
				return true
			}
		}
	}
	return false
}

// fewestCandidatesUnplaced returns the unplaced suspect with the fewest
// candidates among those with more than one, in declared suspect order
// for ties.
func (s *Solver) fewestCandidatesUnplaced() (puzzle.SuspectID, constraints.CellSet, bool) {
	var best puzzle.SuspectID
	var bestSet constraints.CellSet
	found := false
	for _, id := range s.order {
		if _, ok := s.placed[id]; ok {
			continue
		}
		cset := s.candidates[id]
		if len(cset) < 2 {
			continue
		}
		if !found || len(cset) < len(bestSet) {
			best, bestSet, found = id, cset, true
		}
	}
	return best, bestSet, found
}

// tryContradictionElimination is the last pipeline step: pick the unplaced
// suspect with fewest candidates (>1) and test each of its candidates for
// a contradiction. This is depth-1 lookahead plus one recursive level, not
// exhaustive search — it only catches contradictions that surface within
// two propagation passes, keeping the puzzle's step trace legible.
func (s *Solver) tryContradictionElimination() *Step {
	return s.contradictionEliminationAt(1)
}

func (s *Solver) contradictionEliminationAt(depth int) *Step {
	id, cset, ok := s.fewestCandidatesUnplaced()
	if !ok {
		return nil
	}
	keys := cset.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		if !s.contradictionTest(id, key, depth) {
			continue
		}
		// contradictionTest's restore swapped in the snapshot's cloned
		// candidate map, so cset no longer belongs to the live state.
		delete(s.candidates[id], key)
		return &Step{
			Technique:       TechContradictionElimination,
			SuspectID:       id,
			EliminatedCells: []puzzle.CellKey{key},
			Message:         fmt.Sprintf("%s at %s would leave someone with nowhere to go.", s.suspectName(id), key),
		}
	}
	return nil
}
