package solver

import (
	"fmt"

	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// tryRelativeRow is pipeline step 7: the relativeRow and aheadOf
// constraints. relativeRow ties one suspect's row to another's (narrowing
// both to compatible row ranges even while neither is placed); aheadOf
// orders two suspects by trackPositions, not by row. They're re-consulted every round rather than
// filtered once, since which side is known first depends on the order
// techniques resolve suspects in.
func (s *Solver) tryRelativeRow() *Step {
	for _, id := range s.order {
		suspect := s.puzzle.SuspectByID(id)
		if suspect == nil {
			continue
		}
		for _, c := range suspect.Constraints {
			switch c.Kind {
			case puzzle.KindRelativeRow:
				if step := s.evalRelativeRow(id, c.Suspect, c.RowOffset); step != nil {
					return step
				}
			case puzzle.KindAheadOf:
				if step := s.evalAheadOf(id, c.Suspect); step != nil {
					return step
				}
			}
		}
	}
	return nil
}

// evalRelativeRow implements relativeRow(other, offset): id's row must
// equal other's row plus offset. Whichever side is placed first narrows
// the other; once both are placed there's nothing left to derive. When
// neither side is placed yet, each is still narrowed to the row range the
// other's remaining candidates project onto it.
func (s *Solver) evalRelativeRow(id, other puzzle.SuspectID, offset int) *Step {
	if otherKey, ok := s.placed[other]; ok {
		if _, ok := s.placed[id]; ok {
			return nil
		}
		otherRow, _ := puzzle.Decode(otherKey)
		return s.restrictSuspectToRow(id, otherRow+offset, TechRelativeRow,
			fmt.Sprintf("%s must be %+d rows from %s.", s.suspectName(id), offset, s.suspectName(other)))
	}
	if idKey, ok := s.placed[id]; ok {
		if _, ok := s.placed[other]; ok {
			return nil
		}
		idRow, _ := puzzle.Decode(idKey)
		return s.restrictSuspectToRow(other, idRow-offset, TechRelativeRow,
			fmt.Sprintf("%s must be %+d rows from %s.", s.suspectName(id), offset, s.suspectName(other)))
	}

	if step := s.restrictToProjectedRowRange(id, other, offset); step != nil {
		return step
	}
	return s.restrictToProjectedRowRange(other, id, -offset)
}

// restrictToProjectedRowRange narrows a's candidates to the rows compatible
// with b's current row range shifted by off: b's candidates span some
// [minRow, maxRow], so a's row must fall in [minRow+off, maxRow+off].
func (s *Solver) restrictToProjectedRowRange(a, b puzzle.SuspectID, off int) *Step {
	minRow, maxRow, found := s.candidateRowRange(b)
	if !found {
		return nil
	}
	return s.restrictSuspectRowRange(a, minRow+off, maxRow+off, TechRelativeRow,
		fmt.Sprintf("%s's row must be compatible with %s's.", s.suspectName(a), s.suspectName(b)))
}

// candidateRowRange returns the smallest and largest row among b's
// remaining candidates (or its placed cell's row, as a single-row range).
func (s *Solver) candidateRowRange(id puzzle.SuspectID) (minRow, maxRow int, found bool) {
	if key, ok := s.placed[id]; ok {
		row, _ := puzzle.Decode(key)
		return row, row, true
	}
	for key := range s.candidates[id] {
		row, _ := puzzle.Decode(key)
		if !found || row < minRow {
			minRow = row
		}
		if !found || row > maxRow {
			maxRow = row
		}
		found = true
	}
	return minRow, maxRow, found
}

// evalAheadOf implements aheadOf(other): id's trackPosition must be
// strictly greater than other's, not a row comparison -- rows and track
// ranks are independent axes on a puzzle that sets trackPositions, so this
// must go through puzzle.TrackPositions rather than the grid geometry
// tryRelativeRow's sibling technique uses.
//
// id's minimum feasible position must exceed other's minimum feasible
// position, so any of id's candidates at or below other's current minimum
// can never validly hold id (someone would still need to occupy a
// position between them). Symmetrically, other's candidates at or above
// id's current maximum can never validly hold other.
func (s *Solver) evalAheadOf(id, other puzzle.SuspectID) *Step {
	if step := s.restrictAheadTrackPosition(id, other); step != nil {
		return step
	}
	return s.restrictBehindTrackPosition(other, id)
}

// minTrackPosition returns the smallest trackPosition still feasible for
// id: its placed cell's position, or the minimum across its candidates.
func (s *Solver) minTrackPosition(id puzzle.SuspectID) (int, bool) {
	if key, ok := s.placed[id]; ok {
		pos, ok := s.puzzle.TrackPositions[key]
		return pos, ok
	}
	min, found := 0, false
	for key := range s.candidates[id] {
		pos, ok := s.puzzle.TrackPositions[key]
		if !ok {
			continue
		}
		if !found || pos < min {
			min, found = pos, true
		}
	}
	return min, found
}

// maxTrackPosition returns the largest trackPosition still feasible for id.
func (s *Solver) maxTrackPosition(id puzzle.SuspectID) (int, bool) {
	if key, ok := s.placed[id]; ok {
		pos, ok := s.puzzle.TrackPositions[key]
		return pos, ok
	}
	max, found := 0, false
	for key := range s.candidates[id] {
		pos, ok := s.puzzle.TrackPositions[key]
		if !ok {
			continue
		}
		if !found || pos > max {
			max, found = pos, true
		}
	}
	return max, found
}

// restrictAheadTrackPosition eliminates id's candidates whose trackPosition
// doesn't exceed other's minimum feasible trackPosition.
func (s *Solver) restrictAheadTrackPosition(id, other puzzle.SuspectID) *Step {
	if _, ok := s.placed[id]; ok {
		return nil
	}
	bound, ok := s.minTrackPosition(other)
	if !ok {
		return nil
	}
	cset := s.candidates[id]
	eliminated := make(constraints.CellSet)
	for key := range cset {
		pos, ok := s.puzzle.TrackPositions[key]
		if !ok || pos <= bound {
			eliminated[key] = true
			delete(cset, key)
		}
	}
	if len(eliminated) == 0 {
		return nil
	}
	return &Step{
		Technique:       TechRelativeRow,
		SuspectID:       id,
		EliminatedCells: eliminated.Keys(),
		Message:         fmt.Sprintf("%s must be ahead of %s.", s.suspectName(id), s.suspectName(other)),
	}
}

// restrictBehindTrackPosition eliminates other's candidates whose
// trackPosition isn't below id's maximum feasible trackPosition -- the
// symmetric half of id aheadOf other.
func (s *Solver) restrictBehindTrackPosition(other, id puzzle.SuspectID) *Step {
	if _, ok := s.placed[other]; ok {
		return nil
	}
	bound, ok := s.maxTrackPosition(id)
	if !ok {
		return nil
	}
	cset := s.candidates[other]
	eliminated := make(constraints.CellSet)
	for key := range cset {
		pos, ok := s.puzzle.TrackPositions[key]
		if !ok || pos >= bound {
			eliminated[key] = true
			delete(cset, key)
		}
	}
	if len(eliminated) == 0 {
		return nil
	}
	return &Step{
		Technique:       TechRelativeRow,
		SuspectID:       other,
		EliminatedCells: eliminated.Keys(),
		Message:         fmt.Sprintf("%s must be ahead of %s.", s.suspectName(id), s.suspectName(other)),
	}
}

func (s *Solver) restrictSuspectToRow(id puzzle.SuspectID, row int, technique TechniqueID, message string) *Step {
	if _, ok := s.placed[id]; ok {
		return nil
	}
	cset := s.candidates[id]
	eliminated := make(constraints.CellSet)
	for key := range cset {
		r, _ := puzzle.Decode(key)
		if r != row {
			eliminated[key] = true
			delete(cset, key)
		}
	}
	if len(eliminated) == 0 {
		return nil
	}
	return &Step{
		Technique:       technique,
		SuspectID:       id,
		EliminatedCells: eliminated.Keys(),
		Message:         message,
	}
}

func (s *Solver) restrictSuspectRowRange(id puzzle.SuspectID, minRow, maxRow int, technique TechniqueID, message string) *Step {
	if _, ok := s.placed[id]; ok {
		return nil
	}
	cset := s.candidates[id]
	eliminated := make(constraints.CellSet)
	for key := range cset {
		r, _ := puzzle.Decode(key)
		if r < minRow || r > maxRow {
			eliminated[key] = true
			delete(cset, key)
		}
	}
	if len(eliminated) == 0 {
		return nil
	}
	return &Step{
		Technique:       technique,
		SuspectID:       id,
		EliminatedCells: eliminated.Keys(),
		Message:         message,
	}
}
