package solver

import (
	"fmt"
	"sort"

	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

func (s *Solver) suspectName(id puzzle.SuspectID) string {
	if suspect := s.puzzle.SuspectByID(id); suspect != nil && suspect.Name != "" {
		return suspect.Name
	}
	return string(id)
}

// tryNakedSingle is pipeline step 1: place any unplaced suspect left with
// exactly one candidate. In practice propagateBasic already
// resolves these as soon as they appear, so this rarely fires except
// immediately after Initialize; it stays in the pipeline for determinism
// and to cover any technique that narrows a set without placing it itself.
func (s *Solver) tryNakedSingle() *Step {
	for _, id := range s.order {
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
		s.Place(id, key)
		return &Step{
			Technique: TechNakedSingle,
			SuspectID: id,
			CellKey:   key,
			Message:   fmt.Sprintf("%s can only be at %s.", s.suspectName(id), key),
		}
	}
	return nil
}

// restrictToLine returns the subset of cset lying in the given row (or
// column, if !byRow). Used by the naked-set search in nakedset.go
// (blockOrthogonalLine), which needs a suspect's candidates cut down to one
// line before comparing them across suspects.
func (s *Solver) restrictToLine(cset constraints.CellSet, line int, byRow bool) constraints.CellSet {
	out := make(constraints.CellSet)
	for k := range cset {
		info := s.index.CellInfo(k)
		if (byRow && info.Row == line) || (!byRow && info.Col == line) {
			out[k] = true
		}
	}
	return out
}

// tryRowClaiming and tryColumnClaiming are pipeline step 3: if all of a
// suspect's candidates share one row/column, every other suspect's
// candidates in that row/column are eliminated.
func (s *Solver) tryRowClaiming() *Step {
	return s.tryLineClaiming(true)
}

func (s *Solver) tryColumnClaiming() *Step {
	return s.tryLineClaiming(false)
}

func (s *Solver) tryLineClaiming(byRow bool) *Step {
	for _, id := range s.order {
		if _, ok := s.placed[id]; ok {
			continue
		}
		cset := s.candidates[id]
		if len(cset) == 0 {
			continue
		}
		line, uniform := s.allSameLine(cset, byRow)
		if !uniform {
			continue
		}

		eliminated := make(constraints.CellSet)
		for _, otherID := range s.order {
			if otherID == id {
				continue
			}
			if _, ok := s.placed[otherID]; ok {
				continue
			}
			oset := s.candidates[otherID]
			for k := range oset {
				info := s.index.CellInfo(k)
				if (byRow && info.Row == line) || (!byRow && info.Col == line) {
					eliminated[k] = true
					delete(oset, k)
				}
			}
		}
		if len(eliminated) == 0 {
			continue
		}

		technique := TechRowClaiming
		lineWord := "row"
		if !byRow {
			technique = TechColumnClaiming
			lineWord = "column"
		}
		return &Step{
			Technique:       technique,
			SuspectID:       id,
			EliminatedCells: eliminated.Keys(),
			Message:         fmt.Sprintf("%s must be in %s %d, so no one else can be.", s.suspectName(id), lineWord, line),
		}
	}
	return nil
}

func (s *Solver) allSameLine(cset constraints.CellSet, byRow bool) (int, bool) {
	line := -1
	for k := range cset {
		info := s.index.CellInfo(k)
		v := info.Row
		if !byRow {
			v = info.Col
		}
		if line == -1 {
			line = v
		} else if line != v {
			return 0, false
		}
	}
	return line, line != -1
}

// tryPointingGroup is pipeline step 8: if all of a suspect's candidates
// within one room share a row/column, that suspect cannot be in that
// row/column in any other room.
func (s *Solver) tryPointingGroup() *Step {
	for _, id := range s.order {
		if _, ok := s.placed[id]; ok {
			continue
		}
		cset := s.candidates[id]
		byRoom := make(map[puzzle.RoomID][]puzzle.CellKey)
		for k := range cset {
			info := s.index.CellInfo(k)
			byRoom[info.Room] = append(byRoom[info.Room], k)
		}
		rooms := make([]puzzle.RoomID, 0, len(byRoom))
		for room := range byRoom {
			rooms = append(rooms, room)
		}
		sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })
		for _, room := range rooms {
			keys := byRoom[room]
			if step := s.pointingGroupForRoom(id, room, keys, cset, true); step != nil {
				return step
			}
			if step := s.pointingGroupForRoom(id, room, keys, cset, false); step != nil {
				return step
			}
		}
	}
	return nil
}

func (s *Solver) pointingGroupForRoom(
	id puzzle.SuspectID, room puzzle.RoomID, roomKeys []puzzle.CellKey, cset constraints.CellSet, byRow bool,
) *Step {
	line := -1
	for _, k := range roomKeys {
		info := s.index.CellInfo(k)
		v := info.Row
		if !byRow {
			v = info.Col
		}
		if line == -1 {
			line = v
		} else if line != v {
			return nil
		}
	}
	if line == -1 {
		return nil
	}

	eliminated := make(constraints.CellSet)
	for k := range cset {
		info := s.index.CellInfo(k)
		if info.Room == room {
			continue
		}
		v := info.Row
		if !byRow {
			v = info.Col
		}
		if v == line {
			eliminated[k] = true
			delete(cset, k)
		}
	}
	if len(eliminated) == 0 {
		return nil
	}

	lineWord := "row"
	if !byRow {
		lineWord = "column"
	}
	return &Step{
		Technique:       TechPointingGroup,
		SuspectID:       id,
		EliminatedCells: eliminated.Keys(),
		Message:         fmt.Sprintf("%s's candidates in one room all share %s %d, ruling it out elsewhere.", s.suspectName(id), lineWord, line),
	}
}

// tryOnlyPersonOnCellType is pipeline step 6: if suspect X has
// onlyPersonOnCellType(T), no other suspect not itself required to be on T
// may stand on a T cell.
func (s *Solver) tryOnlyPersonOnCellType() *Step {
	for _, id := range s.order {
		suspect := s.puzzle.SuspectByID(id)
		if suspect == nil {
			continue
		}
		for _, c := range suspect.Constraints {
			if c.Kind != puzzle.KindOnlyPersonOnCellType {
				continue
			}
			eliminated := make(constraints.CellSet)
			for _, otherID := range s.order {
				if otherID == id {
					continue
				}
				if _, ok := s.placed[otherID]; ok {
					continue
				}
				if requiresCellType(s.puzzle.SuspectByID(otherID), c.CellType) {
					continue
				}
				oset := s.candidates[otherID]
				for k := range oset {
					if s.index.CellInfo(k).Type == c.CellType {
						eliminated[k] = true
						delete(oset, k)
					}
				}
			}
			if len(eliminated) > 0 {
				return &Step{
					Technique:       TechOnlyPersonOnCellType,
					SuspectID:       id,
					EliminatedCells: eliminated.Keys(),
					Message:         fmt.Sprintf("%s is the only one who can stand on %s.", s.suspectName(id), c.CellType),
				}
			}
		}
	}
	return nil
}

// requiresCellType reports whether suspect must stand on t regardless of
// this technique (an onCellType or onlyPersonOnCellType constraint naming
// the same type), meaning it's exempt from this elimination.
func requiresCellType(suspect *puzzle.Suspect, t puzzle.CellType) bool {
	if suspect == nil {
		return false
	}
	for _, c := range suspect.Constraints {
		if (c.Kind == puzzle.KindOnCellType || c.Kind == puzzle.KindOnlyPersonOnCellType) && c.CellType == t {
			return true
		}
	}
	return false
}
