// Package constraints is the declarative catalogue of clue-constraint
// kinds: which kinds are static geometry-only filters applied once at
// initialisation, which are dynamic and re-consulted every propagation
// round, and how to render any constraint as a human-readable description
// for diagnostic messages. It is deliberately a closed catalogue — a
// switch over puzzle.ConstraintKind, not an open plugin interface — since
// the set of clue shapes this game supports is small and fixed.
package constraints

import (
	"fmt"

	"github.com/vancomm/deduction-engine/internal/boardindex"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// staticKinds lists the constraint kinds evaluated once, at initialisation,
// as plain candidate-set filters.
var staticKinds = map[puzzle.ConstraintKind]bool{
	puzzle.KindInRoom:        true,
	puzzle.KindInRooms:       true,
	puzzle.KindOnCellType:    true,
	puzzle.KindNotOnCellType: true,
	puzzle.KindBeside:        true,
	puzzle.KindNotBeside:     true,
	puzzle.KindInColumns:     true,
	puzzle.KindInRow:         true,
}

// IsStatic reports whether k is a static, geometry-only filter (true) or a
// dynamic constraint consulted throughout propagation (false).
func IsStatic(k puzzle.ConstraintKind) bool {
	return staticKinds[k]
}

// CellSet is a set of cell keys, used throughout the catalogue and solver
// in place of a slice so intersection/filtering is O(n) instead of O(n^2).
type CellSet map[puzzle.CellKey]bool

// NewCellSet builds a CellSet from a slice of keys.
func NewCellSet(keys []puzzle.CellKey) CellSet {
	s := make(CellSet, len(keys))
	for _, k := range keys {
		s[k] = true
	}
	return s
}

// Clone returns an element-wise copy. Cloning a CellSet by simple map
// assignment would alias the same underlying map, corrupting whichever
// snapshot the caller meant to keep independent.
func (s CellSet) Clone() CellSet {
	out := make(CellSet, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

// Intersect returns the elements present in both s and other.
func (s CellSet) Intersect(other CellSet) CellSet {
	out := make(CellSet)
	small, big := s, other
	if len(other) < len(s) {
		small, big = other, s
	}
	for k := range small {
		if big[k] {
			out[k] = true
		}
	}
	return out
}

// Keys returns the set's members as a slice, in unspecified order.
func (s CellSet) Keys() []puzzle.CellKey {
	out := make([]puzzle.CellKey, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// ApplyStatic filters candidates according to a static constraint c. It
// panics via puzzle.Assertf if c.Kind is not one of the static kinds; the
// solver is responsible for routing dynamic kinds elsewhere.
func ApplyStatic(candidates CellSet, c puzzle.Constraint, idx *boardindex.Index) CellSet {
	if !IsStatic(c.Kind) {
		puzzle.Assertf("constraints: %s is not a static constraint kind", c.Kind)
	}

	switch c.Kind {
	case puzzle.KindInRoom:
		return filterByRoom(candidates, idx, c.Room)

	case puzzle.KindInRooms:
		allowed := make(map[puzzle.RoomID]bool, len(c.Rooms))
		for _, r := range c.Rooms {
			allowed[r] = true
		}
		return filterFunc(candidates, idx, func(info boardindex.CellInfo) bool {
			return allowed[info.Room]
		})

	case puzzle.KindInRow:
		return filterFunc(candidates, idx, func(info boardindex.CellInfo) bool {
			return info.Row == c.Row
		})

	case puzzle.KindInColumns:
		allowed := make(map[int]bool, len(c.Cols))
		for _, col := range c.Cols {
			allowed[col] = true
		}
		return filterFunc(candidates, idx, func(info boardindex.CellInfo) bool {
			return allowed[info.Col]
		})

	case puzzle.KindOnCellType:
		return filterFunc(candidates, idx, func(info boardindex.CellInfo) bool {
			return info.Type == c.CellType
		})

	case puzzle.KindNotOnCellType:
		return filterFunc(candidates, idx, func(info boardindex.CellInfo) bool {
			return info.Type != c.CellType
		})

	case puzzle.KindBeside:
		beside := idx.CellsBesideType(c.CellType)
		return candidates.Intersect(CellSet(beside))

	case puzzle.KindNotBeside:
		beside := idx.CellsBesideType(c.CellType)
		out := make(CellSet)
		for k := range candidates {
			if !beside[k] {
				out[k] = true
			}
		}
		return out

	default:
		puzzle.Assertf("constraints: unhandled static kind %s", c.Kind)
		return nil
	}
}

func filterByRoom(candidates CellSet, idx *boardindex.Index, room puzzle.RoomID) CellSet {
	return filterFunc(candidates, idx, func(info boardindex.CellInfo) bool {
		return info.Room == room
	})
}

func filterFunc(candidates CellSet, idx *boardindex.Index, keep func(boardindex.CellInfo) bool) CellSet {
	out := make(CellSet)
	for k := range candidates {
		if keep(idx.CellInfo(k)) {
			out[k] = true
		}
	}
	return out
}

// Describe renders a human-readable explanation of c, used inside
// diagnostic and hint messages.
func Describe(c puzzle.Constraint, p *puzzle.Puzzle) string {
	roomName := func(id puzzle.RoomID) string {
		if r, ok := p.Rooms[id]; ok {
			return r.DisplayName
		}
		return string(id)
	}
	suspectName := func(id puzzle.SuspectID) string {
		if s := p.SuspectByID(id); s != nil {
			return s.Name
		}
		return string(id)
	}

	switch c.Kind {
	case puzzle.KindInRoom:
		return fmt.Sprintf("is in the %s", roomName(c.Room))
	case puzzle.KindInRooms:
		names := make([]string, len(c.Rooms))
		for i, r := range c.Rooms {
			names[i] = roomName(r)
		}
		return fmt.Sprintf("is in one of: %v", names)
	case puzzle.KindInRow:
		return fmt.Sprintf("is in row %d", c.Row)
	case puzzle.KindInColumns:
		return fmt.Sprintf("is in one of columns %v", c.Cols)
	case puzzle.KindOnCellType:
		return fmt.Sprintf("is standing on %s", c.CellType)
	case puzzle.KindNotOnCellType:
		return fmt.Sprintf("is not standing on %s", c.CellType)
	case puzzle.KindBeside:
		return fmt.Sprintf("is beside %s", c.CellType)
	case puzzle.KindNotBeside:
		return fmt.Sprintf("is not beside %s", c.CellType)
	case puzzle.KindAlone:
		return "is alone in their room"
	case puzzle.KindAloneWith:
		return fmt.Sprintf("is alone with %s", suspectName(c.Suspect))
	case puzzle.KindAloneWithGender:
		return fmt.Sprintf("is alone with exactly one %s", c.Gender)
	case puzzle.KindWithPerson:
		return fmt.Sprintf("is with %s in the %s", suspectName(c.Suspect), roomName(c.Room))
	case puzzle.KindInRoomWithPersonOnCellType:
		return fmt.Sprintf("shares a room with a %s standing on %s", c.Gender, c.CellType)
	case puzzle.KindInRoomWithPersonBesideCellType:
		return fmt.Sprintf("shares a room with someone beside %s", c.CellType)
	case puzzle.KindOnlyPersonOnCellType:
		return fmt.Sprintf("is the only one standing on %s", c.CellType)
	case puzzle.KindRelativeRow:
		return fmt.Sprintf("is %+d rows from %s", c.RowOffset, suspectName(c.Suspect))
	case puzzle.KindAheadOf:
		return fmt.Sprintf("is ahead of %s", suspectName(c.Suspect))
	case puzzle.KindVictim:
		return "shares their room with exactly one other suspect"
	default:
		return string(c.Kind)
	}
}
