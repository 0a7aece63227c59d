package solver

import (
	"fmt"
	"sort"

	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// tryRoomConstraints is pipeline step 5: the dynamic, room-sharing family
// of constraints (alone, aloneWith, aloneWithGender, withPerson,
// inRoomWithPersonOnCellType, inRoomWithPersonBesideCellType, victim) that
// depend on which OTHER suspects currently occupy or are forced into a
// room, and so must be re-consulted every round rather than filtered once
// at initialisation. It tries each unplaced suspect's constraints in turn
// and returns on the first one that eliminates a candidate.
func (s *Solver) tryRoomConstraints() *Step {
	for _, id := range s.order {
		if _, ok := s.placed[id]; ok {
			continue
		}
		suspect := s.puzzle.SuspectByID(id)
		if suspect == nil {
			continue
		}
		for _, c := range suspect.Constraints {
			var step *Step
			switch c.Kind {
			case puzzle.KindAlone:
				step = s.evalAlone(id)
			case puzzle.KindAloneWith:
				step = s.evalAloneWith(id, c.Suspect)
			case puzzle.KindAloneWithGender:
				step = s.evalAloneWithGender(id, c.Gender)
			case puzzle.KindWithPerson:
				step = s.evalWithPerson(id, c.Suspect, c.Room)
			case puzzle.KindInRoomWithPersonOnCellType:
				step = s.evalInRoomWithPersonOnCellType(id, c.Gender, c.CellType)
			case puzzle.KindInRoomWithPersonBesideCellType:
				step = s.evalInRoomWithPersonBesideCellType(id, c.CellType)
			case puzzle.KindVictim:
				step = s.evalVictim(id)
			}
			if step != nil {
				return step
			}
		}
	}
	return nil
}

// roomOf returns the room a placed suspect occupies and true, or ("", false)
// if the suspect isn't placed.
func (s *Solver) roomOf(id puzzle.SuspectID) (puzzle.RoomID, bool) {
	key, ok := s.placed[id]
	if !ok {
		return "", false
	}
	return s.index.CellInfo(key).Room, true
}

// othersPlacedIn returns the ids of already-placed suspects, other than
// exclude, occupying room.
func (s *Solver) othersPlacedIn(room puzzle.RoomID, exclude puzzle.SuspectID) []puzzle.SuspectID {
	var out []puzzle.SuspectID
	for _, id := range s.order {
		if id == exclude {
			continue
		}
		key, ok := s.placed[id]
		if !ok {
			continue
		}
		if s.index.CellInfo(key).Room == room {
			out = append(out, id)
		}
	}
	return out
}

// forcedInto reports whether an unplaced suspect's every remaining
// candidate lies within room — i.e. the suspect must end up there no
// matter what else gets decided.
func (s *Solver) forcedInto(id puzzle.SuspectID, room puzzle.RoomID) bool {
	cset := s.candidates[id]
	if len(cset) == 0 {
		return false
	}
	for key := range cset {
		if s.index.CellInfo(key).Room != room {
			return false
		}
	}
	return true
}

// eliminateRoomFor removes every candidate of id lying in room, returning
// the removed keys.
func (s *Solver) eliminateRoomFor(id puzzle.SuspectID, room puzzle.RoomID) constraints.CellSet {
	cset := s.candidates[id]
	eliminated := make(constraints.CellSet)
	for key := range cset {
		if s.index.CellInfo(key).Room == room {
			eliminated[key] = true
			delete(cset, key)
		}
	}
	return eliminated
}

// roomsOf returns the distinct rooms cset's cells lie in, sorted by room id
// so callers that stop at the first blocked room get the same answer
// regardless of Go's map iteration order.
func (s *Solver) roomsOf(cset constraints.CellSet) []puzzle.RoomID {
	seen := make(map[puzzle.RoomID]bool)
	for key := range cset {
		seen[s.index.CellInfo(key).Room] = true
	}
	rooms := make([]puzzle.RoomID, 0, len(seen))
	for room := range seen {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i] < rooms[j] })
	return rooms
}

// evalAlone implements the alone constraint: X must be the only occupant
// of its room. A candidate room is impossible for X the moment either
// another suspect is already placed there, or another unplaced suspect is
// forced there -- both scenarios collapse to this single rule, since a
// suspect forced into a room and a suspect that would otherwise be
// eliminated down to zero candidates by sharing it are the same
// contradiction viewed from either side.
func (s *Solver) evalAlone(id puzzle.SuspectID) *Step {
	cset := s.candidates[id]
	for _, room := range s.roomsOf(cset) {
		if len(s.othersPlacedIn(room, id)) == 0 && !s.anyOtherForcedInto(id, room) {
			continue
		}
		eliminated := s.eliminateRoomFor(id, room)
		if len(eliminated) > 0 {
			return &Step{
				Technique:       TechRoomConstraint,
				SuspectID:       id,
				EliminatedCells: eliminated.Keys(),
				Message:         fmt.Sprintf("%s must be alone, but someone else is in that room.", s.suspectName(id)),
			}
		}
	}
	return nil
}

func (s *Solver) anyOtherForcedInto(exclude puzzle.SuspectID, room puzzle.RoomID) bool {
	for _, other := range s.order {
		if other == exclude {
			continue
		}
		if _, ok := s.placed[other]; ok {
			continue
		}
		if s.forcedInto(other, room) {
			return true
		}
	}
	return false
}

// evalAloneWith implements aloneWith(other): X shares its room with
// exactly one suspect, and that suspect is other. A candidate room is
// impossible if it already holds a placed suspect that isn't other, or if
// some third unplaced suspect (not other) is forced into it.
func (s *Solver) evalAloneWith(id, other puzzle.SuspectID) *Step {
	cset := s.candidates[id]
	for _, room := range s.roomsOf(cset) {
		bad := false
		for _, occupant := range s.othersPlacedIn(room, id) {
			if occupant != other {
				bad = true
				break
			}
		}
		if !bad {
			for _, third := range s.order {
				if third == id || third == other {
					continue
				}
				if _, ok := s.placed[third]; ok {
					continue
				}
				if s.forcedInto(third, room) {
					bad = true
					break
				}
			}
		}
		if bad {
			eliminated := s.eliminateRoomFor(id, room)
			if len(eliminated) > 0 {
				return &Step{
					Technique:       TechRoomConstraint,
					SuspectID:       id,
					EliminatedCells: eliminated.Keys(),
					Message:         fmt.Sprintf("%s is alone with %s, ruling out a room with anyone else.", s.suspectName(id), s.suspectName(other)),
				}
			}
		}
	}
	return nil
}

// evalAloneWithGender implements aloneWithGender(g), analogous to
// aloneWith: X's room contains exactly one other suspect, and that
// suspect has gender g. The partner pool is every unplaced suspect of
// gender g that doesn't itself carry an alone constraint, since such a
// suspect could never share a room with anyone and so can never be X's
// roommate. A candidate room already holding two or more other placed
// suspects, or a single placed suspect of the wrong gender, is impossible
// outright; an empty room is impossible unless some partner-pool member
// still has it as a candidate, and unless no suspect outside the pool is
// forced into it (a third occupant would break "exactly one other").
func (s *Solver) evalAloneWithGender(id puzzle.SuspectID, g puzzle.Gender) *Step {
	partners := s.genderPartnerPool(id, g)
	cset := s.candidates[id]
	for _, room := range s.roomsOf(cset) {
		if !s.aloneWithGenderRoomBlocked(id, room, g, partners) {
			continue
		}
		eliminated := s.eliminateRoomFor(id, room)
		if len(eliminated) > 0 {
			return &Step{
				Technique:       TechRoomConstraint,
				SuspectID:       id,
				EliminatedCells: eliminated.Keys(),
				Message:         fmt.Sprintf("%s must be alone with exactly one %s.", s.suspectName(id), g),
			}
		}
	}
	return nil
}

// genderPartnerPool returns the unplaced suspects of gender g, other than
// exclude, that could still serve as exclude's sole roommate.
func (s *Solver) genderPartnerPool(exclude puzzle.SuspectID, g puzzle.Gender) []puzzle.SuspectID {
	var out []puzzle.SuspectID
	for _, suspect := range s.puzzle.Suspects {
		if suspect.ID == exclude || suspect.Gender != g {
			continue
		}
		if _, ok := s.placed[suspect.ID]; ok {
			continue
		}
		if hasAloneConstraint(suspect) {
			continue
		}
		out = append(out, suspect.ID)
	}
	return out
}

func hasAloneConstraint(suspect puzzle.Suspect) bool {
	for _, c := range suspect.Constraints {
		if c.Kind == puzzle.KindAlone {
			return true
		}
	}
	return false
}

// aloneWithGenderRoomBlocked reports whether room is impossible for id
// under aloneWithGender(g).
func (s *Solver) aloneWithGenderRoomBlocked(
	id puzzle.SuspectID, room puzzle.RoomID, g puzzle.Gender, partners []puzzle.SuspectID,
) bool {
	occupants := s.othersPlacedIn(room, id)
	if len(occupants) > 1 {
		return true
	}
	if len(occupants) == 1 {
		suspect := s.puzzle.SuspectByID(occupants[0])
		return suspect == nil || suspect.Gender != g
	}

	inPool := make(map[puzzle.SuspectID]bool, len(partners))
	for _, p := range partners {
		inPool[p] = true
	}

	hasCandidate := false
	for _, partner := range partners {
		if s.canBeIn(partner, room) {
			hasCandidate = true
			break
		}
	}
	if !hasCandidate {
		return true
	}

	for _, other := range s.order {
		if other == id || inPool[other] {
			continue
		}
		if _, ok := s.placed[other]; ok {
			continue
		}
		if s.forcedInto(other, room) {
			return true
		}
	}
	return false
}

// evalWithPerson implements withPerson(other, room): X and other share
// room together. Unless other is already placed in a different room, both
// X's and other's candidates outside room are eliminated (X's first). If
// other is placed elsewhere, room becomes unreachable (they'd never meet
// there) and every one of X's candidates in it is eliminated.
func (s *Solver) evalWithPerson(id, other puzzle.SuspectID, room puzzle.RoomID) *Step {
	otherRoom, ok := s.roomOf(other)
	if !ok || otherRoom == room {
		for _, target := range []puzzle.SuspectID{id, other} {
			eliminated := make(constraints.CellSet)
			for key := range s.candidates[target] {
				if s.index.CellInfo(key).Room != room {
					eliminated[key] = true
					delete(s.candidates[target], key)
				}
			}
			if len(eliminated) > 0 {
				return &Step{Technique: TechRoomConstraint, SuspectID: target, EliminatedCells: eliminated.Keys(),
					Message: fmt.Sprintf("%s must be with %s in the %s.", s.suspectName(id), s.suspectName(other), room)}
			}
		}
		return nil
	}
	eliminated := s.eliminateRoomFor(id, room)
	if len(eliminated) == 0 {
		return nil
	}
	return &Step{
		Technique:       TechRoomConstraint,
		SuspectID:       id,
		EliminatedCells: eliminated.Keys(),
		Message:         fmt.Sprintf("%s must be with %s in the %s, but %s is elsewhere.", s.suspectName(id), s.suspectName(other), room, s.suspectName(other)),
	}
}

// evalInRoomWithPersonOnCellType implements inRoomWithPersonOnCellType(g,
// t): X shares a room with some suspect of gender g standing on a cell of
// type t. A candidate room for X is impossible once every suspect of
// gender g is placed and none of them stands in that room on type t,
// since no future placement of a g-suspect there remains possible.
func (s *Solver) evalInRoomWithPersonOnCellType(id puzzle.SuspectID, g puzzle.Gender, t puzzle.CellType) *Step {
	if !s.allOfGenderPlaced(g) {
		return nil
	}
	cset := s.candidates[id]
	for _, room := range s.roomsOf(cset) {
		if s.roomHasGenderOnType(room, g, t) {
			continue
		}
		eliminated := s.eliminateRoomFor(id, room)
		if len(eliminated) > 0 {
			return &Step{
				Technique:       TechRoomConstraint,
				SuspectID:       id,
				EliminatedCells: eliminated.Keys(),
				Message:         fmt.Sprintf("%s needs a %s standing on %s in the same room.", s.suspectName(id), g, t),
			}
		}
	}
	return nil
}

func (s *Solver) allOfGenderPlaced(g puzzle.Gender) bool {
	for _, suspect := range s.puzzle.Suspects {
		if suspect.Gender != g {
			continue
		}
		if _, ok := s.placed[suspect.ID]; !ok {
			return false
		}
	}
	return true
}

func (s *Solver) roomHasGenderOnType(room puzzle.RoomID, g puzzle.Gender, t puzzle.CellType) bool {
	for id, key := range s.placed {
		suspect := s.puzzle.SuspectByID(id)
		if suspect == nil || suspect.Gender != g {
			continue
		}
		info := s.index.CellInfo(key)
		if info.Room == room && info.Type == t {
			return true
		}
	}
	return false
}

// evalInRoomWithPersonBesideCellType implements
// inRoomWithPersonBesideCellType(t): X shares a room with some other
// suspect standing beside a cell of type t. Mirrors
// evalInRoomWithPersonOnCellType but checks adjacency instead of gender,
// and only once every OTHER suspect is placed (there is no gender filter
// to narrow the "everyone" set here).
func (s *Solver) evalInRoomWithPersonBesideCellType(id puzzle.SuspectID, t puzzle.CellType) *Step {
	if len(s.placed) != len(s.order)-1 {
		return nil
	}
	besideSet := s.index.CellsBesideType(t)
	cset := s.candidates[id]
	for _, room := range s.roomsOf(cset) {
		found := false
		for other, otherKey := range s.placed {
			if other == id {
				continue
			}
			if s.index.CellInfo(otherKey).Room == room && besideSet[otherKey] {
				found = true
				break
			}
		}
		if found {
			continue
		}
		eliminated := s.eliminateRoomFor(id, room)
		if len(eliminated) > 0 {
			return &Step{
				Technique:       TechRoomConstraint,
				SuspectID:       id,
				EliminatedCells: eliminated.Keys(),
				Message:         fmt.Sprintf("%s needs a roommate standing beside %s.", s.suspectName(id), t),
			}
		}
	}
	return nil
}

// evalVictim implements victim(): the victim shares their room with
// exactly one other suspect. For each candidate room R, A counts other
// suspects that can still end up in R and F counts those already forced
// into it; a candidate is rejected when A = 0 (the victim would be alone,
// since nobody else could join) or F >= 2 (two or more are already locked
// into R, so "exactly one other" is already broken).
func (s *Solver) evalVictim(id puzzle.SuspectID) *Step {
	cset := s.candidates[id]
	for _, room := range s.roomsOf(cset) {
		a, f := s.roomShareCounts(id, room)
		if a != 0 && f < 2 {
			continue
		}
		eliminated := s.eliminateRoomFor(id, room)
		if len(eliminated) > 0 {
			return &Step{
				Technique:       TechRoomConstraint,
				SuspectID:       id,
				EliminatedCells: eliminated.Keys(),
				Message:         fmt.Sprintf("%s shares a room with exactly one other suspect.", s.suspectName(id)),
			}
		}
	}
	return nil
}

// roomShareCounts returns, for room and excluding exclude, A (how many
// other suspects can still land in room) and F (how many are already
// forced into it, whether placed there or narrowed to candidates entirely
// within it) -- the two counts evalVictim's rejection rule is built from.
func (s *Solver) roomShareCounts(exclude puzzle.SuspectID, room puzzle.RoomID) (a, f int) {
	for _, other := range s.order {
		if other == exclude {
			continue
		}
		if s.canBeIn(other, room) {
			a++
		}
		if s.forcedIntoRoom(other, room) {
			f++
		}
	}
	return a, f
}

// canBeIn reports whether id's placed cell, or any of its remaining
// candidates, lies in room.
func (s *Solver) canBeIn(id puzzle.SuspectID, room puzzle.RoomID) bool {
	if key, ok := s.placed[id]; ok {
		return s.index.CellInfo(key).Room == room
	}
	for key := range s.candidates[id] {
		if s.index.CellInfo(key).Room == room {
			return true
		}
	}
	return false
}

// forcedIntoRoom reports whether id is already placed in room, or --
// unplaced -- every remaining candidate of id lies within room.
func (s *Solver) forcedIntoRoom(id puzzle.SuspectID, room puzzle.RoomID) bool {
	if key, ok := s.placed[id]; ok {
		return s.index.CellInfo(key).Room == room
	}
	return s.forcedInto(id, room)
}
