package hintengine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vancomm/deduction-engine/internal/boardindex"
	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
	"github.com/vancomm/deduction-engine/internal/solver"
)

// matchCuratedHint finds the lowest-Order curated hint whose subject is
// still unplaced and whose prerequisites are already satisfied. The
// highlighted cells come from narrowing raw's fully-solved counterpart's
// candidates by the hint's target -- solved has run every technique to a
// fixed point, so its candidates for a well-authored hint narrow to the
// actual solution cell, where raw's would not. raw's own narrowed
// candidates are what skipIfMoreThan and single-vs-multiple message
// selection test against instead, since those are about how much the
// *player* currently knows, not what the engine can derive on their
// behalf.
func matchCuratedHint(p *puzzle.Puzzle, raw *solver.Solver, solved *solver.Solver) *Hint {
	eligible := eligibleCuratedHints(p, raw)
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].Order < eligible[j].Order })

	for _, ch := range eligible {
		narrowed := filterByTarget(solved.GetCandidates(ch.Suspect), ch.Target, solved.Index())
		if len(narrowed) == 0 {
			continue
		}

		rawNarrowed := filterByTarget(raw.GetCandidates(ch.Suspect), ch.Target, raw.Index())
		if ch.HasSkipIfMoreThan && len(rawNarrowed) > ch.SkipIfMoreThan {
			continue
		}

		msg := ch.Messages.Multiple
		if len(rawNarrowed) <= 1 {
			msg = ch.Messages.Single
		}
		if msg == "" {
			msg = fmt.Sprintf("%s could be in %d places.", ch.Suspect, len(narrowed))
		}
		if blocked, ok := roomBlockedMessage(ch.Messages.RoomBlocked, ch.Target, narrowed, solved.Index(), p); ok {
			msg = blocked
		}

		hint := &Hint{
			Suspect:        ch.Suspect,
			Message:        msg,
			HighlightCells: narrowed.Keys(),
			Action:         ActionEliminate,
			Curated:        true,
		}
		if len(narrowed) == 1 {
			hint.Action = ActionPlace
			for key := range narrowed {
				hint.CellKey = key
			}
		}
		return hint
	}
	return nil
}

// roomBlockedMessage implements the optional substitution: when an
// inRooms target has narrowed, under the solved solver, to exactly one
// still-viable room, the curated hint can name that room and the rooms it
// ruled out instead of the generic single/multiple message.
func roomBlockedMessage(
	template string, target puzzle.HintTarget, narrowed constraints.CellSet,
	idx *boardindex.Index, p *puzzle.Puzzle,
) (string, bool) {
	if template == "" || target.Kind != puzzle.TargetRooms {
		return "", false
	}

	viable := make(map[puzzle.RoomID]bool)
	for key := range narrowed {
		viable[idx.CellInfo(key).Room] = true
	}
	if len(viable) != 1 {
		return "", false
	}

	var available puzzle.RoomID
	for room := range viable {
		available = room
	}

	blocked := make([]string, 0, len(target.Rooms)-1)
	for _, room := range target.Rooms {
		if room == available {
			continue
		}
		blocked = append(blocked, p.Rooms[room].DisplayName)
	}

	msg := strings.ReplaceAll(template, "{availableRoom}", p.Rooms[available].DisplayName)
	msg = strings.ReplaceAll(msg, "{blockedRooms}", strings.Join(blocked, ", "))
	return msg, true
}

func eligibleCuratedHints(p *puzzle.Puzzle, s *solver.Solver) []puzzle.CuratedHint {
	placed := s.Placed()
	var out []puzzle.CuratedHint
	for _, ch := range p.Hints {
		if _, alreadyPlaced := placed[ch.Suspect]; alreadyPlaced {
			continue
		}
		if !prerequisitesMet(ch.Prerequisites, placed) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

func prerequisitesMet(prereqs []puzzle.SuspectID, placed map[puzzle.SuspectID]puzzle.CellKey) bool {
	for _, id := range prereqs {
		if _, ok := placed[id]; !ok {
			return false
		}
	}
	return true
}
