// Package hintengine sits directly on top of internal/solver and answers
// the three questions a host application needs to drive a player-facing
// puzzle UI: what should the player try next, what does solving the rest
// of the puzzle from here look like, and what does the raw solver state
// look like for debugging. It owns no persistent state itself — every call
// rebuilds a Solver from the puzzle and the placements handed to it.
package hintengine

import (
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/deduction-engine/internal/boardindex"
	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
	"github.com/vancomm/deduction-engine/internal/solver"
)

var Log = slog.Default()

// HintAction distinguishes a hint that pins a suspect to a specific cell
// from one that only narrows candidates.
type HintAction string

const (
	ActionPlace     HintAction = "place"
	ActionEliminate HintAction = "eliminate"
)

// Hint is one actionable suggestion for the player.
type Hint struct {
	Suspect        puzzle.SuspectID
	CellKey        puzzle.CellKey
	Message        string
	HighlightCells []puzzle.CellKey
	Action         HintAction
	Curated        bool
	Technique      solver.TechniqueID // zero value if Curated
}

// SolveResult is the outcome of replaying every remaining deduction from a
// given placement state.
type SolveResult struct {
	Steps    []solver.Step
	Solved   bool
	Unplaced []puzzle.SuspectID
}

// DebugState exposes the solver's raw candidate bookkeeping, unfiltered and
// untranslated, for developer tooling.
type DebugState struct {
	CellCandidates    map[puzzle.CellKey][]puzzle.SuspectID
	SuspectCandidates map[puzzle.SuspectID][]puzzle.CellKey
	Placed            map[puzzle.SuspectID]puzzle.CellKey
}

func newSolver(p *puzzle.Puzzle, placements map[puzzle.CellKey]puzzle.SuspectID) *solver.Solver {
	idx := boardindex.Build(p)
	s := solver.New(p, idx)
	s.Initialize(placements)
	return s
}

// SolveFromState runs the full technique pipeline to a fixed point (or the
// iteration cap) starting from placements, and reports the resulting
// trace. It never panics on an unsolvable state or an iteration-cap
// timeout; both are represented by Solved == false and a non-empty
// Unplaced, not by a returned error.
func SolveFromState(p *puzzle.Puzzle, placements map[puzzle.CellKey]puzzle.SuspectID) SolveResult {
	s := newSolver(p, placements)
	steps := s.Solve()

	var unplaced []puzzle.SuspectID
	placed := s.Placed()
	for _, suspect := range p.Suspects {
		if _, ok := placed[suspect.ID]; !ok {
			unplaced = append(unplaced, suspect.ID)
		}
	}

	return SolveResult{
		Steps:    steps,
		Solved:   s.IsSolved(),
		Unplaced: unplaced,
	}
}

// GetDebugState returns the solver's candidate bookkeeping after
// propagating placements to a naked-single fixed point (no technique
// pipeline run, so the state reflects exactly what a player's current
// placements imply, not what further deduction could reveal).
func GetDebugState(p *puzzle.Puzzle, placements map[puzzle.CellKey]puzzle.SuspectID) DebugState {
	s := newSolver(p, placements)

	cellCandidates := make(map[puzzle.CellKey][]puzzle.SuspectID)
	suspectCandidates := make(map[puzzle.SuspectID][]puzzle.CellKey)

	for _, suspect := range p.Suspects {
		cset := s.GetCandidates(suspect.ID)
		keys := cset.Keys()
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		suspectCandidates[suspect.ID] = keys
		for _, key := range keys {
			cellCandidates[key] = append(cellCandidates[key], suspect.ID)
		}
	}

	return DebugState{
		CellCandidates:    cellCandidates,
		SuspectCandidates: suspectCandidates,
		Placed:            s.Placed(),
	}
}

// GetNextHint is the primary player-facing entry point: it first looks for
// a matching curated hint (an author-written clue reveal gated on
// prerequisites and narrowed by a target filter), and falls back to
// running one step of the generic technique pipeline when no curated hint
// applies. It returns nil if the puzzle is already fully placed.
func GetNextHint(p *puzzle.Puzzle, placements map[puzzle.CellKey]puzzle.SuspectID) *Hint {
	probe := newSolver(p, placements)
	if probe.IsSolved() {
		return nil
	}

	// The curated-hint match and the generic technique step are independent
	// searches over the same placements; each gets its own set of Solvers so
	// no goroutine touches another's bookkeeping, and they run concurrently
	// since curated matching walks the puzzle's whole hint list while the
	// technique pipeline walks the whole solver step order. Curated matching
	// needs both a raw solver (placements only, no further deduction) and a
	// fully solved one: highlighted cells come from the solved solver's
	// tighter candidate sets, while the raw solver's
	// candidates are what skipIfMoreThan and message selection test against.
	var curated *Hint
	var step *solver.Step
	var raw *solver.Solver
	var g errgroup.Group
	g.Go(func() error {
		r := newSolver(p, placements)
		solved := newSolver(p, placements)
		solved.Solve()
		curated = matchCuratedHint(p, r, solved)
		return nil
	})
	g.Go(func() error {
		raw = newSolver(p, placements)
		step = raw.SolveStep()
		return nil
	})
	g.Wait()

	if curated != nil {
		return curated
	}

	if step != nil {
		cells := step.EliminatedCells
		action := ActionEliminate
		if step.CellKey != "" {
			cells = append(cells, step.CellKey)
			action = ActionPlace
		}
		return &Hint{
			Suspect:        step.SuspectID,
			CellKey:        step.CellKey,
			Message:        step.Message,
			HighlightCells: cells,
			Action:         action,
			Technique:      step.Technique,
		}
	}

	return fallbackHint(p, raw)
}

// fallbackHint is the last resort: no technique advanced the puzzle and no
// curated hint applied, so surface the most-constrained unplaced suspect
// (the one with the fewest candidates)
// and let their own clue guide the player.
func fallbackHint(p *puzzle.Puzzle, raw *solver.Solver) *Hint {
	placed := raw.Placed()
	var best *puzzle.Suspect
	var bestCandidates constraints.CellSet
	for i := range p.Suspects {
		suspect := &p.Suspects[i]
		if _, ok := placed[suspect.ID]; ok {
			continue
		}
		candidates := raw.GetCandidates(suspect.ID)
		if best == nil || len(candidates) < len(bestCandidates) {
			best, bestCandidates = suspect, candidates
		}
	}
	if best == nil {
		Log.Warn("hintengine: no technique made progress, no curated hint matched, and no unplaced suspect remained",
			slog.String("puzzle", p.ID))
		return nil
	}
	return &Hint{
		Suspect:        best.ID,
		Message:        best.Clue,
		HighlightCells: bestCandidates.Keys(),
		Action:         ActionEliminate,
	}
}

// filterByTarget narrows candidates according to a curated hint's target.
// TargetAny returns candidates unchanged.
func filterByTarget(candidates constraints.CellSet, target puzzle.HintTarget, idx *boardindex.Index) constraints.CellSet {
	switch target.Kind {
	case puzzle.TargetAny:
		return candidates

	case puzzle.TargetRoom:
		return filterCells(candidates, idx, func(info boardindex.CellInfo) bool {
			return info.Room == target.Room
		})

	case puzzle.TargetRooms:
		allowed := make(map[puzzle.RoomID]bool, len(target.Rooms))
		for _, r := range target.Rooms {
			allowed[r] = true
		}
		return filterCells(candidates, idx, func(info boardindex.CellInfo) bool {
			return allowed[info.Room]
		})

	case puzzle.TargetCellType:
		return filterCells(candidates, idx, func(info boardindex.CellInfo) bool {
			if info.Type != target.CellType {
				return false
			}
			return target.Room2 == "" || info.Room == target.Room2
		})

	case puzzle.TargetAdjacentTo:
		beside := idx.CellsBesideType(target.CellType)
		out := make(constraints.CellSet)
		for k := range candidates {
			if beside[k] {
				out[k] = true
			}
		}
		return out

	case puzzle.TargetRow:
		return filterCells(candidates, idx, func(info boardindex.CellInfo) bool {
			return info.Row == target.Row
		})

	default:
		return candidates
	}
}

func filterCells(candidates constraints.CellSet, idx *boardindex.Index, keep func(boardindex.CellInfo) bool) constraints.CellSet {
	out := make(constraints.CellSet)
	for k := range candidates {
		if keep(idx.CellInfo(k)) {
			out[k] = true
		}
	}
	return out
}
