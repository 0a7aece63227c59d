package solver

import (
	"fmt"
	"sort"

	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/orderedset"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// maxNakedSetSize bounds the naked-set search: group size is capped at
// min(#unplaced-1, 6), and tryNakedLineSet already takes the min against
// the unplaced-suspect count itself, so this constant only needs to carry
// the fixed half of that bound.
const maxNakedSetSize = 6

// nakedSetCandidate pairs a suspect with the set of rows (or columns) its
// remaining candidates touch, sorted by suspect id so the combination
// search below is deterministic regardless of map iteration order.
type nakedSetCandidate struct {
	id    puzzle.SuspectID
	lines map[int]bool
}

func cmpNakedSetCandidate(a, b *nakedSetCandidate) int {
	switch {
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	default:
		return 0
	}
}

// tryNakedRowSet and tryNakedColumnSet are pipeline step 4: find k
// unplaced suspects (2 ≤ k ≤ min(#unplaced-1, 6)) whose combined candidate
// rows (columns) number exactly k. Those k lines belong entirely to the
// group — no other suspect can occupy any of them — so every other
// suspect's candidates in those lines are eliminated. The candidate pool is
// held in an orderedset.Set so the combination search below always walks
// suspects in the same order.
func (s *Solver) tryNakedRowSet() *Step {
	return s.tryNakedLineSet(true)
}

func (s *Solver) tryNakedColumnSet() *Step {
	return s.tryNakedLineSet(false)
}

func (s *Solver) tryNakedLineSet(byRow bool) *Step {
	pool := orderedset.NewSet[nakedSetCandidate](cmpNakedSetCandidate)
	for _, id := range s.order {
		if _, ok := s.placed[id]; ok {
			continue
		}
		lines := s.candidateLines(s.candidates[id], byRow)
		if len(lines) == 0 {
			continue
		}
		pool.Add(&nakedSetCandidate{id: id, lines: lines})
	}

	n := pool.Count()
	if n < 2 {
		return nil
	}
	members := make([]*nakedSetCandidate, n)
	for i := 0; i < n; i++ {
		members[i] = pool.Index(i)
	}

	maxK := maxNakedSetSize
	if maxK > n-1 {
		maxK = n - 1
	}
	for k := 2; k <= maxK; k++ {
		if step := s.findNakedSet(members, k, byRow); step != nil {
			return step
		}
	}
	return nil
}

// candidateLines returns the set of row (or column) indices that cset's
// cells occupy.
func (s *Solver) candidateLines(cset constraints.CellSet, byRow bool) map[int]bool {
	lines := make(map[int]bool)
	for key := range cset {
		info := s.index.CellInfo(key)
		line := info.Row
		if !byRow {
			line = info.Col
		}
		lines[line] = true
	}
	return lines
}

// findNakedSet enumerates every k-subset of members (in the order they
// appear in the pool, so smallest-id-first among ties) looking for one
// whose combined candidate lines total exactly k.
func (s *Solver) findNakedSet(members []*nakedSetCandidate, k int, byRow bool) *Step {
	n := len(members)
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}

	for {
		union := make(map[int]bool)
		for _, idx := range combo {
			for line := range members[idx].lines {
				union[line] = true
			}
		}
		if len(union) == k {
			if step := s.applyNakedSet(members, combo, union, byRow); step != nil {
				return step
			}
		}

		if !nextCombination(combo, n) {
			return nil
		}
	}
}

func (s *Solver) applyNakedSet(members []*nakedSetCandidate, combo []int, lines map[int]bool, byRow bool) *Step {
	inSet := make(map[puzzle.SuspectID]bool, len(combo))
	names := make([]string, len(combo))
	for i, idx := range combo {
		inSet[members[idx].id] = true
		names[i] = s.suspectName(members[idx].id)
	}

	eliminated := make(constraints.CellSet)
	for _, id := range s.order {
		if inSet[id] {
			continue
		}
		if _, ok := s.placed[id]; ok {
			continue
		}
		cset := s.candidates[id]
		for key := range cset {
			info := s.index.CellInfo(key)
			line := info.Row
			if !byRow {
				line = info.Col
			}
			if lines[line] {
				delete(cset, key)
				eliminated[key] = true
			}
		}
	}

	for line := range lines {
		for key := range s.blockOrthogonalLine(members, combo, inSet, line, byRow) {
			eliminated[key] = true
		}
	}

	if len(eliminated) == 0 {
		return nil
	}

	technique := TechNakedRowSet
	lineWord := "row"
	if !byRow {
		technique = TechNakedColumnSet
		lineWord = "column"
	}
	lineNums := make([]int, 0, len(lines))
	for line := range lines {
		lineNums = append(lineNums, line)
	}
	sort.Ints(lineNums)
	sort.Strings(names)
	return &Step{
		Technique:       technique,
		EliminatedCells: eliminated.Keys(),
		Message:         fmt.Sprintf("%v occupy exactly %d %ss between them: %v.", names, len(lines), lineWord, lineNums),
	}
}

// blockOrthogonalLine implements the naked set's secondary clause: within
// one of the group's claimed lines, if the group's
// candidates restricted to that line all sit in a single line on the
// orthogonal axis (one column, for a claimed row, or vice versa), that
// orthogonal line is blocked for every suspect outside the group across the
// whole board, not just within the line just claimed.
func (s *Solver) blockOrthogonalLine(
	members []*nakedSetCandidate, combo []int, inSet map[puzzle.SuspectID]bool, line int, byRow bool,
) constraints.CellSet {
	eliminated := make(constraints.CellSet)

	ortho := -1
	for _, idx := range combo {
		inLine := s.restrictToLine(s.candidates[members[idx].id], line, byRow)
		for key := range inLine {
			info := s.index.CellInfo(key)
			v := info.Col
			if !byRow {
				v = info.Row
			}
			if ortho == -1 {
				ortho = v
			} else if ortho != v {
				return eliminated
			}
		}
	}
	if ortho == -1 {
		return eliminated
	}

	for _, id := range s.order {
		if inSet[id] {
			continue
		}
		if _, ok := s.placed[id]; ok {
			continue
		}
		cset := s.candidates[id]
		for key := range cset {
			info := s.index.CellInfo(key)
			v := info.Col
			if !byRow {
				v = info.Row
			}
			if v == ortho {
				delete(cset, key)
				eliminated[key] = true
			}
		}
	}
	return eliminated
}

// nextCombination advances combo (indices into an n-element pool, strictly
// increasing) to the next combination in lexicographic order. It returns
// false once combo was the last one.
func nextCombination(combo []int, n int) bool {
	k := len(combo)
	i := k - 1
	for i >= 0 && combo[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	combo[i]++
	for j := i + 1; j < k; j++ {
		combo[j] = combo[j-1] + 1
	}
	return true
}
