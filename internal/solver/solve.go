package solver

// maxSolveIterations bounds Solve(): no progress within this many
// iterations means the pipeline is stuck, not looping forever.
const maxSolveIterations = 200

// Solve repeatedly calls SolveStep until the puzzle is solved or no
// technique makes further progress, bounded by maxSolveIterations. It
// returns the accumulated step trace.
func (s *Solver) Solve() []Step {
	for i := 0; i < maxSolveIterations; i++ {
		if s.IsSolved() {
			break
		}
		if s.SolveStep() == nil {
			break
		}
	}
	return s.Steps()
}

// SolveStep tries each technique in the fixed pipeline order and returns
// the first one that makes progress, or nil if none do. Every technique
// that changes state runs propagateBasic before this returns, so by the
// time SolveStep returns, no naked singles remain pending.
func (s *Solver) SolveStep() *Step {
	if s.IsSolved() {
		return nil
	}

	techniques := []func() *Step{
		s.tryNakedSingle,
		s.tryRowClaiming,
		s.tryColumnClaiming,
		s.tryNakedRowSet,
		s.tryNakedColumnSet,
		s.tryRoomConstraints,
		s.tryOnlyPersonOnCellType,
		s.tryRelativeRow,
		s.tryPointingGroup,
		s.tryContradictionElimination,
	}

	for _, technique := range techniques {
		if step := technique(); step != nil {
			s.propagateBasic()
			s.steps = append(s.steps, *step)
			return step
		}
	}

	return nil
}
