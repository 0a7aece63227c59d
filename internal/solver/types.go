// Package solver implements the constraint-propagation engine: it
// maintains a candidate set per suspect, applies a fixed pipeline of
// human-legible deduction techniques, and records every step it takes so
// the trace can be replayed. It is single-threaded and synchronous by
// design — a Solver owns its state exclusively and never shares mutable
// state with another instance.
package solver

import (
	"github.com/vancomm/deduction-engine/internal/constraints"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// TechniqueID names one stage of the pipeline, in pipeline order.
type TechniqueID string

const (
	TechNakedSingle              TechniqueID = "nakedSingle"
	TechRowClaiming              TechniqueID = "rowClaiming"
	TechColumnClaiming           TechniqueID = "columnClaiming"
	TechNakedRowSet              TechniqueID = "nakedRowSet"
	TechNakedColumnSet           TechniqueID = "nakedColumnSet"
	TechRoomConstraint           TechniqueID = "roomConstraint"
	TechOnlyPersonOnCellType     TechniqueID = "onlyPersonOnCellType"
	TechRelativeRow              TechniqueID = "relativeRow"
	TechPointingGroup            TechniqueID = "pointingGroup"
	TechContradictionElimination TechniqueID = "contradictionElimination"
)

// Step is one entry of the append-only solver trace. A step either places
// a suspect (CellKey set), eliminates candidates (EliminatedCells set), or
// both.
type Step struct {
	Technique       TechniqueID
	SuspectID       puzzle.SuspectID
	CellKey         puzzle.CellKey // "" if this step doesn't place anyone
	Message         string
	HighlightCells  []puzzle.CellKey
	EliminatedCells []puzzle.CellKey
}

// candidateMap maps every suspect (placed or not) to its current candidate
// set. A placed suspect's set is always the singleton of its cell.
type candidateMap map[puzzle.SuspectID]constraints.CellSet

func (cm candidateMap) clone() candidateMap {
	out := make(candidateMap, len(cm))
	for id, cset := range cm {
		out[id] = cset.Clone()
	}
	return out
}
