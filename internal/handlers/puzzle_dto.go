package handlers

import (
	"strconv"

	"github.com/vancomm/deduction-engine/internal/hintengine"
	"github.com/vancomm/deduction-engine/internal/puzzle"
	"github.com/vancomm/deduction-engine/internal/repository"
	"github.com/vancomm/deduction-engine/internal/solver"
)

// PlacementDTO is one cell->suspect assignment as sent over the wire. JSON
// object keys can't be typed CellKey/SuspectID values without a custom
// marshaler, so placements travel as a flat list instead of a map.
type PlacementDTO struct {
	Cell    puzzle.CellKey   `json:"cell"`
	Suspect puzzle.SuspectID `json:"suspect"`
}

func placementsToDTO(placements map[puzzle.CellKey]puzzle.SuspectID) []PlacementDTO {
	out := make([]PlacementDTO, 0, len(placements))
	for cell, suspect := range placements {
		out = append(out, PlacementDTO{Cell: cell, Suspect: suspect})
	}
	return out
}

func placementsFromDTO(dtos []PlacementDTO) map[puzzle.CellKey]puzzle.SuspectID {
	out := make(map[puzzle.CellKey]puzzle.SuspectID, len(dtos))
	for _, dto := range dtos {
		out[dto.Cell] = dto.Suspect
	}
	return out
}

// SessionDTO is the shape returned for a placement session at every read or
// mutating endpoint: one struct that both NewSession and Fetch reply with.
type SessionDTO struct {
	SessionId  string         `json:"session_id"`
	PuzzleId   string         `json:"puzzle_id"`
	Placements []PlacementDTO `json:"placements"`
	HintsUsed  int            `json:"hints_used"`
	Solved     bool           `json:"solved"`
	StartedAt  int64          `json:"started_at"`
	EndedAt    *int64         `json:"ended_at,omitempty"`
}

func NewSessionDTO(session *repository.PlacementSession, placements map[puzzle.CellKey]puzzle.SuspectID) *SessionDTO {
	dto := &SessionDTO{
		SessionId:  formatSessionId(session.SessionId),
		PuzzleId:   session.PuzzleId,
		Placements: placementsToDTO(placements),
		HintsUsed:  session.HintsUsed,
		Solved:     session.Solved,
	}
	if session.StartedAt.Valid {
		dto.StartedAt = session.StartedAt.Time.UnixMilli()
	}
	if session.EndedAt.Valid {
		e := session.EndedAt.Time.UnixMilli()
		dto.EndedAt = &e
	}
	return dto
}

// PlaceRequestDTO is the body of a place/clear request.
type PlaceRequestDTO struct {
	Cell    puzzle.CellKey   `json:"cell"`
	Suspect puzzle.SuspectID `json:"suspect,omitempty"`
	Clear   bool             `json:"clear,omitempty"`
}

// HintDTO is the wire form of hintengine.Hint.
type HintDTO struct {
	Suspect        puzzle.SuspectID       `json:"suspect"`
	CellKey        puzzle.CellKey         `json:"cell_key,omitempty"`
	Message        string                 `json:"message"`
	HighlightCells []puzzle.CellKey       `json:"highlight_cells"`
	Action         hintengine.HintAction  `json:"action,omitempty"`
	Curated        bool                   `json:"curated"`
	Technique      solver.TechniqueID     `json:"technique,omitempty"`
}

func NewHintDTO(h *hintengine.Hint) *HintDTO {
	if h == nil {
		return nil
	}
	return &HintDTO{
		Suspect:        h.Suspect,
		CellKey:        h.CellKey,
		Message:        h.Message,
		HighlightCells: h.HighlightCells,
		Action:         h.Action,
		Curated:        h.Curated,
		Technique:      h.Technique,
	}
}

// StepDTO is the wire form of solver.Step.
type StepDTO struct {
	Technique       solver.TechniqueID `json:"technique"`
	SuspectID       puzzle.SuspectID   `json:"suspect_id,omitempty"`
	CellKey         puzzle.CellKey     `json:"cell_key,omitempty"`
	EliminatedCells []puzzle.CellKey   `json:"eliminated_cells,omitempty"`
	Message         string             `json:"message"`
}

func NewStepDTOs(steps []solver.Step) []StepDTO {
	out := make([]StepDTO, len(steps))
	for i, s := range steps {
		out[i] = StepDTO{
			Technique:       s.Technique,
			SuspectID:       s.SuspectID,
			CellKey:         s.CellKey,
			EliminatedCells: s.EliminatedCells,
			Message:         s.Message,
		}
	}
	return out
}

// SolveResultDTO is the wire form of hintengine.SolveResult.
type SolveResultDTO struct {
	Steps    []StepDTO          `json:"steps"`
	Solved   bool               `json:"solved"`
	Unplaced []puzzle.SuspectID `json:"unplaced,omitempty"`
}

func NewSolveResultDTO(r hintengine.SolveResult) *SolveResultDTO {
	return &SolveResultDTO{
		Steps:    NewStepDTOs(r.Steps),
		Solved:   r.Solved,
		Unplaced: r.Unplaced,
	}
}

// DebugStateDTO is the wire form of hintengine.DebugState.
type DebugStateDTO struct {
	CellCandidates    map[puzzle.CellKey][]puzzle.SuspectID `json:"cell_candidates"`
	SuspectCandidates map[puzzle.SuspectID][]puzzle.CellKey `json:"suspect_candidates"`
	Placed            []PlacementDTO                        `json:"placed"`
}

func formatSessionId(id int) string {
	return strconv.Itoa(id)
}

func NewDebugStateDTO(d hintengine.DebugState) *DebugStateDTO {
	placed := make(map[puzzle.CellKey]puzzle.SuspectID, len(d.Placed))
	for suspect, cell := range d.Placed {
		placed[cell] = suspect
	}
	return &DebugStateDTO{
		CellCandidates:    d.CellCandidates,
		SuspectCandidates: d.SuspectCandidates,
		Placed:            placementsToDTO(placed),
	}
}
