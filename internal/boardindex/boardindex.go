// Package boardindex precomputes the per-puzzle lookup tables the solver
// and constraint catalogue query on every propagation round: which cells
// are occupiable, which room and row/column each occupiable cell belongs
// to, and which occupiable cells are orthogonally adjacent within the same
// room. It is built once per puzzle and never mutated afterwards, treating
// grid geometry as fixed once a game starts.
package boardindex

import (
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

// CellInfo is the denormalised description of one cell, kept for O(1)
// lookup instead of re-deriving room/type from the puzzle's 2-D board.
type CellInfo struct {
	Row, Col int
	Room     puzzle.RoomID
	Type     puzzle.CellType
}

// Index is the immutable, precomputed set of lookup tables the solver and
// constraint catalogue query. All lookups it exposes are O(1) set
// membership or O(1) map access; nothing here re-scans the board.
type Index struct {
	puzzle *puzzle.Puzzle

	occupiableCells map[puzzle.CellKey]bool
	cellInfo        map[puzzle.CellKey]CellInfo

	roomCells map[puzzle.RoomID][]puzzle.CellKey
	typeCells map[puzzle.CellType][]puzzle.CellKey

	adjacentSameRoom map[puzzle.CellKey][]puzzle.CellKey

	rowCells map[int][]puzzle.CellKey
	colCells map[int][]puzzle.CellKey
}

// Build materialises an Index for p. It calls p.Validate() first, so it
// panics with a puzzle.AssertionError if p is structurally invalid.
func Build(p *puzzle.Puzzle) *Index {
	p.Validate()

	idx := &Index{
		puzzle:           p,
		occupiableCells:  make(map[puzzle.CellKey]bool),
		cellInfo:         make(map[puzzle.CellKey]CellInfo),
		roomCells:        make(map[puzzle.RoomID][]puzzle.CellKey),
		typeCells:        make(map[puzzle.CellType][]puzzle.CellKey),
		adjacentSameRoom: make(map[puzzle.CellKey][]puzzle.CellKey),
		rowCells:         make(map[int][]puzzle.CellKey),
		colCells:         make(map[int][]puzzle.CellKey),
	}

	for row := range p.Board {
		for col := range p.Board[row] {
			cell := p.Board[row][col]
			key := puzzle.Encode(row, col)

			idx.cellInfo[key] = CellInfo{Row: row, Col: col, Room: cell.Room, Type: cell.Type}
			idx.typeCells[cell.Type] = append(idx.typeCells[cell.Type], key)
			idx.roomCells[cell.Room] = append(idx.roomCells[cell.Room], key)

			if puzzle.IsOccupiable(cell.Type) {
				idx.occupiableCells[key] = true
				idx.rowCells[row] = append(idx.rowCells[row], key)
				idx.colCells[col] = append(idx.colCells[col], key)
			}
		}
	}

	idx.buildAdjacency()

	return idx
}

// buildAdjacency computes, for every occupiable cell, the occupiable
// same-room neighbours reachable by one 4-connected (N/S/E/W) step.
// Diagonal neighbours never count as beside.
func (idx *Index) buildAdjacency() {
	deltas := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for key := range idx.occupiableCells {
		info := idx.cellInfo[key]
		var neighbours []puzzle.CellKey
		for _, d := range deltas {
			nr, nc := info.Row+d[0], info.Col+d[1]
			if nr < 0 || nr >= idx.puzzle.GridSize || nc < 0 || nc >= idx.puzzle.GridSize {
				continue
			}
			nkey := puzzle.Encode(nr, nc)
			if !idx.occupiableCells[nkey] {
				continue
			}
			if idx.cellInfo[nkey].Room != info.Room {
				continue
			}
			neighbours = append(neighbours, nkey)
		}
		idx.adjacentSameRoom[key] = neighbours
	}
}

// IsOccupiable reports whether a suspect may ever stand on key.
func (idx *Index) IsOccupiable(key puzzle.CellKey) bool {
	return idx.occupiableCells[key]
}

// OccupiableCells returns every occupiable cell key in the puzzle. The
// returned slice is freshly allocated and safe for the caller to mutate.
func (idx *Index) OccupiableCells() []puzzle.CellKey {
	out := make([]puzzle.CellKey, 0, len(idx.occupiableCells))
	for k := range idx.occupiableCells {
		out = append(out, k)
	}
	return out
}

// CellInfo returns the denormalised info for key, panicking if key is
// unknown to this board (a programmer error: keys are only ever produced
// by puzzle.Encode over this same board).
func (idx *Index) CellInfo(key puzzle.CellKey) CellInfo {
	info, ok := idx.cellInfo[key]
	if !ok {
		puzzle.Assertf("boardindex: unknown cell key %q", key)
	}
	return info
}

// RoomCells returns every cell (occupiable or not) belonging to room.
func (idx *Index) RoomCells(room puzzle.RoomID) []puzzle.CellKey {
	return idx.roomCells[room]
}

// TypeCells returns every cell of the given type, including non-occupiable
// ones (needed by Beside/NotBeside, which key off scenery cells).
func (idx *Index) TypeCells(t puzzle.CellType) []puzzle.CellKey {
	return idx.typeCells[t]
}

// AdjacentSameRoom returns the occupiable, same-room, 4-connected
// neighbours of key.
func (idx *Index) AdjacentSameRoom(key puzzle.CellKey) []puzzle.CellKey {
	return idx.adjacentSameRoom[key]
}

// RowCells returns the occupiable cells in the given row.
func (idx *Index) RowCells(row int) []puzzle.CellKey {
	return idx.rowCells[row]
}

// ColCells returns the occupiable cells in the given column.
func (idx *Index) ColCells(col int) []puzzle.CellKey {
	return idx.colCells[col]
}

// CellsBesideType returns the occupiable cells that are orthogonal
// neighbours of any cell of type t and share that cell's room. This is the
// shared helper behind the beside/notBeside constraint filters.
func (idx *Index) CellsBesideType(t puzzle.CellType) map[puzzle.CellKey]bool {
	out := make(map[puzzle.CellKey]bool)
	for _, typeKey := range idx.typeCells[t] {
		typeInfo := idx.cellInfo[typeKey]
		for _, occKey := range idx.candidateNeighboursOf(typeInfo) {
			if idx.cellInfo[occKey].Room == typeInfo.Room {
				out[occKey] = true
			}
		}
	}
	return out
}

func (idx *Index) candidateNeighboursOf(info CellInfo) []puzzle.CellKey {
	deltas := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	var out []puzzle.CellKey
	for _, d := range deltas {
		nr, nc := info.Row+d[0], info.Col+d[1]
		if nr < 0 || nr >= idx.puzzle.GridSize || nc < 0 || nc >= idx.puzzle.GridSize {
			continue
		}
		nkey := puzzle.Encode(nr, nc)
		if idx.occupiableCells[nkey] {
			out = append(out, nkey)
		}
	}
	return out
}

// GridSize returns the puzzle's grid side length.
func (idx *Index) GridSize() int {
	return idx.puzzle.GridSize
}

// Puzzle returns the puzzle this index was built from.
func (idx *Index) Puzzle() *puzzle.Puzzle {
	return idx.puzzle
}
