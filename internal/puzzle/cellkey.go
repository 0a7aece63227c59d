// Package puzzle defines the immutable data model for a suspect-placement
// deduction puzzle: the grid, its rooms and cell types, the suspects and
// their clue constraints, and the curated hints an author attaches to a
// puzzle. Nothing in this package mutates once constructed; the solver and
// hint engine build their own working state on top of it.
package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// CellKey is the canonical "row-col" identifier for a grid cell, with
// 0-based decimal row and column. Encode and Decode are the only permitted
// constructors and accessors: nothing else should assemble or parse this
// string by hand.
type CellKey string

// Encode builds the canonical key for a (row, col) pair.
func Encode(row, col int) CellKey {
	return CellKey(strconv.Itoa(row) + "-" + strconv.Itoa(col))
}

// Decode parses a CellKey back into its row and column. It panics with an
// AssertionError-style message if k is not of the canonical "row-col" form;
// well-formed keys only ever originate from Encode, so a malformed key here
// means a caller assembled one by hand.
func Decode(k CellKey) (row, col int) {
	parts := strings.SplitN(string(k), "-", 2)
	if len(parts) != 2 {
		panic(fmt.Sprintf("puzzle: malformed cell key %q", k))
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		panic(fmt.Sprintf("puzzle: malformed cell key %q: %v", k, err))
	}
	col, err = strconv.Atoi(parts[1])
	if err != nil {
		panic(fmt.Sprintf("puzzle: malformed cell key %q: %v", k, err))
	}
	return row, col
}
