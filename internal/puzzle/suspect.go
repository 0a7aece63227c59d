package puzzle

// SuspectID and RoomID are opaque, string-valued identifiers. Constraints
// reference suspects and rooms by id only, never by pointer, so the
// suspect/constraint dependency graph stays acyclic-in-data even where the
// logical dependency between suspects is cyclic (A refers to B, B to A).
type SuspectID string

type RoomID string

// Gender tags a suspect for gender-conditioned constraints. It carries no
// meaning beyond satisfying those constraints.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ConstraintKind names one case of the closed Constraint union. The set is
// small and closed by design: a switch over Kind is expected to be
// exhaustive, not extended by a plugin mechanism.
type ConstraintKind string

const (
	KindInRoom                         ConstraintKind = "inRoom"
	KindInRooms                        ConstraintKind = "inRooms"
	KindInRow                          ConstraintKind = "inRow"
	KindInColumns                      ConstraintKind = "inColumns"
	KindOnCellType                     ConstraintKind = "onCellType"
	KindNotOnCellType                  ConstraintKind = "notOnCellType"
	KindBeside                         ConstraintKind = "beside"
	KindNotBeside                      ConstraintKind = "notBeside"
	KindAlone                          ConstraintKind = "alone"
	KindAloneWith                      ConstraintKind = "aloneWith"
	KindAloneWithGender                ConstraintKind = "aloneWithGender"
	KindWithPerson                     ConstraintKind = "withPerson"
	KindInRoomWithPersonOnCellType     ConstraintKind = "inRoomWithPersonOnCellType"
	KindInRoomWithPersonBesideCellType ConstraintKind = "inRoomWithPersonBesideCellType"
	KindOnlyPersonOnCellType           ConstraintKind = "onlyPersonOnCellType"
	KindRelativeRow                    ConstraintKind = "relativeRow"
	KindAheadOf                        ConstraintKind = "aheadOf"
	KindVictim                         ConstraintKind = "victim"
)

// Constraint is a tagged variant with one case per ConstraintKind. Only the
// fields relevant to Kind are meaningful; the rest are zero. Using a
// flat struct instead of an interface keeps the set closed and lets the
// catalogue switch over Kind exhaustively (see internal/constraints).
type Constraint struct {
	Kind ConstraintKind

	Room  RoomID   // inRoom, withPerson
	Rooms []RoomID // inRooms

	Row  int   // inRow
	Cols []int // inColumns

	CellType CellType // onCellType, notOnCellType, beside, notBeside,
	// inRoomWithPersonOnCellType, inRoomWithPersonBesideCellType,
	// onlyPersonOnCellType

	Suspect SuspectID // aloneWith, withPerson, relativeRow, aheadOf

	Gender Gender // aloneWithGender, inRoomWithPersonOnCellType

	RowOffset int // relativeRow
}

// Constructors. Each mirrors the corresponding wire-format constraint case
// one-to-one; they exist so callers building a Puzzle by hand (tests,
// fixtures) can't misassign a field belonging to a different Kind.

func InRoom(room RoomID) Constraint { return Constraint{Kind: KindInRoom, Room: room} }

func InRooms(rooms []RoomID) Constraint { return Constraint{Kind: KindInRooms, Rooms: rooms} }

func InRow(row int) Constraint { return Constraint{Kind: KindInRow, Row: row} }

func InColumns(cols []int) Constraint { return Constraint{Kind: KindInColumns, Cols: cols} }

func OnCellType(t CellType) Constraint { return Constraint{Kind: KindOnCellType, CellType: t} }

func NotOnCellType(t CellType) Constraint { return Constraint{Kind: KindNotOnCellType, CellType: t} }

func Beside(t CellType) Constraint { return Constraint{Kind: KindBeside, CellType: t} }

func NotBeside(t CellType) Constraint { return Constraint{Kind: KindNotBeside, CellType: t} }

func Alone() Constraint { return Constraint{Kind: KindAlone} }

func AloneWith(other SuspectID) Constraint {
	return Constraint{Kind: KindAloneWith, Suspect: other}
}

func AloneWithGender(g Gender) Constraint {
	return Constraint{Kind: KindAloneWithGender, Gender: g}
}

func WithPerson(other SuspectID, room RoomID) Constraint {
	return Constraint{Kind: KindWithPerson, Suspect: other, Room: room}
}

func InRoomWithPersonOnCellType(g Gender, t CellType) Constraint {
	return Constraint{Kind: KindInRoomWithPersonOnCellType, Gender: g, CellType: t}
}

func InRoomWithPersonBesideCellType(t CellType) Constraint {
	return Constraint{Kind: KindInRoomWithPersonBesideCellType, CellType: t}
}

func OnlyPersonOnCellType(t CellType) Constraint {
	return Constraint{Kind: KindOnlyPersonOnCellType, CellType: t}
}

func RelativeRow(other SuspectID, offset int) Constraint {
	return Constraint{Kind: KindRelativeRow, Suspect: other, RowOffset: offset}
}

func AheadOf(other SuspectID) Constraint {
	return Constraint{Kind: KindAheadOf, Suspect: other}
}

func Victim() Constraint { return Constraint{Kind: KindVictim} }

// Suspect is a placeable entity: a name, cosmetic fields, and the
// constraints that carry all of its logical meaning. Clue is purely
// presentational.
type Suspect struct {
	ID          SuspectID
	Name        string
	Avatar      string
	Color       string
	Gender      Gender
	IsVictim    bool
	Clue        string
	Constraints []Constraint
}
