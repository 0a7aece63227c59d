package puzzle

// CellType classifies what sits on a grid cell: scenery that blocks a
// suspect, or a surface a suspect can stand on.
type CellType string

const (
	CellEmpty        CellType = "empty"
	CellCarpet       CellType = "carpet"
	CellChair        CellType = "chair"
	CellTV           CellType = "tv"
	CellShelf        CellType = "shelf"
	CellTable        CellType = "table"
	CellFlowers      CellType = "flowers"
	CellLilyPad      CellType = "lilyPad"
	CellTree         CellType = "tree"
	CellBush         CellType = "bush"
	CellBed          CellType = "bed"
	CellCouch        CellType = "couch"
	CellPondWater    CellType = "pondWater"
	CellHorse        CellType = "horse"
	CellPlant        CellType = "plant"
	CellTrack        CellType = "track"
	CellFinishLine   CellType = "finishingLine"
	CellOilSlick     CellType = "oilSlick"
	CellBonsai       CellType = "bonsai"
	CellCactus       CellType = "cactus"
	CellShrub        CellType = "shrub"
	CellPath         CellType = "path"
	CellBox          CellType = "box"
	CellCar          CellType = "car"
)

// occupiableCellTypes is the authoritative, fixed set of cell types a
// suspect may stand on. It never varies per puzzle.
var occupiableCellTypes = map[CellType]bool{
	CellEmpty:     true,
	CellCarpet:    true,
	CellChair:     true,
	CellPondWater: true,
	CellHorse:     true,
	CellPath:      true,
	CellOilSlick:  true,
	CellCar:       true,
	CellBed:       true,
	CellTrack:     true,
}

// IsOccupiable reports whether a suspect may ever stand on a cell of type t.
func IsOccupiable(t CellType) bool {
	return occupiableCellTypes[t]
}
