// Command replay loads a stored puzzle definition and an optional
// placements snapshot, then walks hintengine.SolveFromState's trace to the
// terminal one step at a time. It exists for debugging the technique
// pipeline itself.
package main

import (
	"bytes"
	"encoding/gob"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/deduction-engine/internal/hintengine"
	"github.com/vancomm/deduction-engine/internal/puzzle"
)

var log = logrus.New()

func setupLogging(debug bool) {
	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}

func loadPuzzle(path string) (*puzzle.Puzzle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p puzzle.Puzzle
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func loadPlacements(path string) (map[puzzle.CellKey]puzzle.SuspectID, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var placements map[puzzle.CellKey]puzzle.SuspectID
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&placements); err != nil {
		return nil, err
	}
	return placements, nil
}

func main() {
	var (
		puzzlePath     string
		placementsPath string
		debug          bool
	)
	flag.StringVar(&puzzlePath, "puzzle", "", "path to a gob-encoded puzzle.Puzzle")
	flag.StringVar(&puzzlePath, "p", "", "path to a gob-encoded puzzle.Puzzle (shorthand)")
	flag.StringVar(&placementsPath, "placements", "", "path to a gob-encoded starting placements map (optional)")
	flag.BoolVar(&debug, "debug", false, "enable debug-level logging")
	flag.Parse()

	setupLogging(debug)

	if puzzlePath == "" {
		log.Fatal("missing required -puzzle flag")
	}

	p, err := loadPuzzle(puzzlePath)
	if err != nil {
		log.Fatalf("unable to load puzzle %s: %s", puzzlePath, err.Error())
	}

	placements, err := loadPlacements(placementsPath)
	if err != nil {
		log.Fatalf("unable to load placements %s: %s", placementsPath, err.Error())
	}

	log.WithFields(logrus.Fields{
		"puzzle":   p.ID,
		"suspects": len(p.Suspects),
	}).Info("replaying solve trace")

	result := hintengine.SolveFromState(p, placements)

	for i, step := range result.Steps {
		fields := logrus.Fields{
			"step":      i + 1,
			"technique": step.Technique,
		}
		if step.SuspectID != "" {
			fields["suspect"] = step.SuspectID
		}
		if step.CellKey != "" {
			fields["cell"] = step.CellKey
		}
		if len(step.EliminatedCells) > 0 {
			fields["eliminated"] = step.EliminatedCells
		}
		log.WithFields(fields).Info(step.Message)
	}

	summary := log.WithFields(logrus.Fields{
		"steps":  len(result.Steps),
		"solved": result.Solved,
	})
	if result.Solved {
		summary.Info("puzzle fully solved")
		return
	}
	summary.WithField("unplaced", result.Unplaced).Warn("puzzle not fully solved")
}
