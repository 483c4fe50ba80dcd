package render

import (
	"fmt"
	"io/fs"
)

// Claim is an artefact's claim on an output path.
type Claim struct {
	Layer  string
	Source string
	Target string
}

func (c Claim) String() string {
	if c.Layer == "" {
		return c.Source
	}
	return fmt.Sprintf("%s:%s", c.Layer, c.Source)
}

// Artefact is a rendered output file held in memory until written.
type Artefact struct {
	Claim
	Data []byte
	Mode fs.FileMode
}

// Merge flattens layered artefact lists into one list with unique targets.
// A later artefact replaces the content of an earlier one with the same
// target while keeping the earlier position. Targets claimed more than once
// are returned as conflicts, in claim order.
func Merge(layers ...[]Artefact) (merged []Artefact, conflicts map[string][]Claim) {
	index := make(map[string]int)
	claims := make(map[string][]Claim)

	for _, layer := range layers {
		for _, a := range layer {
			claims[a.Target] = append(claims[a.Target], a.Claim)
			if i, ok := index[a.Target]; ok {
				merged[i] = a
				continue
			}
			index[a.Target] = len(merged)
			merged = append(merged, a)
		}
	}

	conflicts = make(map[string][]Claim)
	for target, cs := range claims {
		if len(cs) > 1 {
			conflicts[target] = cs
		}
	}

	return merged, conflicts
}

// Targets returns the output paths of artefacts in order.
func Targets(artefacts []Artefact) []string {
	out := make([]string, len(artefacts))
	for i, a := range artefacts {
		out[i] = a.Target
	}
	return out
}
