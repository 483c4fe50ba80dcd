// Package adapters is the static table of selectable options. Each entry
// names an option, optionally points at an overlay directory inside the
// template set, and contributes keys to the rendering context.
package adapters

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var ErrNotRegistered = errors.New("not registered")

// Category is one of the five option axes.
type Category int

const (
	Framework Category = iota
	ProjectType
	Pipeline
	Runtime
	IaC
)

// Categories lists every category in selection order.
var Categories = []Category{Framework, ProjectType, Pipeline, Runtime, IaC}

func (c Category) String() string {
	switch c {
	case Framework:
		return "framework"
	case ProjectType:
		return "project_type"
	case Pipeline:
		return "pipeline"
	case Runtime:
		return "runtime"
	case IaC:
		return "iac"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Label is the human form of the category, e.g. "Project type".
func (c Category) Label() string {
	switch c {
	case ProjectType:
		return "Project type"
	case IaC:
		return "IaC"
	default:
		s := c.String()
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// Adapter is a single registered option.
type Adapter struct {
	Category Category
	Name     string
	Display  string
	// Overlay is a slash-separated directory inside the template set, empty
	// when the option contributes no files of its own.
	Overlay string
	Context map[string]any
}

// Get returns a copy of the adapter registered under name.
func Get(category Category, name string) (Adapter, error) {
	byName, ok := registry[category]
	if !ok {
		return Adapter{}, fmt.Errorf("unknown category %v", category)
	}

	a, ok := byName[name]
	if !ok {
		return Adapter{}, fmt.Errorf("%s adapter %q: %w", category, name, ErrNotRegistered)
	}

	a.Context = maps.Clone(a.Context)
	return a, nil
}

// Names returns the registered names of a category in declaration order.
func Names(category Category) []string {
	return slices.Clone(order[category])
}

// All returns copies of every adapter of a category in declaration order.
func All(category Category) []Adapter {
	out := make([]Adapter, 0, len(order[category]))
	for _, name := range order[category] {
		a, _ := Get(category, name)
		out = append(out, a)
	}
	return out
}

// FeatureKeys returns, sorted, every boolean context key any adapter can
// contribute.
func FeatureKeys() []string {
	var keys []string
	for _, byName := range registry {
		for _, a := range byName {
			for k, v := range a.Context {
				if _, ok := v.(bool); ok && !slices.Contains(keys, k) {
					keys = append(keys, k)
				}
			}
		}
	}
	slices.Sort(keys)
	return keys
}
