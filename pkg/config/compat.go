package config

import (
	"fmt"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/adapters"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/utils/set"
)

// InvalidCombinationError reports a selection outside the compatibility
// matrix.
type InvalidCombinationError struct {
	Selection
}

func (e *InvalidCombinationError) Error() string {
	return fmt.Sprintf("unsupported combination: framework=%q, project_type=%q, pipeline=%q, runtime=%q, iac=%q",
		e.Framework, e.ProjectType, e.Pipeline, e.Runtime, e.IaC)
}

// Matrix is the set of allowed selections: the cross product of every
// registered name per category, minus withdrawn combinations.
type Matrix struct {
	withdrawn *set.Set[Selection]
}

func NewMatrix() *Matrix {
	return &Matrix{withdrawn: set.New[Selection]()}
}

// Withdraw removes sel from the allowed set.
func (m *Matrix) Withdraw(sel Selection) *Matrix {
	m.withdrawn.Add(sel)
	return m
}

func (m *Matrix) Allows(sel Selection) bool {
	for _, c := range adapters.Categories {
		if _, err := adapters.Get(c, sel.Get(c)); err != nil {
			return false
		}
	}
	return !m.withdrawn.Has(sel)
}

func (m *Matrix) Validate(sel Selection) error {
	if !m.Allows(sel) {
		return &InvalidCombinationError{Selection: sel}
	}
	return nil
}

// Combinations enumerates the allowed selections in registry order.
func (m *Matrix) Combinations() []Selection {
	combos := []Selection{{}}
	for _, c := range adapters.Categories {
		next := make([]Selection, 0, len(combos)*len(adapters.Names(c)))
		for _, partial := range combos {
			for _, name := range adapters.Names(c) {
				next = append(next, partial.With(c, name))
			}
		}
		combos = next
	}

	out := combos[:0]
	for _, sel := range combos {
		if !m.withdrawn.Has(sel) {
			out = append(out, sel)
		}
	}
	return out
}

var defaultMatrix = NewMatrix()

// ValidateCombination checks sel against the default matrix.
func ValidateCombination(sel Selection) error {
	return defaultMatrix.Validate(sel)
}
