// Package config holds the scaffold configuration: the five selected option
// names and how they were resolved.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/adapters"
)

var ErrMissingOption = errors.New("missing required option")

// Selection is the five-tuple that determines a scaffold's shape.
type Selection struct {
	Framework   string `json:"framework" toml:"framework" yaml:"framework"`
	ProjectType string `json:"project_type" toml:"project_type" yaml:"project_type"`
	Pipeline    string `json:"pipeline" toml:"pipeline" yaml:"pipeline"`
	Runtime     string `json:"runtime" toml:"runtime" yaml:"runtime"`
	IaC         string `json:"iac" toml:"iac" yaml:"iac"`
}

// Get returns the selected name for category.
func (s Selection) Get(category adapters.Category) string {
	switch category {
	case adapters.Framework:
		return s.Framework
	case adapters.ProjectType:
		return s.ProjectType
	case adapters.Pipeline:
		return s.Pipeline
	case adapters.Runtime:
		return s.Runtime
	case adapters.IaC:
		return s.IaC
	}
	return ""
}

// With returns a copy of s with category set to name.
func (s Selection) With(category adapters.Category, name string) Selection {
	switch category {
	case adapters.Framework:
		s.Framework = name
	case adapters.ProjectType:
		s.ProjectType = name
	case adapters.Pipeline:
		s.Pipeline = name
	case adapters.Runtime:
		s.Runtime = name
	case adapters.IaC:
		s.IaC = name
	}
	return s
}

// Missing lists the categories without a selected name.
func (s Selection) Missing() []adapters.Category {
	var missing []adapters.Category
	for _, c := range adapters.Categories {
		if strings.TrimSpace(s.Get(c)) == "" {
			missing = append(missing, c)
		}
	}
	return missing
}

func (s Selection) String() string {
	return fmt.Sprintf("framework=%s project_type=%s pipeline=%s runtime=%s iac=%s",
		s.Framework, s.ProjectType, s.Pipeline, s.Runtime, s.IaC)
}

// Config is the validated input of a scaffold run. It is not modified after
// validation.
type Config struct {
	Selection

	TargetDir       string
	TemplateVersion string
	Overwrite       bool
	NonInteractive  bool
}

// Prompter asks the user for the names of the missing categories.
type Prompter func(ctx context.Context, missing []adapters.Category) (Selection, error)

// Resolve fills the gaps in given, first from defaults and then, when
// interactive, from prompt. Non-interactive resolution fails with
// ErrMissingOption naming every missing flag.
func Resolve(ctx context.Context, given, defaults Selection, interactive bool, prompt Prompter) (Selection, error) {
	sel := given
	for _, c := range adapters.Categories {
		if strings.TrimSpace(sel.Get(c)) == "" {
			sel = sel.With(c, strings.TrimSpace(defaults.Get(c)))
		}
	}

	missing := sel.Missing()
	if len(missing) == 0 {
		return sel, nil
	}

	if !interactive || prompt == nil {
		flags := make([]string, len(missing))
		for i, c := range missing {
			flags[i] = "--" + FlagName(c)
		}
		return sel, fmt.Errorf("%w: %s required in non-interactive mode", ErrMissingOption, strings.Join(flags, ", "))
	}

	answers, err := prompt(ctx, missing)
	if err != nil {
		return sel, err
	}
	for _, c := range missing {
		sel = sel.With(c, answers.Get(c))
	}

	if missing := sel.Missing(); len(missing) > 0 {
		return sel, fmt.Errorf("%w: %s", ErrMissingOption, missing[0])
	}

	return sel, nil
}

// FlagName is the CLI flag that selects category, e.g. "project-type".
func FlagName(category adapters.Category) string {
	return strings.ReplaceAll(category.String(), "_", "-")
}

// EnvVar is the environment variable that selects category, e.g.
// "AASP_PROJECT_TYPE".
func EnvVar(category adapters.Category) string {
	return "AASP_" + strings.ToUpper(category.String())
}
