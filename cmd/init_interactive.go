package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/adapters"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
)

var ErrPromptCancelled = errors.New("prompt cancelled")

// promptSelection asks for every missing category in one form.
func (a *app) promptSelection(ctx context.Context, missing []adapters.Category) (config.Selection, error) {
	answers := make(map[adapters.Category]*string, len(missing))
	fields := make([]huh.Field, 0, len(missing))

	for _, c := range missing {
		value := new(string)
		answers[c] = value
		fields = append(fields, selectField(c, value))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(a.stdin).
		WithOutput(a.stdout)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return config.Selection{}, ErrPromptCancelled
		}
		return config.Selection{}, fmt.Errorf("prompting for options: %w", err)
	}

	var sel config.Selection
	for c, value := range answers {
		sel = sel.With(c, *value)
	}
	return sel, nil
}

func selectField(c adapters.Category, value *string) *huh.Select[string] {
	all := adapters.All(c)

	options := make([]huh.Option[string], len(all))
	for i, ad := range all {
		options[i] = huh.NewOption(ad.Display, ad.Name)
	}
	if len(all) > 0 {
		*value = all[0].Name
	}

	return huh.NewSelect[string]().
		Title(c.Label()).
		Options(options...).
		Value(value)
}
