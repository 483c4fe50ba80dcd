package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/adapters"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
)

// DefaultProjectName is used when the target directory has no usable name.
const DefaultProjectName = "azure-ai-agent"

// Context is the data every template is rendered against.
type Context map[string]any

// Collision is a key two contributors set to different values. The later
// contributor wins.
type Collision struct {
	Key    string
	First  Contribution
	Second Contribution
}

type Contribution struct {
	Source string
	Value  any
}

func (c Collision) String() string {
	return fmt.Sprintf("%s: %s=%v overridden by %s=%v", c.Key, c.First.Source, c.First.Value, c.Second.Source, c.Second.Value)
}

// contextOrder is the order adapter contributions are merged in.
var contextOrder = []adapters.Category{
	adapters.Framework,
	adapters.ProjectType,
	adapters.Runtime,
	adapters.Pipeline,
	adapters.IaC,
}

// AssembleContext merges the base keys and every selected adapter's
// contribution. Feature flags of all adapters start out false so templates
// can test any of them. Unknown names contribute nothing.
func AssembleContext(sel config.Selection, projectName string, logger *log.Logger) (Context, []Collision) {
	base := map[string]any{"project_name": projectName}
	for _, c := range adapters.Categories {
		base[c.String()] = sel.Get(c)
	}

	parts := []contribution{{source: "base", values: base}}
	for _, c := range contextOrder {
		a, err := adapters.Get(c, sel.Get(c))
		if err != nil {
			if logger != nil {
				logger.Debug("no context contribution", "category", c, "name", sel.Get(c), "err", err)
			}
			continue
		}
		parts = append(parts, contribution{source: c.String() + "/" + a.Name, values: a.Context})
	}

	return mergeContext(adapters.FeatureKeys(), parts)
}

type contribution struct {
	source string
	values map[string]any
}

// mergeContext seeds flags with false, then applies parts in order. Keys
// within a part are applied in sorted order.
func mergeContext(flags []string, parts []contribution) (Context, []Collision) {
	ctx := make(Context, len(flags))
	for _, key := range flags {
		ctx[key] = false
	}

	owners := make(map[string]Contribution)
	var collisions []Collision

	for _, part := range parts {
		for _, key := range sortedKeys(part.values) {
			value := part.values[key]
			if prev, ok := owners[key]; ok && prev.Source != part.source && prev.Value != value {
				collisions = append(collisions, Collision{
					Key:    key,
					First:  prev,
					Second: Contribution{Source: part.source, Value: value},
				})
			}
			owners[key] = Contribution{Source: part.source, Value: value}
			ctx[key] = value
		}
	}

	return ctx, collisions
}

// ProjectName derives the project name from the target directory.
func ProjectName(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}

	name := strings.TrimSpace(filepath.Base(abs))
	switch name {
	case "", ".", string(filepath.Separator):
		return DefaultProjectName
	}
	return name
}
