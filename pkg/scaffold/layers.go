package scaffold

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/adapters"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/render"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/templates"
	"golang.org/x/sync/errgroup"
)

var ErrNoCombinationTemplate = errors.New("no template for combination")

// CommonLayer holds files shared by every project.
const CommonLayer = "_common"

// Layer is one template directory contributing to a project.
type Layer struct {
	Name string // slash path relative to the template root
	Dir  string // slash path inside the template set's FS
}

// Layers resolves the directories that make up a project, in render order:
// common files, the framework/project type combination, then the iac,
// runtime and pipeline overlays. Only the combination is required.
func Layers(set *templates.Set, sel config.Selection) ([]Layer, error) {
	var layers []Layer

	add := func(name string, required bool) error {
		dir, ok := set.Layer(name)
		if !ok {
			if required {
				return fmt.Errorf("%w %s", ErrNoCombinationTemplate, name)
			}
			return nil
		}
		layers = append(layers, Layer{Name: name, Dir: dir})
		return nil
	}

	if err := add(CommonLayer, false); err != nil {
		return nil, err
	}
	if err := add(combinationLayer(sel), true); err != nil {
		return nil, err
	}

	for _, c := range []adapters.Category{adapters.IaC, adapters.Runtime, adapters.Pipeline} {
		a, err := adapters.Get(c, sel.Get(c))
		if err != nil || a.Overlay == "" {
			continue
		}
		if err := add(a.Overlay, false); err != nil {
			return nil, err
		}
	}

	return layers, nil
}

// combinationLayer is the project type directory under the framework's
// overlay. Frameworks without an adapter fall back to their own name.
func combinationLayer(sel config.Selection) string {
	base := sel.Framework
	if fw, err := adapters.Get(adapters.Framework, sel.Framework); err == nil && fw.Overlay != "" {
		base = fw.Overlay
	}
	return path.Join(base, sel.ProjectType)
}

// plan renders every layer in memory and merges the results. Layers may be
// planned concurrently but the merge always follows layer order.
func plan(ctx context.Context, set *templates.Set, sel config.Selection, data Context, o *options) ([]render.Artefact, map[string][]render.Claim, error) {
	layers, err := Layers(set, sel)
	if err != nil {
		return nil, nil, err
	}

	planned := make([][]render.Artefact, len(layers))
	errs := make([]error, len(layers))

	g, gctx := errgroup.WithContext(ctx)
	if o.maxWorkers > 0 {
		g.SetLimit(o.maxWorkers)
	}

	for i, layer := range layers {
		g.Go(func() error {
			artefacts, err := render.Plan(gctx, set.FS(), layer.Dir, data,
				render.WithLayer(layer.Name),
				render.WithLenient(o.lenient),
				render.WithLogger(o.logger),
			)
			if err != nil {
				errs[i] = err
				return err
			}
			o.logger.Debug("planned layer", "layer", layer.Name, "files", len(artefacts))
			planned[i] = artefacts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, firstLayerError(ctx, errs, err)
	}

	merged, conflicts := render.Merge(planned...)
	for _, target := range slices.Sorted(maps.Keys(conflicts)) {
		o.logger.Debug("overlay replaces file", "path", target, "claims", conflicts[target])
	}

	return merged, conflicts, nil
}

// firstLayerError picks the failure of the earliest layer, ignoring layers
// that only stopped because a sibling failed.
func firstLayerError(ctx context.Context, errs []error, fallback error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return fallback
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
