// Package scaffold creates and upgrades projects from the template set.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/manifest"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/render"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/templates"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/utils/fileutils"
)

var ErrTargetNotEmpty = errors.New("target directory is not empty")

// InitResult describes a freshly scaffolded project.
type InitResult struct {
	Root            string
	ProjectName     string
	Selection       config.Selection
	TemplateVersion string
	TemplateOrigin  templates.Origin
	// Files are the rendered paths, relative to Root, in render order. The
	// manifest is not included.
	Files []string
	// Overwritten are files that existed in Root before Init and were
	// replaced by rendered ones. Only set when overwriting is allowed.
	Overwritten []string
	Collisions  []Collision
	Conflicts   map[string][]render.Claim
}

// FileCount is the number of files written, manifest included.
func (r *InitResult) FileCount() int {
	return len(r.Files) + 1
}

// Init scaffolds a new project into cfg.TargetDir. The selection is validated
// and the target checked before anything on disk changes, and every template
// is rendered in memory before the first write.
func Init(ctx context.Context, cfg config.Config, opts ...Option) (*InitResult, error) {
	o := defaultOptions().apply(opts...)

	if err := o.validate(cfg.Selection); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("resolving target directory: %w", err)
	}

	empty, err := fileutils.IsEmptyDir(root)
	if err != nil {
		return nil, fmt.Errorf("checking target directory: %w", err)
	}
	if !empty && !cfg.Overwrite {
		return nil, fmt.Errorf("%w: %s (use --overwrite to write into it)", ErrTargetNotEmpty, root)
	}

	set, err := o.locator.Locate(ctx, cfg.TemplateVersion)
	if err != nil {
		return nil, err
	}
	defer set.Close()

	o.logger.Debug("using templates", "origin", set.Origin(), "version", set.Version())

	name := ProjectName(root)
	data, collisions := AssembleContext(cfg.Selection, name, o.logger)
	for _, c := range collisions {
		o.logger.Warn("context key collision", "key", c.Key, "detail", c.String())
	}

	artefacts, conflicts, err := plan(ctx, set, cfg.Selection, data, o)
	if err != nil {
		return nil, err
	}

	var overwritten []string
	if !empty {
		existing, err := fileutils.WalkFiles(root)
		if err != nil {
			return nil, fmt.Errorf("listing target directory: %w", err)
		}
		for _, a := range artefacts {
			if existing.Has(a.Target) {
				overwritten = append(overwritten, a.Target)
			}
		}
		if existing.Has(manifest.RelPath()) {
			overwritten = append(overwritten, manifest.RelPath())
		}
		for _, p := range overwritten {
			o.logger.Warn("replacing existing file", "path", p)
		}
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating target directory: %w", err)
	}

	written, err := render.Write(root, artefacts, render.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	m := manifest.New(cfg.Selection, set.Version(), written)
	if err := m.Write(root); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	return &InitResult{
		Root:            root,
		ProjectName:     name,
		Selection:       cfg.Selection,
		TemplateVersion: set.Version(),
		TemplateOrigin:  set.Origin(),
		Files:           written,
		Overwritten:     overwritten,
		Collisions:      collisions,
		Conflicts:       conflicts,
	}, nil
}
