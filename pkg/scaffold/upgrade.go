package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/manifest"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/render"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/utils/set"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/version"
)

// Outcome is how an upgrade ended.
type Outcome int

const (
	UpToDate Outcome = iota
	DryRun
	Applied
)

func (o Outcome) String() string {
	switch o {
	case UpToDate:
		return "up to date"
	case DryRun:
		return "dry run"
	case Applied:
		return "applied"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

type UpgradeOptions struct {
	DryRun          bool
	TemplateVersion string
}

// UpgradeResult describes an upgrade. Updated and Skipped partition the
// freshly rendered paths; for a dry run they are what would happen.
type UpgradeResult struct {
	Outcome Outcome
	Root    string
	From    string
	To      string

	Updated []string
	// Skipped files exist on disk but were never owned by the tool. They are
	// left untouched.
	Skipped []string
	// Orphaned paths were owned before but are no longer rendered. They are
	// left on disk and dropped from the manifest.
	Orphaned []string

	// OwnedCount is the number of owned paths recorded before the upgrade.
	OwnedCount int
}

// Upgrade refreshes the template-owned files of the project at root. A file
// is rewritten when the manifest owns it or when it does not exist yet.
func Upgrade(ctx context.Context, root string, uo UpgradeOptions, opts ...Option) (*UpgradeResult, error) {
	o := defaultOptions().apply(opts...)

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	m, err := manifest.Read(root)
	if err != nil {
		return nil, err
	}
	if version.NewerThanCurrent(m.CLIVersion) {
		o.logger.Warn("manifest was written by a newer release", "manifest", m.CLIVersion, "running", version.String())
	}
	if err := o.validate(m.Config); err != nil {
		return nil, fmt.Errorf("manifest configuration: %w", err)
	}

	tset, err := o.locator.Locate(ctx, uo.TemplateVersion)
	if err != nil {
		return nil, err
	}
	defer tset.Close()

	result := &UpgradeResult{
		Root:       root,
		From:       m.TemplateVersion,
		To:         tset.Version(),
		OwnedCount: len(m.OwnedPaths),
	}

	if result.From == result.To {
		result.Outcome = UpToDate
		return result, nil
	}

	data, collisions := AssembleContext(m.Config, ProjectName(root), o.logger)
	for _, c := range collisions {
		o.logger.Warn("context key collision", "key", c.Key, "detail", c.String())
	}

	artefacts, _, err := plan(ctx, tset, m.Config, data, o)
	if err != nil {
		return nil, err
	}

	owned := m.Owned()
	rendered := set.New[string]()
	updates := make([]render.Artefact, 0, len(artefacts))

	for _, a := range artefacts {
		rendered.Add(a.Target)

		exists, err := fileExists(filepath.Join(root, filepath.FromSlash(a.Target)))
		if err != nil {
			return nil, err
		}

		if owned.Has(a.Target) || !exists {
			updates = append(updates, a)
			result.Updated = append(result.Updated, a.Target)
		} else {
			result.Skipped = append(result.Skipped, a.Target)
		}
	}

	for _, p := range m.OwnedPaths {
		if !rendered.Has(p) {
			result.Orphaned = append(result.Orphaned, p)
		}
	}
	slices.Sort(result.Orphaned)

	if uo.DryRun {
		result.Outcome = DryRun
		return result, nil
	}

	if _, err := render.Write(root, updates, render.WithLogger(o.logger)); err != nil {
		return nil, err
	}

	next := manifest.New(m.Config, tset.Version(), render.Targets(artefacts))
	if err := next.Write(root); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	result.Outcome = Applied
	return result, nil
}

func fileExists(p string) (bool, error) {
	_, err := os.Lstat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
