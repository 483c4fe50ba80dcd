// Package manifest records what a scaffold run produced: the selection, the
// template version and the set of paths the tool owns in the project.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/utils/fileutils"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/utils/set"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/version"
)

const (
	Dir  = ".azure-agent-starter-pack"
	File = "manifest.json"

	SchemaVersion = "1"
)

var (
	ErrNoManifest        = errors.New("no manifest found")
	ErrUnsupportedSchema = errors.New("unsupported manifest schema")
)

// Manifest is the persisted record of a scaffolded project.
type Manifest struct {
	SchemaVersion   string           `json:"schema_version"`
	CLITool         string           `json:"cli_tool"`
	CLIVersion      string           `json:"cli_version"`
	TemplateVersion string           `json:"template_version"`
	Config          config.Selection `json:"config"`
	OwnedPaths      []string         `json:"owned_paths"`
}

// New builds a manifest for the current tool. Owned paths are deduplicated
// and sorted.
func New(sel config.Selection, templateVersion string, owned []string) *Manifest {
	return &Manifest{
		SchemaVersion:   SchemaVersion,
		CLITool:         version.Tool,
		CLIVersion:      version.String(),
		TemplateVersion: templateVersion,
		Config:          sel,
		OwnedPaths:      normalise(owned),
	}
}

// Path returns the manifest location inside a project root.
func Path(root string) string {
	return filepath.Join(root, Dir, File)
}

// RelPath is the manifest location relative to a project root, slash separated.
func RelPath() string {
	return Dir + "/" + File
}

// Owned returns the owned paths as a set.
func (m *Manifest) Owned() *set.Set[string] {
	return set.Of(m.OwnedPaths...)
}

// Write stores the manifest under root atomically.
func (m *Manifest) Write(root string) error {
	p := Path(root)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}

	out := *m
	out.OwnedPaths = normalise(m.OwnedPaths)

	return fileutils.AtomicWrite(p, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	})
}

// Read loads the manifest under root.
func Read(root string) (*Manifest, error) {
	p := Path(root)

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNoManifest, p)
	} else if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", p, err)
	}

	if m.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w %q in %s", ErrUnsupportedSchema, m.SchemaVersion, p)
	}

	m.OwnedPaths = normalise(m.OwnedPaths)
	return &m, nil
}

func normalise(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.ToSlash(p))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
