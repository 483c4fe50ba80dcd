// Package render turns a template directory into output files.
//
// Files whose name ends in TemplateSuffix are executed as text/template
// templates against a context map and written without the suffix. Every
// other file is copied byte for byte. Rendering happens in two phases: Plan
// builds the artefacts in memory, Write puts them on disk. Plan never touches
// the output directory.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/utils/fileutils"
)

// TemplateSuffix marks a file as a template.
const TemplateSuffix = ".j2"

var ErrRender = errors.New("template render failed")

// FileError reports a template file that failed to parse or execute. It
// matches ErrRender with errors.Is.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{ErrRender, e.Err}
}

// Plan walks root in fsys in lexical order and renders every file in memory.
// Targets are slash-separated and relative to the output root.
func Plan(ctx context.Context, fsys fs.FS, root string, data map[string]any, opts ...Option) ([]Artefact, error) {
	o := defaultOptions().apply(opts...)

	artefacts := make([]Artefact, 0)

	err := fs.WalkDir(fsys, root, func(src string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, src)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", rel, err)
		}

		content, err := fs.ReadFile(fsys, src)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}

		claim := Claim{Layer: o.layer, Source: rel, Target: rel}

		if target, ok := templateTarget(rel); ok {
			claim.Target = target

			content, err = execute(rel, content, data)
			if err != nil {
				if o.lenient {
					o.logger.Warn("skipping template", "layer", o.layer, "path", rel, "err", err)
					return nil
				}
				return &FileError{Path: path.Join(o.layer, rel), Err: err}
			}
		}

		artefacts = append(artefacts, Artefact{
			Claim: claim,
			Data:  content,
			Mode:  outputMode(info.Mode()),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return artefacts, nil
}

// Write writes artefacts under root, creating parent directories, and
// returns their targets in order. Files whose content and mode already match
// are left alone.
func Write(root string, artefacts []Artefact, opts ...Option) ([]string, error) {
	o := defaultOptions().apply(opts...)

	written := make([]string, 0, len(artefacts))

	for _, a := range artefacts {
		if !filepath.IsLocal(filepath.FromSlash(a.Target)) {
			return written, fmt.Errorf("unsafe artefact path %q escapes %s", a.Target, root)
		}

		dest := filepath.Join(root, filepath.FromSlash(a.Target))

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return written, fmt.Errorf("creating parent directory for %s: %w", a.Target, err)
		}

		changed, err := fileutils.WriteIfChanged(dest, a.Data, a.Mode)
		if err != nil {
			return written, fmt.Errorf("writing %s: %w", a.Target, err)
		}
		o.logger.Debug("wrote", "path", a.Target, "changed", changed)

		written = append(written, a.Target)
	}

	return written, nil
}

func templateTarget(rel string) (string, bool) {
	if path.Base(rel) == TemplateSuffix {
		return rel, false
	}
	return strings.CutSuffix(rel, TemplateSuffix)
}

func execute(name string, content []byte, data map[string]any) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(funcs).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing: %w", err)
	}

	return buf.Bytes(), nil
}

// outputMode keeps the executable bit of the source and nothing else.
func outputMode(mode fs.FileMode) fs.FileMode {
	if mode&0o111 != 0 {
		return 0o755
	}
	return 0o644
}
