package templates

import (
	"context"
	"io/fs"
	"os"
)

// Source is anything a template set can be read from.
type Source interface {
	FS(context.Context) (fs.FS, error)
	Root() string
	Close() error
}

// NewFSSource wraps any io/fs.FS. root is the template root inside fsys.
func NewFSSource(fsys fs.FS, root string) *FSSource {
	return &FSSource{fs: fsys, root: root}
}

type FSSource struct {
	fs   fs.FS
	root string
}

func (f *FSSource) FS(ctx context.Context) (fs.FS, error) {
	return f.fs, nil
}

func (f *FSSource) Root() string {
	return f.root
}

func (f *FSSource) Close() error {
	return nil
}

// NewOSSource wraps a directory on disk with an os.DirFS.
func NewOSSource(path string) *OSSource {
	return &OSSource{path: path}
}

type OSSource struct {
	path string
}

func (o *OSSource) FS(ctx context.Context) (fs.FS, error) {
	return os.DirFS(o.path), nil
}

func (o *OSSource) Root() string {
	return "."
}

func (o *OSSource) Close() error {
	return nil
}

// Path is the directory on disk backing the source.
func (o *OSSource) Path() string {
	return o.path
}
