package fileutils

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/utils/set"
)

// WalkFiles walks a directory tree and returns a set of slash-separated file
// paths relative to root.
func WalkFiles(root string) (files *set.Set[string], err error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	files = set.New[string]()

	err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}

		if !d.IsDir() {
			files.Add(filepath.ToSlash(rel))
		}

		return nil
	})

	return files, err
}

// IsEmptyDir reports whether dir has no entries. A missing directory counts
// as empty.
func IsEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	} else if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); errors.Is(err, io.EOF) {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return false, nil
}

// CopyFS copies the tree under root in fsys into dest, creating dest.
func CopyFS(fsys fs.FS, root, dest string) error {
	return fs.WalkDir(fsys, root, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(filepath.FromSlash(root), filepath.FromSlash(current))
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		src, err := fsys.Open(current)
		if err != nil {
			return err
		}
		defer src.Close()

		return AtomicWrite(target, info.Mode().Perm()|0o200, func(w io.Writer) error {
			_, err := io.Copy(w, src)
			return err
		})
	})
}
