package fileutils

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// AtomicWrite writes a file atomically with the given permissions.
func AtomicWrite(path string, perm fs.FileMode, gen func(w io.Writer) error) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	defer func(tmp *os.File) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}(tmp)

	if err := gen(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	if df, err := os.Open(dir); err == nil {
		_ = df.Sync()
		_ = df.Close()
	}

	return nil
}

// WriteIfChanged writes data to path atomically unless the file already holds
// exactly data with the same permissions. It reports whether it wrote.
func WriteIfChanged(path string, data []byte, perm fs.FileMode) (bool, error) {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() && fi.Mode().Perm() == perm.Perm() {
		if eq, err := sameContent(path, data); err != nil {
			return false, err
		} else if eq {
			return false, nil
		}
	}

	err := AtomicWrite(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	return err == nil, err
}

// sameContent compares a file's content with data
func sameContent(path string, data []byte) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	const bufSize = 128 * 1024
	buf := make([]byte, bufSize)
	rest := data

	for {
		n, err := io.ReadFull(f, buf)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return false, err
		}
		if n == 0 {
			return len(rest) == 0, nil
		}
		if n > len(rest) || !slices.Equal(buf[:n], rest[:n]) {
			return false, nil
		}
		rest = rest[n:]
	}
}
