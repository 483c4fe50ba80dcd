package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/utils/fileutils"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/version"
)

// CacheDirEnv overrides the cache directory.
const CacheDirEnv = "AASP_CACHE_DIR"

// DefaultCacheDir returns $AASP_CACHE_DIR, or the tool's directory under the
// XDG cache home.
func DefaultCacheDir() string {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, version.Tool, "templates")
}

// Cache is a directory of template sets keyed by version.
type Cache struct {
	dir string
}

func NewCache(dir string) *Cache {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	return &Cache{dir: dir}
}

func (c *Cache) Dir() string {
	return c.dir
}

var ErrInvalidCacheKey = errors.New("invalid cache key")

// Path returns where version is cached. Slashes in version are replaced so
// the key is always a single directory directly under the cache directory.
func (c *Cache) Path(version string) (string, error) {
	key := strings.ReplaceAll(strings.ReplaceAll(version, "/", "_"), `\`, "_")
	if key == "" || key == "." || key == ".." || !filepath.IsLocal(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCacheKey, version)
	}
	return filepath.Join(c.dir, key), nil
}

// Read returns the cached directory for version, or false when there is none
// or version is not a valid key.
func (c *Cache) Read(version string) (string, bool) {
	p, err := c.Path(version)
	if err != nil {
		return "", false
	}
	if fi, err := os.Stat(p); err == nil && fi.IsDir() {
		return p, true
	}
	return "", false
}

// Write copies the template tree at src into the cache as version, replacing
// any previous copy, and returns the cached path.
func (c *Cache) Write(version, src string) (string, error) {
	dest, err := c.Path(version)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("reading template source: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("template source %s is not a directory", src)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("clearing cached version %s: %w", version, err)
	}
	if err := fileutils.CopyFS(os.DirFS(src), ".", dest); err != nil {
		return "", fmt.Errorf("copying templates into cache: %w", err)
	}

	return dest, nil
}

// List returns the cached version keys, sorted.
func (c *Cache) List() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	slices.Sort(versions)
	return versions, nil
}
