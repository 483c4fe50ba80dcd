// Package templates finds the template set to render from: a copy cached on
// disk for a requested version, or the set bundled into the binary.
package templates

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

var ErrTemplatesNotFound = errors.New("templates not found")

// DefaultVersion is the cache key used when no version is requested.
const DefaultVersion = "default"

// Origin says where a template set came from.
type Origin string

const (
	OriginBundled Origin = "bundled"
	OriginCache   Origin = "cache"
)

// Locator resolves template versions.
type Locator struct {
	cache   *Cache
	bundled fs.FS
}

func defaultLocatorOptions() *locatorOptions {
	return &locatorOptions{
		cacheDir: "",
		bundled:  Bundled(),
	}
}

type locatorOptions struct {
	cacheDir string
	bundled  fs.FS
}

func (o *locatorOptions) apply(opts ...Option) *locatorOptions {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

type Option func(*locatorOptions)

// WithCacheDir sets the cache directory. Empty means DefaultCacheDir.
func WithCacheDir(dir string) Option {
	return func(o *locatorOptions) {
		o.cacheDir = dir
	}
}

// WithBundled replaces the bundled template set. nil disables the fallback.
func WithBundled(fsys fs.FS) Option {
	return func(o *locatorOptions) {
		o.bundled = fsys
	}
}

func NewLocator(opts ...Option) *Locator {
	o := defaultLocatorOptions().apply(opts...)
	return &Locator{
		cache:   NewCache(o.cacheDir),
		bundled: o.bundled,
	}
}

func (l *Locator) Cache() *Cache {
	return l.cache
}

// Locate returns the template set for version. A cached copy wins over the
// bundled set.
func (l *Locator) Locate(ctx context.Context, version string) (*Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if version == "" {
		version = DefaultVersion
	}

	if dir, ok := l.cache.Read(version); ok {
		return openSet(ctx, NewOSSource(dir), OriginCache)
	}

	if l.bundled != nil {
		return openSet(ctx, NewFSSource(l.bundled, "."), OriginBundled)
	}

	return nil, fmt.Errorf("no cached or bundled templates for version %q: %w", version, ErrTemplatesNotFound)
}

// Set is a located template tree.
type Set struct {
	source  Source
	fsys    fs.FS
	origin  Origin
	version string
	meta    *MetadataCfg
}

func openSet(ctx context.Context, src Source, origin Origin) (*Set, error) {
	fsys, err := src.FS(ctx)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("accessing templates: %w", err)
	}

	meta, err := loadMetadata(fsys, src.Root())
	if err != nil {
		src.Close()
		return nil, err
	}

	return &Set{
		source:  src,
		fsys:    fsys,
		origin:  origin,
		version: readVersion(fsys, src.Root(), meta),
		meta:    meta,
	}, nil
}

func (s *Set) FS() fs.FS      { return s.fsys }
func (s *Set) Root() string   { return s.source.Root() }
func (s *Set) Origin() Origin { return s.origin }

// Version is the version the template set declares about itself, or
// UnknownVersion.
func (s *Set) Version() string { return s.version }

// Name is the template set name from template.toml, if any.
func (s *Set) Name() string {
	if s.meta == nil {
		return ""
	}
	return s.meta.Metadata.Name
}

// Layer returns the slash path of dir inside the set and whether it exists
// as a directory.
func (s *Set) Layer(dir string) (string, bool) {
	p := path.Join(s.Root(), dir)
	fi, err := fs.Stat(s.fsys, p)
	return p, err == nil && fi.IsDir()
}

func (s *Set) Close() error {
	return s.source.Close()
}
