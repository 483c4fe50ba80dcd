package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	VersionFile  = "version.txt"
	MetadataFile = "template.toml"

	UnknownVersion = "unknown"
)

// MetadataCfg is the optional template.toml at the root of a template set.
type MetadataCfg struct {
	Metadata struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
		Version     string `toml:"version"`
	} `toml:"metadata"`
}

// loadMetadata reads template.toml under root. A missing file is not an
// error.
func loadMetadata(fsys fs.FS, root string) (*MetadataCfg, error) {
	file, err := fsys.Open(path.Join(root, MetadataFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("opening %s: %w", MetadataFile, err)
	}
	defer file.Close()

	var cfg MetadataCfg
	if md, err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", MetadataFile, err)
	} else if len(md.Undecoded()) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", MetadataFile, md.Undecoded())
	}

	return &cfg, nil
}

// readVersion resolves the template version: template.toml wins, then
// version.txt, then UnknownVersion.
func readVersion(fsys fs.FS, root string, meta *MetadataCfg) string {
	if meta != nil {
		if v := strings.TrimSpace(meta.Metadata.Version); v != "" {
			return v
		}
	}

	data, err := fs.ReadFile(fsys, path.Join(root, VersionFile))
	if err != nil {
		return UnknownVersion
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		return v
	}
	return UnknownVersion
}
