package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/version"
	"gopkg.in/yaml.v3"
)

// DefaultsFile is the on-disk user defaults document.
type DefaultsFile struct {
	Defaults Defaults `toml:"defaults" yaml:"defaults" json:"defaults"`
}

// Defaults are option values used when neither a flag nor an environment
// variable provides one.
type Defaults struct {
	Framework       string `toml:"framework" yaml:"framework" json:"framework"`
	ProjectType     string `toml:"project_type" yaml:"project_type" json:"project_type"`
	Pipeline        string `toml:"pipeline" yaml:"pipeline" json:"pipeline"`
	Runtime         string `toml:"runtime" yaml:"runtime" json:"runtime"`
	IaC             string `toml:"iac" yaml:"iac" json:"iac"`
	TemplateVersion string `toml:"template_version" yaml:"template_version" json:"template_version"`
}

func (d Defaults) Selection() Selection {
	return Selection{
		Framework:   d.Framework,
		ProjectType: d.ProjectType,
		Pipeline:    d.Pipeline,
		Runtime:     d.Runtime,
		IaC:         d.IaC,
	}
}

// DefaultsPath is $XDG_CONFIG_HOME/azure-agent-starter-pack/config.toml.
func DefaultsPath() string {
	return filepath.Join(xdg.ConfigHome, version.Tool, "config.toml")
}

// LoadDefaults reads the defaults file at path. When path is empty the
// default location is used and a missing file yields empty defaults.
func LoadDefaults(path string) (Defaults, error) {
	optional := path == ""
	if optional {
		path = DefaultsPath()
	}

	var file DefaultsFile
	if err := decodeFile(path, &file); err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Defaults{}, nil
		}
		return Defaults{}, fmt.Errorf("loading defaults %s: %w", path, err)
	}

	return file.Defaults, nil
}

func decodeFile(path string, v any) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".toml":
		md, err := toml.DecodeFile(path, v)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return err
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return fmt.Errorf("unexpected extra YAML document")
			}
			return err
		}
		return nil
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return err
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return fmt.Errorf("unexpected extra content after JSON document")
			}
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config file type %q (supported: .toml, .yaml, .yml, .json)", ext)
	}
}
