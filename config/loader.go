package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Filenames are looked up, in order, by Find.
var Filenames = []string{
	".muzzle.toml",
	".muzzle.yaml",
	".muzzle.yml",
}

// Load decodes a configuration file. The format follows the extension.
// Unknown keys are rejected.
func Load(path string) (File, error) {
	var f File

	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return f, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return f, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return f, fmt.Errorf("unsupported config extension: %s", ext)
	}

	return f, nil
}

// Find looks for a configuration file in dir and its parents. It returns an
// empty path when none exists.
func Find(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range Filenames {
			candidate := filepath.Join(abs, name)
			if fileExists(candidate) {
				return candidate, nil
			}
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// Resolve returns the defaults overlaid with the configuration file at
// explicit, or with the file discovered from dir when explicit is empty.
func Resolve(dir, explicit string) (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(explicit)
	if path == "" {
		found, err := Find(dir)
		if err != nil {
			return cfg, fmt.Errorf("failed to find config: %w", err)
		}
		path = found
	}
	if path == "" {
		return cfg, nil
	}

	f, err := Load(path)
	if err != nil {
		return cfg, err
	}

	cfg, err = cfg.Apply(f)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Source = path

	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
