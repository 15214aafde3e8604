package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the catalog file format written by Write.
const SchemaVersion = "v1"

// Document is the on-disk shape of a catalog file.
type Document struct {
	Schema  string   `yaml:"schema"`
	Modules []Module `yaml:"modules"`
}

// Load reads a catalog from a YAML file, or from every *.yaml / *.yml file
// under a directory (lexical order).
func Load(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat catalog: %w", err)
	}

	var modules []Module
	if !info.IsDir() {
		modules, err = loadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isYAML(p) {
				return nil
			}
			mods, err := loadFile(p)
			if err != nil {
				return err
			}
			modules = append(modules, mods...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk catalog dir: %w", err)
		}
	}

	c, err := New(modules)
	if err != nil {
		return nil, fmt.Errorf("validate catalog %s: %w", path, err)
	}
	return c, nil
}

// Encode returns the modules as a catalog YAML document.
func Encode(modules []Module) ([]byte, error) {
	data, err := yaml.Marshal(Document{Schema: SchemaVersion, Modules: modules})
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return data, nil
}

// Write stores the modules as a single catalog file. The file is replaced
// by rename, so a failed write leaves the previous catalog intact.
func Write(path string, modules []Module) error {
	data, err := Encode(modules)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

func loadFile(path string) ([]Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := checkSchema(doc.Schema); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.Modules, nil
}

// checkSchema accepts an empty schema (treated as v1) or any version with
// the same major as SchemaVersion.
func checkSchema(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid catalog schema version %q", v)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return fmt.Errorf("unsupported catalog schema %s (want %s.x)", v, semver.Major(SchemaVersion))
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
