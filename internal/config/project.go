package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project is the top-level nocturne.yaml configuration: toggles that apply
// to an entire checked project, independent of any single program's AST.
type Project struct {
	// Strict, when true, turns `unknown`-typed host declarations into a
	// checker error at import time rather than a permissive pass-through.
	Strict bool `yaml:"strict,omitempty"`

	// Deps lists the Go packages and proto descriptors the host-import
	// boundary should turn into pre-typed bindings. The Dep shape itself
	// lives in internal/hostimport, since only that package knows how to
	// turn one into a Scheme; this field just carries it through project
	// config loading without internal/config importing internal/hostimport.
	Deps []DepRef `yaml:"deps,omitempty"`
}

// DepRef is one `deps:` entry of nocturne.yaml. internal/hostimport
// converts each into a resolved import (a Go package or a proto file) once
// it knows how to act on Kind.
type DepRef struct {
	// Kind selects the importer: "go" for a Go package path, "proto" for
	// a .proto file path.
	Kind string `yaml:"kind"`
	// Path is a Go import path (Kind == "go") or a filesystem path to a
	// .proto file (Kind == "proto").
	Path string `yaml:"path"`
	// As is the name bindings from this dependency are installed under;
	// defaults to the last path segment if omitted.
	As string `yaml:"as,omitempty"`
}

// LoadProject reads and parses a nocturne.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project config %s: %w", path, err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project config %s: %w", path, err)
	}
	for i := range p.Deps {
		if p.Deps[i].Path == "" {
			return nil, fmt.Errorf("%s: deps[%d]: path is required", path, i)
		}
		if p.Deps[i].Kind != "go" && p.Deps[i].Kind != "proto" {
			return nil, fmt.Errorf("%s: deps[%d]: kind must be \"go\" or \"proto\", got %q", path, i, p.Deps[i].Kind)
		}
	}
	return &p, nil
}

// FindProject searches for nocturne.yaml starting from dir and walking up
// through parent directories. Returns "" with a nil error if none exists.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "nocturne.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
