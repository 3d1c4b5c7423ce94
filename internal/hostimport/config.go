// Package hostimport is the host-declaration importer boundary: it turns
// real Go packages and protobuf/gRPC descriptors into pre-typed
// checker.Scheme bindings, installed into a Context before a program's own
// statements are inferred. Everything here runs ahead of inference, reading
// descriptors and package metadata rather than executing any host code.
package hostimport

import (
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/nocturne-lang/nocturne/internal/config"
)

// Config is the `deps:` section of nocturne.yaml: which Go packages and
// proto files to turn into bindings, and what to bind from each.
type Config struct {
	Deps []Dep `yaml:"deps"`
}

// Dep names one Go package or proto file to import bindings from.
type Dep struct {
	// Pkg is a Go import path ("github.com/redis/go-redis/v9") or,
	// when Proto is set, ignored.
	Pkg string `yaml:"pkg,omitempty"`
	// Proto is a filesystem path to a .proto file. Mutually exclusive
	// with Pkg.
	Proto string `yaml:"proto,omitempty"`

	// As is the name prefix bindings from this dependency are installed
	// under when BindAll is set, and is required then. Bind entries do
	// not use it; each is named by its own BindSpec.As.
	As string `yaml:"as,omitempty"`

	// Bind lists specific declarations to import. Mutually exclusive
	// with BindAll.
	Bind []BindSpec `yaml:"bind,omitempty"`
	// BindAll imports every exported func/type/const of Pkg, or every
	// message/service of Proto.
	BindAll bool `yaml:"bind_all,omitempty"`
}

// BindSpec names one declaration to import from a Dep.
type BindSpec struct {
	// Func is an exported Go function name (Pkg deps only).
	Func string `yaml:"func,omitempty"`
	// Type is an exported Go type name (Pkg deps only); its exported
	// methods become Method members of the resulting object Scheme.
	Type string `yaml:"type,omitempty"`
	// Const is an exported Go constant name (Pkg deps only).
	Const string `yaml:"const,omitempty"`
	// Message is a proto message type name (Proto deps only).
	Message string `yaml:"message,omitempty"`
	// Service is a proto service name (Proto deps only); each of its RPC
	// methods becomes a separate Function binding that throws the
	// GrpcStatusError shape.
	Service string `yaml:"service,omitempty"`

	// As is the name this declaration is installed under. Defaults to
	// the declaration's own name. For a Service, As is instead the
	// prefix put before each capitalized RPC method name.
	As string `yaml:"as,omitempty"`
}

// ParseConfig parses nocturne.yaml's `deps:` section from bytes.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing host-import config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for i, dep := range c.Deps {
		if (dep.Pkg == "") == (dep.Proto == "") {
			return fmt.Errorf("deps[%d]: exactly one of pkg or proto is required", i)
		}
		if dep.BindAll && len(dep.Bind) > 0 {
			return fmt.Errorf("deps[%d] (%s): bind_all and bind are mutually exclusive", i, dep.name())
		}
		if dep.BindAll && dep.As == "" {
			return fmt.Errorf("deps[%d] (%s): as is required when bind_all is true", i, dep.name())
		}
		if !dep.BindAll && len(dep.Bind) == 0 {
			return fmt.Errorf("deps[%d] (%s): either bind or bind_all is required", i, dep.name())
		}
	}
	return nil
}

func (d *Dep) name() string {
	if d.Pkg != "" {
		return d.Pkg
	}
	return d.Proto
}

// IsProto reports whether this Dep is a proto descriptor source rather
// than a Go package.
func (d *Dep) IsProto() bool { return d.Proto != "" }

// DepFromRef converts a nocturne.yaml project-level DepRef into the
// richer Dep shape the importers consume. A DepRef names only a source
// and an alias, so it always expands to a BindAll import of everything
// exported from that source.
func DepFromRef(ref config.DepRef) Dep {
	dep := Dep{As: ref.As, BindAll: true}
	if dep.As == "" {
		dep.As = path.Base(ref.Path)
	}
	if ref.Kind == "proto" {
		dep.Proto = ref.Path
	} else {
		dep.Pkg = ref.Path
	}
	return dep
}
