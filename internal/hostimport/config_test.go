package hostimport

import (
	"testing"

	"github.com/nocturne-lang/nocturne/internal/config"
)

func TestParseConfigGoDep(t *testing.T) {
	data := []byte(`
deps:
  - pkg: strings
    as: strings
    bind:
      - func: ToUpper
        as: toUpper
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if len(cfg.Deps) != 1 {
		t.Fatalf("expected 1 dep, got %d", len(cfg.Deps))
	}
	dep := cfg.Deps[0]
	if dep.IsProto() {
		t.Errorf("expected a Go dep, not a proto dep")
	}
	if len(dep.Bind) != 1 || dep.Bind[0].Func != "ToUpper" || dep.Bind[0].As != "toUpper" {
		t.Errorf("unexpected bind spec: %+v", dep.Bind)
	}
}

func TestParseConfigProtoDep(t *testing.T) {
	data := []byte(`
deps:
  - proto: service.proto
    bind_all: true
    as: svc
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !cfg.Deps[0].IsProto() {
		t.Errorf("expected a proto dep")
	}
}

func TestParseConfigRejectsBothPkgAndProto(t *testing.T) {
	data := []byte(`
deps:
  - pkg: strings
    proto: service.proto
    bind_all: true
    as: x
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected an error for a dep naming both pkg and proto")
	}
}

func TestParseConfigRejectsBindAndBindAllTogether(t *testing.T) {
	data := []byte(`
deps:
  - pkg: strings
    as: x
    bind_all: true
    bind:
      - func: ToUpper
        as: toUpper
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected an error for bind_all combined with bind")
	}
}

func TestDepFromRefGoPackage(t *testing.T) {
	dep := DepFromRef(config.DepRef{Kind: "go", Path: "strings", As: "strings"})
	if dep.IsProto() {
		t.Errorf("expected a Go dep, not a proto dep")
	}
	if dep.Pkg != "strings" || dep.As != "strings" || !dep.BindAll {
		t.Errorf("unexpected dep: %+v", dep)
	}
}

func TestDepFromRefProto(t *testing.T) {
	dep := DepFromRef(config.DepRef{Kind: "proto", Path: "service.proto", As: "svc"})
	if !dep.IsProto() {
		t.Errorf("expected a proto dep")
	}
	if dep.Proto != "service.proto" || dep.As != "svc" || !dep.BindAll {
		t.Errorf("unexpected dep: %+v", dep)
	}
}

func TestParseConfigRequiresAsWithBindAll(t *testing.T) {
	data := []byte(`
deps:
  - pkg: strings
    bind_all: true
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected an error when bind_all is set without as")
	}
}
