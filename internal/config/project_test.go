package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseProject(t *testing.T) {
	data := []byte(`
entry: main.gale
check: false
log:
  level: debug
  format: logfmt
emit: [scopes, deps]
out_dir: build
`)
	p, err := ParseProject(data, "/work/gale.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Entry != "main.gale" {
		t.Errorf("entry = %q, want main.gale", p.Entry)
	}
	if p.CheckEnabled() {
		t.Errorf("check should be disabled")
	}
	if p.Log.Level != "debug" || p.Log.Format != "logfmt" {
		t.Errorf("log = %+v", p.Log)
	}
	if len(p.Emit) != 2 || p.Emit[0] != GraphScopes || p.Emit[1] != GraphDeps {
		t.Errorf("emit = %v", p.Emit)
	}
	if p.OutDir != filepath.Join("/work", "build") {
		t.Errorf("out_dir = %q", p.OutDir)
	}
}

func TestParseProjectDefaults(t *testing.T) {
	p, err := ParseProject([]byte("{}"), "/work/gale.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.CheckEnabled() {
		t.Errorf("check should default to enabled")
	}
	if p.Log.Level != "info" || p.Log.Format != "auto" {
		t.Errorf("log defaults = %+v", p.Log)
	}
	if p.OutDir != "/work" {
		t.Errorf("out_dir = %q, want /work", p.OutDir)
	}
}

func TestParseProjectErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad_emit", "emit: [callgraph]", `unknown graph kind "callgraph"`},
		{"bad_format", "log: {format: xml}", `unknown format "xml"`},
		{"bad_entry", "entry: main.go", "must end in .gale"},
		{"bad_yaml", "emit: [", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProject([]byte(tt.input), "gale.yaml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestFindProject(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ProjectFileName), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindProject(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != filepath.Join(root, ProjectFileName) {
		t.Errorf("found %q", found)
	}
}

func TestModuleName(t *testing.T) {
	if got := ModuleName("/src/hello.gale"); got != "hello" {
		t.Errorf("ModuleName = %q", got)
	}
	if got := ModuleName("out/hello.galeb"); got != "hello" {
		t.Errorf("ModuleName = %q", got)
	}
}
