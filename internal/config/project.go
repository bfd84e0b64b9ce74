package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is looked up next to the source file and in its parents.
const ProjectFileName = "gale.yaml"

// Graph kinds accepted by Project.Emit and `gale graph --kind`.
const (
	GraphNodes  = "nodes"
	GraphScopes = "scopes"
	GraphDeps   = "deps"
)

// Project represents gale.yaml.
type Project struct {
	// Entry is the source file to run when the CLI is given a directory.
	Entry string `yaml:"entry,omitempty"`

	// Check runs the type checker before lowering. Defaults to true.
	Check *bool `yaml:"check,omitempty"`

	// Log configures the pipeline logger.
	Log LogSettings `yaml:"log,omitempty"`

	// Emit lists graph kinds written as DOT files after analysis
	// (nodes, scopes, deps).
	Emit []string `yaml:"emit,omitempty"`

	// OutDir receives emitted graphs and bundles. Relative to the project file.
	OutDir string `yaml:"out_dir,omitempty"`
}

// LogSettings is the log section of gale.yaml.
type LogSettings struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DefaultProject returns the configuration used when no gale.yaml exists.
func DefaultProject() *Project {
	p := &Project{}
	p.setDefaults()
	return p
}

func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseProject(data, path)
}

func ParseProject(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.setDefaults()
	if !filepath.IsAbs(p.OutDir) {
		p.OutDir = filepath.Join(filepath.Dir(path), p.OutDir)
	}
	return &p, nil
}

// FindProject searches for gale.yaml starting from dir and walking up
// to parent directories. Returns "" and nil error if none is found.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ProjectFileName)
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

// CheckEnabled reports whether the type checker should run.
func (p *Project) CheckEnabled() bool {
	return p.Check == nil || *p.Check
}

func (p *Project) validate(path string) error {
	for i, kind := range p.Emit {
		switch kind {
		case GraphNodes, GraphScopes, GraphDeps:
		default:
			return fmt.Errorf("%s: emit[%d]: unknown graph kind %q", path, i, kind)
		}
	}
	switch p.Log.Format {
	case "", "auto", "console", "logfmt", "json":
	default:
		return fmt.Errorf("%s: log.format: unknown format %q", path, p.Log.Format)
	}
	if p.Entry != "" && !HasSourceExt(p.Entry) {
		return fmt.Errorf("%s: entry %q must end in %s", path, p.Entry, SourceFileExt)
	}
	return nil
}

func (p *Project) setDefaults() {
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Log.Format == "" {
		p.Log.Format = "auto"
	}
	if p.OutDir == "" {
		p.OutDir = "."
	}
}
