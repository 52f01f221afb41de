// Package logdomcfg loads a declarative backend/domain table and
// applies it to a logdom.Registry. Program startup, argument parsing,
// and configuration file loading proper are out of scope for logdom
// itself (spec §1); this package is the external collaborator that
// turns a config file into the Register* calls a host program would
// otherwise write by hand.
//
// The YAML shape mirrors the struct-tag style the teacher's sign
// package uses for its own on-disk formats (sign/sign.go), adapted to
// this domain's vocabulary of backends and domains instead of keys.
package logdomcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/zysyl/logdom"
)

// Config is the on-disk shape: a list of backends, then a list of
// domains that reference them by name.
type Config struct {
	Backends []BackendSpec `yaml:"backends"`
	Domains  []DomainSpec  `yaml:"domains"`
}

// BackendSpec declares one backend. Target "" (or omitted) yields the
// stderr-like default sink (spec §3).
type BackendSpec struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target,omitempty"`
}

// DomainSpec declares one explicit domain.
type DomainSpec struct {
	Name    string `yaml:"name"`
	Level   string `yaml:"level"`
	Backend string `yaml:"backend"`
}

// Load reads and parses a Config from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("logdomcfg: read %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("logdomcfg: parse %q: %w", path, err)
	}
	return &cfg, nil
}

// Apply registers every backend and domain in cfg into registry, in
// declaration order (so a domain may reference a backend declared
// earlier in the same file). It is the caller's responsibility to
// have already decided process-lifetime concerns (log file
// locations, whether to truncate, etc.) — Apply only wires the
// declarations into the registry's Register* calls.
func Apply(registry *logdom.Registry, cfg *Config) error {
	backends := make(map[string]*logdom.Backend, len(cfg.Backends))
	for _, spec := range cfg.Backends {
		var b *logdom.Backend
		if spec.Target == "" {
			b = logdom.NewDefaultBackend(spec.Name)
		} else {
			b = logdom.NewFileBackend(spec.Target, logdom.WithBackendName(spec.Name))
		}
		if err := registry.RegisterBackend(b); err != nil {
			return fmt.Errorf("logdomcfg: backend %q: %w", spec.Name, err)
		}
		backends[spec.Name] = b
	}

	for _, spec := range cfg.Domains {
		level, ok := logdom.ParseLevel(spec.Level)
		if !ok {
			return fmt.Errorf("logdomcfg: domain %q: unknown level %q", spec.Name, spec.Level)
		}
		backend, ok := backends[spec.Backend]
		if !ok {
			return fmt.Errorf("logdomcfg: domain %q: unknown backend %q", spec.Name, spec.Backend)
		}
		if err := registry.RegisterDomain(spec.Name, level, backend); err != nil {
			return fmt.Errorf("logdomcfg: domain %q: %w", spec.Name, err)
		}
	}
	return nil
}

// LoadAndApply is the common-case helper: Load then Apply.
func LoadAndApply(registry *logdom.Registry, path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	return Apply(registry, cfg)
}
