package config

// profile.go - optional YAML profile loaded with --config.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Profile    (this file)
//   3. Defaults   (defaults.go)

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile mirrors the subset of Config that may be stored on disk.
// Empty fields leave the corresponding Config value untouched.
//
//	role: server
//	host: 0.0.0.0
//	port: 2333
//	verbose: 2
//	timeout: 5s
type Profile struct {
	Role    string `yaml:"role"`
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Verbose *int   `yaml:"verbose"`
	Timeout string `yaml:"timeout"`
}

// LoadProfile reads and decodes a YAML profile.  Unknown keys are
// rejected so typos surface instead of being silently ignored.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	defer f.Close()

	p := &Profile{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Apply overlays the non-empty profile fields onto cfg.
func (p *Profile) Apply(cfg *Config) error {
	if p.Role != "" {
		role, err := ParseRole(p.Role)
		if err != nil {
			return fmt.Errorf("profile role: %w", err)
		}
		cfg.Role = role
	}
	if p.Host != "" {
		cfg.Host = p.Host
	}
	if p.Port != "" {
		port, err := ParsePort(p.Port)
		if err != nil {
			return fmt.Errorf("profile port: %w", err)
		}
		cfg.Port = port
	}
	if p.Verbose != nil {
		cfg.Verbose = *p.Verbose
	}
	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return fmt.Errorf("profile timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}
