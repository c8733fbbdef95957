// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"path/filepath"

	"github.com/walteh/tsfix/pkg/discover"
	"github.com/walteh/tsfix/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// 📚 Config represents the complete configuration of a run
type Config struct {
	Root        string            `json:"root,omitempty" yaml:"root,omitempty"`
	ExcludeDirs []string          `json:"exclude_dirs,omitempty" yaml:"exclude_dirs,omitempty"`
	Include     []string          `json:"include,omitempty" yaml:"include,omitempty"`
	Prefix      string            `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Jobs        int               `json:"jobs,omitempty" yaml:"jobs,omitempty"`
	DryRun      bool              `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Rules       []rule.Definition `json:"rules,omitempty" yaml:"rules,omitempty"`

	location string
}

// DefaultExcludeDirs are build output and dependency cache directories
var DefaultExcludeDirs = []string{"node_modules", "dist", "build", "coverage", ".git"}

// DefaultInclude matches TypeScript test and spec files
var DefaultInclude = []string{"**/*.{test,spec}.{ts,tsx}"}

// 🏭 Default returns a config with every default filled in
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ⚙️ ApplyDefaults fills unset fields
func (cfg *Config) ApplyDefaults() {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.ExcludeDirs == nil {
		cfg.ExcludeDirs = append([]string(nil), DefaultExcludeDirs...)
	}
	if len(cfg.Include) == 0 {
		cfg.Include = append([]string(nil), DefaultInclude...)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = rule.DefaultPrefix
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = 1
	}
	if len(cfg.Rules) == 0 {
		cfg.Rules = rule.Defaults()
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}
	if cfg.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", cfg.Jobs)
	}
	if err := cfg.DiscoverOptions().Validate(); err != nil {
		return errors.Errorf("include: %w", err)
	}
	if _, err := rule.CompileAll(cfg.Rules); err != nil {
		return errors.Errorf("rules: %w", err)
	}

	cfg.Root = filepath.Clean(cfg.Root)
	return nil
}

// 🔧 CompileRules compiles the configured rules
func (cfg *Config) CompileRules() ([]*rule.Rule, error) {
	return rule.CompileAll(cfg.Rules)
}

// DiscoverOptions returns the walk options for this config
func (cfg *Config) DiscoverOptions() discover.Options {
	return discover.Options{
		Include:     cfg.Include,
		ExcludeDirs: cfg.ExcludeDirs,
	}
}

// Location returns the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s (%d rules, %d jobs)", cfg.Root, len(cfg.Rules), cfg.Jobs)
}
