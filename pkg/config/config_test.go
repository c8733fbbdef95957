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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tsfix/pkg/rule"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name: "yaml",
			file: ".tsfix.yaml",
			config: `
root: /work/deltecho
exclude_dirs: [node_modules, dist]
include: ["**/*.test.ts"]
prefix: unused_
jobs: 4
dry_run: true
rules:
  - kind: strip-pattern
    pattern: 'import\s+.*Glyph.*from.*;\n'
  - kind: rename-if-flagged
    pattern: 'const\s+(\w+)\s*='
    trigger: is assigned a value but never used
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "/work/deltecho", cfg.Root)
				assert.Equal(t, []string{"node_modules", "dist"}, cfg.ExcludeDirs)
				assert.Equal(t, []string{"**/*.test.ts"}, cfg.Include)
				assert.Equal(t, "unused_", cfg.Prefix)
				assert.Equal(t, 4, cfg.Jobs)
				assert.True(t, cfg.DryRun)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, rule.KindStrip, cfg.Rules[0].Kind)
				assert.Equal(t, `import\s+.*Glyph.*from.*;\n`, cfg.Rules[0].Pattern)
				assert.Equal(t, "is assigned a value but never used", cfg.Rules[1].Trigger)
			},
		},
		{
			name:   "empty_yaml_uses_defaults",
			file:   ".tsfix.yml",
			config: ``,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, ".", cfg.Root)
				assert.Equal(t, DefaultExcludeDirs, cfg.ExcludeDirs)
				assert.Equal(t, DefaultInclude, cfg.Include)
				assert.Equal(t, rule.DefaultPrefix, cfg.Prefix)
				assert.Equal(t, 1, cfg.Jobs)
				assert.Equal(t, rule.Defaults(), cfg.Rules)
			},
		},
		{
			name: "hcl",
			file: ".tsfix.hcl",
			config: `
root = "./packages"
exclude_dirs = ["node_modules"]
prefix = default_prefix
jobs = 2

rule "strip-pattern" {
  pattern = "import\\s+.*_Memory.*from.*;\\n"
}

rule "rename-if-flagged" {
  pattern = "const\\s+(\\w+)\\s*="
  trigger = "is assigned a value but never used"
}
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(dir, "packages"), cfg.Root)
				assert.Equal(t, []string{"node_modules"}, cfg.ExcludeDirs)
				assert.Equal(t, "_", cfg.Prefix)
				assert.Equal(t, 2, cfg.Jobs)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, rule.Definition{Kind: rule.KindStrip, Pattern: `import\s+.*_Memory.*from.*;\n`}, cfg.Rules[0])
				assert.Equal(t, rule.KindRename, cfg.Rules[1].Kind)
				assert.Equal(t, `const\s+(\w+)\s*=`, cfg.Rules[1].Pattern)
			},
		},
		{
			name: "json",
			file: ".tsfix.json",
			config: `{
  "root": "src",
  "rules": [{"kind": "strip-pattern", "pattern": "import\\s+.*Sys6Stage.*from.*;\\n"}]
}`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(dir, "src"), cfg.Root)
				require.Len(t, cfg.Rules, 1)
				assert.Equal(t, `import\s+.*Sys6Stage.*from.*;\n`, cfg.Rules[0].Pattern)
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        ".tsfix.yaml",
			config:      "destination: /tmp\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        ".tsfix.json",
			config:      `{"destination": "/tmp"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "bad_hcl",
			file:        ".tsfix.hcl",
			config:      `root = `,
			errContains: "parsing HCL",
		},
		{
			name: "invalid_rule",
			file: ".tsfix.yaml",
			config: `
rules:
  - kind: rename-if-flagged
    pattern: 'const\s+\w+'
    trigger: never used
`,
			errContains: "capture group",
		},
		{
			name:        "invalid_include",
			file:        ".tsfix.yaml",
			config:      "include: ['[a-']\n",
			errContains: "invalid include pattern",
		},
		{
			name:        "unsupported_extension",
			file:        ".tsfix.toml",
			config:      "root = '.'",
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644), "writing config file")

			cfg, err := Load(ctx, path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			tt.check(t, dir, cfg)
		})
	}
}

func TestLoad_RootRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ".tsfix.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("root: ../packages\n"), 0o644))

	cfg, err := Load(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "packages"), cfg.Root)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(testContext(t), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Location())

	rules, err := cfg.CompileRules()
	require.NoError(t, err)
	assert.Len(t, rules, len(rule.Defaults()))

	opts := cfg.DiscoverOptions()
	assert.Equal(t, DefaultInclude, opts.Include)
	assert.Equal(t, DefaultExcludeDirs, opts.ExcludeDirs)
}

func TestValidate(t *testing.T) {
	t.Run("bad_jobs", func(t *testing.T) {
		cfg := Default()
		cfg.Jobs = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jobs must be at least 1")
	})

	t.Run("cleans_root", func(t *testing.T) {
		cfg := Default()
		cfg.Root = "./a/../b/"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "b", cfg.Root)
	})
}
