package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/tsfix/pkg/config"
)

func ExampleLoad_yaml() {
	dir, err := os.MkdirTemp("", "tsfix-example-*")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, ".tsfix.yaml")
	configYAML := `
root: ./packages
jobs: 2
rules:
  - kind: strip-pattern
    pattern: 'import\s+.*Glyph.*from.*;\n'
`
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(context.Background(), configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	rel, err := filepath.Rel(dir, cfg.Root)
	if err != nil {
		fmt.Printf("Error resolving root: %v\n", err)
		return
	}
	fmt.Println(rel, cfg.Jobs)
	fmt.Println(cfg.Rules[0].Kind)
	fmt.Println(cfg.Prefix)

	// Output:
	// packages 2
	// strip-pattern
	// _
}
