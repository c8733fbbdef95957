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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/tsfix/cmd/tsfix/commands"
	"github.com/walteh/tsfix/cmd/tsfix/opts"
	"github.com/walteh/tsfix/pkg/config"
	"github.com/walteh/tsfix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// defaultConfigFiles are looked up in the working directory when --config is not set
var defaultConfigFiles = []string{".tsfix.yaml", ".tsfix.yml", ".tsfix.hcl", ".tsfix.json"}

// rootFlags holds the flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	root       string
	exclude    []string
	include    []string
	prefix     string
	jobs       int
	dryRun     bool
	summary    bool
}

// newRootCmd creates the root command, which behaves like "run"
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "tsfix [root]",
		Short: "Apply heuristic lint fixes to TypeScript test files",
		Long: `tsfix walks a project tree for test and spec files and rewrites them with
regular expression rules. It removes known unused imports and prefixes
variables flagged as unused with an underscore.

It does not parse TypeScript: rules are plain text substitutions.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.resolve(cmd, args, ro)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Run(cmd.Context(), ro)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewRunCmd(ro),
		commands.NewRulesCmd(ro),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "config file path, a relative root in it is resolved against its directory (default: .tsfix.{yaml,yml,hcl,json} if present)")
	pf.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	pf.StringVar(&f.root, "root", "", "project root to scan (default \".\")")
	pf.StringSliceVar(&f.exclude, "exclude", nil, "directory names to skip, replaces the configured list")
	pf.StringSliceVar(&f.include, "include", nil, "doublestar globs of files to rewrite, replaces the configured list")
	pf.StringVar(&f.prefix, "prefix", "", "prefix added to identifiers flagged as unused")
	pf.IntVarP(&f.jobs, "jobs", "j", 0, "number of files processed at once")
	pf.BoolVar(&f.dryRun, "dry-run", false, "print the changes instead of writing them")
	pf.BoolVar(&f.summary, "summary", false, "print a table of every file at the end")
}

// resolve loads the config, applies flag overrides and installs the loggers
func (f *rootFlags) resolve(cmd *cobra.Command, args []string, ro *opts.RootOpts) error {
	zlog := setupLogging(cmd, f.debug)
	ctx := zlog.WithContext(cmd.Context())

	cfg, err := f.loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	// a positional root is only accepted by run and the root command
	if len(args) == 1 {
		cfg.Root = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	zlog.Debug().Str("config", cfg.Location()).Stringer("settings", cfg).Msg("configuration resolved")

	ro.Config = cfg
	ro.Summary = f.summary
	ro.Logger = log.New(cmd.OutOrStdout(), zlog)

	cmd.SetContext(log.NewContext(ctx, ro.Logger))
	return nil
}

func (f *rootFlags) loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	if !cmd.Flags().Changed("config") {
		for _, name := range defaultConfigFiles {
			if _, err := os.Stat(name); err == nil {
				f.configFile = name
				break
			}
		}
	}

	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.Load(ctx, f.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = f.root
	}
	if flags.Changed("exclude") {
		cfg.ExcludeDirs = f.exclude
	}
	if flags.Changed("include") {
		cfg.Include = f.include
	}
	if flags.Changed("prefix") {
		cfg.Prefix = f.prefix
	}
	if flags.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	return cfg, nil
}

// setupLogging builds the structured logger; console lines go to stdout, zerolog to stderr
func setupLogging(cmd *cobra.Command, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
