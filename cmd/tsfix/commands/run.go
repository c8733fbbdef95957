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

package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/tsfix/cmd/tsfix/opts"
	"github.com/walteh/tsfix/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [root]",
		Short: "Rewrite test files under root",
		Long: `Run rewrites every matching test file under root.
It will:
1. Walk root, skipping excluded directories
2. Strip matching import lines
3. Prefix variables flagged as unused on the line above
4. Write back only files whose content changed

A file that cannot be read or written is reported and skipped; the
command only fails when root itself cannot be walked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), opts)
		},
	}

	return cmd
}

// Run executes a full rewrite with the resolved options
func Run(ctx context.Context, opts *opts.RootOpts) error {
	rules, err := opts.Config.CompileRules()
	if err != nil {
		return errors.Errorf("compiling rules: %w", err)
	}

	rw, err := rewrite.New(rewrite.Options{
		Rules:  rules,
		Prefix: opts.Config.Prefix,
		Jobs:   opts.Config.Jobs,
		DryRun: opts.Config.DryRun,
	})
	if err != nil {
		return errors.Errorf("creating rewriter: %w", err)
	}

	report, err := rw.Run(ctx, opts.Config.Root, opts.Config.DiscoverOptions())
	if err != nil {
		return errors.Errorf("rewriting %s: %w", opts.Config.Root, err)
	}

	if opts.Summary {
		table, err := report.Sorted().Table()
		if err != nil {
			return errors.Errorf("rendering summary: %w", err)
		}
		opts.Logger.Raw(table + "\n")
	}

	return nil
}
