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

// Package rewrite applies rule sets to discovered test files and reports
// a per-file outcome. A failing file never stops the batch.
package rewrite

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/tsfix/pkg/diff"
	"github.com/walteh/tsfix/pkg/discover"
	"github.com/walteh/tsfix/pkg/log"
	"github.com/walteh/tsfix/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the rewriter
type Options struct {
	// Rules are applied strip rules first, then rename rules
	Rules []*rule.Rule
	// Prefix is prepended by rename rules, defaults to rule.DefaultPrefix
	Prefix string
	// Jobs is the number of files processed at once, defaults to 1
	Jobs int
	// DryRun computes changes without writing them
	DryRun bool
}

// 🎮 Rewriter applies an immutable rule set to files
type Rewriter struct {
	rules  []*rule.Rule
	prefix string
	dryRun bool
	runner *runner
}

// 🏭 New creates a rewriter with the given options
func New(opts Options) (*Rewriter, error) {
	for i, r := range opts.Rules {
		if r == nil {
			return nil, errors.Errorf("rule %d is nil", i)
		}
	}
	if opts.Prefix == "" {
		opts.Prefix = rule.DefaultPrefix
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Rewriter{
		rules:  opts.Rules,
		prefix: opts.Prefix,
		dryRun: opts.DryRun,
		runner: newRunner(opts.Jobs),
	}, nil
}

// 📄 ProcessFile reads, rewrites and, when the content changed, writes one file
func (rw *Rewriter) ProcessFile(ctx context.Context, path string) Entry {
	task, err := LoadTask(path)
	if err != nil {
		return Entry{Path: path, Err: err}
	}
	return rw.rewriteTask(ctx, task)
}

// rewriteTask applies the rules to a loaded task and persists the result
func (rw *Rewriter) rewriteTask(ctx context.Context, task *FileTask) Entry {
	logger := zerolog.Ctx(ctx).With().Str("file", task.Path).Logger()

	task.Apply(rw.rules, rw.prefix)
	if !task.Changed() {
		logger.Debug().Msg("no rule matched, leaving file untouched")
		return Entry{Path: task.Path}
	}

	entry := Entry{Path: task.Path, Changed: true}

	if rw.dryRun {
		preview := diff.Compute(string(task.Original), string(task.Content))
		entry.Preview = &preview
		logger.Debug().Stringer("diff", preview).Msg("dry run, not writing")
		return entry
	}

	if err := task.Persist(); err != nil {
		entry.Err = err
		return entry
	}
	entry.Written = true
	logger.Debug().Int("bytes", len(task.Content)).Msg("wrote file")
	return entry
}

// 📚 ProcessAll processes paths and returns entries in the order of paths
func (rw *Rewriter) ProcessAll(ctx context.Context, paths []string) *Report {
	entries := rw.runner.run(ctx, paths, rw.ProcessFile)

	logger := log.FromContext(ctx)
	report := &Report{}
	for _, e := range entries {
		logger.LogFileOperation(log.FileOperation{
			Path:      e.Path,
			Changed:   e.Changed,
			Written:   e.Written,
			Err:       e.Err,
			DiffLines: previewHunks(e.Preview),
		})
		if e.Preview != nil && !e.Preview.Empty() {
			logger.Raw(e.Preview.Lines)
		}
		report.Add(e)
	}
	if skipped := len(paths) - len(entries); skipped > 0 {
		logger.Warningf("Run cancelled, %d of %d files not processed", skipped, len(paths))
	}
	return report
}

// 🏃 Run discovers files under root and processes each of them.
//
// Only a failure to walk root is returned as an error; per-file failures are
// recorded in the report.
func (rw *Rewriter) Run(ctx context.Context, root string, opts discover.Options) (*Report, error) {
	paths, err := discover.Collect(discover.Walk(ctx, root, opts))
	if err != nil {
		return nil, errors.Errorf("%w: %w", ErrDiscovery, err)
	}

	logger := log.FromContext(ctx)
	logger.Found(len(paths))

	report := rw.ProcessAll(ctx, paths)

	processed, changed, failed := report.Counts()
	zerolog.Ctx(ctx).Info().
		Int("processed", processed).
		Int("changed", changed).
		Int("failed", failed).
		Bool("dry_run", rw.dryRun).
		Msg("run finished")

	if failed > 0 {
		logger.Errorf("%d of %d files could not be processed", failed, processed+failed)
	}
	if rw.dryRun {
		logger.Infof("Dry run: %d files would change, nothing was written", changed)
	}
	logger.Complete()
	return report, nil
}

func previewHunks(p *diff.Preview) int {
	if p == nil {
		return 0
	}
	return p.Hunks
}
