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

package rewrite

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// 🏃 runner executes the per-file function over a batch
type runner struct {
	jobs int
}

func newRunner(jobs int) *runner {
	return &runner{jobs: jobs}
}

type processFunc func(ctx context.Context, path string) Entry

// 🏃 run returns one entry per processed path, in path order.
// Paths not yet started when ctx is cancelled are left out.
func (r *runner) run(ctx context.Context, paths []string, fn processFunc) []Entry {
	if r.jobs > 1 {
		return r.runAsync(ctx, paths, fn)
	}
	return r.runSync(ctx, paths, fn)
}

// 🔄 runSync processes one file at a time
func (r *runner) runSync(ctx context.Context, paths []string, fn processFunc) []Entry {
	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Int("remaining", len(paths)-len(entries)).Msg("run cancelled")
			break
		}
		entries = append(entries, fn(ctx, path))
	}
	return entries
}

// ⚡ runAsync processes up to jobs files at once. Each result lands in its
// own slot so the output order never depends on scheduling.
func (r *runner) runAsync(ctx context.Context, paths []string, fn processFunc) []Entry {
	results := make([]Entry, len(paths))
	done := make([]bool, len(paths))

	g := &errgroup.Group{}
	g.SetLimit(r.jobs)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Int("remaining", len(paths)-i).Msg("run cancelled")
			break
		}
		g.Go(func() error {
			results[i] = fn(ctx, path)
			done[i] = true
			return nil
		})
	}
	// per-file failures live in the entries, never in the group
	_ = g.Wait()

	entries := make([]Entry, 0, len(paths))
	for i, e := range results {
		if done[i] {
			entries = append(entries, e)
		}
	}
	return entries
}
