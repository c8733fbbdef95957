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

// Package discover finds the test files a run operates on.
package discover

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRootUnusable is returned when the walk cannot start
var ErrRootUnusable = errors.Base("root is not a readable directory")

// 🔧 Options controls which files a walk yields
type Options struct {
	// Include holds doublestar globs matched against the slash-separated path relative to the root
	Include []string
	// ExcludeDirs holds directory names whose subtrees are skipped
	ExcludeDirs []string
}

// 🔍 Validate checks every include glob
func (o Options) Validate() error {
	if len(o.Include) == 0 {
		return errors.Errorf("at least one include pattern is required")
	}
	for _, pattern := range o.Include {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid include pattern %q", pattern)
		}
	}
	return nil
}

// 🚶 Walk lazily yields matching files under root in lexical order.
//
// A root that is missing or not a directory is yielded once as an error
// wrapping ErrRootUnusable, after which the sequence ends. Errors on entries
// below the root are logged and the entry is skipped.
func Walk(ctx context.Context, root string, opts Options) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		logger := zerolog.Ctx(ctx)

		info, err := os.Stat(root)
		if err != nil {
			yield("", errors.Errorf("%w: %s: %w", ErrRootUnusable, root, err))
			return
		}
		if !info.IsDir() {
			yield("", errors.Errorf("%w: %s is not a directory", ErrRootUnusable, root))
			return
		}

		stopped := false
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != root && slices.Contains(opts.ExcludeDirs, d.Name()) {
					logger.Debug().Str("path", path).Msg("skipping excluded directory")
					return fs.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			if !Matches(filepath.ToSlash(rel), opts.Include) {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})

		if walkErr != nil && !stopped {
			yield("", errors.Errorf("%w: walking %s: %w", ErrRootUnusable, root, walkErr))
		}
	}
}

// Matches reports whether a slash-separated relative path matches any glob
func Matches(rel string, include []string) bool {
	for _, pattern := range include {
		// patterns are validated up front; a bad one simply never matches
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// 📋 Collect drains a walk, stopping at the first error
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	var paths []string
	for path, err := range seq {
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
