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

// Package rule holds the textual rewrite rules applied to test files.
//
// Rules are plain regular expressions over file content. Nothing here parses
// source syntax: a rule that matches inside a string literal or a comment
// will still fire.
package rule

import (
	"fmt"
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind identifies how a rule is applied
type Kind string

const (
	// KindStrip removes every match of the pattern from the whole text
	KindStrip Kind = "strip-pattern"
	// KindRename prefixes the first capture group of a line when the line above contains the trigger
	KindRename Kind = "rename-if-flagged"
)

// DefaultPrefix is prepended to identifiers by rename rules
const DefaultPrefix = "_"

// 📝 Definition is the declarative, uncompiled form of a rule as it appears in configuration
type Definition struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Trigger string `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

// 🔧 Rule is a compiled, immutable rewrite rule
type Rule struct {
	kind    Kind
	pattern *regexp.Regexp
	trigger string
}

// Kind returns the rule kind
func (r *Rule) Kind() Kind { return r.kind }

// Pattern returns the source of the rule's regular expression
func (r *Rule) Pattern() string { return r.pattern.String() }

// Trigger returns the substring that must appear on the preceding line, empty for strip rules
func (r *Rule) Trigger() string { return r.trigger }

func (r *Rule) String() string {
	if r.kind == KindRename {
		return fmt.Sprintf("%s %q (after %q)", r.kind, r.pattern.String(), r.trigger)
	}
	return fmt.Sprintf("%s %q", r.kind, r.pattern.String())
}

// 🏭 Compile validates a definition and compiles its pattern
func Compile(def Definition) (*Rule, error) {
	if def.Pattern == "" {
		return nil, errors.Errorf("pattern is required")
	}

	re, err := regexp.Compile(def.Pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", def.Pattern, err)
	}

	switch def.Kind {
	case KindStrip:
		if def.Trigger != "" {
			return nil, errors.Errorf("%s rules do not take a trigger", KindStrip)
		}
	case KindRename:
		if def.Trigger == "" {
			return nil, errors.Errorf("%s rules require a trigger", KindRename)
		}
		if re.NumSubexp() < 1 {
			return nil, errors.Errorf("%s pattern %q needs a capture group", KindRename, def.Pattern)
		}
	default:
		return nil, errors.Errorf("unknown rule kind %q", def.Kind)
	}

	return &Rule{
		kind:    def.Kind,
		pattern: re,
		trigger: def.Trigger,
	}, nil
}

// 📦 CompileAll compiles definitions in order, reporting the index of the first bad one
func CompileAll(defs []Definition) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(defs))
	for i, def := range defs {
		r, err := Compile(def)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// 📚 Defaults returns the built-in rule set
func Defaults() []Definition {
	return []Definition{
		{Kind: KindStrip, Pattern: `import\s+.*_Memory.*from.*;\r?\n`},
		{Kind: KindStrip, Pattern: `import\s+.*Sys6Stage.*from.*;\r?\n`},
		{Kind: KindStrip, Pattern: `import\s+.*Glyph.*from.*;\r?\n`},
		{Kind: KindRename, Pattern: `const\s+(\w+)\s*=`, Trigger: "is assigned a value but never used"},
	}
}
