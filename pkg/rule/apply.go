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

package rule

import (
	"strings"
)

// 🧹 ApplyStrip removes every match of each strip rule, rules taken in order.
// Rename rules are ignored.
func ApplyStrip(text string, rules []*Rule) string {
	for _, r := range rules {
		if r.kind != KindStrip {
			continue
		}
		text = r.pattern.ReplaceAllLiteralString(text, "")
	}
	return text
}

// ✏️ ApplyRename prefixes flagged identifiers line by line.
//
// Line i is rewritten by a rename rule when line i-1 contains the rule's
// trigger and line i matches its pattern. Only the span of the first capture
// group of each match changes. Identifiers already carrying the prefix are
// left alone so a second pass is a no-op.
func ApplyRename(lines []string, rules []*Rule, prefix string) ([]string, bool) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	changed := false
	for i := 1; i < len(lines); i++ {
		for _, r := range rules {
			if r.kind != KindRename {
				continue
			}
			if !strings.Contains(lines[i-1], r.trigger) {
				continue
			}
			if updated, ok := r.prefixGroup(lines[i], prefix); ok {
				lines[i] = updated
				changed = true
			}
		}
	}
	return lines, changed
}

func (r *Rule) prefixGroup(line, prefix string) (string, bool) {
	matches := r.pattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line, false
	}

	var b strings.Builder
	last := 0
	changed := false
	for _, m := range matches {
		start, end := m[2], m[3]
		// group did not participate
		if start < 0 {
			continue
		}
		if strings.HasPrefix(line[start:end], prefix) {
			continue
		}
		b.WriteString(line[last:start])
		b.WriteString(prefix)
		b.WriteString(line[start:end])
		last = end
		changed = true
	}
	if !changed {
		return line, false
	}
	b.WriteString(line[last:])
	return b.String(), true
}

// 📄 SplitLines splits text into lines that keep their terminators, so
// strings.Join(SplitLines(t), "") == t.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// maxPasses bounds Apply for rename patterns whose capture group can match
// inside an already prefixed identifier.
const maxPasses = 8

// 🔁 Apply runs strip rules over the whole text, then rename rules line by
// line, and repeats until the text stops changing. A rename can produce a new
// strip match, so a single pass is not a fixed point.
func Apply(text string, rules []*Rule, prefix string) string {
	for range maxPasses {
		next := applyOnce(text, rules, prefix)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func applyOnce(text string, rules []*Rule, prefix string) string {
	text = ApplyStrip(text, rules)
	lines, changed := ApplyRename(SplitLines(text), rules, prefix)
	if !changed {
		return text
	}
	return strings.Join(lines, "")
}
