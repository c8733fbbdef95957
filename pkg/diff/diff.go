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

// Package diff renders previews of pending rewrites for dry runs.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🔍 Preview summarises the difference between two versions of a file
type Preview struct {
	Inserted int    // characters inserted
	Deleted  int    // characters deleted
	Hunks    int    // number of non-equal diff segments
	Lines    string // line oriented rendering, "-" for removed and "+" for added lines
}

// Empty reports whether the two versions were identical
func (p Preview) Empty() bool { return p.Hunks == 0 }

// 🏭 Compute diffs before and after line by line
func Compute(before, after string) Preview {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var p Preview
	var out strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			p.Hunks++
			p.Inserted += len(d.Text)
			writePrefixed(&out, "+", d.Text)
		case diffmatchpatch.DiffDelete:
			p.Hunks++
			p.Deleted += len(d.Text)
			writePrefixed(&out, "-", d.Text)
		}
	}
	p.Lines = out.String()
	return p
}

func writePrefixed(out *strings.Builder, prefix, text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		out.WriteString(prefix)
		out.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			out.WriteString("\n")
		}
	}
}

func (p Preview) String() string {
	return fmt.Sprintf("%d hunks, +%d/-%d chars", p.Hunks, p.Inserted, p.Deleted)
}
