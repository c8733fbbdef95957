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
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/walteh/tsfix/pkg/diff"
)

// 🏷️ Outcome is the per-file result kind
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeError     Outcome = "error"
)

// 📄 Entry is the report line for one file
type Entry struct {
	Path    string
	Changed bool          // rules produced different content
	Written bool          // the new content was persisted
	Err     error         // set when the file could not be processed
	Preview *diff.Preview // set for changed files on dry runs
}

// Outcome returns processed or error
func (e Entry) Outcome() Outcome {
	if e.Err != nil {
		return OutcomeError
	}
	return OutcomeProcessed
}

// Message returns the error message, empty for processed files
func (e Entry) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// 📚 Report is the ordered result of a run
type Report struct {
	Entries []Entry
}

// Add appends an entry
func (r *Report) Add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Outcomes lists entry outcomes in report order
func (r *Report) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e.Outcome())
	}
	return out
}

// Failed returns the entries that errored
func (r *Report) Failed() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// 📊 Counts tallies processed, changed and failed entries
func (r *Report) Counts() (processed, changed, failed int) {
	for _, e := range r.Entries {
		if e.Err != nil {
			failed++
			continue
		}
		processed++
		if e.Changed {
			changed++
		}
	}
	return processed, changed, failed
}

// Sorted returns a copy ordered by path
func (r *Report) Sorted() *Report {
	entries := slices.Clone(r.Entries)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return &Report{Entries: entries}
}

// 🎨 Table renders the report as a console table
func (r *Report) Table() (string, error) {
	data := pterm.TableData{{"File", "Outcome", "Changed", "Written", "Message"}}
	for _, e := range r.Entries {
		data = append(data, []string{
			e.Path,
			string(e.Outcome()),
			yesNo(e.Changed),
			yesNo(e.Written),
			e.Message(),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
