// Copyright 2026 PingCAP, Inc.
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

package extract

import (
	"regexp"
	"strings"

	"github.com/pingcap/errors"
	"github.com/pingcap/sbtables/pkg/table"
)

// declPattern matches `pub const NAME: [char; 256] = [ ... ];`. The element
// list usually spans many lines.
var declPattern = regexp.MustCompile(`(?s)pub\s+const\s+([A-Z_0-9]+)\s*:\s*\[char;\s*256\]\s*=\s*\[(.*?)\];`)

const commentStart = "//"

// Skipped describes a declaration that decoded to the wrong number of entries.
type Skipped struct {
	Name  string
	Unit  string
	Count int
}

// Result holds what was extracted from one source unit.
type Result struct {
	// Tables are the decoded tables in declaration order.
	Tables []*table.Table
	// Skipped are the declarations excluded because their element count is not table.Size.
	Skipped []Skipped
}

// Names returns the names of the extracted tables.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Tables))
	for _, t := range r.Tables {
		names = append(names, t.Name)
	}
	return names
}

// Extract finds every table declaration in src and decodes its element list.
// unit names the source for diagnostics.
//
// A declaration with the wrong element count is recorded in Result.Skipped and
// extraction goes on. A malformed literal stops the whole unit, since the walk
// position can no longer be trusted.
func Extract(src, unit string) (*Result, error) {
	res := &Result{}
	for _, m := range declPattern.FindAllStringSubmatch(src, -1) {
		name, body := m[1], m[2]
		values, err := newDecoder(name, unit, flatten(body)).decode()
		if err != nil {
			return nil, errors.Trace(err)
		}
		if len(values) != table.Size {
			res.Skipped = append(res.Skipped, Skipped{Name: name, Unit: unit, Count: len(values)})
			continue
		}
		res.Tables = append(res.Tables, &table.Table{
			Name:   strings.ToLower(name),
			Unit:   unit,
			Values: values,
		})
	}
	return res, nil
}

// flatten strips the trailing comment of every line, then joins the lines.
// Comments are cut per line: on the joined text a comment would swallow the
// literals of the following lines.
func flatten(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, commentStart); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, " ")
}
