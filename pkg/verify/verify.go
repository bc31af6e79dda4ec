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

// Package verify compares decoded tables with the code pages shipped in
// golang.org/x/text.
package verify

import (
	"regexp"
	"strings"

	"github.com/pingcap/sbtables/pkg/table"
	"golang.org/x/text/encoding/charmap"
)

var (
	references = make(map[string]*charmap.Charmap)

	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	numberedCP = regexp.MustCompile(`^(?:cp|ibm|dos)(\d+)$`)
)

func init() {
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			references[canonical(cm.String())] = cm
		}
	}
}

func canonical(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "")
}

// Lookup returns the x/text code page matching a table name such as
// "iso_8859_2_to_unicode" or "cp437_to_unicode".
func Lookup(tableName string) (*charmap.Charmap, bool) {
	key := strings.TrimSuffix(canonical(tableName), "tounicode")
	if cm, ok := references[key]; ok {
		return cm, true
	}
	if m := numberedCP.FindStringSubmatch(key); m != nil {
		for _, prefix := range []string{"ibmcodepage", "windows"} {
			if cm, ok := references[prefix+m[1]]; ok {
				return cm, true
			}
		}
	}
	if key == "macroman" {
		return charmap.Macintosh, true
	}
	return nil, false
}

// Mismatch is a byte whose decoded value differs from the reference.
type Mismatch struct {
	Byte byte
	Got  uint32
	Want uint32
}

// Report is the result of comparing one table with its reference.
type Report struct {
	Table      string
	Reference  string
	Mismatches []Mismatch
}

// OK reports whether the table agrees with the reference on every byte.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Check compares t with its reference code page. It returns false when no
// reference is known for the table.
func Check(t *table.Table) (*Report, bool) {
	cm, ok := Lookup(t.Name)
	if !ok {
		return nil, false
	}
	r := &Report{Table: t.Name, Reference: cm.String()}
	for i, got := range t.Values {
		want := uint32(cm.DecodeByte(byte(i)))
		if got != want {
			r.Mismatches = append(r.Mismatches, Mismatch{Byte: byte(i), Got: got, Want: want})
		}
	}
	return r, true
}
