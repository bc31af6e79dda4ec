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

package emit

import (
	"fmt"
	"strings"

	"github.com/pingcap/sbtables/pkg/table"
)

// rowLen is the number of values rendered on one line.
const rowLen = 16

// Header holds the fixed parts of a generated document.
type Header struct {
	// FileName is shown in the leading comment.
	FileName string
	// Guard is the include guard macro.
	Guard string
	// Include is the system header providing uint32_t.
	Include string
	// Generator names the tool in the leading comment.
	Generator string
}

// RenderTable renders t as a static uint32_t array, 16 values per row, each
// row followed by the offset of its first value.
func RenderTable(t *table.Table) string {
	var sb strings.Builder
	writeTable(&sb, t)
	return sb.String()
}

func writeTable(sb *strings.Builder, t *table.Table) {
	fmt.Fprintf(sb, "static const uint32_t %s[%d] = {\n", t.Name, table.Size)
	for row := 0; row < len(t.Values); row += rowLen {
		end := min(row+rowLen, len(t.Values))
		sb.WriteString("    ")
		for i, v := range t.Values[row:end] {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "0x%04X", v)
		}
		fmt.Fprintf(sb, ", /* 0x%02X */\n", row)
	}
	sb.WriteString("};")
}

// Document accumulates rendered tables. The header carries the table count,
// so it is only produced by Bytes.
type Document struct {
	header Header
	body   strings.Builder
	tables []*table.Table
}

// NewDocument creates an empty document.
func NewDocument(h Header) *Document {
	return &Document{header: h}
}

// Append renders t at the end of the document.
func (d *Document) Append(t *table.Table) {
	writeTable(&d.body, t)
	d.body.WriteString("\n\n")
	d.tables = append(d.tables, t)
}

// Tables returns the appended tables in order.
func (d *Document) Tables() []*table.Table {
	return d.tables
}

// Len returns the number of appended tables.
func (d *Document) Len() int {
	return len(d.tables)
}

// Bytes returns the complete document.
func (d *Document) Bytes() []byte {
	var sb strings.Builder
	h := d.header
	fmt.Fprintf(&sb, "/* %s - Single-byte encoding tables (auto-generated from Rust source)\n", h.FileName)
	fmt.Fprintf(&sb, " * %d tables, %d entries each\n", len(d.tables), table.Size)
	fmt.Fprintf(&sb, " * Values are Unicode codepoints. 0x%04X = unmapped byte.\n", table.Unmapped)
	fmt.Fprintf(&sb, " * Generated by %s\n", h.Generator)
	sb.WriteString(" */\n\n")
	fmt.Fprintf(&sb, "#ifndef %s\n", h.Guard)
	fmt.Fprintf(&sb, "#define %s\n\n", h.Guard)
	fmt.Fprintf(&sb, "#include <%s>\n\n", h.Include)
	sb.WriteString(d.body.String())
	fmt.Fprintf(&sb, "#endif /* %s */\n", h.Guard)
	return []byte(sb.String())
}
