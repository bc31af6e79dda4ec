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

package table

import (
	"fmt"
	"slices"
)

const (
	// Size is the number of entries of a single-byte table, one per byte value.
	Size = 256
	// Unmapped is the code point a table stores for a byte with no mapping.
	Unmapped uint32 = 0xFFFD
)

// Table is a decoded byte-to-codepoint table.
type Table struct {
	// Name is the lower-cased identifier used in the generated source.
	Name string
	// Unit is the source unit the table was extracted from.
	Unit string
	// Values holds one code point per byte value, in byte order.
	Values []uint32
}

// Mapped returns the number of bytes that map to a code point.
func (t *Table) Mapped() int {
	n := 0
	for _, v := range t.Values {
		if v != Unmapped {
			n++
		}
	}
	return n
}

// Equal reports whether both tables have the same name and values.
// The unit is not compared.
func (t *Table) Equal(o *Table) bool {
	return t.Name == o.Name && slices.Equal(t.Values, o.Values)
}

func (t *Table) String() string {
	return fmt.Sprintf("%s(%d entries)", t.Name, len(t.Values))
}
