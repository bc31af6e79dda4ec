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
	"slices"
	"strconv"
	"strings"

	"github.com/pingcap/errors"
	"github.com/pingcap/sbtables/pkg/table"
)

// spanLen is how many characters of the body an error message quotes.
const spanLen = 10

// simpleEscapes maps the character following a backslash to its code point.
var simpleEscapes = map[rune]uint32{
	'\\': 0x5C,
	'\'': 0x27,
	'n':  0x0A,
	'r':  0x0D,
	't':  0x09,
	'0':  0x00,
}

// decoder walks a flattened element list and decodes its char literals.
//
// Delimiters can themselves be literal values ('[', ',', ']'), so the list
// is never split: everything outside a literal is skipped one character at
// a time, and a quote always starts a literal.
type decoder struct {
	table string
	unit  string
	body  []rune
	pos   int
}

func newDecoder(name, unit, body string) *decoder {
	return &decoder{
		table: name,
		unit:  unit,
		body:  []rune(body),
	}
}

func (d *decoder) decode() ([]uint32, error) {
	values := make([]uint32, 0, table.Size)
	for d.pos < len(d.body) {
		if d.body[d.pos] != '\'' {
			d.pos++
			continue
		}
		v, err := d.literal()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// peek returns the character off positions after the current one.
func (d *decoder) peek(off int) (rune, bool) {
	i := d.pos + off
	if i >= len(d.body) {
		return 0, false
	}
	return d.body[i], true
}

func (d *decoder) literal() (uint32, error) {
	if c, ok := d.peek(1); ok && c == '\\' {
		return d.escape()
	}
	if c, ok := d.peek(2); ok && c == '\'' {
		v := uint32(d.body[d.pos+1])
		d.pos += 3
		return v, nil
	}
	return 0, d.fail(ErrMalformedLiteral)
}

func (d *decoder) escape() (uint32, error) {
	c, ok := d.peek(2)
	if !ok {
		return 0, d.fail(ErrMalformedLiteral)
	}
	if c == 'u' {
		if b, ok := d.peek(3); ok && b == '{' {
			return d.unicodeEscape()
		}
	}
	v, ok := simpleEscapes[c]
	if !ok {
		return 0, d.fail(ErrUnknownEscape)
	}
	d.pos += 4
	return v, nil
}

// unicodeEscape decodes '\u{XXXX}'. The position ends up past the closing
// brace and the closing quote.
func (d *decoder) unicodeEscape() (uint32, error) {
	start := d.pos + 4
	end := slices.Index(d.body[start:], '}')
	if end < 0 {
		return 0, d.fail(ErrMalformedLiteral)
	}
	end += start
	digits := strings.ReplaceAll(string(d.body[start:end]), "_", "")
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, d.fail(ErrMalformedLiteral)
	}
	d.pos = end + 2
	return uint32(v), nil
}

func (d *decoder) fail(e *errors.Error) error {
	end := min(d.pos+spanLen, len(d.body))
	return e.GenWithStackByArgs(d.pos, d.table, d.unit, string(d.body[d.pos:end]))
}
