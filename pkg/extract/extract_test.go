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
	"fmt"
	"strings"
	"testing"

	"github.com/pingcap/sbtables/pkg/table"
	"github.com/stretchr/testify/require"
)

// decl renders a declaration with one element per line, each followed by an
// offset comment.
func decl(name string, elems []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pub const %s: [char; 256] = [\n", name)
	for i, e := range elems {
		fmt.Fprintf(&sb, "    %s, // 0x%02X\n", e, i)
	}
	sb.WriteString("];\n")
	return sb.String()
}

func fill(n int, lit string) []string {
	elems := make([]string, n)
	for i := range elems {
		elems[i] = lit
	}
	return elems
}

func TestExtractExample(t *testing.T) {
	elems := append([]string{`'A'`, `'\u{00E9}'`, `'\n'`}, fill(table.Size-3, `'?'`)...)
	res, err := Extract(decl("ISO_8859_1_TO_UNICODE", elems), "iso8859.rs")
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)
	require.Empty(t, res.Skipped)

	tbl := res.Tables[0]
	require.Equal(t, "iso_8859_1_to_unicode", tbl.Name)
	require.Equal(t, "iso8859.rs", tbl.Unit)
	require.Len(t, tbl.Values, table.Size)
	require.Equal(t, []uint32{65, 233, 10}, tbl.Values[:3])
	for _, v := range tbl.Values[3:] {
		require.Equal(t, uint32(63), v)
	}
}

func TestDecodeEscapes(t *testing.T) {
	cases := []struct {
		lit  string
		want uint32
	}{
		{`'\n'`, 0x0A},
		{`'\r'`, 0x0D},
		{`'\t'`, 0x09},
		{`'\0'`, 0x00},
		{`'\\'`, 0x5C},
		{`'\''`, 0x27},
		{`'\u{FFFD}'`, 0xFFFD},
		{`'\u{e9}'`, 0xE9},
		{`'\u{1F600}'`, 0x1F600},
		{`'\u{00_E9}'`, 0xE9},
		{`'a'`, 'a'},
		{`'é'`, 0xE9},
		{`'€'`, 0x20AC},
	}
	for _, c := range cases {
		values, err := newDecoder("T", "u.rs", c.lit).decode()
		require.NoError(t, err, c.lit)
		require.Equal(t, []uint32{c.want}, values, c.lit)
	}
}

func TestDecodeDelimiterLiterals(t *testing.T) {
	values, err := newDecoder("T", "u.rs", `[',', '[', ']', ' ', '/', ';', '{', '}']`).decode()
	require.NoError(t, err)
	require.Equal(t, []uint32{',', '[', ']', ' ', '/', ';', '{', '}'}, values)
}

func TestDecodeAdvancesPastEscapes(t *testing.T) {
	values, err := newDecoder("T", "u.rs", `'\u{41}','\\','\'','B'`).decode()
	require.NoError(t, err)
	require.Equal(t, []uint32{0x41, 0x5C, 0x27, 'B'}, values)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		body    string
		unknown bool
	}{
		{`'\q'`, true},
		{`'\x41'`, true},
		{`'\u0041'`, true},
		{`'AB'`, false},
		{`'A`, false},
		{`'\`, false},
		{`'\u{41'`, false},
		{`'\u{}'`, false},
		{`'\u{XYZ}'`, false},
		{`'\u{100000000}'`, false},
	}
	for _, c := range cases {
		_, err := newDecoder("BAD_TABLE", "dos.rs", c.body).decode()
		require.Error(t, err, c.body)
		require.True(t, IsDecodeError(err), c.body)
		if c.unknown {
			require.True(t, ErrUnknownEscape.Equal(err), c.body)
		} else {
			require.True(t, ErrMalformedLiteral.Equal(err), c.body)
		}
		require.Contains(t, err.Error(), "BAD_TABLE")
		require.Contains(t, err.Error(), "dos.rs")
	}
}

func TestExtractUnknownEscapeFailsUnit(t *testing.T) {
	good := decl("GOOD", fill(table.Size, `'x'`))
	bad := decl("BAD", append([]string{`'\q'`}, fill(table.Size-1, `'x'`)...))
	_, err := Extract(good+bad, "legacy.rs")
	require.Error(t, err)
	require.True(t, ErrUnknownEscape.Equal(err))
	require.Contains(t, err.Error(), "BAD")
	require.Contains(t, err.Error(), "legacy.rs")
	require.Contains(t, err.Error(), `\\q`)
}

func TestExtractWrongCount(t *testing.T) {
	src := decl("SHORT", fill(table.Size-1, `'a'`)) +
		decl("FIRST", fill(table.Size, `'b'`)) +
		decl("LONG", fill(table.Size+1, `'c'`)) +
		decl("SECOND", fill(table.Size, `'\u{FFFD}'`))
	res, err := Extract(src, "mac.rs")
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, res.Names())
	require.Equal(t, []Skipped{
		{Name: "SHORT", Unit: "mac.rs", Count: table.Size - 1},
		{Name: "LONG", Unit: "mac.rs", Count: table.Size + 1},
	}, res.Skipped)
	require.Zero(t, res.Tables[1].Mapped())
}

func TestExtractIgnoresOtherDeclarations(t *testing.T) {
	src := "pub const HALF: [char; 128] = ['a'];\n" +
		"pub const lower: [char; 256] = ['a'];\n" +
		"const PRIVATE: [char; 256] = ['a'];\n" +
		"fn main() { let c = '\\q'; }\n"
	res, err := Extract(src, "ascii.rs")
	require.NoError(t, err)
	require.Empty(t, res.Tables)
	require.Empty(t, res.Skipped)
}

func TestExtractCompactDeclaration(t *testing.T) {
	src := "pub const\tKOI8_R :[char;256]=[" + strings.Join(fill(table.Size, `'\u{2500}'`), ",") + "];"
	res, err := Extract(src, "koi8.rs")
	require.NoError(t, err)
	require.Equal(t, []string{"koi8_r"}, res.Names())
	require.Equal(t, uint32(0x2500), res.Tables[0].Values[255])
}

func TestFlattenStripsCommentsPerLine(t *testing.T) {
	body := "'A', // first ',' 'Z'\n'B', 'C' // tail\r\n// whole line 'Q'\n'D'"
	require.Equal(t, "'A',  'B', 'C'   'D'", flatten(body))

	values, err := newDecoder("T", "u.rs", flatten(body)).decode()
	require.NoError(t, err)
	require.Equal(t, []uint32{'A', 'B', 'C', 'D'}, values)
}
