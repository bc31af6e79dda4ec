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
	"regexp"
	"strconv"
	"strings"

	"github.com/pingcap/errors"
	"github.com/pingcap/sbtables/pkg/table"
)

// ErrParseOutput is returned when a generated document cannot be read back.
var ErrParseOutput = errors.Normalize("cannot parse generated table %s: %s",
	errors.RFCCodeText("SBTables:Emit:ErrParseOutput"))

var (
	blockPattern   = regexp.MustCompile(`(?s)static\s+const\s+uint32_t\s+(\w+)\s*\[\s*256\s*\]\s*=\s*\{(.*?)\};`)
	commentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Parse reads the tables back from a document produced by Document.Bytes.
func Parse(src string) ([]*table.Table, error) {
	var tables []*table.Table
	for _, m := range blockPattern.FindAllStringSubmatch(src, -1) {
		name := m[1]
		body := commentPattern.ReplaceAllString(m[2], " ")
		values := make([]uint32, 0, table.Size)
		for _, field := range strings.Split(body, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			digits, ok := strings.CutPrefix(field, "0x")
			if !ok {
				return nil, ErrParseOutput.GenWithStackByArgs(name, "bad value "+strconv.Quote(field))
			}
			v, err := strconv.ParseUint(digits, 16, 32)
			if err != nil {
				return nil, ErrParseOutput.GenWithStackByArgs(name, err.Error())
			}
			values = append(values, uint32(v))
		}
		if len(values) != table.Size {
			return nil, ErrParseOutput.GenWithStackByArgs(name, "has "+strconv.Itoa(len(values))+" entries")
		}
		tables = append(tables, &table.Table{Name: name, Values: values})
	}
	return tables, nil
}
