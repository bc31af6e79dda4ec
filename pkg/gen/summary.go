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

package gen

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pingcap/sbtables/pkg/extract"
)

// UnitReport is what happened to one source unit.
type UnitReport struct {
	Unit  string
	Found bool
	// Tables are the names of the extracted tables, in order.
	Tables  []string
	Skipped []extract.Skipped
	// Mapped counts the bytes of the extracted tables that map to a code point.
	Mapped int
	// Mismatched counts the bytes that differ from the reference code pages.
	Mismatched int
}

// Summary is the outcome of a run.
type Summary struct {
	Units []*UnitReport
	// Total is the number of tables in the generated document.
	Total  int
	Output string
	// Checked is set in check mode, the output was compared instead of written.
	Checked bool
}

// Missing returns the units that were not found.
func (s *Summary) Missing() []string {
	var units []string
	for _, u := range s.Units {
		if !u.Found {
			units = append(units, u.Unit)
		}
	}
	return units
}

// Render renders a table with one row per unit. Missing units are
// highlighted when colored is set.
func (s *Summary) Render(colored bool) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Unit", "Status", "Tables", "Mapped Bytes", "Skipped", "Mismatched Bytes"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", WidthMax: 4},
		{Name: "Unit", WidthMax: 24},
	})
	mapped, skipped, mismatched := 0, 0, 0
	for i, u := range s.Units {
		status := "ok"
		if !u.Found {
			status = "missing"
		}
		t.AppendRow(table.Row{i + 1, u.Unit, status, len(u.Tables), u.Mapped, len(u.Skipped), u.Mismatched})
		mapped += u.Mapped
		skipped += len(u.Skipped)
		mismatched += u.Mismatched
	}
	t.AppendFooter(table.Row{"", "Total", "", s.Total, mapped, skipped, mismatched})
	if colored {
		t.SetRowPainter(func(row table.Row) text.Colors {
			if len(row) > 2 && row[2] == "missing" {
				return text.Colors{text.FgYellow}
			}
			return nil
		})
	}

	var sb strings.Builder
	sb.WriteString("\nSingle-byte Table Summary: \n")
	sb.WriteString(t.Render())
	sb.WriteString("\n")
	return sb.String()
}
