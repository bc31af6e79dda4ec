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
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/pingcap/errors"
	"github.com/pingcap/sbtables/pkg/config"
	"github.com/pingcap/sbtables/pkg/emit"
	"github.com/pingcap/sbtables/pkg/extract"
	"github.com/pingcap/sbtables/pkg/log"
	"github.com/pingcap/sbtables/pkg/storage"
	"github.com/pingcap/sbtables/pkg/table"
	"github.com/pingcap/sbtables/pkg/verify"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ErrOutputStale is returned in check mode when the output differs from what
// would be generated.
var ErrOutputStale = errors.Normalize("%s is out of date: %s",
	errors.RFCCodeText("SBTables:Gen:ErrOutputStale"))

// Generator converts the configured source units into one header.
type Generator struct {
	cfg      *config.Config
	store    *storage.Storage
	metrics  *metrics
	registry *prometheus.Registry
}

// New creates a Generator. cfg must have been adjusted.
func New(cfg *config.Config, store *storage.Storage) *Generator {
	g := &Generator{
		cfg:      cfg,
		store:    store,
		metrics:  newMetrics(),
		registry: prometheus.NewRegistry(),
	}
	g.metrics.register(g.registry)
	return g
}

// Run reads every unit in order and writes the generated header, or compares
// it with the existing one in check mode. Nothing is written when an error is
// returned.
func (g *Generator) Run() (*Summary, error) {
	doc := emit.NewDocument(emit.Header{
		FileName:  filepath.Base(g.cfg.Output),
		Guard:     g.cfg.Header.Guard,
		Include:   g.cfg.Header.Include,
		Generator: g.cfg.Header.Generator,
	})
	sum := &Summary{Output: g.cfg.Output, Checked: g.cfg.Check}
	for _, unit := range g.cfg.Units {
		rep, err := g.processUnit(unit, doc)
		if err != nil {
			return nil, err
		}
		sum.Units = append(sum.Units, rep)
	}
	sum.Total = doc.Len()
	log.Info("extraction finished",
		zap.Int("total", sum.Total),
		zap.Strings("missing", sum.Missing()))

	data := doc.Bytes()
	if g.cfg.Check {
		if err := g.check(data, doc.Tables()); err != nil {
			return nil, err
		}
		log.Info("output is up to date", zap.String("output", g.cfg.Output))
	} else {
		if err := g.store.WriteFileAtomic(g.cfg.Output, data); err != nil {
			return nil, errors.Trace(err)
		}
		log.Info("wrote output",
			zap.String("output", g.cfg.Output),
			zap.Int("tables", sum.Total),
			zap.String("size", units.HumanSize(float64(len(data)))))
	}
	g.writeMetrics()
	return sum, nil
}

func (g *Generator) processUnit(unit string, doc *emit.Document) (*UnitReport, error) {
	rep := &UnitReport{Unit: unit}
	src, err := g.store.ReadUnit(g.cfg.InputDir, unit)
	if err != nil {
		if storage.ErrUnitNotFound.Equal(err) {
			log.Warn("source unit not found, skipped",
				zap.String("unit", unit),
				zap.String("input-dir", g.cfg.InputDir))
			g.metrics.missingUnits.Inc()
			return rep, nil
		}
		return nil, errors.Trace(err)
	}
	rep.Found = true

	res, err := extract.Extract(src, unit)
	if err != nil {
		if extract.IsDecodeError(err) {
			log.Error("cannot decode source unit, nothing is written",
				zap.String("unit", unit),
				zap.Error(err))
		}
		return nil, errors.Trace(err)
	}
	for _, s := range res.Skipped {
		log.Warn("table has a wrong number of entries, skipped",
			zap.String("table", s.Name),
			zap.String("unit", s.Unit),
			zap.Int("entries", s.Count),
			zap.Int("expected", table.Size))
		g.metrics.skippedTables.WithLabelValues(unit).Inc()
	}
	rep.Skipped = res.Skipped
	rep.Tables = res.Names()
	log.Info("extracted tables",
		zap.String("unit", unit),
		zap.Int("count", len(res.Tables)),
		zap.Strings("tables", rep.Tables))

	for _, t := range res.Tables {
		if g.cfg.Verify {
			rep.Mismatched += g.verify(t)
		}
		rep.Mapped += t.Mapped()
		doc.Append(t)
		log.Debug("appended table", zap.Stringer("table", t))
	}
	g.metrics.extractedTables.WithLabelValues(unit).Add(float64(len(res.Tables)))
	return rep, nil
}

// verify compares t with its reference code page and returns the number of
// differing bytes.
func (g *Generator) verify(t *table.Table) int {
	r, ok := verify.Check(t)
	if !ok {
		log.Debug("no reference code page", zap.String("table", t.Name))
		return 0
	}
	if r.OK() {
		log.Debug("table matches reference code page",
			zap.String("table", t.Name),
			zap.String("reference", r.Reference))
		return 0
	}
	first := r.Mismatches[0]
	log.Warn("table differs from reference code page",
		zap.String("table", t.Name),
		zap.String("unit", t.Unit),
		zap.String("reference", r.Reference),
		zap.Int("bytes", len(r.Mismatches)),
		zap.String("first", fmt.Sprintf("0x%02X: 0x%04X, want 0x%04X", first.Byte, first.Got, first.Want)))
	g.metrics.mismatchedBytes.WithLabelValues(t.Name).Add(float64(len(r.Mismatches)))
	return len(r.Mismatches)
}

// check compares the existing output with data. When they differ the parsed
// tables are compared to give a precise reason.
func (g *Generator) check(data []byte, tables []*table.Table) error {
	out := g.cfg.Output
	ok, err := g.store.Exists(out)
	if err != nil {
		return errors.Trace(err)
	}
	if !ok {
		return ErrOutputStale.GenWithStackByArgs(out, "file does not exist")
	}
	existing, err := g.store.ReadFile(out)
	if err != nil {
		return errors.Trace(err)
	}
	if bytes.Equal(existing, data) {
		return nil
	}

	parsed, err := emit.Parse(string(existing))
	if err != nil {
		return ErrOutputStale.GenWithStackByArgs(out, err.Error())
	}
	if len(parsed) != len(tables) {
		return ErrOutputStale.GenWithStackByArgs(out,
			fmt.Sprintf("has %d tables, want %d", len(parsed), len(tables)))
	}
	for i, t := range tables {
		if parsed[i].Name != t.Name {
			return ErrOutputStale.GenWithStackByArgs(out,
				fmt.Sprintf("table %d is %s, want %s", i, parsed[i].Name, t.Name))
		}
		for b, v := range t.Values {
			if parsed[i].Values[b] != v {
				return ErrOutputStale.GenWithStackByArgs(out,
					fmt.Sprintf("table %s byte 0x%02X is 0x%04X, want 0x%04X", t.Name, b, parsed[i].Values[b], v))
			}
		}
	}
	return ErrOutputStale.GenWithStackByArgs(out, "header or layout differs")
}

func (g *Generator) writeMetrics() {
	path := g.cfg.Status.MetricsTextfile
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, g.registry); err != nil {
		log.Warn("failed to write metrics", zap.String("path", path), zap.Error(err))
	}
}
