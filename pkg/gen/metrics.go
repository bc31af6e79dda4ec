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
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	extractedTables *prometheus.CounterVec
	skippedTables   *prometheus.CounterVec
	missingUnits    prometheus.Counter
	mismatchedBytes *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		extractedTables: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sbtables",
				Subsystem: "extract",
				Name:      "tables_total",
				Help:      "counter for tables extracted from a source unit",
			}, []string{"unit"}),
		skippedTables: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sbtables",
				Subsystem: "extract",
				Name:      "skipped_tables_total",
				Help:      "counter for tables skipped because of a wrong number of entries",
			}, []string{"unit"}),
		missingUnits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "sbtables",
				Subsystem: "extract",
				Name:      "missing_units_total",
				Help:      "counter for source units that do not exist",
			}),
		mismatchedBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sbtables",
				Subsystem: "verify",
				Name:      "mismatched_bytes_total",
				Help:      "counter for bytes whose value differs from the reference code page",
			}, []string{"table"}),
	}
}

func (m *metrics) register(registry prometheus.Registerer) {
	registry.MustRegister(m.extractedTables)
	registry.MustRegister(m.skippedTables)
	registry.MustRegister(m.missingUnits)
	registry.MustRegister(m.mismatchedBytes)
}
