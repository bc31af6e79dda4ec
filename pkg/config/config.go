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

package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/pingcap/sbtables/pkg/log"
)

// ErrInvalidConfig is returned when the configuration cannot be used.
var ErrInvalidConfig = errors.Normalize("invalid config: %s",
	errors.RFCCodeText("SBTables:Config:ErrInvalidConfig"))

// DefaultUnits is the order in which the source units are read.
var DefaultUnits = []string{
	"ascii.rs",
	"iso8859.rs",
	"windows.rs",
	"dos.rs",
	"koi8.rs",
	"mac.rs",
	"ebcdic.rs",
	"legacy.rs",
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config contains configuration options.
type Config struct {
	// InputDir is the directory holding the source units.
	InputDir string `toml:"input-dir" json:"input-dir"`
	// Output is the path of the generated header.
	Output string `toml:"output" json:"output"`
	// Units are read from InputDir in this order.
	Units []string `toml:"units" json:"units"`
	// Check compares the existing output with the generated one instead of writing it.
	Check bool `toml:"check" json:"check"`
	// Verify compares every table with the matching x/text code page.
	Verify bool `toml:"verify" json:"verify"`

	Header Header     `toml:"header" json:"header"`
	Log    log.Config `toml:"log" json:"log"`
	Status Status     `toml:"status" json:"status"`
}

// Header is the header section of the config.
type Header struct {
	// Guard is the include guard macro, derived from Output when empty.
	Guard     string `toml:"guard" json:"guard"`
	Include   string `toml:"include" json:"include"`
	Generator string `toml:"generator" json:"generator"`
}

// Status is the status section of the config.
type Status struct {
	// MetricsTextfile is where the metrics are written at the end of a run,
	// in the node exporter textfile format. Empty disables it.
	MetricsTextfile string `toml:"metrics-textfile" json:"metrics-textfile"`
}

// NewConfig creates a new config instance with default value.
func NewConfig() *Config {
	return &Config{
		InputDir: "tables",
		Output:   "sb_tables.h",
		Units:    append([]string(nil), DefaultUnits...),
		Header: Header{
			Include:   "stdint.h",
			Generator: "sbtables",
		},
		Log: log.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads config options from a toml file. Unknown keys are rejected.
func (c *Config) Load(confFile string) error {
	md, err := toml.DecodeFile(confFile, c)
	if err != nil {
		return errors.Annotatef(err, "load config %s", confFile)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("unknown keys in %s: %s", confFile, strings.Join(keys, ", ")))
	}
	return nil
}

// Adjust fills the derived fields and validates the config.
func (c *Config) Adjust() error {
	if c.InputDir == "" {
		return ErrInvalidConfig.GenWithStackByArgs("input-dir is empty")
	}
	if c.Output == "" {
		return ErrInvalidConfig.GenWithStackByArgs("output is empty")
	}
	if len(c.Units) == 0 {
		return ErrInvalidConfig.GenWithStackByArgs("no source units")
	}
	seen := make(map[string]struct{}, len(c.Units))
	for _, u := range c.Units {
		if strings.TrimSpace(u) == "" {
			return ErrInvalidConfig.GenWithStackByArgs("empty source unit name")
		}
		if _, ok := seen[u]; ok {
			return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("source unit %s listed twice", u))
		}
		seen[u] = struct{}{}
	}
	if c.Header.Guard == "" {
		c.Header.Guard = GuardFromPath(c.Output)
	}
	if !identPattern.MatchString(c.Header.Guard) {
		return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("include guard %q is not an identifier", c.Header.Guard))
	}
	if c.Header.Include == "" {
		return ErrInvalidConfig.GenWithStackByArgs("header include is empty")
	}
	if err := c.Log.Validate(); err != nil {
		return ErrInvalidConfig.GenWithStackByArgs(err.Error())
	}
	return nil
}

// GuardFromPath derives an include guard from a file name,
// "out/sb_tables.h" becomes "SB_TABLES_H".
func GuardFromPath(path string) string {
	base := filepath.Base(path)
	var sb strings.Builder
	for i, r := range strings.ToUpper(base) {
		switch {
		case r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
