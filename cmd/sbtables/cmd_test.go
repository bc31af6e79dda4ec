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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pingcap/sbtables/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "sbtables"}
	DefineFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newTestCommand(t).Flags())
	require.NoError(t, err)
	require.Equal(t, "tables", cfg.InputDir)
	require.Equal(t, "sb_tables.h", cfg.Output)
	require.Equal(t, config.DefaultUnits, cfg.Units)
	require.Equal(t, "SB_TABLES_H", cfg.Header.Guard)
	require.False(t, cfg.Check)
}

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sbtables.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
input-dir = "rust/src"
output = "gen/tables.h"
units = ["koi8.rs", "mac.rs"]
verify = true

[log]
level = "debug"
`), 0o644))

	cfg, err := ParseConfig(newTestCommand(t,
		"--config", file,
		"--output", "out/codepages.h",
		"--units", "dos.rs,ascii.rs",
		"--check",
		"-L", "warn",
	).Flags())
	require.NoError(t, err)
	require.Equal(t, "rust/src", cfg.InputDir)
	require.Equal(t, "out/codepages.h", cfg.Output)
	require.Equal(t, []string{"dos.rs", "ascii.rs"}, cfg.Units)
	require.True(t, cfg.Check)
	require.True(t, cfg.Verify)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "CODEPAGES_H", cfg.Header.Guard)
}

func TestParseConfigInvalid(t *testing.T) {
	_, err := ParseConfig(newTestCommand(t, "--guard", "not-an-ident").Flags())
	require.True(t, config.ErrInvalidConfig.Equal(err))

	_, err = ParseConfig(newTestCommand(t, "--log-format", "xml").Flags())
	require.True(t, config.ErrInvalidConfig.Equal(err))

	_, err = ParseConfig(newTestCommand(t, "--config", filepath.Join(t.TempDir(), "missing.toml")).Flags())
	require.Error(t, err)
}

func TestSummaryNotColoredWhenRedirected(t *testing.T) {
	require.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	require.NoError(t, err)
	defer f.Close()
	require.False(t, isTerminal(f))
}
