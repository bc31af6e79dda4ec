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
	"io"
	"os"

	"github.com/pingcap/errors"
	"github.com/pingcap/sbtables/pkg/config"
	"github.com/pingcap/sbtables/pkg/gen"
	"github.com/pingcap/sbtables/pkg/log"
	"github.com/pingcap/sbtables/pkg/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	// FlagConfig is the name of config flag.
	FlagConfig = "config"
	// FlagInputDir is the name of input-dir flag.
	FlagInputDir = "input-dir"
	// FlagOutput is the name of output flag.
	FlagOutput = "output"
	// FlagUnits is the name of units flag.
	FlagUnits = "units"
	// FlagCheck is the name of check flag.
	FlagCheck = "check"
	// FlagVerify is the name of verify flag.
	FlagVerify = "verify"
	// FlagGuard is the name of guard flag.
	FlagGuard = "guard"
	// FlagLogLevel is the name of log-level flag.
	FlagLogLevel = "log-level"
	// FlagLogFile is the name of log-file flag.
	FlagLogFile = "log-file"
	// FlagLogFormat is the name of log-format flag.
	FlagLogFormat = "log-format"
	// FlagMetricsTextfile is the name of metrics-textfile flag.
	FlagMetricsTextfile = "metrics-textfile"
)

// DefineFlags defines the flags of the sbtables command.
func DefineFlags(cmd *cobra.Command) {
	def := config.NewConfig()
	flags := cmd.Flags()
	flags.StringP(FlagConfig, "c", "", "Path of the TOML config file")
	flags.StringP(FlagInputDir, "i", def.InputDir, "Directory holding the Rust source units")
	flags.StringP(FlagOutput, "o", def.Output, "Path of the generated C header")
	flags.StringSlice(FlagUnits, def.Units, "Source units to read, in output order")
	flags.Bool(FlagCheck, false, "Fail if the output is not up to date instead of writing it")
	flags.Bool(FlagVerify, false, "Compare the tables with the known code pages")
	flags.String(FlagGuard, "", "Include guard macro, derived from the output file name when empty")
	flags.StringP(FlagLogLevel, "L", def.Log.Level, "Set the log level")
	flags.String(FlagLogFile, "", "Set the log file path. If not set, logs will output to the console")
	flags.String(FlagLogFormat, def.Log.Format, "Set the log format")
	flags.String(FlagMetricsTextfile, "", "Write metrics to this file at the end of the run")
}

// ParseConfig builds the config from the defaults, then the config file, then
// the flags set on the command line.
func ParseConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.NewConfig()
	file, err := flags.GetString(FlagConfig)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if file != "" {
		if err := cfg.Load(file); err != nil {
			return nil, errors.Trace(err)
		}
	}

	stringFlags := []struct {
		name string
		dst  *string
	}{
		{FlagInputDir, &cfg.InputDir},
		{FlagOutput, &cfg.Output},
		{FlagGuard, &cfg.Header.Guard},
		{FlagLogLevel, &cfg.Log.Level},
		{FlagLogFile, &cfg.Log.File},
		{FlagLogFormat, &cfg.Log.Format},
		{FlagMetricsTextfile, &cfg.Status.MetricsTextfile},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		if *f.dst, err = flags.GetString(f.name); err != nil {
			return nil, errors.Trace(err)
		}
	}
	for name, dst := range map[string]*bool{FlagCheck: &cfg.Check, FlagVerify: &cfg.Verify} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, errors.Trace(err)
		}
	}
	if flags.Changed(FlagUnits) {
		if cfg.Units, err = flags.GetStringSlice(FlagUnits); err != nil {
			return nil, errors.Trace(err)
		}
	}

	if err := cfg.Adjust(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

// isTerminal reports whether w is a terminal, only then the summary is colored.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := ParseConfig(cmd.Flags())
	if err != nil {
		return errors.Trace(err)
	}
	if err := log.InitAppLogger(&cfg.Log); err != nil {
		return errors.Trace(err)
	}
	log.Info("sbtables started",
		zap.String("input-dir", cfg.InputDir),
		zap.String("output", cfg.Output),
		zap.Strings("units", cfg.Units),
		zap.Bool("check", cfg.Check),
		zap.Bool("verify", cfg.Verify))

	sum, err := gen.New(cfg, storage.NewLocal()).Run()
	if err != nil {
		return errors.Trace(err)
	}
	cmd.PrintErrln(sum.Render(isTerminal(cmd.ErrOrStderr())))
	return nil
}
