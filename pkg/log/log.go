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

package log

import (
	"github.com/pingcap/errors"
	pclog "github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var appLogger = Logger{zap.NewNop()}

// Logger wraps the zap logger.
type Logger struct {
	*zap.Logger
}

// L returns the global logger.
func L() Logger {
	return appLogger
}

// Config serializes log related config in toml/json.
type Config struct {
	// Log level.
	// One of "debug", "info", "warn", "error", "dpanic", "panic", and "fatal".
	Level string `toml:"level" json:"level"`
	// Log filename, leave empty to write to the console.
	File string `toml:"file" json:"file"`
	// Format of the log, one of `text`, `json` or `console`.
	Format string `toml:"format" json:"format"`
}

// Validate checks the level and the format.
func (cfg *Config) Validate() error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return errors.Annotatef(err, "log level %q", cfg.Level)
	}
	switch cfg.Format {
	case "text", "json", "console":
		return nil
	default:
		return errors.Errorf("unknown log format %q", cfg.Format)
	}
}

// InitAppLogger inits the wrapped logger from config.
func InitAppLogger(cfg *Config) error {
	logger, _, err := pclog.InitLogger(&pclog.Config{
		Level: cfg.Level,
		File: pclog.FileLogConfig{
			Filename: cfg.File,
		},
		Format: cfg.Format,
	})
	if err != nil {
		return errors.Trace(err)
	}
	logger = logger.WithOptions(zap.AddCallerSkip(1))
	appLogger = Logger{logger}
	return nil
}

// SetAppLogger sets the wrapped logger, tests use it to observe the output.
func SetAppLogger(logger *zap.Logger) {
	appLogger = Logger{logger}
}

// Info wraps *zap.Logger's Info function.
func Info(msg string, fields ...zap.Field) {
	appLogger.Info(msg, fields...)
}

// Warn wraps *zap.Logger's Warn function.
func Warn(msg string, fields ...zap.Field) {
	appLogger.Warn(msg, fields...)
}

// Error wraps *zap.Logger's Error function.
func Error(msg string, fields ...zap.Field) {
	appLogger.Error(msg, fields...)
}

// Debug wraps *zap.Logger's Debug function.
func Debug(msg string, fields ...zap.Field) {
	appLogger.Debug(msg, fields...)
}
