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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidate(t *testing.T) {
	require.NoError(t, (&Config{Level: "info", Format: "text"}).Validate())
	require.NoError(t, (&Config{Level: "debug", Format: "json"}).Validate())
	require.Error(t, (&Config{Level: "loud", Format: "text"}).Validate())
	require.Error(t, (&Config{Level: "info", Format: "xml"}).Validate())
}

func TestSetAppLogger(t *testing.T) {
	old := L()
	defer SetAppLogger(old.Logger)

	core, logs := observer.New(zapcore.InfoLevel)
	SetAppLogger(zap.New(core))
	Debug("hidden")
	Info("shown", zap.String("unit", "ascii.rs"))
	Warn("warned")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "shown", entry.Message)
	require.Equal(t, "ascii.rs", entry.ContextMap()["unit"])
	require.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestInitAppLogger(t *testing.T) {
	old := L()
	defer SetAppLogger(old.Logger)

	require.NoError(t, InitAppLogger(&Config{Level: "warn", Format: "text"}))
	require.NotNil(t, L().Logger)
	require.False(t, L().Core().Enabled(zapcore.InfoLevel))
	require.True(t, L().Core().Enabled(zapcore.WarnLevel))
}
