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
	"github.com/pingcap/errors"
)

var (
	// ErrUnknownEscape is returned when a char literal uses an escape that has no known value.
	ErrUnknownEscape = errors.Normalize("unknown escape at pos %d in %s of %s: %q",
		errors.RFCCodeText("SBTables:Extract:ErrUnknownEscape"))
	// ErrMalformedLiteral is returned when a quote does not start a well-formed char literal.
	ErrMalformedLiteral = errors.Normalize("malformed char literal at pos %d in %s of %s: %q",
		errors.RFCCodeText("SBTables:Extract:ErrMalformedLiteral"))
)

// IsDecodeError reports whether err stops the decoding of a source unit.
func IsDecodeError(err error) bool {
	return ErrUnknownEscape.Equal(err) || ErrMalformedLiteral.Equal(err)
}
