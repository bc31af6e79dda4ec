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

package storage

import (
	goerrors "errors"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/pingcap/errors"
	"github.com/spf13/afero"
	"github.com/spkg/bom"
	"go.uber.org/multierr"
)

// ErrUnitNotFound is returned by ReadUnit when the unit file does not exist.
var ErrUnitNotFound = errors.Normalize("source unit %s not found in %s",
	errors.RFCCodeText("SBTables:Storage:ErrUnitNotFound"))

const outputPerm = 0o644

// Storage gives access to the source units and the generated artifact.
type Storage struct {
	fs afero.Fs
}

// New creates a Storage on top of the given filesystem.
func New(vfs afero.Fs) *Storage {
	return &Storage{fs: vfs}
}

// NewLocal creates a Storage on the OS filesystem.
func NewLocal() *Storage {
	return New(afero.NewOsFs())
}

// ReadUnit reads the source unit named unit from dir. A leading UTF-8 byte
// order mark is dropped.
func (s *Storage) ReadUnit(dir, unit string) (_ string, err error) {
	path := filepath.Join(dir, unit)
	f, err := s.fs.Open(path)
	if err != nil {
		if goerrors.Is(err, fs.ErrNotExist) {
			return "", ErrUnitNotFound.GenWithStackByArgs(unit, dir)
		}
		return "", errors.Annotatef(err, "open source unit %s", path)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	data, err := io.ReadAll(bom.NewReader(f))
	if err != nil {
		return "", errors.Annotatef(err, "read source unit %s", path)
	}
	return string(data), nil
}

// Exists reports whether path exists.
func (s *Storage) Exists(path string) (bool, error) {
	ok, err := afero.Exists(s.fs, path)
	return ok, errors.Trace(err)
}

// ReadFile reads the whole file at path.
func (s *Storage) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	return data, errors.Trace(err)
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place. On failure path is left untouched and the temporary file is removed.
func (s *Storage) WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err = s.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Annotatef(err, "create output directory %s", dir)
	}
	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Annotatef(err, "create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	_, err = tmp.Write(data)
	err = multierr.Append(err, tmp.Close())
	if err != nil {
		return errors.Annotatef(err, "write %s", tmpName)
	}
	if err = s.fs.Chmod(tmpName, outputPerm); err != nil {
		return errors.Trace(err)
	}
	if err = s.fs.Rename(tmpName, path); err != nil {
		return errors.Annotatef(err, "rename %s to %s", tmpName, path)
	}
	return nil
}
