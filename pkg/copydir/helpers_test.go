// Copyright 2025 walteh LLC
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

package copydir_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/walteh/copydir/pkg/copydir"
)

// 🧪 testContext returns a context carrying a test logger
func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel)
	return logger.WithContext(context.Background())
}

// 🌱 writeTree creates files under root; keys ending in "/" are directories
func writeTree(t *testing.T, fsys afero.Fs, root string, tree map[string]string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(root, 0o755), "creating root")
	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(path, 0o755), "creating dir %s", rel)
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755), "creating parent of %s", rel)
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644), "writing %s", rel)
	}
}

// 📸 snapshot maps every path below root to its content ("/" suffix for dirs)
func snapshot(t *testing.T, fsys afero.Fs, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err, "walking %s", root)
	return out
}

// 📝 memRecorder collects creation records
type memRecorder struct {
	mu      sync.Mutex
	records []string
}

func (m *memRecorder) RecordCreation(ctx context.Context, kind copydir.EntryKind, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, kind.String()+" "+path)
}

// 💥 faultFs fails selected operations on selected paths
type faultFs struct {
	afero.Fs
	open    map[string]error
	stat    map[string]error
	mkdir   map[string]error
	chmod   map[string]error
	chtimes map[string]error
}

func newFaultFs(base afero.Fs) *faultFs {
	return &faultFs{
		Fs:      base,
		open:    map[string]error{},
		stat:    map[string]error{},
		mkdir:   map[string]error{},
		chmod:   map[string]error{},
		chtimes: map[string]error{},
	}
}

func (f *faultFs) Open(name string) (afero.File, error) {
	if err, ok := f.open[name]; ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

func (f *faultFs) Stat(name string) (os.FileInfo, error) {
	if err, ok := f.stat[name]; ok {
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}
	return f.Fs.Stat(name)
}

func (f *faultFs) Mkdir(name string, perm os.FileMode) error {
	if err, ok := f.mkdir[name]; ok {
		return &os.PathError{Op: "mkdir", Path: name, Err: err}
	}
	return f.Fs.Mkdir(name, perm)
}

func (f *faultFs) Chmod(name string, mode os.FileMode) error {
	if err, ok := f.chmod[name]; ok {
		return &os.PathError{Op: "chmod", Path: name, Err: err}
	}
	return f.Fs.Chmod(name, mode)
}

func (f *faultFs) Chtimes(name string, atime, mtime time.Time) error {
	if err, ok := f.chtimes[name]; ok {
		return &os.PathError{Op: "chtimes", Path: name, Err: err}
	}
	return f.Fs.Chtimes(name, atime, mtime)
}
