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

package copydir

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// dirPerm is handed to Mkdir for new directories, before umask
const dirPerm os.FileMode = 0o777

// 📦 Copier copies trees with a fixed set of options. It holds no state
// between calls, so one Copier may serve concurrent copies of disjoint trees.
type Copier struct {
	opts   Options
	fs     afero.Fs
	filter Filter
}

// 🏭 New creates a Copier, resolving the option defaults once
func New(opts Options) *Copier {
	c := &Copier{
		opts:   opts,
		fs:     opts.Fs,
		filter: opts.Filter,
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.filter == nil {
		c.filter = acceptAll
	}
	return c
}

// 📋 Copy copies source to destination and blocks until the whole tree is
// done or the first error aborts it.
func Copy(ctx context.Context, source, destination string, opts Options) error {
	return New(opts).Copy(ctx, source, destination)
}

// ⚡ CopyAsync starts the copy in the background. The returned channel
// receives exactly one value, nil or the first error, and is then closed.
func CopyAsync(ctx context.Context, source, destination string, opts Options) <-chan error {
	return New(opts).CopyAsync(ctx, source, destination)
}

// 📋 Copy copies source to destination with the Copier's options
func (c *Copier) Copy(ctx context.Context, source, destination string) error {
	r := &run{Copier: c, observer: c.opts.Observer}
	if c.opts.Debug {
		r.recorder = c.opts.Recorder
		if r.recorder == nil {
			r.recorder = NewLogRecorder(zerolog.Ctx(ctx))
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", source).
		Str("destination", destination).
		Bool("overwrite", c.opts.Overwrite).
		Stringer("symlinks", c.opts.Symlinks).
		Msg("copying tree")

	return r.copyEntry(ctx, source, destination)
}

// ⚡ CopyAsync runs Copy on its own goroutine
func (c *Copier) CopyAsync(ctx context.Context, source, destination string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- c.Copy(ctx, source, destination)
	}()
	return done
}

// run is the state of a single Copy call
type run struct {
	*Copier
	recorder Recorder
	observer Recorder
}

func (r *run) record(ctx context.Context, kind EntryKind, path string) {
	if r.observer != nil {
		r.observer.RecordCreation(ctx, kind, path)
	}
	if r.recorder != nil {
		r.recorder.RecordCreation(ctx, kind, path)
	}
}

// 🌳 copyEntry handles one node of the source tree
func (r *run) copyEntry(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return newError(Cancelled, src, err)
	}

	info, err := lstat(r.fs, src)
	if err != nil {
		return newError(StatFailure, src, err)
	}

	kind := classify(info)
	if kind == KindUnknown {
		return newError(UnclassifiableEntry, src, errors.Errorf("unsupported file type %s", info.Mode().Type()))
	}

	if !r.filter(kind, src, filepath.Base(src)) {
		zerolog.Ctx(ctx).Trace().Str("path", src).Stringer("kind", kind).Msg("filtered out")
		return nil
	}

	if kind == KindSymbolicLink && r.opts.Symlinks == SymlinkPreserve {
		return r.copySymlink(ctx, src, dst)
	}

	// access time as of the lstat, before the copy reads the source
	e := entry{info: info}
	if r.opts.ModifiedStats.hasTimes() && r.opts.ModifiedStats.AccessTime == nil {
		e.atime = sourceAccessTime(r.fs, src, info)
	}

	if kind == KindFile {
		return r.copyFileEntry(ctx, src, dst, e)
	}
	return r.copyDirEntry(ctx, src, dst, e)
}

// entry is what copyEntry learned about a source node before touching it
type entry struct {
	info  os.FileInfo
	atime time.Time
}

// 📁 copyDirEntry makes sure dst is a directory, rewrites it and descends
func (r *run) copyDirEntry(ctx context.Context, src, dst string, e entry) error {
	_, err := r.fs.Stat(dst)
	switch {
	case err == nil:
		zerolog.Ctx(ctx).Trace().Str("path", dst).Msg("directory exists")
	case errors.Is(err, fs.ErrNotExist):
		if err := r.fs.Mkdir(dst, dirPerm); err != nil {
			return newError(DirectoryCreateFailure, dst, err)
		}
		r.record(ctx, KindDirectory, dst)
	default:
		return newError(DestinationProbeFailure, dst, err)
	}

	if err := r.rewrite(dst, e); err != nil {
		return err
	}

	return r.copyChildren(ctx, src, dst)
}

// 📄 copyFileEntry copies a regular file according to the overwrite policy
func (r *run) copyFileEntry(ctx context.Context, src, dst string, e entry) error {
	if !r.opts.Overwrite {
		_, err := r.fs.Stat(dst)
		if err == nil {
			zerolog.Ctx(ctx).Trace().Str("path", dst).Msg("file exists, keeping it")
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return newError(DestinationProbeFailure, dst, err)
		}
	}

	if err := r.copyFile(src, dst, e.info.Mode().Perm()); err != nil {
		return err
	}
	r.record(ctx, KindFile, dst)

	return r.rewrite(dst, e)
}

// 🔁 copyChildren walks a snapshot of src's children one at a time and
// stops at the first failing subtree.
func (r *run) copyChildren(ctx context.Context, src, dst string) error {
	names, err := readDirNames(r.fs, src)
	if err != nil {
		return newError(ListingFailure, src, err)
	}

	for i := 0; i < len(names); i++ {
		if err := r.copyEntry(ctx, filepath.Join(src, names[i]), filepath.Join(dst, names[i])); err != nil {
			return err
		}
	}
	return nil
}

func classify(info os.FileInfo) EntryKind {
	mode := info.Mode()
	switch {
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	case mode&os.ModeSymlink != 0:
		return KindSymbolicLink
	default:
		return KindUnknown
	}
}

// lstat stats name without following a final symbolic link when the
// filesystem supports it
func lstat(fsys afero.Fs, name string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return fsys.Stat(name)
}

// readDirNames lists dir sorted by name
func readDirNames(fsys afero.Fs, dir string) ([]string, error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, err
	}
	names, err := f.Readdirnames(-1)
	f.Close()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
