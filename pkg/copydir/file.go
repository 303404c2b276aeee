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
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const copyBufferSize = 256 * 1024

var copyBuffers = sync.Pool{
	New: func() any {
		b := make([]byte, copyBufferSize)
		return &b
	},
}

// 💾 copyFile duplicates the bytes of src into dst, creating or truncating
// dst, and leaves dst with exactly perm. Between two OS files io.CopyBuffer hands off to the
// kernel's copy_file_range/sendfile and the buffer is never touched.
func (r *run) copyFile(src, dst string, perm os.FileMode) error {
	in, err := r.fs.Open(src)
	if err != nil {
		return newError(CopyFailure, src, err)
	}
	defer in.Close()

	out, err := r.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return newError(CopyFailure, dst, err)
	}

	bufPtr := copyBuffers.Get().(*[]byte)
	defer copyBuffers.Put(bufPtr)

	if _, err := io.CopyBuffer(out, in, *bufPtr); err != nil {
		out.Close()
		return newError(CopyFailure, dst, err)
	}

	if err := out.Close(); err != nil {
		return newError(CopyFailure, dst, err)
	}

	// a truncated file keeps its old bits and umask trims new ones
	written, err := r.fs.Stat(dst)
	if err != nil {
		return newError(CopyFailure, dst, err)
	}
	if written.Mode().Perm() != perm {
		if err := r.fs.Chmod(dst, perm); err != nil {
			return newError(CopyFailure, dst, err)
		}
	}
	return nil
}

// 🔗 copySymlink recreates the link at src as a link at dst
func (r *run) copySymlink(ctx context.Context, src, dst string) error {
	reader, canRead := r.fs.(afero.LinkReader)
	linker, canLink := r.fs.(afero.Linker)
	if !canRead || !canLink {
		return newError(SymlinkFailure, src, afero.ErrNoSymlink)
	}

	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return newError(SymlinkFailure, src, err)
	}

	_, err = lstat(r.fs, dst)
	switch {
	case err == nil:
		if !r.opts.Overwrite {
			zerolog.Ctx(ctx).Trace().Str("path", dst).Msg("link destination exists, keeping it")
			return nil
		}
		if err := r.fs.Remove(dst); err != nil {
			return newError(SymlinkFailure, dst, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return newError(DestinationProbeFailure, dst, err)
	}

	if err := linker.SymlinkIfPossible(target, dst); err != nil {
		return newError(SymlinkFailure, dst, err)
	}
	r.record(ctx, KindSymbolicLink, dst)
	return nil
}
