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

// 🕒 rewrite applies ModifiedStats to dst. Mode goes first; timestamps are only
// touched when at least one of them is overridden, the other one then comes
// from the source entry as it was before the copy.
func (r *run) rewrite(dst string, e entry) error {
	stats := r.opts.ModifiedStats
	if stats == nil {
		return nil
	}

	if stats.Mode != nil {
		if err := r.fs.Chmod(dst, *stats.Mode); err != nil {
			return newError(PermissionChangeFailure, dst, err)
		}
	}

	if !stats.hasTimes() {
		return nil
	}

	atime, mtime := e.atime, e.info.ModTime()
	if stats.AccessTime != nil {
		atime = *stats.AccessTime
	}
	if stats.ModifiedTime != nil {
		mtime = *stats.ModifiedTime
	}

	if err := r.fs.Chtimes(dst, atime, mtime); err != nil {
		return newError(TimestampChangeFailure, dst, err)
	}
	return nil
}
