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

/*
Package copydir recursively copies a file, directory or symbolic link into a
destination tree.

	+-------------+
	|   lstat     |
	| (classify)  |
	+------+------+
	       |
	+------+------+
	|   filter    |
	+------+------+
	       |
	+------+------+------+
	|             |      |
	dir/link     file   other -> error
	|             |
	mkdir?       copy?
	|             |
	rewrite      rewrite
	|
	list -> recurse, one child at a time

🎯 Purpose:
- Mirror the filtered subset of a source tree into a destination
- Optionally rewrite permission bits and timestamps of everything created
- Optionally keep existing destination files untouched

🔄 Flow:
1. Lstat the source path, never following links
2. Ask the filter; a rejected directory prunes its whole subtree
3. Directories (and, by default, symbolic links) become real directories
4. Files are copied byte for byte when absent, or always when overwriting
5. Children are visited strictly one after another

⚡ Errors:
The first failure anywhere aborts the traversal and is returned as is. Every
failure is a *Error carrying the failing path, an ErrorKind and the OS error, so
both errors.Is(err, ErrCopyFailure) and errors.Is(err, fs.ErrNotExist) work.
Whatever was written before the failure stays on disk.

🔍 Example:

	mode := os.FileMode(0o644)
	err := copydir.Copy(ctx, "./assets", "./dist/assets", copydir.Options{
		Overwrite:     true,
		ModifiedStats: &copydir.ModifiedStats{Mode: &mode},
	})

	// or without blocking
	done := copydir.CopyAsync(ctx, "./assets", "./dist/assets", copydir.Options{})
	if err := <-done; err != nil {
		return err
	}
*/
package copydir
