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


// Package filter builds copydir filters from glob patterns and gitignore
// files.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
	"github.com/walteh/copydir/pkg/copydir"
	"gitlab.com/tozd/go/errors"
)

// relative returns sourcePath relative to root with forward slashes, or ""
// for the root itself
func relative(root, sourcePath string) string {
	rel, err := filepath.Rel(root, sourcePath)
	if err != nil {
		rel = sourcePath
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return ""
	}
	return rel
}

// 🎯 Globs accepts entries by doublestar patterns relative to root. An entry
// matching any exclude pattern is rejected along with its subtree. When
// include is non-empty a file must match one of its patterns; directories are
// never held to include so the walk can reach the files below them.
func Globs(root string, include, exclude []string) (copydir.Filter, error) {
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	return func(kind copydir.EntryKind, sourcePath, name string) bool {
		rel := relative(root, sourcePath)
		if rel == "" {
			return true
		}

		if matchAny(exclude, rel) {
			return false
		}

		if kind != copydir.KindFile || len(include) == 0 {
			return true
		}
		return matchAny(include, rel)
	}, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// patterns were validated in Globs
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}

// 🙈 IgnoreFile rejects entries matched by the gitignore file at path on fsys
func IgnoreFile(fsys afero.Fs, root, path string) (copydir.Filter, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading ignore file %s: %w", path, err)
	}
	return IgnoreLines(root, strings.Split(string(data), "\n")...), nil
}

// 🙈 IgnoreLines rejects entries matched by the given gitignore lines
func IgnoreLines(root string, lines ...string) copydir.Filter {
	return fromMatcher(root, ignore.CompileIgnoreLines(lines...))
}

func fromMatcher(root string, matcher *ignore.GitIgnore) copydir.Filter {
	return func(kind copydir.EntryKind, sourcePath, name string) bool {
		rel := relative(root, sourcePath)
		if rel == "" {
			return true
		}
		if matcher.MatchesPath(rel) {
			return false
		}
		// "dir/" patterns only match with the trailing slash
		if kind == copydir.KindDirectory && matcher.MatchesPath(rel+"/") {
			return false
		}
		return true
	}
}

// 🔗 All accepts an entry only when every non-nil filter does
func All(filters ...copydir.Filter) copydir.Filter {
	active := make([]copydir.Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}

	return func(kind copydir.EntryKind, sourcePath, name string) bool {
		for _, f := range active {
			if !f(kind, sourcePath, name) {
				return false
			}
		}
		return true
	}
}
