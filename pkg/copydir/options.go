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
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 📂 EntryKind classifies a source path without following symbolic links
type EntryKind int

const (
	KindUnknown EntryKind = iota
	KindFile
	KindDirectory
	KindSymbolicLink
)

// String returns the kind name handed to filters and recorders
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymbolicLink:
		return "symbolicLink"
	default:
		return "unknown"
	}
}

// 🔍 Filter decides whether a source entry, and for directories its whole
// subtree, is copied. name is the base name of sourcePath.
type Filter func(kind EntryKind, sourcePath, name string) bool

// acceptAll is the filter used when none is given
func acceptAll(EntryKind, string, string) bool { return true }

// 🔗 SymlinkPolicy controls what a symbolic link in the source becomes
type SymlinkPolicy int

const (
	// SymlinkAsDirectory creates a real directory at the destination and
	// lists through the link, exactly like a directory.
	SymlinkAsDirectory SymlinkPolicy = iota
	// SymlinkPreserve recreates the link itself at the destination.
	SymlinkPreserve
)

var symlinkPolicyNames = map[SymlinkPolicy]string{
	SymlinkAsDirectory: "directory",
	SymlinkPreserve:    "preserve",
}

func (p SymlinkPolicy) String() string {
	if s, ok := symlinkPolicyNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseSymlinkPolicy parses "directory" or "preserve"; the empty string is the default policy.
func ParseSymlinkPolicy(s string) (SymlinkPolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SymlinkAsDirectory, nil
	}
	for p, name := range symlinkPolicyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, errors.Errorf("invalid symlink policy %q: must be 'directory' or 'preserve'", s)
}

// 🕒 ModifiedStats overrides metadata on everything the copy creates.
// Nil fields are left alone.
type ModifiedStats struct {
	AccessTime   *time.Time
	ModifiedTime *time.Time
	Mode         *os.FileMode
}

func (m *ModifiedStats) hasTimes() bool {
	return m != nil && (m.AccessTime != nil || m.ModifiedTime != nil)
}

// 📝 Recorder receives one record per created directory and written file
type Recorder interface {
	RecordCreation(ctx context.Context, kind EntryKind, path string)
}

// RecorderFunc adapts a function to the Recorder interface
type RecorderFunc func(ctx context.Context, kind EntryKind, path string)

func (f RecorderFunc) RecordCreation(ctx context.Context, kind EntryKind, path string) {
	f(ctx, kind, path)
}

// 🔧 Options configures a copy. The zero value copies everything, never
// overwrites and leaves metadata alone.
type Options struct {
	// Filter is consulted for every source entry; nil accepts everything.
	Filter Filter
	// Overwrite replaces existing destination files. When false an existing
	// file is left untouched and counts as success.
	Overwrite bool
	// ModifiedStats is applied after every directory create and file copy.
	ModifiedStats *ModifiedStats
	// Debug records every created directory and written file.
	Debug bool
	// Recorder receives the debug records. When Debug is set and Recorder is
	// nil, records go to the zerolog logger found in the context.
	Recorder Recorder
	// Observer is told about every creation whether or not Debug is set.
	Observer Recorder
	// Symlinks selects how symbolic links are copied.
	Symlinks SymlinkPolicy
	// Fs is the filesystem both paths live on; nil means the OS filesystem.
	Fs afero.Fs
}
