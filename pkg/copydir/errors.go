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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ❌ ErrorKind names the step of the traversal that failed
type ErrorKind int

const (
	StatFailure ErrorKind = iota + 1
	UnclassifiableEntry
	DestinationProbeFailure
	DirectoryCreateFailure
	ListingFailure
	CopyFailure
	PermissionChangeFailure
	TimestampChangeFailure
	SymlinkFailure
	Cancelled
)

var (
	ErrStatFailure             = errors.New("stat failure")
	ErrUnclassifiableEntry     = errors.New("unclassifiable entry")
	ErrDestinationProbeFailure = errors.New("destination probe failure")
	ErrDirectoryCreateFailure  = errors.New("directory create failure")
	ErrListingFailure          = errors.New("listing failure")
	ErrCopyFailure             = errors.New("copy failure")
	ErrPermissionChangeFailure = errors.New("permission change failure")
	ErrTimestampChangeFailure  = errors.New("timestamp change failure")
	ErrSymlinkFailure          = errors.New("symlink failure")
	ErrCancelled               = errors.New("cancelled")
)

var kindSentinels = map[ErrorKind]error{
	StatFailure:             ErrStatFailure,
	UnclassifiableEntry:     ErrUnclassifiableEntry,
	DestinationProbeFailure: ErrDestinationProbeFailure,
	DirectoryCreateFailure:  ErrDirectoryCreateFailure,
	ListingFailure:          ErrListingFailure,
	CopyFailure:             ErrCopyFailure,
	PermissionChangeFailure: ErrPermissionChangeFailure,
	TimestampChangeFailure:  ErrTimestampChangeFailure,
	SymlinkFailure:          ErrSymlinkFailure,
	Cancelled:               ErrCancelled,
}

func (k ErrorKind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("unknown error kind (%d)", int(k))
}

// 🧯 Error is the single error a copy completes with
type Error struct {
	Kind ErrorKind // Failed step
	Path string    // Path the step was operating on
	Err  error     // Underlying OS error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind, e.g. ErrCopyFailure
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

func newError(kind ErrorKind, path string, err error) error {
	return errors.WithStack(&Error{Kind: kind, Path: path, Err: err})
}

// KindOf returns the kind of the first *Error in err's chain, or 0
func KindOf(err error) ErrorKind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return 0
}
