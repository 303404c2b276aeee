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

	"github.com/rs/zerolog"
)

// CreationPrefix marks a write action in debug output
const CreationPrefix = ">> "

type logRecorder struct {
	logger *zerolog.Logger
}

// 🪵 NewLogRecorder records creations as zerolog info events
func NewLogRecorder(logger *zerolog.Logger) Recorder {
	return &logRecorder{logger: logger}
}

func (l *logRecorder) RecordCreation(ctx context.Context, kind EntryKind, path string) {
	l.logger.Info().
		Stringer("kind", kind).
		Str("path", path).
		Msg(CreationPrefix + path)
}
