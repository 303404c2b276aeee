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


package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/copydir/pkg/copydir"
	"github.com/walteh/copydir/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📋 CopyOperation copies one source tree into one destination
type CopyOperation struct {
	name        string
	source      string
	destination string
	opts        copydir.Options
	logger      *log.Logger
}

var _ Operation = (*CopyOperation)(nil)

// 🏭 NewCopy creates a copy operation. logger may be nil.
func NewCopy(name, source, destination string, opts copydir.Options, logger *log.Logger) *CopyOperation {
	return &CopyOperation{
		name:        name,
		source:      source,
		destination: destination,
		opts:        opts,
		logger:      logger,
	}
}

func (op *CopyOperation) Name() string { return op.name }

func (op *CopyOperation) Paths() (string, string) { return op.source, op.destination }

// 🏃 Execute runs the copy. With a logger the job gets a header and a
// summary counting every creation, and debug records go to the logger unless
// a recorder was set.
func (op *CopyOperation) Execute(ctx context.Context) (err error) {
	ctx = zerolog.Ctx(ctx).With().Str("job", op.name).Logger().WithContext(ctx)

	opts := op.opts
	if op.logger != nil {
		rec := op.logger.StartJob(ctx, log.Job{Name: op.name, Source: op.source, Destination: op.destination})
		defer func() { rec.End(ctx, err) }()
		opts.Observer = copydir.RecorderFunc(rec.Count)
		if opts.Recorder == nil {
			opts.Recorder = rec
		}
	}

	if err := copydir.Copy(ctx, op.source, op.destination, opts); err != nil {
		return errors.Errorf("copying %s: %w", op.name, err)
	}
	return nil
}
