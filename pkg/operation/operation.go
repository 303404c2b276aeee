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

	"github.com/walteh/copydir/pkg/config"
	"github.com/walteh/copydir/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one unit of work the runner executes
type Operation interface {
	// Name identifies the operation in logs and errors
	Name() string
	// Paths returns the tree read from and the tree written to
	Paths() (source, destination string)
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 🏭 FromConfig builds one copy operation per configured copy. When logger
// is set every job reports through it.
func FromConfig(ctx context.Context, cfg *config.Config, logger *log.Logger) ([]Operation, error) {
	ops := make([]Operation, 0, len(cfg.Copies))
	for i := range cfg.Copies {
		c := &cfg.Copies[i]
		opts, err := c.Options(ctx)
		if err != nil {
			return nil, errors.Errorf("building options for %s: %w", c.Name, err)
		}
		ops = append(ops, &CopyOperation{
			name:        c.Name,
			source:      c.Source,
			destination: c.Destination,
			opts:        opts,
			logger:      logger,
		})
	}
	return ops, nil
}

// 🔀 overlapping reports the first pair of operations whose trees touch.
// Two operations touch when a destination lies within the other's source or
// destination.
func overlapping(ops []Operation) (Operation, Operation, bool) {
	for i := 0; i < len(ops); i++ {
		si, di := ops[i].Paths()
		for j := i + 1; j < len(ops); j++ {
			sj, dj := ops[j].Paths()
			if config.Within(di, dj) || config.Within(dj, di) || config.Within(si, dj) || config.Within(sj, di) {
				return ops[i], ops[j], true
			}
		}
	}
	return nil, nil, false
}
