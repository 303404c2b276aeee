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
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes operations one after another or side by side
type Runner struct {
	async bool
	limit int
}

// 🏗️ NewRunner creates a new runner. limit caps concurrent operations in
// async mode; zero or less means no cap.
func NewRunner(async bool, limit int) *Runner {
	return &Runner{
		async: async,
		limit: limit,
	}
}

// 🏃 Run executes every operation and returns the first error
func (r *Runner) Run(ctx context.Context, ops []Operation) error {
	if r.async {
		return r.runAsync(ctx, ops)
	}
	return r.runSync(ctx, ops)
}

// 🔄 runSync stops at the first failing operation
func (r *Runner) runSync(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := op.Execute(ctx); err != nil {
			return errors.Errorf("executing operation: %w", err)
		}
	}
	return nil
}

// ⚡ runAsync runs operations concurrently. Trees must not overlap; the
// first error cancels the context the others run with.
func (r *Runner) runAsync(ctx context.Context, ops []Operation) error {
	if a, b, ok := overlapping(ops); ok {
		return errors.Errorf("operations %s and %s overlap and cannot run concurrently", a.Name(), b.Name())
	}

	zerolog.Ctx(ctx).Debug().Int("operations", len(ops)).Int("limit", r.limit).Msg("running operations concurrently")

	g, gctx := errgroup.WithContext(ctx)
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}

	for _, op := range ops {
		g.Go(func() error {
			if err := op.Execute(gctx); err != nil {
				return errors.Errorf("executing operation: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
