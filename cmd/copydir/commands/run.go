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


package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/copydir/cmd/copydir/opts"
	"github.com/walteh/copydir/pkg/config"
	"github.com/walteh/copydir/pkg/log"
	"github.com/walteh/copydir/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the command running every copy in the config file
func NewRunCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		async bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the copies listed in the config file",
		Long: `Run loads the config file and copies every listed tree.
Copies run in order and stop at the first failure unless async is enabled,
in which case trees that do not overlap are copied concurrently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			cfg, err := config.Load(ctx, rootOpts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("async") {
				cfg.Async = async
			}

			ops, err := operation.FromConfig(ctx, cfg, logger)
			if err != nil {
				return errors.Errorf("building operations: %w", err)
			}

			logger.Header(fmt.Sprintf("running %d copies", len(ops)))
			if limit > 0 && !cfg.Async {
				logger.Warning("--limit has no effect when copies run in order")
			}

			if err := operation.NewRunner(cfg.Async, limit).Run(ctx, ops); err != nil {
				logger.Errorf("copy failed: %v", err)
				return err
			}

			logger.LogNewline()
			logger.Successf("copied %d trees", len(ops))
			return nil
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "run copies concurrently, overriding the config file")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of concurrent copies (0 means no limit)")

	return cmd
}
