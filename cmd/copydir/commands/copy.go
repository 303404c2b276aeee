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
	"github.com/spf13/cobra"
	"github.com/walteh/copydir/cmd/copydir/opts"
	"github.com/walteh/copydir/pkg/config"
	"github.com/walteh/copydir/pkg/log"
	"github.com/walteh/copydir/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCopyCmd creates the command copying a single tree given on the
// command line
func NewCopyCmd(rootOpts *opts.RootOpts) *cobra.Command {
	c := &config.Copy{Name: "copy", ModifiedStats: &config.ModifiedStats{}}

	cmd := &cobra.Command{
		Use:   "copy SOURCE DESTINATION",
		Short: "Copy one directory tree",
		Long: `Copy recursively copies SOURCE to DESTINATION. Directories are created as
needed, existing files are kept unless --overwrite is set, and --mode, --atime
and --mtime are applied to everything written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			c.Source, c.Destination = args[0], args[1]
			if err := c.Validate(); err != nil {
				return errors.Errorf("validating arguments: %w", err)
			}

			copyOpts, err := c.Options(ctx)
			if err != nil {
				return errors.Errorf("building options: %w", err)
			}

			op := operation.NewCopy(c.Name, c.Source, c.Destination, copyOpts, logger)
			if err := op.Execute(ctx); err != nil {
				logger.Errorf("copy failed: %v", err)
				return err
			}

			logger.Successf("copied %s", c)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&c.Overwrite, "overwrite", false, "replace files that already exist at the destination")
	flags.BoolVar(&c.Debug, "debug", false, "print every created directory and written file")
	flags.StringVar(&c.Symlinks, "symlinks", "directory", "how to copy symbolic links: directory or preserve")
	flags.StringSliceVar(&c.Include, "include", nil, "glob of files to copy, relative to SOURCE (repeatable)")
	flags.StringSliceVar(&c.Exclude, "exclude", nil, "glob of entries to skip, relative to SOURCE (repeatable)")
	flags.StringVar(&c.IgnoreFile, "ignore-file", "", "gitignore style file listing entries to skip, relative paths are read from SOURCE")
	flags.StringVar(&c.ModifiedStats.Mode, "mode", "", "octal permission bits to set on everything written")
	flags.StringVar(&c.ModifiedStats.AccessTime, "atime", "", "RFC3339 access time to set on everything written")
	flags.StringVar(&c.ModifiedStats.ModifiedTime, "mtime", "", "RFC3339 modification time to set on everything written")

	return cmd
}
