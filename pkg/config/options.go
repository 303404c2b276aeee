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


package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/copydir/pkg/copydir"
	"github.com/walteh/copydir/pkg/filter"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Options converts the copy into copydir options. The ignore file, when
// relative, is looked up inside the source tree and must exist.
func (c *Copy) Options(ctx context.Context) (copydir.Options, error) {
	opts, err := c.options(false)
	if err != nil {
		return copydir.Options{}, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("copy", c.Name).
		Str("source", c.Source).
		Str("destination", c.Destination).
		Bool("filtered", opts.Filter != nil).
		Bool("modified_stats", opts.ModifiedStats != nil).
		Msg("resolved copy options")

	return opts, nil
}

// options builds the copydir options; allowMissingIgnore lets validation pass
// before the source tree exists
func (c *Copy) options(allowMissingIgnore bool) (copydir.Options, error) {
	policy, err := copydir.ParseSymlinkPolicy(c.Symlinks)
	if err != nil {
		return copydir.Options{}, err
	}

	stats, err := c.ModifiedStats.parse()
	if err != nil {
		return copydir.Options{}, errors.Errorf("modified_stats: %w", err)
	}

	var filters []copydir.Filter
	if len(c.Include) > 0 || len(c.Exclude) > 0 {
		globs, err := filter.Globs(c.Source, c.Include, c.Exclude)
		if err != nil {
			return copydir.Options{}, err
		}
		filters = append(filters, globs)
	}

	if c.IgnoreFile != "" {
		path := c.IgnoreFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Source, path)
		}
		ignored, err := filter.IgnoreFile(c.filesystem(), c.Source, path)
		switch {
		case err == nil:
			filters = append(filters, ignored)
		case allowMissingIgnore && errors.Is(err, os.ErrNotExist):
			// the source tree may not exist yet
		default:
			return copydir.Options{}, err
		}
	}

	opts := copydir.Options{
		Overwrite:     c.Overwrite,
		Debug:         c.Debug,
		ModifiedStats: stats,
		Symlinks:      policy,
		Fs:            c.fs,
	}
	if len(filters) > 0 {
		opts.Filter = filter.All(filters...)
	}
	return opts, nil
}

// parse converts the textual stats; nil and empty stats mean none
func (m *ModifiedStats) parse() (*copydir.ModifiedStats, error) {
	if m == nil || (m.Mode == "" && m.AccessTime == "" && m.ModifiedTime == "") {
		return nil, nil
	}

	out := &copydir.ModifiedStats{}

	if m.Mode != "" {
		mode, err := ParseMode(m.Mode)
		if err != nil {
			return nil, err
		}
		out.Mode = &mode
	}

	if m.AccessTime != "" {
		t, err := time.Parse(time.RFC3339, m.AccessTime)
		if err != nil {
			return nil, errors.Errorf("access_time: %w", err)
		}
		out.AccessTime = &t
	}

	if m.ModifiedTime != "" {
		t, err := time.Parse(time.RFC3339, m.ModifiedTime)
		if err != nil {
			return nil, errors.Errorf("modified_time: %w", err)
		}
		out.ModifiedTime = &t
	}

	return out, nil
}

// 🔢 ParseMode reads octal permission bits such as "0644", "644" or "0o755"
func ParseMode(s string) (os.FileMode, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0o"), "0O")
	v, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return 0, errors.Errorf("invalid mode %q: %w", s, err)
	}
	if v > 0o777 {
		return 0, errors.Errorf("invalid mode %q: only permission bits are supported", s)
	}
	return os.FileMode(v), nil
}
