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
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/copydir/pkg/copydir"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: "copydir.yaml",
			config: `
async: true
copies:
  - name: docs
    source: ./docs
    destination: /out/docs
    overwrite: true
    debug: true
    symlinks: preserve
    include: ["**/*.md"]
    exclude: ["**/drafts/**"]
    modified_stats:
      mode: "0644"
      modified_time: "2024-01-02T03:04:05Z"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Async, "async should be true")
				require.Len(t, cfg.Copies, 1, "should have 1 copy")
				c := cfg.Copies[0]
				assert.Equal(t, "docs", c.Name, "name should match")
				assert.Equal(t, filepath.FromSlash("/cfg/docs"), c.Source, "source should be resolved against the config dir")
				assert.Equal(t, filepath.FromSlash("/out/docs"), c.Destination, "absolute destination should be kept")
				assert.True(t, c.Overwrite, "overwrite should match")
				assert.True(t, c.Debug, "debug should match")
				assert.Equal(t, "preserve", c.Symlinks, "symlinks should match")
				assert.Equal(t, []string{"**/*.md"}, c.Include, "include should match")
				assert.Equal(t, []string{"**/drafts/**"}, c.Exclude, "exclude should match")
				require.NotNil(t, c.ModifiedStats, "modified stats should be set")
				assert.Equal(t, "0644", c.ModifiedStats.Mode, "mode should match")
			},
		},
		{
			name: "minimal_yaml",
			file: "copydir.yml",
			config: `
copies:
  - source: a
    destination: b
`,
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Async, "async should be false")
				require.Len(t, cfg.Copies, 1, "should have 1 copy")
				assert.Equal(t, "copies[0]", cfg.Copies[0].Name, "name should default to the index")
				assert.Nil(t, cfg.Copies[0].ModifiedStats, "modified stats should be nil")
			},
		},
		{
			name: "valid_json",
			file: "copydir.json",
			config: `{
				"copies": [
					{"source": "/a", "destination": "/b", "exclude": ["*.tmp"]},
					{"source": "/c", "destination": "/d", "modified_stats": {"access_time": "2024-01-02T03:04:05Z"}}
				]
			}`,
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Copies, 2, "should have 2 copies")
				assert.Equal(t, []string{"*.tmp"}, cfg.Copies[0].Exclude, "exclude should match")
				assert.Equal(t, "2024-01-02T03:04:05Z", cfg.Copies[1].ModifiedStats.AccessTime, "access time should match")
			},
		},
		{
			name: "valid_hcl",
			file: "copydir.hcl",
			config: `
async = true

copy "assets" {
  source      = "/assets"
  destination = "/out/${lower("ASSETS")}"
  include     = concat(["**/*.png"], ["**/*.svg"])

  modified_stats {
    mode = "0755"
  }
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Async, "async should be true")
				require.Len(t, cfg.Copies, 1, "should have 1 copy")
				c := cfg.Copies[0]
				assert.Equal(t, "assets", c.Name, "label should become the name")
				assert.Equal(t, filepath.FromSlash("/out/assets"), c.Destination, "expression should be evaluated")
				assert.Equal(t, []string{"**/*.png", "**/*.svg"}, c.Include, "include should match")
				require.NotNil(t, c.ModifiedStats, "modified stats should be set")
				assert.Equal(t, "0755", c.ModifiedStats.Mode, "mode should match")
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "copydir.yaml",
			config:      "copies:\n  - source: a\n    destination: b\n    force: true\n",
			wantErr:     true,
			errContains: "force",
		},
		{
			name:        "unknown_json_field",
			file:        "copydir.json",
			config:      `{"copies": [{"source": "a", "destination": "b"}], "clean": true}`,
			wantErr:     true,
			errContains: "clean",
		},
		{
			name:        "no_copies",
			file:        "copydir.yaml",
			config:      "async: true\n",
			wantErr:     true,
			errContains: "at least one copy is required",
		},
		{
			name:        "missing_source",
			file:        "copydir.yaml",
			config:      "copies:\n  - destination: b\n",
			wantErr:     true,
			errContains: "copies[0]: source is required",
		},
		{
			name:        "missing_destination",
			file:        "copydir.json",
			config:      `{"copies": [{"source": "/a"}]}`,
			wantErr:     true,
			errContains: "copies[0]: destination is required",
		},
		{
			name:        "destination_inside_source",
			file:        "copydir.yaml",
			config:      "copies:\n  - source: /a\n    destination: /a/b\n",
			wantErr:     true,
			errContains: "is inside source",
		},
		{
			name:        "bad_symlink_policy",
			file:        "copydir.yaml",
			config:      "copies:\n  - source: /a\n    destination: /b\n    symlinks: follow\n",
			wantErr:     true,
			errContains: "invalid symlink policy",
		},
		{
			name:        "bad_pattern",
			file:        "copydir.yaml",
			config:      "copies:\n  - source: /a\n    destination: /b\n    include: [\"[a-\"]\n",
			wantErr:     true,
			errContains: "invalid glob pattern",
		},
		{
			name:        "bad_mode",
			file:        "copydir.yaml",
			config:      "copies:\n  - source: /a\n    destination: /b\n    modified_stats:\n      mode: \"0999\"\n",
			wantErr:     true,
			errContains: "invalid mode",
		},
		{
			name:        "bad_time",
			file:        "copydir.yaml",
			config:      "copies:\n  - source: /a\n    destination: /b\n    modified_stats:\n      modified_time: yesterday\n",
			wantErr:     true,
			errContains: "modified_time",
		},
		{
			name:        "hcl_syntax_error",
			file:        "copydir.hcl",
			config:      `copy "x" {`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			file:        "copydir.toml",
			config:      "",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			configPath := filepath.Join(string(filepath.Separator)+"cfg", tt.file)
			require.NoError(t, afero.WriteFile(fsys, configPath, []byte(tt.config), 0o644), "writing config file should succeed")

			cfg, err := LoadFs(testContext(t), fsys, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "copydir.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("copies:\n  - source: src\n    destination: dst\n"), 0o644))

	cfg, err := Load(testContext(t), configPath)
	require.NoError(t, err, "Load should succeed")
	assert.Equal(t, filepath.Join(dir, "src"), cfg.Copies[0].Source, "source should be resolved")
	assert.Equal(t, filepath.Join(dir, "dst"), cfg.Copies[0].Destination, "destination should be resolved")

	_, err = Load(testContext(t), filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHCLReadsEnvironment(t *testing.T) {
	t.Setenv("COPYDIR_TEST_ROOT", "/from/env")

	cfg, err := (&HCLParser{}).Parse(testContext(t), []byte(`
copy "env" {
  source      = env.COPYDIR_TEST_ROOT
  destination = "/out"
}
`))
	require.NoError(t, err, "Parse should succeed")
	require.Len(t, cfg.Copies, 1, "should have 1 copy")
	assert.Equal(t, "/from/env", cfg.Copies[0].Source, "source should come from the environment")
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		file string
		want Parser
	}{
		{file: "a.yaml", want: &YAMLParser{}},
		{file: "a.YML", want: &YAMLParser{}},
		{file: "a.json", want: &JSONParser{}},
		{file: "dir.d/a.hcl", want: &HCLParser{}},
		{file: "a.toml", want: nil},
		{file: "yaml", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got := GetParser(tt.file)
			if tt.want == nil {
				assert.Nil(t, got, "no parser should match")
				return
			}
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}

func TestCopyString(t *testing.T) {
	c := &Copy{Source: "/a", Destination: "/b"}
	assert.Equal(t, "/a -> /b", c.String(), "String() should match")
}

func TestWithin(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{parent: "/a", child: "/a", want: true},
		{parent: "/a", child: "/a/b", want: true},
		{parent: "/a", child: "/ab", want: false},
		{parent: "/a/b", child: "/a", want: false},
		{parent: "/a", child: "/b/..a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"_"+tt.child, func(t *testing.T) {
			assert.Equal(t, tt.want, Within(filepath.FromSlash(tt.parent), filepath.FromSlash(tt.child)))
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    os.FileMode
		wantErr bool
	}{
		{input: "0644", want: 0o644},
		{input: "755", want: 0o755},
		{input: "0o700", want: 0o700},
		{input: "0", want: 0},
		{input: "0999", wantErr: true},
		{input: "01777", wantErr: true},
		{input: "rwx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "mode should match")
		})
	}
}

func TestCopyOptions(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, ".copyignore"), []byte("*.bak\n"), 0o644))

	c := &Copy{
		Name:        "job",
		Source:      src,
		Destination: filepath.Join(t.TempDir(), "out"),
		Overwrite:   true,
		Symlinks:    "preserve",
		Include:     []string{"**/*.go"},
		IgnoreFile:  ".copyignore",
		ModifiedStats: &ModifiedStats{
			Mode:         "0640",
			AccessTime:   "2024-01-02T03:04:05Z",
			ModifiedTime: "2024-02-03T04:05:06+01:00",
		},
	}
	require.NoError(t, c.Validate())

	opts, err := c.Options(testContext(t))
	require.NoError(t, err, "Options should succeed")

	assert.True(t, opts.Overwrite, "overwrite should carry over")
	assert.False(t, opts.Debug, "debug should carry over")
	assert.Equal(t, "preserve", opts.Symlinks.String(), "symlink policy should be parsed")

	require.NotNil(t, opts.ModifiedStats, "modified stats should be set")
	require.NotNil(t, opts.ModifiedStats.Mode)
	assert.Equal(t, os.FileMode(0o640), *opts.ModifiedStats.Mode, "mode should be parsed")
	require.NotNil(t, opts.ModifiedStats.AccessTime)
	assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(*opts.ModifiedStats.AccessTime), "access time should be parsed")
	require.NotNil(t, opts.ModifiedStats.ModifiedTime)
	assert.True(t, time.Date(2024, 2, 3, 3, 5, 6, 0, time.UTC).Equal(*opts.ModifiedStats.ModifiedTime), "modified time should be parsed with its offset")

	require.NotNil(t, opts.Filter, "filters should be combined")
	assert.True(t, opts.Filter(copydir.KindFile, filepath.Join(src, "main.go"), "main.go"), "included file should pass")
	assert.False(t, opts.Filter(copydir.KindFile, filepath.Join(src, "main.bak"), "main.bak"), "ignored file should be rejected")
	assert.False(t, opts.Filter(copydir.KindFile, filepath.Join(src, "README.md"), "README.md"), "file outside include should be rejected")
}

func TestCopyOptionsWithoutFilters(t *testing.T) {
	c := &Copy{Source: "/a", Destination: "/b", ModifiedStats: &ModifiedStats{}}
	require.NoError(t, c.Validate())

	opts, err := c.Options(testContext(t))
	require.NoError(t, err)
	assert.Nil(t, opts.Filter, "no patterns means no filter")
	assert.Nil(t, opts.ModifiedStats, "empty stats mean none")
}

func TestCopyOptionsIgnoreFileOnLoadedFs(t *testing.T) {
	tests := []struct {
		name       string
		ignoreFile string
		wantErr    bool
	}{
		{name: "present", ignoreFile: ".copyignore"},
		{name: "missing", ignoreFile: ".copyignore-typo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "/work/src/.copyignore", []byte("*.key\n"), 0o644))
			require.NoError(t, afero.WriteFile(fsys, "/work/copydir.yaml", []byte(`
copies:
  - name: job
    source: ./src
    destination: ./out
    ignore_file: `+tt.ignoreFile+`
`), 0o644))

			cfg, err := LoadFs(ctx, fsys, "/work/copydir.yaml")
			require.NoError(t, err, "validation should not need the ignore file")

			opts, err := cfg.Copies[0].Options(ctx)
			if tt.wantErr {
				require.Error(t, err, "a missing ignore file should fail the copy")
				assert.ErrorIs(t, err, os.ErrNotExist)
				return
			}
			require.NoError(t, err)
			assert.Same(t, fsys, opts.Fs, "copy should run on the filesystem the config came from")
			require.NotNil(t, opts.Filter)
			assert.False(t, opts.Filter(copydir.KindFile, "/work/src/secret.key", "secret.key"), "ignored file should be rejected")
			assert.True(t, opts.Filter(copydir.KindFile, "/work/src/main.go", "main.go"), "other files should pass")
		})
	}
}
