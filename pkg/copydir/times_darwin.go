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

//go:build darwin

package copydir

import (
	"os"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

func sourceAccessTime(fsys afero.Fs, path string, info os.FileInfo) time.Time {
	if _, ok := fsys.(*afero.OsFs); ok {
		var st unix.Stat_t
		if err := unix.Lstat(path, &st); err == nil {
			return time.Unix(st.Atimespec.Unix())
		}
	}
	return info.ModTime()
}
