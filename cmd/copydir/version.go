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


package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Module    string `json:"module"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Revision  string `json:"revision,omitempty"`
	Time      string `json:"time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// GetVersionInfo reads the version from the embedded build info
func GetVersionInfo() *VersionInfo {
	return versionFromBuildInfo(debug.ReadBuildInfo())
}

func versionFromBuildInfo(buildInfo *debug.BuildInfo, ok bool) *VersionInfo {
	info := &VersionInfo{
		Module:    "github.com/walteh/copydir",
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if !ok || buildInfo == nil {
		return info
	}

	if buildInfo.Main.Path != "" {
		info.Module = buildInfo.Main.Path
	}
	if v := buildInfo.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.time":
			info.Time = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

// FormatVersion renders the version for humans
func FormatVersion() string {
	return GetVersionInfo().String()
}

func (v *VersionInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚀 copydir %s\n", v.Version)
	fmt.Fprintf(&b, "Module:    %s\n", v.Module)
	if v.Revision != "" {
		modified := ""
		if v.Modified {
			modified = " (modified)"
		}
		fmt.Fprintf(&b, "Revision:  %s%s\n", v.Revision, modified)
	}
	if v.Time != "" {
		fmt.Fprintf(&b, "Built:     %s\n", v.Time)
	}
	fmt.Fprintf(&b, "Go:        %s\n", v.GoVersion)
	fmt.Fprintf(&b, "Platform:  %s\n", v.Platform)
	return b.String()
}
