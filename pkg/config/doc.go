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


// Package config loads copy jobs from YAML, JSON or HCL files.
//
//	┌──────────────┐     ┌──────────┐     ┌──────────┐     ┌─────────────────┐
//	│ copydir.yaml │ ──▶ │  Parser  │ ──▶ │ Validate │ ──▶ │ copydir.Options │
//	└──────────────┘     └──────────┘     └──────────┘     └─────────────────┘
//
// 🎯 Purpose:
// - Picks a parser by file extension
// - Resolves relative paths against the config file's directory
// - Turns each copy into copydir options, including its filters
//
// 📝 Formats:
//
//	# copydir.yaml
//	async: false
//	copies:
//	  - name: docs
//	    source: ./docs
//	    destination: ./site/docs
//	    include: ["**/*.md"]
//	    modified_stats:
//	      mode: "0644"
//
//	# copydir.hcl
//	copy "docs" {
//	  source      = "${env.HOME}/docs"
//	  destination = "./site/docs"
//	  include     = ["**/*.md"]
//	  modified_stats {
//	    mode = "0644"
//	  }
//	}
//
// 🔍 Example:
//
//	cfg, err := config.Load(ctx, "copydir.yaml")
//	if err != nil {
//		return err
//	}
//	for _, c := range cfg.Copies {
//		opts, err := c.Options(ctx)
//		...
//	}
package config
