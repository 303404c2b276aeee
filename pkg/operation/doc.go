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


/*
Package operation turns configured copies into operations and runs them.

	┌────────────┐     ┌───────────────┐     ┌────────┐     ┌──────────────┐
	│   Config   │ ──▶ │ CopyOperation │ ──▶ │ Runner │ ──▶ │ copydir.Copy │
	└────────────┘     └───────────────┘     └────────┘     └──────────────┘

🎯 Purpose:
- Builds one CopyOperation per configured copy
- Runs operations in order, or concurrently when the config asks for async
- Reports each job through pkg/log when a logger is supplied

⚡ Concurrency:
Sequential runs stop at the first failure. Async runs refuse operations whose
trees overlap. The first failure cancels the context of the remaining ones.

🔍 Example:

	ops, err := operation.FromConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return operation.NewRunner(cfg.Async, 4).Run(ctx, ops)
*/
package operation
