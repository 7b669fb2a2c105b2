// Copyright (c) 2026, DomainTricks Authors. All rights reserved.
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

// Package defaults provides centralized configuration constants for the collector.
//
// This package defines timeout values, concurrency limits, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Timeout Categories
//
//   - Executor timeouts: For a single remote query against one host
//   - Orchestration defaults: Pass concurrency and daemon refresh cadence
//   - Server timeouts: For HTTP server configuration
//   - Kubernetes timeouts: For node discovery and ConfigMap output
//   - HTTP client timeouts: For outbound HTTP requests
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ExecutorTimeout)
//	defer cancel()
//
// Callers should respect parent context deadlines when they are shorter.
package defaults
