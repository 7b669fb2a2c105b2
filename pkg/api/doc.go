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

// Package api is the inventory daemon: a collection loop that keeps the
// latest report fresh and the HTTP handlers that expose it.
//
// Endpoints, all JSON unless ?format=yaml or ?format=table is given:
//
//	GET  /v1/inventory         latest report
//	GET  /v1/inventory/{host}  one host record (case-insensitive name)
//	GET  /v1/events            failure events of the latest run (?host=, ?kind=)
//	GET  /v1/status            collection loop state
//	POST /v1/collect           queue an immediate run, 202 Accepted
//
// Until the first run succeeds the inventory endpoints answer 503 with
// Retry-After, and /ready reports not ready. A failed run keeps the
// previous report.
package api
