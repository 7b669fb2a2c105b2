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

// Package server is the HTTP server of the inventory daemon.
//
// It serves three system endpoints without middleware:
//
//	GET /health   liveness, always 200
//	GET /ready    200 once SetReady(true) was called, 503 before
//	GET /metrics  Prometheus metrics
//
// Handlers passed with WithHandler are mounted under their mux pattern and
// wrapped, outermost first, in metrics, API version negotiation, request ID,
// panic recovery, rate limiting and debug request logging.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("domaintricksd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /v1/inventory": svc.HandleInventory,
//	    }),
//	)
//	err := s.Run(ctx, svc.Loop)
//
// Run installs SIGINT and SIGTERM handling and shuts down gracefully,
// giving in-flight requests ShutdownTimeout to finish. PORT and
// SHUTDOWN_TIMEOUT_SECONDS override the defaults.
//
// # Request IDs
//
// A valid UUID in X-Request-Id is kept, anything else is replaced by a new
// one. The ID is echoed in the response header and in every error body.
//
// # Errors
//
// Errors are JSON:
//
//	{
//	  "code": "NOT_FOUND",
//	  "message": "host not in inventory",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-02T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps structured error codes to HTTP status: invalid
// input 400, not found 404, rate limited 429, remote connection failures
// 503, timeouts 504, everything else 500.
package server
