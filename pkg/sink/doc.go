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

// Package sink receives structured per-host failure events from the
// orchestrator.
//
// The orchestrator never formats user-facing text and never aborts a pass
// because one host failed. Instead it hands an Event describing the host,
// the query spec name, the error kind and code to a Sink. Callers pick
// where events go:
//
//	rec := sink.NewRecorder(1000)
//	orch := orchestrator.New(exec, orchestrator.WithSink(sink.Multi{sink.Logger{}, rec}))
//
// Logger writes events through slog at warn level, Recorder keeps them in
// memory for reports and the HTTP API, and Discard drops them.
package sink
