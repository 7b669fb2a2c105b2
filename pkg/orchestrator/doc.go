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

// Package orchestrator fans one query spec out across a host list and merges
// the results back into per-host records.
//
// A pass dispatches one executor call per host, bounded by the configured
// concurrency, and waits for every call before returning. Hosts are
// independent: a failure (unreachable host, rejected credentials, bad query,
// empty host name, even an executor panic) is reported to the sink and the
// host's record is returned unchanged, while every other host proceeds.
//
//	orch := orchestrator.New(exec,
//	    orchestrator.WithConcurrency(32),
//	    orchestrator.WithTimeout(20*time.Second),
//	    orchestrator.WithSink(recorder),
//	)
//	hosts, err := orch.RunPass(ctx, hosts, spec, creds)
//
// Successful hosts come back as copies, so the caller's input slice and
// records are never modified. Results arrive in completion order.
package orchestrator
