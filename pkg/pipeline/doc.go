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

// Package pipeline runs a collection: an ordered list of query specs applied
// pass by pass to a host list.
//
// Collect is the core sequencing step. Passes run strictly one after another,
// each consuming the records returned by the previous pass, so a host ends up
// with one result-set per spec that succeeded for it. Hosts that fail a pass
// keep whatever they had before it.
//
// Run wraps Collect with the collaborators around it:
//
//	p := pipeline.New(orch,
//	    pipeline.WithDiscoverer(discovery.NewStatic("ws-001", "ws-002")),
//	    pipeline.WithCredentialSource(credential.Env{}),
//	    pipeline.WithSpecs(specs...),
//	)
//	report, err := p.Run(ctx)
//
// Every run gets a UUID that tags its log lines and failure events, and ends
// with one summary line per host.
package pipeline
