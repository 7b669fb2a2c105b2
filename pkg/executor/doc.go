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

// Package executor defines the remote query contract the orchestrator fans
// out, plus the helpers every implementation shares.
//
// An Executor runs one query specification against one host with the
// batch's credentials and returns zero or more property-sets. Failures are
// returned as structured errors whose kind tells the caller what happened:
//
//   - precondition: empty host identifier, rejected before any I/O
//   - connection: unreachable host, refused or timed out connection, rejected credentials
//   - query: malformed filter, unknown class or unknown field
//
// Concrete executors live in sub-packages: cim talks to a CIM-over-HTTP
// gateway, snmp reads MIB tables.
package executor
