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

// Package discovery supplies the initial host list for a collection run.
//
// Three discoverers are provided:
//
//   - Static: a fixed list of names.
//   - File: a host file (YAML or JSON HostList, or plain text with one name
//     per line) read from disk, an http(s) URL or a cm://namespace/name
//     ConfigMap.
//   - Kubernetes: cluster nodes matching a label selector, identified by a
//     chosen address type.
//
// All of them trim names and drop blanks and case-insensitive duplicates, and
// return records with empty result-sets. Errors are returned to the caller
// unchanged in kind.
package discovery
