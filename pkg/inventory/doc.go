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

// Package inventory defines the per-host inventory record, the query
// specification that fills it, and the report a collection run produces.
//
// A Host starts empty and gains one ResultSets entry per successful query
// pass, keyed by the QuerySpec name:
//
//	h := inventory.NewHost("H1")
//	h.Merge("disks", sets, time.Now())
//	h.Has("disks") // true
//
// Hosts are cloned before a merge so the record handed to a pass is never
// modified; a failed pass leaves the caller's record untouched.
package inventory
