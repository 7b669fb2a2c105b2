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

// Package property defines the structured property-set returned by remote
// inventory queries.
//
// A Set is an ordered mapping from property name to a Reading. Readings come
// from a small closed set of kinds:
//   - string
//   - number (int64, uint64 or float64)
//   - boolean
//   - null
//   - opaque, a marker naming a native type that has no counterpart above
//
// Sets keep insertion order through JSON and YAML round-trips, so a disk
// reported as {"DriveType":3,"Name":"C:"} is written back in the same order:
//
//	disk := property.NewSet(
//	    property.P("DriveType", 3),
//	    property.P("Name", "C:"),
//	)
//	name, err := disk.GetString("Name")
//
// Sets returned by an executor are shared between host records and must not
// be mutated. Use Clone, Select or Without to derive a new set.
package property
