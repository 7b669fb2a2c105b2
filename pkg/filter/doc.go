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

// Package filter parses and evaluates WQL-style filter expressions against
// property-sets.
//
// The grammar covers the WHERE clauses inventory queries actually use:
//
//	DriveType = 3
//	Name LIKE 'C%' AND NOT (Size < 1000000 OR Compressed = TRUE)
//	VolumeName IS NOT NULL
//
// Comparisons take a property name on one side and a literal on the other.
// Keywords, property names and string comparisons are case-insensitive.
// A property that is missing or null fails every comparison but satisfies
// IS NULL.
//
// Executors that cannot push a filter to the remote side parse it once and
// call Match on each returned instance. Executors that can push it down still
// call Parse so a malformed filter fails before any network I/O.
package filter
