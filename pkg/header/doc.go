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

// Package header provides the common document header for collector output.
//
// Every document the collector writes (inventory reports, host lists, config
// files) starts with the same three fields:
//
//	{
//	  "kind": "Inventory",
//	  "apiVersion": "inventory.domaintricks.io/v1",
//	  "metadata": {
//	    "timestamp": "2025-12-30T10:30:00Z",
//	    "version": "v1.0.0"
//	  }
//	}
//
// Consumers should check Kind and APIVersion before parsing the rest of the
// document. Timestamps are RFC3339 in UTC.
package header
