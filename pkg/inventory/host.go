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

package inventory

import (
	"fmt"
	"time"

	"github.com/jennib/DomainTricks/pkg/property"
)

// Host is the inventory record of one machine. ResultSets maps a query spec
// name to the property-sets that query returned for this host.
//
// Within a collection run entries are only ever added or overwritten by name,
// never removed.
type Host struct {
	Name       string                      `json:"name" yaml:"name"`
	LastSeen   *time.Time                  `json:"lastSeen,omitempty" yaml:"lastSeen,omitempty"`
	ResultSets map[string][]*property.Set `json:"resultSets" yaml:"resultSets"`
}

// NewHost creates a record with no result-sets.
func NewHost(name string) *Host {
	return &Host{
		Name:       name,
		ResultSets: make(map[string][]*property.Set),
	}
}

// NewHosts creates one empty record per name.
func NewHosts(names ...string) []*Host {
	hosts := make([]*Host, 0, len(names))
	for _, n := range names {
		hosts = append(hosts, NewHost(n))
	}
	return hosts
}

// Clone returns a copy whose map and slices can be modified without affecting h.
// Property-sets are shared since they are immutable.
func (h *Host) Clone() *Host {
	if h == nil {
		return nil
	}
	c := &Host{
		Name:       h.Name,
		ResultSets: make(map[string][]*property.Set, len(h.ResultSets)+1),
	}
	if h.LastSeen != nil {
		ts := *h.LastSeen
		c.LastSeen = &ts
	}
	for k, sets := range h.ResultSets {
		c.ResultSets[k] = append([]*property.Set(nil), sets...)
	}
	return c
}

// Merge stores sets under specName, replacing any previous entry with that
// name, and refreshes LastSeen. LastSeen strictly increases even if the clock
// does not advance between merges.
func (h *Host) Merge(specName string, sets []*property.Set, now time.Time) {
	if h.ResultSets == nil {
		h.ResultSets = make(map[string][]*property.Set)
	}
	if sets == nil {
		sets = []*property.Set{}
	}
	h.ResultSets[specName] = sets

	if h.LastSeen != nil && !now.After(*h.LastSeen) {
		now = h.LastSeen.Add(time.Nanosecond)
	}
	h.LastSeen = &now
}

// Has reports whether a result-set for specName exists.
func (h *Host) Has(specName string) bool {
	if h == nil {
		return false
	}
	_, ok := h.ResultSets[specName]
	return ok
}

// InstanceCount returns the number of property-sets across all result-sets.
func (h *Host) InstanceCount() int {
	if h == nil {
		return 0
	}
	n := 0
	for _, sets := range h.ResultSets {
		n += len(sets)
	}
	return n
}

// String returns a short description for logs.
func (h *Host) String() string {
	if h == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%d result-sets)", h.Name, len(h.ResultSets))
}
