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
	"sort"
	"time"

	"github.com/jennib/DomainTricks/pkg/header"
	"github.com/jennib/DomainTricks/pkg/sink"
)

const (
	// APIDomain is the domain for inventory documents.
	APIDomain = "inventory.domaintricks.io"

	// APIVersion is the version of the inventory document schema.
	APIVersion = "v1"

	// FullAPIVersion is the apiVersion field value of an inventory document.
	FullAPIVersion = APIDomain + "/" + APIVersion
)

// Report is the document produced by one collection run.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// RunID identifies the collection run the report came from.
	RunID string `json:"runId" yaml:"runId"`

	// Scope is the discovery scope the hosts were enumerated from.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`

	// Specs are the query specs in the order they ran.
	Specs []QuerySpec `json:"specs" yaml:"specs"`

	// Hosts holds one record per discovered host.
	Hosts []*Host `json:"hosts" yaml:"hosts"`

	// Events are the per-host failures observed during the run.
	Events []sink.Event `json:"events,omitempty" yaml:"events,omitempty"`
}

// NewReport creates a report with an initialized header. Hosts are sorted by
// name so documents are stable across runs.
func NewReport(runID, scope, version string, specs []QuerySpec, hosts []*Host, events []sink.Event, at time.Time) *Report {
	r := &Report{
		RunID:  runID,
		Scope:  scope,
		Specs:  specs,
		Hosts:  SortedByName(hosts),
		Events: events,
	}
	r.InitAt(header.KindInventory, FullAPIVersion, version, at)
	return r
}

// SortedByName returns a copy of hosts sorted by name. Nil entries are
// dropped.
func SortedByName(hosts []*Host) []*Host {
	out := make([]*Host, 0, len(hosts))
	for _, h := range hosts {
		if h != nil {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Host returns the record for name, or nil.
func (r *Report) Host(name string) *Host {
	for _, h := range r.Hosts {
		if h != nil && h.Name == name {
			return h
		}
	}
	return nil
}

// Summary is the one-line outcome for a host after a run.
type Summary struct {
	Host       string     `json:"host" yaml:"host"`
	ResultSets int        `json:"resultSets" yaml:"resultSets"`
	Instances  int        `json:"instances" yaml:"instances"`
	LastSeen   *time.Time `json:"lastSeen,omitempty" yaml:"lastSeen,omitempty"`
	Failures   int        `json:"failures" yaml:"failures"`
}

// String renders the summary the way the collector logs it.
func (s Summary) String() string {
	seen := "never"
	if s.LastSeen != nil {
		seen = s.LastSeen.Format(time.RFC1123)
	}
	return fmt.Sprintf("%s: %d instances. Last seen %s", s.Host, s.Instances, seen)
}

// Summaries returns one summary per host, in report order.
func (r *Report) Summaries() []Summary {
	failures := make(map[string]int, len(r.Events))
	for _, e := range r.Events {
		failures[e.Host]++
	}
	out := make([]Summary, 0, len(r.Hosts))
	for _, h := range r.Hosts {
		if h == nil {
			continue
		}
		out = append(out, Summary{
			Host:       h.Name,
			ResultSets: len(h.ResultSets),
			Instances:  h.InstanceCount(),
			LastSeen:   h.LastSeen,
			Failures:   failures[h.Name],
		})
	}
	return out
}

// Flatten implements the table flattening used by the serializer.
// Keys are host.spec[i].property.
func (r *Report) Flatten() map[string]any {
	out := map[string]any{
		"kind":       r.Kind.String(),
		"apiVersion": r.APIVersion,
		"runId":      r.RunID,
	}
	for k, v := range r.Metadata {
		out["metadata."+k] = v
	}
	for _, h := range r.Hosts {
		if h == nil {
			continue
		}
		if h.LastSeen != nil {
			out[h.Name+".lastSeen"] = h.LastSeen.UTC().Format(time.RFC3339)
		}
		for spec, sets := range h.ResultSets {
			if len(sets) == 0 {
				out[fmt.Sprintf("%s.%s", h.Name, spec)] = "<none>"
			}
			for i, s := range sets {
				for name, v := range s.Flatten() {
					out[fmt.Sprintf("%s.%s[%d].%s", h.Name, spec, i, name)] = v
				}
			}
		}
	}
	for i, e := range r.Events {
		out[fmt.Sprintf("events[%d]", i)] = fmt.Sprintf("%s %s %s: %s", e.Host, e.Spec, e.Code, e.Message)
	}
	return out
}
