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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennib/DomainTricks/pkg/property"
)

func disk(name string) *property.Set {
	return property.NewSet(property.P("DriveType", 3), property.P("Name", name))
}

func TestHost_Merge(t *testing.T) {
	h := NewHost("H1")
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	h.Merge("disks", []*property.Set{disk("C:")}, now)

	require.True(t, h.Has("disks"))
	assert.Len(t, h.ResultSets["disks"], 1)
	require.NotNil(t, h.LastSeen)
	assert.Equal(t, now, *h.LastSeen)
}

func TestHost_MergeAccumulatesAndOverwrites(t *testing.T) {
	h := NewHost("H1")
	now := time.Now()

	h.Merge("disks", []*property.Set{disk("C:")}, now)
	h.Merge("system", []*property.Set{property.NewSet(property.P("Name", "H1"))}, now)
	assert.True(t, h.Has("disks"))
	assert.True(t, h.Has("system"))

	h.Merge("disks", []*property.Set{disk("D:"), disk("E:")}, now)
	assert.Len(t, h.ResultSets, 2)
	assert.Len(t, h.ResultSets["disks"], 2)
	assert.Equal(t, 3, h.InstanceCount())
}

func TestHost_LastSeenStrictlyIncreases(t *testing.T) {
	h := NewHost("H1")
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	h.Merge("a", nil, now)
	first := *h.LastSeen

	h.Merge("b", nil, now)
	assert.True(t, h.LastSeen.After(first))

	h.Merge("c", nil, now.Add(-time.Hour))
	assert.True(t, h.LastSeen.After(first))
}

func TestHost_MergeNilSetsStoresEmpty(t *testing.T) {
	h := &Host{Name: "H1"}
	h.Merge("disks", nil, time.Now())
	require.True(t, h.Has("disks"))
	assert.NotNil(t, h.ResultSets["disks"])
	assert.Empty(t, h.ResultSets["disks"])
}

func TestHost_CloneIsIndependent(t *testing.T) {
	h := NewHost("H1")
	h.Merge("disks", []*property.Set{disk("C:")}, time.Now())
	seen := *h.LastSeen

	c := h.Clone()
	c.Merge("disks", []*property.Set{disk("D:"), disk("E:")}, time.Now())
	c.Merge("volumes", nil, time.Now())

	assert.Len(t, h.ResultSets, 1)
	assert.Len(t, h.ResultSets["disks"], 1)
	assert.Equal(t, seen, *h.LastSeen)
	assert.Nil(t, (*Host)(nil).Clone())
}

func TestNewHosts(t *testing.T) {
	hosts := NewHosts("H1", "H2")
	require.Len(t, hosts, 2)
	assert.Equal(t, "H2", hosts[1].Name)
	assert.Empty(t, hosts[0].ResultSets)
	assert.Nil(t, hosts[0].LastSeen)
}
