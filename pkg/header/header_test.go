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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindInventory, true},
		{KindHostList, true},
		{KindConfig, true},
		{Kind("Snapshot"), false},
		{Kind(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.IsValid())
		})
	}
}

func TestNew_Options(t *testing.T) {
	h := New(
		WithKind(KindInventory),
		WithAPIVersion("inventory.domaintricks.io/v1"),
		WithMetadata("scope", "ou=servers"),
	)
	assert.Equal(t, KindInventory, h.GetKind())
	assert.Equal(t, "inventory.domaintricks.io/v1", h.APIVersion)
	assert.Equal(t, "ou=servers", h.GetMetadata()["scope"])
}

func TestInitAt(t *testing.T) {
	var h Header
	h.Metadata = map[string]string{"stale": "x"}
	at := time.Date(2025, 12, 30, 10, 30, 0, 0, time.FixedZone("X", 3600))

	h.InitAt(KindInventory, "v1", "1.2.3", at)

	assert.Equal(t, KindInventory, h.Kind)
	assert.Equal(t, "2025-12-30T09:30:00Z", h.Metadata["timestamp"])
	assert.Equal(t, "1.2.3", h.Metadata["version"])
	assert.NotContains(t, h.Metadata, "stale")
}

func TestInit_NoVersion(t *testing.T) {
	var h Header
	h.Init(KindHostList, "v1", "")
	assert.NotContains(t, h.Metadata, "version")
	assert.NotEmpty(t, h.Metadata["timestamp"])
}
