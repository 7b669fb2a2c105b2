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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Executor timeouts
		{"ExecutorTimeout", ExecutorTimeout, 5 * time.Second, 2 * time.Minute},
		{"ExecutorConnectTimeout", ExecutorConnectTimeout, 1 * time.Second, 15 * time.Second},
		{"SNMPTimeout", SNMPTimeout, 1 * time.Second, 15 * time.Second},

		// Orchestration
		{"CollectionInterval", CollectionInterval, 1 * time.Minute, 24 * time.Hour},
		{"CollectionTimeout", CollectionTimeout, 1 * time.Minute, 2 * time.Hour},
		{"CLICollectTimeout", CLICollectTimeout, 1 * time.Minute, time.Hour},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// K8s timeouts
		{"K8sListTimeout", K8sListTimeout, 10 * time.Second, 60 * time.Second},
		{"ConfigMapWriteTimeout", ConfigMapWriteTimeout, 10 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestTimeoutRelationships(t *testing.T) {
	if SNMPTimeout >= ExecutorTimeout {
		t.Errorf("SNMPTimeout (%v) should be less than ExecutorTimeout (%v)", SNMPTimeout, ExecutorTimeout)
	}
	if ExecutorTimeout >= CollectionTimeout {
		t.Errorf("ExecutorTimeout (%v) should be less than CollectionTimeout (%v)", ExecutorTimeout, CollectionTimeout)
	}
	if ServerReadHeaderTimeout >= ServerReadTimeout {
		t.Errorf("ServerReadHeaderTimeout (%v) should be less than ServerReadTimeout (%v)",
			ServerReadHeaderTimeout, ServerReadTimeout)
	}
}
