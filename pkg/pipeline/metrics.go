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

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "domaintricks_run_duration_seconds",
			Help:    "Time taken by a complete collection run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 900},
		},
	)

	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domaintricks_runs_total",
			Help: "Total number of collection runs",
		},
		[]string{"status"}, // success or error
	)

	runHosts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "domaintricks_run_hosts",
			Help: "Number of hosts discovered by the last collection run",
		},
	)

	runEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "domaintricks_run_failure_events",
			Help: "Number of per-host failure events in the last collection run",
		},
	)
)
