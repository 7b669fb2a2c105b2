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

package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

var (
	passDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "domaintricks_pass_duration_seconds",
			Help:    "Time taken to query every host for one query spec",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"spec"},
	)

	passHosts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "domaintricks_pass_hosts",
			Help: "Number of hosts in the last pass of a query spec",
		},
		[]string{"spec"},
	)

	hostQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domaintricks_host_queries_total",
			Help: "Total number of per-host queries",
		},
		[]string{"spec", "status", "kind"}, // kind is empty on success
	)

	hostQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "domaintricks_host_query_duration_seconds",
			Help:    "Time taken by individual host queries",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"spec"},
	)

	inFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "domaintricks_host_queries_in_flight",
			Help: "Number of host queries currently executing",
		},
	)
)
