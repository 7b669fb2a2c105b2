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

import "time"

// Executor timeouts for remote management queries.
const (
	// ExecutorTimeout bounds a single (host, query) invocation, connection
	// setup included. An invocation that exceeds it is a connection failure.
	ExecutorTimeout = 30 * time.Second

	// ExecutorConnectTimeout is the timeout for establishing the transport
	// connection to a host.
	ExecutorConnectTimeout = 5 * time.Second

	// SNMPTimeout is the per-request timeout handed to the SNMP client.
	// Retries multiply it, so it stays well below ExecutorTimeout.
	SNMPTimeout = 5 * time.Second
)

// Orchestration defaults.
const (
	// PassConcurrency is the default number of hosts queried at once in a pass.
	PassConcurrency = 16

	// MaxRunEvents caps the failure events kept in one run's report.
	MaxRunEvents = 10000

	// CollectionInterval is how often the daemon refreshes the inventory.
	CollectionInterval = 15 * time.Minute

	// CollectionTimeout bounds a whole pipeline run started by the daemon.
	CollectionTimeout = 30 * time.Minute

	// CLICollectTimeout is the default timeout for the collect command.
	CLICollectTimeout = 10 * time.Minute
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes timeouts for K8s API operations.
const (
	// K8sListTimeout is the timeout for listing nodes during discovery.
	K8sListTimeout = 30 * time.Second

	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)
