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

// Package config loads the collector configuration document and turns it
// into the collaborators a pipeline needs.
//
// A config is a CollectorConfig document in YAML or JSON, read from a local
// path, an HTTP(S) URL or a ConfigMap (cm://namespace/name):
//
//	kind: CollectorConfig
//	apiVersion: inventory.domaintricks.io/v1alpha1
//	discovery:
//	  type: kubernetes
//	  labelSelector: node-role.kubernetes.io/worker
//	  addressType: InternalIP
//	credentials:
//	  realm: CORP
//	  principal: svc-inventory
//	  secretEnv: INVENTORY_SECRET
//	executor:
//	  type: cim
//	  scheme: https
//	orchestrator:
//	  concurrency: 32
//	  timeout: 30s
//	interval: 15m
//	specs:
//	  - name: disks
//	    class: Win32_LogicalDisk
//	    filter: DriveType=3
//
// Unset fields are filled from Default. The secret is never stored in the
// file: Credentials.SecretEnv names the environment variable holding it.
//
// Usage:
//
//	cfg, err := config.Load(path, "")
//	if err != nil {
//	    return err
//	}
//	exec, err := cfg.NewExecutor()
//	disc, err := cfg.NewDiscoverer()
//	orch := orchestrator.New(exec, cfg.OrchestratorOptions()...)
package config
