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

// Package client provides the Kubernetes clientset used for node discovery and
// ConfigMap input and output.
//
// GetKubeClient builds one client per process on first use (sync.Once) and
// caches it, error included. BuildKubeClient creates a dedicated client for a
// given kubeconfig, and For picks between the two:
//
//	clientset, err := client.For(kubeconfig) // "" means the shared client
//	if err != nil {
//	    return err
//	}
//	nodes, err := clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
//
// Kubeconfig resolution order is the explicit path, $KUBECONFIG,
// ~/.kube/config, then in-cluster service account credentials.
//
// Tests use k8s.io/client-go/kubernetes/fake instead of this package.
package client
