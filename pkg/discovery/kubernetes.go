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

package discovery

import (
	"context"
	"fmt"
	"log/slog"

	v1 "k8s.io/api/core/v1"

	"github.com/jennib/DomainTricks/pkg/inventory"
	k8sclient "github.com/jennib/DomainTricks/pkg/k8s/client"
	"github.com/jennib/DomainTricks/pkg/k8s/node"
)

// Kubernetes discovers cluster nodes. Scope is a label selector; when empty,
// LabelSelector is used. Each node is identified by its address of
// AddressType, falling back to the node name.
type Kubernetes struct {
	Client        k8sclient.Interface
	Kubeconfig    string
	LabelSelector string
	AddressType   v1.NodeAddressType
	Limit         int64
}

// Discover implements Discoverer.
func (k *Kubernetes) Discover(ctx context.Context, scope string) ([]*inventory.Host, error) {
	selector := scope
	if selector == "" {
		selector = k.LabelSelector
	}

	nodes, err := node.List(ctx, node.ListOptions{
		Kubeconfig:    k.Kubeconfig,
		LabelSelector: selector,
		Limit:         k.Limit,
		Client:        k.Client,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover kubernetes nodes: %w", err)
	}

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, node.Identifier(n, k.AddressType))
	}

	hosts := Hosts(names)
	slog.Debug("discovered kubernetes nodes",
		slog.String("selector", selector),
		slog.Int("nodes", len(nodes)),
		slog.Int("hosts", len(hosts)))
	return hosts, nil
}
