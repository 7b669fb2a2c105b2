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

package node

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8s "k8s.io/client-go/kubernetes"

	"github.com/jennib/DomainTricks/pkg/defaults"
	"github.com/jennib/DomainTricks/pkg/k8s/client"
)

// ListOptions contains the configuration options for listing nodes in a Kubernetes cluster.
type ListOptions struct {
	// Kubeconfig is the path to the kubeconfig file.
	Kubeconfig string
	// LabelSelector is a selector to filter nodes based on labels.
	LabelSelector string
	// FieldSelector is a selector to filter nodes based on fields.
	FieldSelector string
	// Limit is the maximum number of nodes to return. Zero means the absolute maximum.
	Limit int64
	// Client overrides the shared client, mainly for tests.
	Client k8s.Interface
}

const (
	nodeListPageSizeDefault int64 = 500
	nodeListAbsoluteMax     int64 = 10000 // Hard cap to prevent memory exhaustion
)

// List returns the nodes matching opt, following continue tokens page by page.
func List(ctx context.Context, opt ListOptions) ([]*v1.Node, error) {
	if opt.Client == nil {
		c, err := client.For(opt.Kubeconfig)
		if err != nil {
			return nil, err
		}
		opt.Client = c
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.K8sListTimeout)
	defer cancel()

	effectiveLimit := opt.Limit
	if effectiveLimit <= 0 || effectiveLimit > nodeListAbsoluteMax {
		effectiveLimit = nodeListAbsoluteMax
	}

	pageSize := nodeListPageSizeDefault
	if effectiveLimit < pageSize {
		pageSize = effectiveLimit
	}

	allNodes := make([]*v1.Node, 0, min(effectiveLimit, nodeListPageSizeDefault))
	continueToken := ""
	totalFetched := int64(0)

	for {
		currentLimit := pageSize
		if totalFetched+currentLimit > effectiveLimit {
			currentLimit = effectiveLimit - totalFetched
		}

		lo := metav1.ListOptions{
			LabelSelector: opt.LabelSelector,
			FieldSelector: opt.FieldSelector,
			Limit:         currentLimit,
			Continue:      continueToken,
		}

		slog.Debug("fetching nodes",
			slog.Int64("limit", currentLimit),
			slog.Int64("totalSoFar", totalFetched),
			slog.Bool("hasContinueToken", continueToken != ""),
		)

		list, err := opt.Client.CoreV1().Nodes().List(ctx, lo)
		if err != nil {
			return nil, fmt.Errorf("failed to list nodes: %w", err)
		}

		for i := range list.Items {
			allNodes = append(allNodes, &list.Items[i])
		}
		totalFetched += int64(len(list.Items))

		continueToken = list.Continue
		if continueToken == "" || totalFetched >= effectiveLimit {
			break
		}
		if len(list.Items) == 0 {
			slog.Warn("received empty page with continue token, stopping pagination")
			break
		}
	}

	slog.Debug("node list complete",
		slog.Int("totalNodes", len(allNodes)),
		slog.String("labelSelector", opt.LabelSelector),
	)

	return allNodes, nil
}

// Address returns the node's first address of the given type, or "".
func Address(n *v1.Node, addrType v1.NodeAddressType) string {
	for _, addr := range n.Status.Addresses {
		if addr.Type == addrType {
			return addr.Address
		}
	}
	return ""
}

// Identifier returns the name remote queries should target: the address of
// addrType when the node reports one, the node name otherwise.
func Identifier(n *v1.Node, addrType v1.NodeAddressType) string {
	if addrType != "" {
		if a := strings.TrimSpace(Address(n, addrType)); a != "" {
			return a
		}
	}
	return n.Name
}

// ParseAddressType maps a case-insensitive address type name onto the API
// constant. Empty input selects InternalIP.
func ParseAddressType(s string) (v1.NodeAddressType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "internalip":
		return v1.NodeInternalIP, nil
	case "externalip":
		return v1.NodeExternalIP, nil
	case "hostname":
		return v1.NodeHostName, nil
	case "internaldns":
		return v1.NodeInternalDNS, nil
	case "externaldns":
		return v1.NodeExternalDNS, nil
	case "name", "nodename":
		return "", nil
	default:
		return "", fmt.Errorf("unsupported node address type %q", s)
	}
}
