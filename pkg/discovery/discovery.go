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
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jennib/DomainTricks/pkg/inventory"
)

// Discoverer enumerates the hosts to inventory. The meaning of scope depends
// on the implementation. Every returned record has a non-empty name and empty
// result-sets.
type Discoverer interface {
	Discover(ctx context.Context, scope string) ([]*inventory.Host, error)
}

// Func adapts a function to the Discoverer interface.
type Func func(ctx context.Context, scope string) ([]*inventory.Host, error)

// Discover implements Discoverer.
func (f Func) Discover(ctx context.Context, scope string) ([]*inventory.Host, error) {
	return f(ctx, scope)
}

// Normalize trims names, drops empty entries and drops case-insensitive
// duplicates (Unicode case folding), keeping the first spelling seen. Order
// is preserved.
func Normalize(names []string) []string {
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := fold.String(n)
		if _, dup := seen[key]; dup {
			slog.Debug("dropping duplicate host", slog.String("host", n))
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Hosts normalizes names and creates one empty record per remaining name.
func Hosts(names []string) []*inventory.Host {
	return inventory.NewHosts(Normalize(names)...)
}

// Static returns a fixed host list and ignores scope.
type Static struct {
	Names []string
}

// NewStatic creates a Static discoverer.
func NewStatic(names ...string) *Static {
	return &Static{Names: names}
}

// Discover implements Discoverer.
func (s *Static) Discover(ctx context.Context, _ string) ([]*inventory.Host, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Hosts(s.Names), nil
}
