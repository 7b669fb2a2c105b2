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

package executor

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/jennib/DomainTricks/pkg/credential"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/property"
)

// Executor issues one remote management query against one host.
//
// Implementations must be safe for concurrent use: the orchestrator calls
// Execute from many goroutines with the same spec and credentials. They
// return typed errors (see pkg/errors) and do not log per-host failures.
type Executor interface {
	Execute(ctx context.Context, host string, spec inventory.QuerySpec, creds *credential.Context) ([]*property.Set, error)
}

// Func adapts a function to the Executor interface.
type Func func(ctx context.Context, host string, spec inventory.QuerySpec, creds *credential.Context) ([]*property.Set, error)

// Execute calls f.
func (f Func) Execute(ctx context.Context, host string, spec inventory.QuerySpec, creds *credential.Context) ([]*property.Set, error) {
	return f(ctx, host, spec, creds)
}

// Check validates the inputs every executor requires before any I/O.
// An empty host is always a PRECONDITION error.
func Check(host string, spec inventory.QuerySpec, creds *credential.Context) error {
	if strings.TrimSpace(host) == "" {
		return cnserrors.NewWithContext(cnserrors.ErrCodePrecondition,
			"host identifier must not be empty", map[string]any{"spec": spec.Name})
	}
	if creds == nil {
		return cnserrors.New(cnserrors.ErrCodeCredential, "credentials are required")
	}
	if err := spec.Validate(); err != nil {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeQuery, "invalid query spec", err,
			map[string]any{"host": host})
	}
	return nil
}

// SelectFields applies the spec's field selection to the returned instances.
// With all fields requested the sets are returned as is. Otherwise each set is
// narrowed to the named fields in the requested order, and a field missing
// from any instance is a QUERY error.
func SelectFields(sets []*property.Set, spec inventory.QuerySpec) ([]*property.Set, error) {
	if spec.WantsAllFields() {
		return sets, nil
	}
	out := make([]*property.Set, 0, len(sets))
	for i, s := range sets {
		selected, missing := s.Select(spec.Fields)
		if len(missing) > 0 {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeQuery,
				fmt.Sprintf("unknown field(s) %s on %s", strings.Join(missing, ", "), spec.ClassOrDefault()),
				map[string]any{"spec": spec.Name, "instance": i, "missing": missing})
		}
		out = append(out, selected)
	}
	return out, nil
}

// Classify maps a transport failure to the error taxonomy. Structured errors
// pass through unchanged; nil stays nil.
func Classify(host string, err error) error {
	if err == nil {
		return nil
	}

	var se *cnserrors.StructuredError
	if stderrors.As(err, &se) {
		return err
	}

	ctx := map[string]any{"host": host}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout, "query timed out", err, ctx)
	}
	if stderrors.Is(err, context.Canceled) {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeConnection, "query canceled", err, ctx)
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout, "host did not respond in time", err, ctx)
	}

	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeConnection, "host name could not be resolved", err, ctx)
	}

	if stderrors.Is(err, syscall.ECONNREFUSED) {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeConnection, "connection refused", err, ctx)
	}

	var opErr *net.OpError
	var urlErr *url.Error
	if stderrors.As(err, &opErr) || stderrors.As(err, &urlErr) {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeConnection, "host unreachable", err, ctx)
	}

	return cnserrors.WrapWithContext(cnserrors.ErrCodeConnection, "remote call failed", err, ctx)
}
