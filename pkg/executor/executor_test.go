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
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennib/DomainTricks/pkg/credential"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/property"
)

var disksSpec = inventory.QuerySpec{Name: "disks", Class: "Win32_LogicalDisk", Fields: []string{"*"}, Filter: "DriveType=3"}

func testCreds(t *testing.T) *credential.Context {
	t.Helper()
	c, err := credential.New("corp.example.com", "inventory", "s3cret")
	require.NoError(t, err)
	return c
}

func TestCheck(t *testing.T) {
	creds := testCreds(t)

	tests := []struct {
		name     string
		host     string
		spec     inventory.QuerySpec
		creds    *credential.Context
		wantKind cnserrors.Kind
	}{
		{"ok", "H1", disksSpec, creds, ""},
		{"empty host", "", disksSpec, creds, cnserrors.KindPrecondition},
		{"blank host", "  ", disksSpec, creds, cnserrors.KindPrecondition},
		{"empty host beats missing creds", "", disksSpec, nil, cnserrors.KindPrecondition},
		{"nil creds", "H1", disksSpec, nil, cnserrors.KindCredential},
		{"bad spec", "H1", inventory.QuerySpec{Name: "x"}, creds, cnserrors.KindQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.host, tt.spec, tt.creds)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, cnserrors.KindOf(err))
		})
	}
}

func TestSelectFields(t *testing.T) {
	sets := []*property.Set{
		property.NewSet(property.P("DriveType", 3), property.P("Name", "C:"), property.P("Size", 10)),
		property.NewSet(property.P("DriveType", 3), property.P("Name", "D:"), property.P("Size", 20)),
	}

	t.Run("all fields keeps sets", func(t *testing.T) {
		got, err := SelectFields(sets, disksSpec)
		require.NoError(t, err)
		assert.Equal(t, sets, got)
	})

	t.Run("named fields in requested order", func(t *testing.T) {
		spec := disksSpec
		spec.Fields = []string{"Size", "Name"}
		got, err := SelectFields(sets, spec)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, []string{"Size", "Name"}, got[1].Keys())
		assert.Equal(t, 3, sets[0].Len(), "input sets must not change")
	})

	t.Run("missing field is a query error", func(t *testing.T) {
		spec := disksSpec
		spec.Fields = []string{"Name", "SerialNumber"}
		_, err := SelectFields(sets, spec)
		require.Error(t, err)
		assert.Equal(t, cnserrors.KindQuery, cnserrors.KindOf(err))
		assert.Contains(t, err.Error(), "SerialNumber")
	})

	t.Run("no instances", func(t *testing.T) {
		spec := disksSpec
		spec.Fields = []string{"Name"}
		got, err := SelectFields(nil, spec)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	structured := cnserrors.New(cnserrors.ErrCodeUnauthorized, "denied")

	tests := []struct {
		name     string
		err      error
		wantCode cnserrors.ErrorCode
	}{
		{"deadline", context.DeadlineExceeded, cnserrors.ErrCodeTimeout},
		{"wrapped deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), cnserrors.ErrCodeTimeout},
		{"canceled", context.Canceled, cnserrors.ErrCodeConnection},
		{"net timeout", &net.OpError{Op: "dial", Err: timeoutErr{}}, cnserrors.ErrCodeTimeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "H9", IsNotFound: true}, cnserrors.ErrCodeConnection},
		{"refused", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, cnserrors.ErrCodeConnection},
		{"url", &url.Error{Op: "Post", URL: "https://H1", Err: fmt.Errorf("EOF")}, cnserrors.ErrCodeConnection},
		{"other", fmt.Errorf("boom"), cnserrors.ErrCodeConnection},
		{"structured passthrough", structured, cnserrors.ErrCodeUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("H1", tt.err)
			require.Error(t, got)
			assert.Equal(t, tt.wantCode, cnserrors.CodeOf(got))
			assert.Equal(t, cnserrors.KindConnection, cnserrors.KindOf(got))
		})
	}

	assert.NoError(t, Classify("H1", nil))
	assert.Same(t, structured, Classify("H1", structured))
}

func TestFunc(t *testing.T) {
	var called string
	f := Func(func(_ context.Context, host string, _ inventory.QuerySpec, _ *credential.Context) ([]*property.Set, error) {
		called = host
		return nil, nil
	})
	_, err := f.Execute(context.Background(), "H1", disksSpec, testCreds(t))
	require.NoError(t, err)
	assert.Equal(t, "H1", called)
}
