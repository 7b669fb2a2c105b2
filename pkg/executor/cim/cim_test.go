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

package cim

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

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
	c, err := credential.New("CORP", "inventory", "s3cret")
	require.NoError(t, err)
	return c
}

// gateway starts a test gateway and returns an executor pointed at it, the
// host to query and a counter of requests served.
func gateway(t *testing.T, handler http.HandlerFunc) (*Executor, string, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return New(WithScheme("http"), WithPort(port)), host, &hits
}

func TestExecute_Success(t *testing.T) {
	exec, host, _ := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, QueryPath, r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, `CORP\inventory`, user)
		assert.Equal(t, "s3cret", pass)

		var req queryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, inventory.DefaultNamespace, req.Namespace)
		assert.Equal(t, "Win32_LogicalDisk", req.Class)
		assert.Equal(t, "DriveType=3", req.Filter)
		assert.Empty(t, req.Properties)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"instances":[{"Name":"C:","DriveType":3,"Size":500107862016,"VolumeName":null,"Compressed":false}]}`))
	})

	sets, err := exec.Execute(context.Background(), host, disksSpec, testCreds(t))
	require.NoError(t, err)
	require.Len(t, sets, 1)

	assert.Equal(t, []string{"Name", "DriveType", "Size", "VolumeName", "Compressed"}, sets[0].Keys())
	dt, err := sets[0].GetInt64("DriveType")
	require.NoError(t, err)
	assert.Equal(t, int64(3), dt)
	assert.Equal(t, property.KindNull, sets[0].Get("VolumeName").Kind())
	assert.Equal(t, property.KindBool, sets[0].Get("Compressed").Kind())
}

func TestExecute_ClassDefaultsToName(t *testing.T) {
	exec, host, _ := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Win32_Volume", req.Class)
		_, _ = w.Write([]byte(`{"instances":[{"DriveLetter":"C:"}]}`))
	})

	spec := inventory.QuerySpec{Name: "Win32_Volume", Fields: []string{"*"}}
	sets, err := exec.Execute(context.Background(), host, spec, testCreds(t))
	require.NoError(t, err)
	require.Len(t, sets, 1)
}

func TestExecute_SelectedFields(t *testing.T) {
	exec, host, _ := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"Name", "FreeSpace"}, req.Properties)
		// Gateways may return extra key properties; they are dropped.
		_, _ = w.Write([]byte(`{"instances":[{"DeviceID":"C:","FreeSpace":10,"Name":"C:"}]}`))
	})

	spec := disksSpec
	spec.Fields = []string{"Name", "FreeSpace"}
	sets, err := exec.Execute(context.Background(), host, spec, testCreds(t))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, []string{"Name", "FreeSpace"}, sets[0].Keys())
}

func TestExecute_MissingFieldIsQueryError(t *testing.T) {
	exec, host, _ := gateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"instances":[{"Name":"C:"}]}`))
	})
	spec := disksSpec
	spec.Fields = []string{"Name", "Serial"}
	_, err := exec.Execute(context.Background(), host, spec, testCreds(t))
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeQuery, cnserrors.CodeOf(err))
}

func TestExecute_EmptyResult(t *testing.T) {
	exec, host, _ := gateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"instances":[]}`))
	})
	sets, err := exec.Execute(context.Background(), host, disksSpec, testCreds(t))
	require.NoError(t, err)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
}

func TestExecute_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode cnserrors.ErrorCode
		wantKind cnserrors.Kind
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, "", cnserrors.ErrCodeUnauthorized, cnserrors.KindConnection, "credentials rejected"},
		{"forbidden", http.StatusForbidden, "", cnserrors.ErrCodeUnauthorized, cnserrors.KindConnection, "credentials rejected"},
		{"bad filter", http.StatusBadRequest, `{"error":{"code":"InvalidQuery","message":"bad WQL"}}`, cnserrors.ErrCodeQuery, cnserrors.KindQuery, "bad WQL"},
		{"unknown class", http.StatusNotFound, `{"error":{"code":"InvalidClass","message":"no such class"}}`, cnserrors.ErrCodeQuery, cnserrors.KindQuery, "no such class"},
		{"unprocessable", http.StatusUnprocessableEntity, "", cnserrors.ErrCodeQuery, cnserrors.KindQuery, "query rejected"},
		{"gateway timeout", http.StatusGatewayTimeout, "", cnserrors.ErrCodeTimeout, cnserrors.KindConnection, "timed out"},
		{"server error", http.StatusInternalServerError, "", cnserrors.ErrCodeConnection, cnserrors.KindConnection, "status 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, host, _ := gateway(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := exec.Execute(context.Background(), host, disksSpec, testCreds(t))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cnserrors.CodeOf(err))
			assert.Equal(t, tt.wantKind, cnserrors.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestExecute_NoIOOnLocalErrors(t *testing.T) {
	exec, host, hits := gateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"instances":[]}`))
	})

	t.Run("empty host", func(t *testing.T) {
		_, err := exec.Execute(context.Background(), "", disksSpec, testCreds(t))
		require.Error(t, err)
		assert.Equal(t, cnserrors.KindPrecondition, cnserrors.KindOf(err))
	})

	t.Run("malformed filter", func(t *testing.T) {
		spec := disksSpec
		spec.Filter = "DriveType = = 3"
		_, err := exec.Execute(context.Background(), host, spec, testCreds(t))
		require.Error(t, err)
		assert.Equal(t, cnserrors.KindQuery, cnserrors.KindOf(err))
	})

	assert.Equal(t, int32(0), hits.Load())
}

func TestExecute_Timeout(t *testing.T) {
	release := make(chan struct{})
	exec, host, _ := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := exec.Execute(ctx, host, disksSpec, testCreds(t))
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeTimeout, cnserrors.CodeOf(err))
	assert.Equal(t, cnserrors.KindConnection, cnserrors.KindOf(err))
}

func TestExecute_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	exec := New(WithScheme("http"), WithPort(port))
	_, err = exec.Execute(context.Background(), "127.0.0.1", disksSpec, testCreds(t))
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeConnection, cnserrors.CodeOf(err))
}

func TestExecute_InvalidResponse(t *testing.T) {
	tests := map[string]string{
		"not json":        `<html>`,
		"no instances":    `{"items":[]}`,
		"not an array":    `{"instances":{}}`,
		"non-object item": `{"instances":[1]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			exec, host, _ := gateway(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := exec.Execute(context.Background(), host, disksSpec, testCreds(t))
			require.Error(t, err)
			assert.Equal(t, cnserrors.ErrCodeQuery, cnserrors.CodeOf(err))
		})
	}
}

func TestDecodeInstances_NestedValues(t *testing.T) {
	sets, err := decodeInstances([]byte(`{"instances":[{"Caps":[1,2],"Meta":{"a":1},"H":{"$type":"CIM_Handle"},"F":1.5,"U":18446744073709551615}]}`))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	s := sets[0]
	assert.Equal(t, property.Opaque{Type: "array"}, s.Get("Caps"))
	assert.Equal(t, property.Opaque{Type: "object"}, s.Get("Meta"))
	assert.Equal(t, property.Opaque{Type: "CIM_Handle"}, s.Get("H"))
	assert.Equal(t, 1.5, s.Get("F").Any())
	assert.Equal(t, uint64(18446744073709551615), s.Get("U").Any())
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "https://h1.corp:5986/cim/v1/query", New().Endpoint("h1.corp"))
	assert.Equal(t, "http://h1.corp:5985/cim/v1/query", New(WithScheme("http")).Endpoint("h1.corp"))
	assert.Equal(t, "https://[::1]:8443/cim/v1/query", New(WithPort(8443)).Endpoint("::1"))
}
