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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodePrecondition, "host name is empty")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodePrecondition {
		t.Errorf("expected code %s, got %s", ErrCodePrecondition, err.Code)
	}
	if err.Message != "host name is empty" {
		t.Errorf("expected message 'host name is empty', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeConnection, "query failed", cause)

	if err.Code != ErrCodeConnection {
		t.Errorf("expected code %s, got %s", ErrCodeConnection, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("deadline exceeded")
	ctx := map[string]any{
		"host":  "H1",
		"class": "Win32_LogicalDisk",
	}

	err := WrapWithContext(ErrCodeTimeout, "query timed out", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["host"] != "H1" {
		t.Errorf("expected host to be H1")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeQuery, "unknown class"),
			expected: "[QUERY] unknown class",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"precondition", New(ErrCodePrecondition, "x"), KindPrecondition},
		{"connection", New(ErrCodeConnection, "x"), KindConnection},
		{"timeout is connection", New(ErrCodeTimeout, "x"), KindConnection},
		{"unauthorized is connection", New(ErrCodeUnauthorized, "x"), KindConnection},
		{"query", New(ErrCodeQuery, "x"), KindQuery},
		{"credential", New(ErrCodeCredential, "x"), KindCredential},
		{"invalid request is internal", New(ErrCodeInvalidRequest, "x"), KindInternal},
		{"plain error is internal", errors.New("boom"), KindInternal},
		{"wrapped structured error", fmt.Errorf("outer: %w", New(ErrCodeQuery, "x")), KindQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCodeOf_OutermostWins(t *testing.T) {
	inner := New(ErrCodeConnection, "refused")
	outer := Wrap(ErrCodeTimeout, "timed out", inner)

	if got := CodeOf(outer); got != ErrCodeTimeout {
		t.Errorf("CodeOf() = %s, want %s", got, ErrCodeTimeout)
	}
}

func TestIsKind(t *testing.T) {
	if IsKind(nil, KindInternal) {
		t.Error("nil error should not match any kind")
	}
	if !IsKind(New(ErrCodeTimeout, "x"), KindConnection) {
		t.Error("timeout should be a connection failure")
	}
	if IsKind(New(ErrCodeQuery, "x"), KindConnection) {
		t.Error("query failure should not be a connection failure")
	}
}
