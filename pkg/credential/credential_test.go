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

package credential

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennib/DomainTricks/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		realm     string
		principal string
		secret    string
		wantErr   bool
	}{
		{"valid", "corp.example.com", "inventory", "s3cret", false},
		{"trims realm and principal", "  corp.example.com ", " inventory ", "s3cret", false},
		{"empty realm", "", "inventory", "s3cret", true},
		{"blank principal", "corp.example.com", "   ", "s3cret", true},
		{"empty secret", "corp.example.com", "inventory", "", true},
		{"all empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.realm, tt.principal, tt.secret)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, c)
				assert.Equal(t, errors.KindCredential, errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "corp.example.com", c.Realm())
			assert.Equal(t, "inventory", c.Principal())
			assert.Equal(t, "s3cret", c.Secret())
		})
	}
}

func TestNew_ReportsAllMissingFields(t *testing.T) {
	_, err := New("", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "realm, principal, secret")
}

func TestContext_SecretNeverRendered(t *testing.T) {
	c, err := New("corp.example.com", "inventory", "hunter2")
	require.NoError(t, err)

	assert.NotContains(t, c.String(), "hunter2")
	assert.Equal(t, `corp.example.com\inventory`, c.QualifiedPrincipal())

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("collecting", "credentials", c)

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "inventory")
	assert.Contains(t, out, redacted)
}

func TestStatic(t *testing.T) {
	c, err := New("corp", "user", "pw")
	require.NoError(t, err)

	got, err := Static{Context: c}.Credentials(context.Background())
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = Static{}.Credentials(context.Background())
	assert.True(t, errors.IsKind(err, errors.KindCredential))
}

func TestEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvRealm, "corp")
		t.Setenv(EnvPrincipal, "user")
		t.Setenv(EnvSecret, "pw")

		c, err := Env{}.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "corp", c.Realm())
		assert.Equal(t, "user", c.Principal())
		assert.Equal(t, "pw", c.Secret())
	})

	t.Run("custom variables and overrides", func(t *testing.T) {
		t.Setenv("MY_SECRET", "pw2")
		t.Setenv(EnvRealm, "ignored")

		c, err := Env{SecretVar: "MY_SECRET", Realm: "override", Principal: "svc"}.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "override", c.Realm())
		assert.Equal(t, "svc", c.Principal())
		assert.Equal(t, "pw2", c.Secret())
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv(EnvRealm, "corp")
		t.Setenv(EnvPrincipal, "user")
		t.Setenv(EnvSecret, "")

		_, err := Env{}.Credentials(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindCredential))
		assert.True(t, strings.Contains(err.Error(), EnvSecret))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Env{}.Credentials(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
