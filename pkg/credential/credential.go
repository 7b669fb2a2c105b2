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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jennib/DomainTricks/pkg/errors"
)

const redacted = "[REDACTED]"

// Default environment variables read by Env.
const (
	EnvRealm     = "DOMAINTRICKS_REALM"
	EnvPrincipal = "DOMAINTRICKS_PRINCIPAL"
	EnvSecret    = "DOMAINTRICKS_SECRET"
)

// Context carries the realm, principal and secret used for every remote call
// in a batch. It is immutable after construction and safe to share across
// goroutines.
type Context struct {
	realm     string
	principal string
	secret    string
}

// New builds a Context. All three fields are required.
func New(realm, principal, secret string) (*Context, error) {
	realm = strings.TrimSpace(realm)
	principal = strings.TrimSpace(principal)

	var missing []string
	if realm == "" {
		missing = append(missing, "realm")
	}
	if principal == "" {
		missing = append(missing, "principal")
	}
	if secret == "" {
		missing = append(missing, "secret")
	}
	if len(missing) > 0 {
		return nil, errors.NewWithContext(errors.ErrCodeCredential,
			fmt.Sprintf("credential fields must not be empty: %s", strings.Join(missing, ", ")),
			map[string]any{"missing": missing})
	}

	return &Context{
		realm:     realm,
		principal: principal,
		secret:    secret,
	}, nil
}

// Realm returns the domain or realm identifier.
func (c *Context) Realm() string { return c.realm }

// Principal returns the principal (user) name.
func (c *Context) Principal() string { return c.principal }

// Secret returns the secret. Never log it.
func (c *Context) Secret() string { return c.secret }

// QualifiedPrincipal returns the down-level logon name realm\principal.
func (c *Context) QualifiedPrincipal() string {
	return c.realm + `\` + c.principal
}

// String implements fmt.Stringer with the secret redacted.
func (c *Context) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (secret %s)", c.QualifiedPrincipal(), redacted)
}

// LogValue implements slog.LogValuer so the secret never reaches a log sink.
func (c *Context) LogValue() slog.Value {
	if c == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(
		slog.String("realm", c.realm),
		slog.String("principal", c.principal),
		slog.String("secret", redacted),
	)
}

// Source supplies the credential context for a pipeline run.
type Source interface {
	Credentials(ctx context.Context) (*Context, error)
}

// Static is a Source that always returns the same context.
type Static struct {
	Context *Context
}

// Credentials implements Source.
func (s Static) Credentials(_ context.Context) (*Context, error) {
	if s.Context == nil {
		return nil, errors.New(errors.ErrCodeCredential, "no credential context configured")
	}
	return s.Context, nil
}

// Env is a Source that reads the three fields from environment variables.
// Empty variable names fall back to the EnvRealm, EnvPrincipal and EnvSecret defaults.
type Env struct {
	RealmVar     string
	PrincipalVar string
	SecretVar    string

	// Realm and Principal, when set, take precedence over the environment.
	Realm     string
	Principal string
}

// Credentials implements Source.
func (e Env) Credentials(ctx context.Context) (*Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	realm := e.Realm
	if realm == "" {
		realm = os.Getenv(orDefault(e.RealmVar, EnvRealm))
	}
	principal := e.Principal
	if principal == "" {
		principal = os.Getenv(orDefault(e.PrincipalVar, EnvPrincipal))
	}
	secretVar := orDefault(e.SecretVar, EnvSecret)

	c, err := New(realm, principal, os.Getenv(secretVar))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeCredential,
			fmt.Sprintf("failed to load credentials from environment (secret variable %s)", secretVar), err,
			map[string]any{"secretVar": secretVar})
	}
	return c, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
