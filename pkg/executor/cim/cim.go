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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jennib/DomainTricks/pkg/credential"
	"github.com/jennib/DomainTricks/pkg/defaults"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/executor"
	"github.com/jennib/DomainTricks/pkg/filter"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/property"
)

const (
	// QueryPath is the gateway endpoint queries are posted to.
	QueryPath = "/cim/v1/query"

	// DefaultHTTPSPort and DefaultHTTPPort follow the WS-Management listener ports.
	DefaultHTTPSPort = 5986
	DefaultHTTPPort  = 5985

	UserAgent = "DomainTricks-CIM/1.0"

	// maxResponseBytes caps the response body read from a gateway.
	maxResponseBytes = 64 << 20
)

// Option configures an Executor.
type Option func(*Executor)

// WithScheme sets the URL scheme, "https" (default) or "http".
func WithScheme(scheme string) Option {
	return func(e *Executor) {
		e.scheme = scheme
	}
}

// WithPort sets the gateway port. Zero selects the scheme default.
func WithPort(port int) Option {
	return func(e *Executor) {
		e.port = port
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) Option {
	return func(e *Executor) {
		e.insecureSkipVerify = skip
	}
}

// WithConnectTimeout sets the dial timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.connectTimeout = d
	}
}

// WithClient replaces the HTTP client. Transport options are ignored.
func WithClient(c *http.Client) Option {
	return func(e *Executor) {
		e.client = c
	}
}

// Executor queries a CIM-over-HTTP gateway running on each host.
type Executor struct {
	scheme             string
	port               int
	insecureSkipVerify bool
	connectTimeout     time.Duration
	client             *http.Client
}

// New creates a CIM executor. The per-call deadline comes from the context
// passed to Execute; the client itself carries no total timeout.
func New(opts ...Option) *Executor {
	e := &Executor{
		scheme:         "https",
		connectTimeout: defaults.ExecutorConnectTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.client == nil {
		e.client = &http.Client{Transport: e.newTransport()}
	}
	return e
}

func (e *Executor) newTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 2,
		DialContext: (&net.Dialer{
			Timeout:   e.connectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.ExecutorTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: e.insecureSkipVerify, //nolint:gosec // opt-in for lab gateways with self-signed certs
		},
	}
}

// Endpoint returns the query URL for host.
func (e *Executor) Endpoint(host string) string {
	port := e.port
	if port == 0 {
		port = DefaultHTTPSPort
		if e.scheme == "http" {
			port = DefaultHTTPPort
		}
	}
	u := url.URL{
		Scheme: e.scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   QueryPath,
	}
	return u.String()
}

// queryRequest is the body posted to the gateway.
type queryRequest struct {
	Namespace  string   `json:"namespace"`
	Class      string   `json:"class"`
	Properties []string `json:"properties,omitempty"`
	Filter     string   `json:"filter,omitempty"`
}

// Execute runs spec against host through its gateway.
func (e *Executor) Execute(ctx context.Context, host string, spec inventory.QuerySpec, creds *credential.Context) ([]*property.Set, error) {
	if err := executor.Check(host, spec, creds); err != nil {
		return nil, err
	}

	// Reject malformed filters before any I/O.
	if _, err := filter.Parse(spec.Filter); err != nil {
		return nil, err
	}

	body := queryRequest{
		Namespace: spec.NamespaceOrDefault(),
		Class:     spec.ClassOrDefault(),
		Filter:    spec.Filter,
	}
	if !spec.WantsAllFields() {
		body.Properties = spec.Fields
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to encode query", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint(host), bytes.NewReader(payload))
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeConnection, "invalid host address", err,
			map[string]any{"host": host})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.SetBasicAuth(creds.QualifiedPrincipal(), creds.Secret())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, executor.Classify(host, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, executor.Classify(host, err)
	}

	if err := statusError(host, spec, resp.StatusCode, data); err != nil {
		return nil, err
	}

	sets, err := decodeInstances(data)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeQuery, "invalid gateway response", err,
			map[string]any{"host": host, "class": spec.ClassOrDefault()})
	}
	return executor.SelectFields(sets, spec)
}

// statusError maps a non-2xx gateway status to the error taxonomy.
func statusError(host string, spec inventory.QuerySpec, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := gjson.GetBytes(body, "error.message").String()
	if msg == "" {
		msg = http.StatusText(status)
	}
	ctx := map[string]any{
		"host":   host,
		"class":  spec.ClassOrDefault(),
		"status": status,
	}
	if code := gjson.GetBytes(body, "error.code").String(); code != "" {
		ctx["gatewayCode"] = code
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return cnserrors.NewWithContext(cnserrors.ErrCodeUnauthorized, "credentials rejected: "+msg, ctx)
	case status == http.StatusBadRequest || status == http.StatusNotFound || status == http.StatusUnprocessableEntity:
		return cnserrors.NewWithContext(cnserrors.ErrCodeQuery, "query rejected: "+msg, ctx)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return cnserrors.NewWithContext(cnserrors.ErrCodeTimeout, "gateway timed out: "+msg, ctx)
	default:
		return cnserrors.NewWithContext(cnserrors.ErrCodeConnection,
			fmt.Sprintf("gateway returned status %d: %s", status, msg), ctx)
	}
}

// decodeInstances turns {"instances":[{...},...]} into property-sets,
// keeping each object's key order.
func decodeInstances(data []byte) ([]*property.Set, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	instances := gjson.GetBytes(data, "instances")
	if !instances.Exists() {
		return nil, fmt.Errorf("response has no instances field")
	}
	if !instances.IsArray() {
		return nil, fmt.Errorf("instances is not an array")
	}

	var sets []*property.Set
	var err error
	instances.ForEach(func(_, inst gjson.Result) bool {
		if !inst.IsObject() {
			err = fmt.Errorf("instance %d is not an object", len(sets))
			return false
		}
		s := property.NewSet()
		inst.ForEach(func(k, v gjson.Result) bool {
			s.Set(k.String(), toReading(v))
			return true
		})
		sets = append(sets, s)
		return true
	})
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []*property.Set{}
	}
	return sets, nil
}

func toReading(v gjson.Result) property.Reading {
	switch v.Type {
	case gjson.String:
		return property.Str(v.Str)
	case gjson.Number:
		return property.ToReading(json.Number(v.Raw))
	case gjson.True:
		return property.Bool(true)
	case gjson.False:
		return property.Bool(false)
	case gjson.Null:
		return property.Null{}
	default:
		if v.IsArray() {
			return property.Opaque{Type: "array"}
		}
		if m := v.Map(); len(m) == 1 && m["$type"].Type == gjson.String {
			return property.Opaque{Type: m["$type"].Str}
		}
		return property.Opaque{Type: "object"}
	}
}
