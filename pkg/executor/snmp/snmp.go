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

package snmp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/jennib/DomainTricks/pkg/credential"
	"github.com/jennib/DomainTricks/pkg/defaults"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/executor"
	"github.com/jennib/DomainTricks/pkg/filter"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/property"
)

// Supported protocol versions.
const (
	Version1  = "1"
	Version2c = "2c"
	Version3  = "3"

	DefaultPort = 161

	// IndexProperty is the first property of every table row.
	IndexProperty = "Index"
)

// Session is the subset of a gosnmp client the executor uses.
type Session interface {
	Connect() error
	Get(oids []string) (*gosnmp.SnmpPacket, error)
	BulkWalk(rootOid string, walkFn gosnmp.WalkFunc) error
	Walk(rootOid string, walkFn gosnmp.WalkFunc) error
	Close() error
}

// Config holds the protocol settings shared by every host in a batch.
type Config struct {
	Version      string
	Port         uint16
	AuthProtocol string
	PrivProtocol string
	Retries      int
	Timeout      time.Duration
}

// SessionFactory creates an unconnected session for one host.
type SessionFactory func(ctx context.Context, host string, cfg Config, creds *credential.Context) (Session, error)

// Option configures an Executor.
type Option func(*Executor)

// WithVersion sets the protocol version: "1", "2c" or "3" (default).
func WithVersion(v string) Option {
	return func(e *Executor) {
		e.cfg.Version = v
	}
}

// WithPort sets the agent port.
func WithPort(port uint16) Option {
	return func(e *Executor) {
		e.cfg.Port = port
	}
}

// WithAuthProtocol sets the SNMPv3 authentication protocol (MD5, SHA, SHA256, ...).
func WithAuthProtocol(p string) Option {
	return func(e *Executor) {
		e.cfg.AuthProtocol = p
	}
}

// WithPrivProtocol sets the SNMPv3 privacy protocol (DES, AES, ...). Empty
// means authentication without privacy.
func WithPrivProtocol(p string) Option {
	return func(e *Executor) {
		e.cfg.PrivProtocol = p
	}
}

// WithRetries sets the number of request retries.
func WithRetries(n int) Option {
	return func(e *Executor) {
		e.cfg.Retries = n
	}
}

// WithRequestTimeout sets the timeout of a single request/response.
func WithRequestTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.cfg.Timeout = d
	}
}

// WithSessionFactory replaces how sessions are created.
func WithSessionFactory(f SessionFactory) Option {
	return func(e *Executor) {
		e.newSession = f
	}
}

// Executor reads registered MIB classes from SNMP agents.
type Executor struct {
	cfg        Config
	newSession SessionFactory
}

// New creates an SNMP executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		cfg: Config{
			Version:      Version3,
			Port:         DefaultPort,
			AuthProtocol: "SHA",
			PrivProtocol: "AES",
			Retries:      1,
			Timeout:      defaults.SNMPTimeout,
		},
		newSession: NewSession,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute reads the spec's class from host. The filter is evaluated locally on
// every row before field selection.
func (e *Executor) Execute(ctx context.Context, host string, spec inventory.QuerySpec, creds *credential.Context) ([]*property.Set, error) {
	if err := executor.Check(host, spec, creds); err != nil {
		return nil, err
	}
	class, ok := Lookup(spec.ClassOrDefault())
	if !ok {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeQuery,
			fmt.Sprintf("unknown class %q", spec.ClassOrDefault()),
			map[string]any{"host": host, "known": Classes()})
	}
	expr, err := filter.Parse(spec.Filter)
	if err != nil {
		return nil, err
	}

	sess, err := e.newSession(ctx, host, e.cfg, creds)
	if err != nil {
		return nil, err
	}
	if err := sess.Connect(); err != nil {
		return nil, classify(host, err)
	}
	defer sess.Close()

	var sets []*property.Set
	switch class.Layout {
	case Scalar:
		sets, err = e.getScalars(host, sess, class)
	default:
		sets, err = e.walkTable(host, sess, class)
	}
	if err != nil {
		return nil, err
	}

	matched := make([]*property.Set, 0, len(sets))
	for _, s := range sets {
		if expr.Match(s) {
			matched = append(matched, s)
		}
	}
	return executor.SelectFields(matched, spec)
}

func (e *Executor) getScalars(host string, sess Session, class Class) ([]*property.Set, error) {
	oids := make([]string, 0, len(class.Columns))
	for _, col := range class.Columns {
		oids = append(oids, class.Base+"."+col.Sub+".0")
	}
	pkt, err := sess.Get(oids)
	if err != nil {
		return nil, classify(host, err)
	}
	if pkt.Error != gosnmp.NoError {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeQuery,
			fmt.Sprintf("agent returned %s", pkt.Error),
			map[string]any{"host": host, "class": class.Name})
	}

	s := property.NewSet()
	for _, pdu := range pkt.Variables {
		sub := strings.TrimSuffix(strings.TrimPrefix(normalizeOID(pdu.Name), class.Base+"."), ".0")
		col, ok := class.column(sub)
		if !ok {
			continue
		}
		if r, ok := toReading(pdu); ok {
			s.Set(col.Name, r)
		}
	}
	if s.Len() == 0 {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeQuery,
			fmt.Sprintf("agent does not implement %s", class.Name),
			map[string]any{"host": host})
	}
	return []*property.Set{ordered(s, class, "")}, nil
}

func (e *Executor) walkTable(host string, sess Session, class Class) ([]*property.Set, error) {
	rows := make(map[string]*property.Set)
	var order []string

	walk := sess.BulkWalk
	if e.cfg.Version == Version1 {
		walk = sess.Walk
	}
	prefix := class.Base + "."
	err := walk(class.Base, func(pdu gosnmp.SnmpPDU) error {
		rest, ok := strings.CutPrefix(normalizeOID(pdu.Name), prefix)
		if !ok {
			return nil
		}
		sub, index, ok := strings.Cut(rest, ".")
		if !ok {
			return nil
		}
		col, ok := class.column(sub)
		if !ok {
			return nil
		}
		r, ok := toReading(pdu)
		if !ok {
			return nil
		}
		row, seen := rows[index]
		if !seen {
			row = property.NewSet()
			rows[index] = row
			order = append(order, index)
		}
		row.Set(col.Name, r)
		return nil
	})
	if err != nil {
		return nil, classify(host, err)
	}

	sets := make([]*property.Set, 0, len(order))
	for _, idx := range order {
		sets = append(sets, ordered(rows[idx], class, idx))
	}
	return sets, nil
}

// ordered rebuilds s in column definition order, with the row index first
// for tables.
func ordered(s *property.Set, class Class, index string) *property.Set {
	out := property.NewSet()
	if class.Layout == Table {
		if n, err := strconv.ParseInt(index, 10, 64); err == nil {
			out.Set(IndexProperty, property.Int64(n))
		} else {
			out.Set(IndexProperty, property.Str(index))
		}
	}
	for _, col := range class.Columns {
		if v, ok := s.Lookup(col.Name); ok {
			out.Set(col.Name, v)
		}
	}
	return out
}

func normalizeOID(oid string) string {
	if !strings.HasPrefix(oid, ".") {
		return "." + oid
	}
	return oid
}

// classify maps gosnmp failures, which are mostly plain errors, onto the taxonomy.
func classify(host string, err error) error {
	msg := strings.ToLower(err.Error())
	ctx := map[string]any{"host": host}
	switch {
	case strings.Contains(msg, "timeout"):
		return cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout, "agent did not respond in time", err, ctx)
	case strings.Contains(msg, "unknown user"),
		strings.Contains(msg, "wrong digest"),
		strings.Contains(msg, "authentication"),
		strings.Contains(msg, "decryption"):
		return cnserrors.WrapWithContext(cnserrors.ErrCodeUnauthorized, "agent rejected credentials", err, ctx)
	default:
		return executor.Classify(host, err)
	}
}

// Validate checks the protocol settings without contacting any agent.
func (e *Executor) Validate() error {
	creds, err := credential.New("validate", "validate", "validate")
	if err != nil {
		return err
	}
	return configureVersion(&gosnmp.GoSNMP{}, e.cfg, creds)
}
