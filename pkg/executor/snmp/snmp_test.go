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
	"errors"
	"strconv"
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennib/DomainTricks/pkg/credential"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/property"
)

type fakeSession struct {
	connectErr error
	getErr     error
	walkErr    error
	packet     *gosnmp.SnmpPacket
	pdus       []gosnmp.SnmpPDU

	connected bool
	closed    bool
	walked    string
	bulk      bool
}

func (f *fakeSession) Connect() error {
	f.connected = true
	return f.connectErr
}

func (f *fakeSession) Get(oids []string) (*gosnmp.SnmpPacket, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.packet, nil
}

func (f *fakeSession) walk(root string, fn gosnmp.WalkFunc) error {
	f.walked = root
	if f.walkErr != nil {
		return f.walkErr
	}
	for _, p := range f.pdus {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeSession) BulkWalk(root string, fn gosnmp.WalkFunc) error {
	f.bulk = true
	return f.walk(root, fn)
}

func (f *fakeSession) Walk(root string, fn gosnmp.WalkFunc) error {
	return f.walk(root, fn)
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func newTestExecutor(sess *fakeSession, opts ...Option) *Executor {
	opts = append(opts, WithSessionFactory(func(context.Context, string, Config, *credential.Context) (Session, error) {
		return sess, nil
	}))
	return New(opts...)
}

func testCreds(t *testing.T) *credential.Context {
	t.Helper()
	c, err := credential.New("public-ctx", "monitor", "authpass123")
	require.NoError(t, err)
	return c
}

func ifRow(col, index int, typ gosnmp.Asn1BER, v any) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{
		Name:  ".1.3.6.1.2.1.2.2.1." + strconv.Itoa(col) + "." + strconv.Itoa(index),
		Type:  typ,
		Value: v,
	}
}

func ifTablePDUs() []gosnmp.SnmpPDU {
	// Column-major, as a walk returns them.
	return []gosnmp.SnmpPDU{
		ifRow(1, 1, gosnmp.Integer, 1),
		ifRow(1, 2, gosnmp.Integer, 2),
		ifRow(2, 1, gosnmp.OctetString, []byte("lo")),
		ifRow(2, 2, gosnmp.OctetString, []byte("eth0")),
		ifRow(5, 1, gosnmp.Gauge32, uint(10000000)),
		ifRow(5, 2, gosnmp.Gauge32, uint(1000000000)),
		ifRow(6, 1, gosnmp.OctetString, []byte{}),
		ifRow(6, 2, gosnmp.OctetString, []byte{0x00, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e}),
		ifRow(8, 1, gosnmp.Integer, 1),
		ifRow(8, 2, gosnmp.Integer, 2),
		ifRow(9, 1, gosnmp.TimeTicks, uint32(0)), // ifLastChange, not a registered column
		ifRow(10, 2, gosnmp.Counter32, uint(12345)),
	}
}

func TestExecute_Table(t *testing.T) {
	sess := &fakeSession{pdus: ifTablePDUs()}
	exec := newTestExecutor(sess)

	spec := inventory.QuerySpec{Name: "nics", Class: "interfaces", Fields: []string{"*"}}
	sets, err := exec.Execute(context.Background(), "10.0.0.1", spec, testCreds(t))
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.True(t, sess.connected)
	assert.True(t, sess.closed)
	assert.True(t, sess.bulk)
	assert.Equal(t, ".1.3.6.1.2.1.2.2.1", sess.walked)

	assert.Equal(t, []string{"Index", "ifIndex", "ifDescr", "ifSpeed", "ifPhysAddress", "ifOperStatus"}, sets[0].Keys())
	assert.Equal(t, []string{"Index", "ifIndex", "ifDescr", "ifSpeed", "ifPhysAddress", "ifOperStatus", "ifInOctets"}, sets[1].Keys())

	name, err := sets[1].GetString("ifDescr")
	require.NoError(t, err)
	assert.Equal(t, "eth0", name)

	mac, err := sets[1].GetString("ifPhysAddress")
	require.NoError(t, err)
	assert.Equal(t, "00:1a:2b:3c:4d:5e", mac)

	speed, err := sets[1].GetInt64("ifSpeed")
	require.NoError(t, err)
	assert.Equal(t, int64(1000000000), speed)
}

func TestExecute_TableFilterAndFields(t *testing.T) {
	sess := &fakeSession{pdus: ifTablePDUs()}
	exec := newTestExecutor(sess)

	spec := inventory.QuerySpec{
		Name:   "nics",
		Class:  "Interfaces",
		Fields: []string{"ifDescr", "ifSpeed"},
		Filter: "ifOperStatus = 2 AND ifDescr LIKE 'eth%'",
	}
	sets, err := exec.Execute(context.Background(), "10.0.0.1", spec, testCreds(t))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, []string{"ifDescr", "ifSpeed"}, sets[0].Keys())
}

func TestExecute_ClassDefaultsToName(t *testing.T) {
	sess := &fakeSession{pdus: ifTablePDUs()}
	spec := inventory.QuerySpec{Name: "interfaces", Filter: "ifOperStatus = 1"}
	sets, err := newTestExecutor(sess).Execute(context.Background(), "10.0.0.1", spec, testCreds(t))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, ".1.3.6.1.2.1.2.2.1", sess.walked)
}

func TestExecute_Version1UsesWalk(t *testing.T) {
	sess := &fakeSession{pdus: ifTablePDUs()}
	exec := newTestExecutor(sess, WithVersion(Version1))

	spec := inventory.QuerySpec{Name: "nics", Class: "interfaces"}
	_, err := exec.Execute(context.Background(), "10.0.0.1", spec, testCreds(t))
	require.NoError(t, err)
	assert.False(t, sess.bulk)
}

func TestExecute_Scalar(t *testing.T) {
	sess := &fakeSession{packet: &gosnmp.SnmpPacket{
		Error: gosnmp.NoError,
		Variables: []gosnmp.SnmpPDU{
			{Name: ".1.3.6.1.2.1.1.5.0", Type: gosnmp.OctetString, Value: []byte("H1")},
			{Name: ".1.3.6.1.2.1.1.1.0", Type: gosnmp.OctetString, Value: []byte("Linux H1 6.1")},
			{Name: ".1.3.6.1.2.1.1.2.0", Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.8072.3.2.10"},
			{Name: ".1.3.6.1.2.1.1.3.0", Type: gosnmp.TimeTicks, Value: uint32(123456)},
			{Name: ".1.3.6.1.2.1.1.4.0", Type: gosnmp.NoSuchObject},
		},
	}}
	exec := newTestExecutor(sess)

	spec := inventory.QuerySpec{Name: "sys", Class: "system"}
	sets, err := exec.Execute(context.Background(), "10.0.0.1", spec, testCreds(t))
	require.NoError(t, err)
	require.Len(t, sets, 1)

	assert.Equal(t, []string{"sysDescr", "sysObjectID", "sysUpTime", "sysName"}, sets[0].Keys())
	assert.Equal(t, uint64(123456), sets[0].Get("sysUpTime").Any())
}

func TestExecute_ScalarErrors(t *testing.T) {
	spec := inventory.QuerySpec{Name: "sys", Class: "system"}

	t.Run("error status", func(t *testing.T) {
		sess := &fakeSession{packet: &gosnmp.SnmpPacket{Error: gosnmp.GenErr}}
		_, err := newTestExecutor(sess).Execute(context.Background(), "h", spec, testCreds(t))
		require.Error(t, err)
		assert.Equal(t, cnserrors.KindQuery, cnserrors.KindOf(err))
	})

	t.Run("nothing implemented", func(t *testing.T) {
		sess := &fakeSession{packet: &gosnmp.SnmpPacket{Variables: []gosnmp.SnmpPDU{
			{Name: ".1.3.6.1.2.1.1.5.0", Type: gosnmp.NoSuchObject},
		}}}
		_, err := newTestExecutor(sess).Execute(context.Background(), "h", spec, testCreds(t))
		require.Error(t, err)
		assert.Equal(t, cnserrors.KindQuery, cnserrors.KindOf(err))
	})
}

func TestExecute_Failures(t *testing.T) {
	creds := testCreds(t)
	tests := []struct {
		name     string
		host     string
		spec     inventory.QuerySpec
		sess     *fakeSession
		wantCode cnserrors.ErrorCode
		wantIO   bool
	}{
		{
			name:     "empty host",
			spec:     inventory.QuerySpec{Name: "n", Class: "interfaces"},
			sess:     &fakeSession{},
			wantCode: cnserrors.ErrCodePrecondition,
		},
		{
			name:     "unknown class",
			host:     "h",
			spec:     inventory.QuerySpec{Name: "n", Class: "Win32_LogicalDisk"},
			sess:     &fakeSession{},
			wantCode: cnserrors.ErrCodeQuery,
		},
		{
			name:     "bad filter",
			host:     "h",
			spec:     inventory.QuerySpec{Name: "n", Class: "interfaces", Filter: "ifType ="},
			sess:     &fakeSession{},
			wantCode: cnserrors.ErrCodeQuery,
		},
		{
			name:     "timeout",
			host:     "h",
			spec:     inventory.QuerySpec{Name: "n", Class: "interfaces"},
			sess:     &fakeSession{walkErr: errors.New("request timeout (after 1 retries)")},
			wantCode: cnserrors.ErrCodeTimeout,
			wantIO:   true,
		},
		{
			name:     "auth",
			host:     "h",
			spec:     inventory.QuerySpec{Name: "n", Class: "interfaces"},
			sess:     &fakeSession{walkErr: errors.New("unknown username")},
			wantCode: cnserrors.ErrCodeUnauthorized,
			wantIO:   true,
		},
		{
			name:     "connect",
			host:     "h",
			spec:     inventory.QuerySpec{Name: "n", Class: "system"},
			sess:     &fakeSession{connectErr: errors.New("dial udp: lookup h: no such host")},
			wantCode: cnserrors.ErrCodeConnection,
			wantIO:   true,
		},
		{
			name:     "missing field",
			host:     "h",
			spec:     inventory.QuerySpec{Name: "n", Class: "interfaces", Fields: []string{"ifAlias"}},
			sess:     &fakeSession{pdus: ifTablePDUs()},
			wantCode: cnserrors.ErrCodeQuery,
			wantIO:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestExecutor(tt.sess).Execute(context.Background(), tt.host, tt.spec, creds)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cnserrors.CodeOf(err))
			assert.Equal(t, tt.wantIO, tt.sess.connected)
		})
	}
}

func TestNewSession_Credentials(t *testing.T) {
	creds := testCreds(t)

	t.Run("v3", func(t *testing.T) {
		s, err := NewSession(context.Background(), "h", Config{Version: Version3, Port: 161, AuthProtocol: "sha256", PrivProtocol: "aes"}, creds)
		require.NoError(t, err)
		g := s.(goSession).GoSNMP
		assert.Equal(t, gosnmp.Version3, g.Version)
		assert.Equal(t, gosnmp.AuthPriv, g.MsgFlags)
		assert.Equal(t, "public-ctx", g.ContextName)
		usm := g.SecurityParameters.(*gosnmp.UsmSecurityParameters)
		assert.Equal(t, "monitor", usm.UserName)
		assert.Equal(t, gosnmp.SHA256, usm.AuthenticationProtocol)
		assert.Equal(t, gosnmp.AES, usm.PrivacyProtocol)
		assert.Equal(t, "authpass123", usm.AuthenticationPassphrase)
		assert.NoError(t, s.Close())
	})

	t.Run("v3 auth only", func(t *testing.T) {
		s, err := NewSession(context.Background(), "h", Config{Version: Version3}, creds)
		require.NoError(t, err)
		assert.Equal(t, gosnmp.AuthNoPriv, s.(goSession).MsgFlags)
	})

	t.Run("v2c community", func(t *testing.T) {
		s, err := NewSession(context.Background(), "h", Config{Version: Version2c}, creds)
		require.NoError(t, err)
		assert.Equal(t, "authpass123", s.(goSession).Community)
	})

	t.Run("bad version", func(t *testing.T) {
		_, err := NewSession(context.Background(), "h", Config{Version: "4"}, creds)
		assert.Error(t, err)
	})

	t.Run("bad protocols", func(t *testing.T) {
		assert.Error(t, New(WithAuthProtocol("CRC")).Validate())
		assert.Error(t, New(WithPrivProtocol("ROT13")).Validate())
		assert.NoError(t, New().Validate())
	})
}

func TestRegister(t *testing.T) {
	require.Error(t, Register(Class{Name: "x", Base: "1.3.6"}))
	require.Error(t, Register(Class{Name: "", Base: ".1"}))
	require.Error(t, Register(Class{Name: "x", Base: ".1"}))

	require.NoError(t, Register(Class{
		Name:    "ucdLoad",
		Layout:  Table,
		Base:    ".1.3.6.1.4.1.2021.10.1",
		Columns: []Column{{"laNames", "2"}, {"laLoad", "3"}},
	}))
	c, ok := Lookup("UCDLOAD")
	require.True(t, ok)
	assert.Equal(t, "ucdLoad", c.Name)
	assert.Contains(t, Classes(), "ucdLoad")
}

func TestOctets(t *testing.T) {
	assert.Equal(t, "eth0", octets([]byte("eth0")))
	assert.Equal(t, "C:\\ Label", octets([]byte("C:\\ Label\x00")))
	assert.Equal(t, "00:ff", octets([]byte{0x00, 0xff}))
	assert.Equal(t, "", octets(nil))
}

func TestToReading(t *testing.T) {
	r, ok := toReading(gosnmp.SnmpPDU{Type: gosnmp.Counter64, Value: uint64(1 << 40)})
	require.True(t, ok)
	assert.Equal(t, uint64(1<<40), r.Any())

	r, ok = toReading(gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: -5})
	require.True(t, ok)
	assert.Equal(t, int64(-5), r.Any())

	r, ok = toReading(gosnmp.SnmpPDU{Type: gosnmp.IPAddress, Value: "10.0.0.1"})
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", r.Any())

	r, ok = toReading(gosnmp.SnmpPDU{Type: gosnmp.Opaque, Value: []byte{1}})
	require.True(t, ok)
	assert.Equal(t, property.KindOpaque, r.Kind())

	_, ok = toReading(gosnmp.SnmpPDU{Type: gosnmp.EndOfMibView})
	assert.False(t, ok)
}
