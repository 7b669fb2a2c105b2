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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennib/DomainTricks/pkg/credential"
	"github.com/jennib/DomainTricks/pkg/defaults"
	"github.com/jennib/DomainTricks/pkg/discovery"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/executor/cim"
	"github.com/jennib/DomainTricks/pkg/executor/snmp"
	"github.com/jennib/DomainTricks/pkg/header"
	"github.com/jennib/DomainTricks/pkg/inventory"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	d := Default()

	assert.Equal(t, header.KindConfig, d.Kind)
	assert.Equal(t, DiscoveryStatic, d.Discovery.Type)
	assert.Equal(t, ExecutorCIM, d.Executor.Type)
	assert.Equal(t, credential.EnvSecret, d.Credentials.SecretEnv)
	assert.Equal(t, defaults.PassConcurrency, d.Orchestrator.Concurrency)
	assert.Equal(t, defaults.CollectionInterval, d.IntervalOrDefault())

	require.Len(t, d.Specs, 3)
	assert.Equal(t, "Win32_LogicalDisk", d.Specs[0].Class)
	assert.Equal(t, "DriveType=3", d.Specs[0].Filter)
	assert.NoError(t, inventory.ValidateSpecs(d.Specs))

	// Static discovery without hosts is incomplete.
	assert.Error(t, d.Validate())
	d.Discovery.Hosts = []string{"H1"}
	assert.NoError(t, d.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
kind: CollectorConfig
apiVersion: inventory.domaintricks.io/v1alpha1
discovery:
  type: static
  hosts: [H1, H2, h1]
credentials:
  realm: CORP
  principal: svc
  secretEnv: TEST_SECRET
executor:
  type: cim
  port: 5986
orchestrator:
  concurrency: 4
  timeout: 10s
  rateLimit: 2.5
interval: 5m
specs:
  - name: disks
    class: Win32_LogicalDisk
    filter: DriveType=3
`)
	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"H1", "H2", "h1"}, cfg.Discovery.Hosts)
	assert.Equal(t, 10*time.Second, cfg.Orchestrator.Timeout.D())
	assert.Equal(t, 1, cfg.Orchestrator.Burst)
	assert.Equal(t, 5*time.Minute, cfg.IntervalOrDefault())
	require.Len(t, cfg.Specs, 1)
	assert.Equal(t, []string{inventory.AllFields}, cfg.Specs[0].Fields)
	assert.Equal(t, "https", cfg.Executor.Scheme)
	assert.Len(t, cfg.OrchestratorOptions(), 3)

	exec, err := cfg.NewExecutor()
	require.NoError(t, err)
	assert.IsType(t, &cim.Executor{}, exec)

	disc, err := cfg.NewDiscoverer()
	require.NoError(t, err)
	hosts, err := disc.Discover(t.Context(), cfg.Scope())
	require.NoError(t, err)
	assert.Len(t, hosts, 2)
}

func TestLoadJSONDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "discovery": {"type": "file", "path": "hosts.txt"},
  "orchestrator": {"timeout": 45}
}`)
	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Orchestrator.Timeout.D())
	assert.Equal(t, ExecutorCIM, cfg.Executor.Type)
	assert.Len(t, cfg.Specs, 3)
	assert.Equal(t, "hosts.txt", cfg.Scope())

	disc, err := cfg.NewDiscoverer()
	require.NoError(t, err)
	assert.IsType(t, &discovery.File{}, disc)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong kind", "kind: HostList\ndiscovery: {type: static, hosts: [H1]}\n"},
		{"bad discovery", "discovery: {type: ldap}\n"},
		{"file without path", "discovery: {type: file}\n"},
		{"bad address type", "discovery: {type: kubernetes, addressType: bogus}\n"},
		{"bad executor", "discovery: {type: static, hosts: [H1]}\nexecutor: {type: ssh}\n"},
		{"bad scheme", "discovery: {type: static, hosts: [H1]}\nexecutor: {type: cim, scheme: ftp}\n"},
		{"bad port", "discovery: {type: static, hosts: [H1]}\nexecutor: {port: 70000}\n"},
		{"bad snmp version", "discovery: {type: static, hosts: [H1]}\nexecutor: {type: snmp, snmpVersion: v9}\n"},
		{"bad duration", "discovery: {type: static, hosts: [H1]}\norchestrator: {timeout: soon}\n"},
		{"bad spec", "discovery: {type: static, hosts: [H1]}\nspecs: [{name: x}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.yaml", tt.content), "")
			require.Error(t, err)
			assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(err), "got %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestNewExecutorSNMP(t *testing.T) {
	cfg := Default()
	cfg.Discovery.Hosts = []string{"H1"}
	cfg.Executor = Executor{Type: ExecutorSNMP, SNMPVersion: "3", AuthProtocol: "SHA", PrivProtocol: "AES", Port: 1161, Retries: 2}
	require.NoError(t, cfg.Validate())

	exec, err := cfg.NewExecutor()
	require.NoError(t, err)
	assert.IsType(t, &snmp.Executor{}, exec)
}

func TestCredentialSource(t *testing.T) {
	t.Setenv("TEST_CONFIG_SECRET", "s3cret")

	cfg := Default()
	cfg.Credentials = Credentials{Realm: "CORP", Principal: "svc", SecretEnv: "TEST_CONFIG_SECRET"}

	creds, err := cfg.CredentialSource().Credentials(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "CORP", creds.Realm())
	assert.Equal(t, "svc", creds.Principal())
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"1m30s"`)))
	assert.Equal(t, 90*time.Second, d.D())

	out, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(out))

	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))
}

func TestNewPipeline(t *testing.T) {
	cfg := Default()
	cfg.Discovery.Hosts = []string{"H1"}

	p, err := cfg.NewPipeline("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, cfg.Specs, p.Specs())

	cfg.Executor.Type = "ssh"
	_, err = cfg.NewPipeline("v1.2.3")
	assert.Error(t, err)
}
