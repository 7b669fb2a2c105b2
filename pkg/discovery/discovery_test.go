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

package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/jennib/DomainTricks/pkg/inventory"
)

func names(hosts []*inventory.Host) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, h.Name)
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims", []string{"  a ", "b\t"}, []string{"a", "b"}},
		{"drops blanks", []string{"", "  ", "a"}, []string{"a"}},
		{"case-insensitive duplicates keep first", []string{"WS1", "ws1", "Ws2", "ws1 "}, []string{"WS1", "Ws2"}},
		{"unicode case folding", []string{"Straße-01", "STRASSE-01"}, []string{"Straße-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestStatic(t *testing.T) {
	hosts, err := NewStatic("H1", "h1", "", "H2").Discover(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"H1", "H2"}, names(hosts))
	for _, h := range hosts {
		assert.Empty(t, h.ResultSets)
		assert.NotNil(t, h.ResultSets)
		assert.Nil(t, h.LastSeen)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewStatic("H1").Discover(ctx, "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestFunc(t *testing.T) {
	var gotScope string
	d := Func(func(_ context.Context, scope string) ([]*inventory.Host, error) {
		gotScope = scope
		return inventory.NewHosts("x"), nil
	})
	hosts, err := d.Discover(context.Background(), "OU=Workstations")
	require.NoError(t, err)
	assert.Equal(t, "OU=Workstations", gotScope)
	assert.Len(t, hosts, 1)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name: "yaml document",
			file: "hosts.yaml",
			content: `kind: HostList
apiVersion: inventory.domaintricks.io/v1
hosts:
  - ws-001
  - ws-002
`,
			want: []string{"ws-001", "ws-002"},
		},
		{
			name:    "yaml list",
			file:    "hosts.yml",
			content: "- a\n- B\n- b\n",
			want:    []string{"a", "B"},
		},
		{
			name:    "json document",
			file:    "hosts.json",
			content: `{"kind":"HostList","hosts":["j1"," j2 "]}`,
			want:    []string{"j1", "j2"},
		},
		{
			name:    "json array",
			file:    "hosts.json",
			content: ` ["x", "y", ""]`,
			want:    []string{"x", "y"},
		},
		{
			name:    "plain text",
			file:    "hosts.txt",
			content: "# workstations\nws-1\n\n  ws-2  \n#ws-3\n",
			want:    []string{"ws-1", "ws-2"},
		},
		{
			name:    "wrong kind",
			file:    "hosts.yaml",
			content: "kind: Inventory\nhosts: [a]\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			file:    "hosts.json",
			content: `{"hosts": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			hosts, err := (&File{}).Discover(context.Background(), path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(hosts))
		})
	}
}

func TestFile_PathFallbackAndMissing(t *testing.T) {
	path := writeFile(t, "hosts.txt", "a\n")
	hosts, err := (&File{Path: path}).Discover(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names(hosts))

	_, err = (&File{}).Discover(context.Background(), "")
	require.Error(t, err)

	_, err = (&File{}).Discover(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestFile_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("r1\nr2\n"))
	}))
	defer srv.Close()

	hosts, err := (&File{}).Discover(context.Background(), srv.URL+"/hosts.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, names(hosts))
}

func TestKubernetes(t *testing.T) {
	mk := func(name string, labels map[string]string, ip string) *v1.Node {
		n := &v1.Node{ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels}}
		if ip != "" {
			n.Status.Addresses = []v1.NodeAddress{{Type: v1.NodeInternalIP, Address: ip}}
		}
		return n
	}
	cs := fake.NewClientset(
		mk("win-1", map[string]string{"kubernetes.io/os": "windows"}, "10.0.0.1"),
		mk("win-2", map[string]string{"kubernetes.io/os": "windows"}, ""),
		mk("lnx-1", map[string]string{"kubernetes.io/os": "linux"}, "10.0.0.3"),
	)

	d := &Kubernetes{Client: cs, AddressType: v1.NodeInternalIP, LabelSelector: "kubernetes.io/os=windows"}

	hosts, err := d.Discover(context.Background(), "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"10.0.0.1", "win-2"}, names(hosts))

	hosts, err = d.Discover(context.Background(), "kubernetes.io/os=linux")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.3"}, names(hosts))

	byName := &Kubernetes{Client: cs}
	hosts, err = byName.Discover(context.Background(), "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"win-1", "win-2", "lnx-1"}, names(hosts))
}
