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
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jennib/DomainTricks/pkg/header"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/serializer"
)

// HostList is the document form of a host file:
//
//	kind: HostList
//	apiVersion: inventory.domaintricks.io/v1
//	hosts:
//	  - ws-001.corp.example.com
//	  - ws-002.corp.example.com
//
// A bare YAML or JSON list of names is accepted as well.
type HostList struct {
	header.Header `json:",inline" yaml:",inline"`

	Hosts []string `json:"hosts" yaml:"hosts"`
}

type hostListDoc HostList

// UnmarshalYAML accepts either the document form or a bare sequence.
func (l *HostList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&l.Hosts)
	}
	var doc hostListDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	*l = HostList(doc)
	return nil
}

// UnmarshalJSON accepts either the document form or a bare array.
func (l *HostList) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &l.Hosts)
	}
	var doc hostListDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*l = HostList(doc)
	return nil
}

// File reads host names from a file, URL or ConfigMap URI given as scope.
// When scope is empty, Path is used.
//
// .yaml, .yml and .json files (and cm:// URIs) are decoded as a HostList.
// .txt files hold one name per line; blank lines and lines starting with #
// are ignored.
type File struct {
	Path       string
	Kubeconfig string
}

// Discover implements Discoverer.
func (f *File) Discover(ctx context.Context, scope string) ([]*inventory.Host, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimSpace(scope)
	if path == "" {
		path = f.Path
	}
	if path == "" {
		return nil, fmt.Errorf("host file path is required")
	}

	var names []string
	if isPlainText(path) {
		data, err := readText(ctx, path)
		if err != nil {
			return nil, err
		}
		names = ParseLines(data)
	} else {
		list, err := serializer.FromFileWithKubeconfig[HostList](path, f.Kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load host list: %w", err)
		}
		if list.Kind != "" && list.Kind != header.KindHostList {
			return nil, fmt.Errorf("unexpected document kind %q in %s, want %s", list.Kind, path, header.KindHostList)
		}
		names = list.Hosts
	}

	hosts := Hosts(names)
	slog.Debug("loaded host file", slog.String("path", path), slog.Int("hosts", len(hosts)))
	return hosts, nil
}

func isPlainText(path string) bool {
	if strings.HasPrefix(path, serializer.ConfigMapURIScheme) {
		return false
	}
	return serializer.FormatFromPath(path) == serializer.FormatTable
}

func readText(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		data, err := serializer.NewHttpReader().ReadWithContext(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to download host list: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read host list: %w", err)
	}
	return data, nil
}

// ParseLines returns the names in a one-per-line host list.
func ParseLines(data []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names
}
