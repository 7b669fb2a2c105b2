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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/jennib/DomainTricks/pkg/defaults"
	"github.com/jennib/DomainTricks/pkg/header"
	"github.com/jennib/DomainTricks/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap destinations: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	configMapFieldManager = "domaintricks"
	configMapFormatKey    = "format"
	configMapTimestampKey = "timestamp"
	defaultDataKeyBase    = "document"
)

// ConfigMapWriter stores a document in a ConfigMap using server-side apply.
// The data key is the lower-cased document kind plus the format extension,
// e.g. inventory.yaml.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
	client     client.Interface
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithConfigMapClient sets the clientset, mainly for tests.
func WithConfigMapClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// WithConfigMapKubeconfig selects a kubeconfig instead of the shared client.
func WithConfigMapKubeconfig(path string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kubeconfig = path
	}
}

// NewConfigMapWriter creates a writer for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    orJSON(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize implements Serializer.
func (w *ConfigMapWriter) Serialize(ctx context.Context, doc any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs := w.client
	if cs == nil {
		var err error
		if cs, err = client.For(w.kubeconfig); err != nil {
			return err
		}
	}

	content, err := Marshal(w.format, doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	kind, version, timestamp := describe(doc)

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "domaintricks",
			"app.kubernetes.io/component": strings.ToLower(kind),
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			dataKey(kind, w.format): string(content),
			configMapFormatKey:      string(w.format),
			configMapTimestampKey:   timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"kind", kind,
		"format", w.format,
		"size", len(content))

	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, configMap,
		metav1.ApplyOptions{FieldManager: configMapFieldManager, Force: true})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close implements Closer.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// describe pulls kind, version and timestamp from a document header.
func describe(doc any) (kind, version, timestamp string) {
	if h, ok := doc.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok && !isNilPointer(doc) {
		kind = h.GetKind().String()
		md := h.GetMetadata()
		version = md["version"]
		timestamp = md["timestamp"]
	}
	if kind == "" {
		kind = defaultDataKeyBase
	}
	if version == "" {
		version = "unknown"
	}
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return kind, version, timestamp
}

func dataKey(kind string, format Format) string {
	return strings.ToLower(kind) + "." + format.Extension()
}

// configMapContent finds the document stored in cm. The recorded format is
// preferred; otherwise the first key (sorted) with a yaml or json extension
// is used.
func configMapContent(cm *corev1.ConfigMap) (string, Format, error) {
	keys := make([]string, 0, len(cm.Data))
	for k := range cm.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if f := ParseFormat(cm.Data[configMapFormatKey]); f == FormatJSON || f == FormatYAML {
		for _, k := range keys {
			if strings.HasSuffix(k, "."+f.Extension()) {
				return cm.Data[k], f, nil
			}
		}
	}
	for _, k := range keys {
		switch {
		case strings.HasSuffix(k, ".yaml"):
			return cm.Data[k], FormatYAML, nil
		case strings.HasSuffix(k, ".json"):
			return cm.Data[k], FormatJSON, nil
		}
	}
	return "", "", fmt.Errorf("ConfigMap %s/%s holds no yaml or json document", cm.Namespace, cm.Name)
}

func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	namespace, name, ok := strings.Cut(path, "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
