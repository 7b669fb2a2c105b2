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

package inventory

import (
	"fmt"
	"strings"

	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
)

const (
	// AllFields is the field-list sentinel selecting every property.
	AllFields = "*"

	// DefaultNamespace is the CIM namespace used when a spec names none.
	DefaultNamespace = `root\cimv2`
)

// QuerySpec is an immutable, named request for one class of structured data.
// Name is the key the results are merged under in Host.ResultSets. Class
// names the remote data class and falls back to Name when empty.
type QuerySpec struct {
	Name      string   `json:"name" yaml:"name"`
	Namespace string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Class     string   `json:"class,omitempty" yaml:"class,omitempty"`
	Fields    []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Filter    string   `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// WantsAllFields reports whether every property should be returned.
// An empty field list is the same as the "*" sentinel.
func (q QuerySpec) WantsAllFields() bool {
	return len(q.Fields) == 0 || (len(q.Fields) == 1 && q.Fields[0] == AllFields)
}

// NamespaceOrDefault returns Namespace, or DefaultNamespace if unset.
func (q QuerySpec) NamespaceOrDefault() string {
	if q.Namespace == "" {
		return DefaultNamespace
	}
	return q.Namespace
}

// ClassOrDefault returns Class, or Name if no class is set.
func (q QuerySpec) ClassOrDefault() string {
	if c := strings.TrimSpace(q.Class); c != "" {
		return c
	}
	return strings.TrimSpace(q.Name)
}

// Validate checks the spec is well formed. It does not parse the filter;
// filter syntax is the executor's concern and surfaces as a per-host query error.
func (q QuerySpec) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "query spec name must not be empty")
	}
	for i, f := range q.Fields {
		if strings.TrimSpace(f) == "" {
			return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("query spec field %d is empty", i), map[string]any{"spec": q.Name})
		}
		if f == AllFields && len(q.Fields) > 1 {
			return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"field list must not mix * with named fields", map[string]any{"spec": q.Name})
		}
	}
	return nil
}

// String returns a compact, human readable form of the spec.
func (q QuerySpec) String() string {
	fields := AllFields
	if !q.WantsAllFields() {
		fields = strings.Join(q.Fields, ",")
	}
	s := fmt.Sprintf("%s=%s:%s", q.Name, q.Class, fields)
	if q.Namespace != "" {
		s = fmt.Sprintf("%s=%s/%s:%s", q.Name, q.Namespace, q.Class, fields)
	}
	if q.Filter != "" {
		s += "?" + q.Filter
	}
	return s
}

// ParseQuerySpec parses the command line form name=class[:fields][?filter],
// e.g. "disks=Win32_LogicalDisk:Name,FreeSpace?DriveType=3".
// A class may be namespace qualified as namespace/class. An empty class
// ("disks=") leaves Class unset so the name is queried.
func ParseQuerySpec(s string) (QuerySpec, error) {
	var q QuerySpec
	rest := strings.TrimSpace(s)

	if i := strings.Index(rest, "?"); i >= 0 {
		q.Filter = strings.TrimSpace(rest[i+1:])
		rest = rest[:i]
	}

	name, rest, ok := strings.Cut(rest, "=")
	if !ok {
		return q, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid query spec %q: expected name=class[:fields][?filter]", s))
	}
	q.Name = strings.TrimSpace(name)

	class, fields, hasFields := strings.Cut(rest, ":")
	class = strings.TrimSpace(class)
	if i := strings.LastIndex(class, "/"); i >= 0 {
		q.Namespace = class[:i]
		class = class[i+1:]
	}
	q.Class = class

	if hasFields {
		for _, f := range strings.Split(fields, ",") {
			q.Fields = append(q.Fields, strings.TrimSpace(f))
		}
	} else {
		q.Fields = []string{AllFields}
	}

	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

// ValidateSpecs validates every spec in order and returns the first failure.
func ValidateSpecs(specs []QuerySpec) error {
	for i, q := range specs {
		if err := q.Validate(); err != nil {
			return cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid query spec at index %d", i), err, map[string]any{"index": i})
		}
	}
	return nil
}
