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

package filter

import (
	"strings"

	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/property"
)

// Expr is a parsed filter expression. The zero value and nil match everything.
type Expr struct {
	source string
	root   node
}

// Parse parses a WQL-style filter. An empty or blank input yields an
// expression that matches every property-set. Syntax errors are returned as
// QUERY structured errors.
func Parse(input string) (*Expr, error) {
	if strings.TrimSpace(input) == "" {
		return &Expr{source: input}, nil
	}
	ast, err := grammar.ParseString("", input)
	if err != nil {
		return nil, queryError(input, err)
	}
	root, err := ast.node()
	if err != nil {
		return nil, queryError(input, err)
	}
	return &Expr{source: input, root: root}, nil
}

// MustParse is Parse that panics on error, for constant filters.
func MustParse(input string) *Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

func queryError(input string, err error) error {
	return cnserrors.WrapWithContext(cnserrors.ErrCodeQuery, "malformed filter", err,
		map[string]any{"filter": input})
}

// Match reports whether s satisfies the expression.
func (e *Expr) Match(s *property.Set) bool {
	if e == nil || e.root == nil {
		return true
	}
	return e.root.eval(s)
}

// Fields returns the property names the expression references, in first-use
// order and without duplicates (case-insensitive).
func (e *Expr) Fields() []string {
	if e == nil || e.root == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	e.root.fields(func(name string) {
		k := strings.ToLower(name)
		if !seen[k] {
			seen[k] = true
			out = append(out, name)
		}
	})
	return out
}

// IsEmpty reports whether the expression matches everything.
func (e *Expr) IsEmpty() bool {
	return e == nil || e.root == nil
}

// String returns the source text the expression was parsed from.
func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	return e.source
}

// flip mirrors an operator so "3 < x" becomes "x > 3".
func flip(op string) string {
	switch op {
	case "<":
		return ">"
	case "<=":
		return ">="
	case ">":
		return "<"
	case ">=":
		return "<="
	default:
		return op
	}
}
