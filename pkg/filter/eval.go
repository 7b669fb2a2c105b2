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
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jennib/DomainTricks/pkg/property"
)

type node interface {
	eval(s *property.Set) bool
	fields(add func(string))
}

type andNode struct{ l, r node }

func (n andNode) eval(s *property.Set) bool { return n.l.eval(s) && n.r.eval(s) }
func (n andNode) fields(add func(string)) { n.l.fields(add); n.r.fields(add) }

type orNode struct{ l, r node }

func (n orNode) eval(s *property.Set) bool { return n.l.eval(s) || n.r.eval(s) }
func (n orNode) fields(add func(string)) { n.l.fields(add); n.r.fields(add) }

type notNode struct{ inner node }

func (n notNode) eval(s *property.Set) bool { return !n.inner.eval(s) }
func (n notNode) fields(add func(string)) { n.inner.fields(add) }

type nullNode struct {
	field  string
	negate bool
}

// A property that is absent counts as null.
func (n nullNode) eval(s *property.Set) bool {
	_, v, ok := s.LookupFold(n.field)
	isNull := !ok || v.Kind() == property.KindNull
	return isNull != n.negate
}

func (n nullNode) fields(add func(string)) { add(n.field) }

type compareNode struct {
	field string
	op    string
	lit   property.Reading
}

func (n compareNode) fields(add func(string)) { add(n.field) }

// eval compares the property against the literal. Comparisons involving a
// missing or null property, or values of incompatible kinds, are false.
// String comparison is case-insensitive.
func (n compareNode) eval(s *property.Set) bool {
	_, v, ok := s.LookupFold(n.field)
	if !ok || v.Kind() == property.KindNull || n.lit.Kind() == property.KindNull {
		return false
	}

	if c, ok := compareNumbers(v, n.lit); ok {
		return applyOp(n.op, c)
	}

	switch v.Kind() {
	case property.KindString:
		if n.lit.Kind() != property.KindString {
			return false
		}
		return applyOp(n.op, strings.Compare(strings.ToLower(v.String()), strings.ToLower(n.lit.String())))
	case property.KindBool:
		if n.lit.Kind() != property.KindBool {
			return false
		}
		a, b := v.Any().(bool), n.lit.Any().(bool)
		switch n.op {
		case "=":
			return a == b
		case "!=", "<>":
			return a != b
		default:
			return false
		}
	default:
		return false
	}
}

// compareNumbers compares a and b numerically when both are numbers or one is
// a number and the other a string holding a number.
func compareNumbers(a, b property.Reading) (int, bool) {
	if a.Kind() != property.KindNumber && b.Kind() != property.KindNumber {
		return 0, false
	}
	af, ok := numeric(a)
	if !ok {
		return 0, false
	}
	bf, ok := numeric(b)
	if !ok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

func numeric(r property.Reading) (float64, bool) {
	if f, ok := property.AsFloat64(r); ok {
		return f, true
	}
	if r.Kind() == property.KindString {
		f, err := strconv.ParseFloat(strings.TrimSpace(r.String()), 64)
		return f, err == nil
	}
	return 0, false
}

func applyOp(op string, c int) bool {
	switch op {
	case "=":
		return c == 0
	case "!=", "<>":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	default:
		return false
	}
}

type likeNode struct {
	field   string
	pattern string
}

func (n likeNode) fields(add func(string)) { add(n.field) }

func (n likeNode) eval(s *property.Set) bool {
	_, v, ok := s.LookupFold(n.field)
	if !ok || v.Kind() != property.KindString {
		return false
	}
	return like(v.String(), n.pattern)
}

// like matches s against a LIKE pattern where % matches any run of
// characters and _ matches exactly one. Matching is case-insensitive.
func like(s, pattern string) bool {
	if !utf8.ValidString(s) || !utf8.ValidString(pattern) {
		return false
	}
	str := []rune(strings.ToLower(s))
	pat := []rune(strings.ToLower(pattern))

	// Greedy match with single-star backtracking.
	si, pi := 0, 0
	starP, starS := -1, 0
	for si < len(str) {
		switch {
		case pi < len(pat) && pat[pi] == '%':
			starP, starS = pi, si
			pi++
		case pi < len(pat) && (pat[pi] == '_' || foldEq(pat[pi], str[si])):
			si++
			pi++
		case starP >= 0:
			starS++
			si = starS
			pi = starP + 1
		default:
			return false
		}
	}
	for pi < len(pat) && pat[pi] == '%' {
		pi++
	}
	return pi == len(pat)
}

func foldEq(a, b rune) bool {
	return a == b || unicode.SimpleFold(a) == b
}
