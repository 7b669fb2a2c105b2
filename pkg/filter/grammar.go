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
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jennib/DomainTricks/pkg/property"
)

var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i:\b(AND|OR|NOT|LIKE|IS|NULL|TRUE|FALSE)\b)`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_.]*`},
	{Name: "Number", Pattern: `[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`},
	{Name: "String", Pattern: `'(?:[^'\\]|''|\\.)*'|"(?:[^"\\]|""|\\.)*"`},
	{Name: "Op", Pattern: `<>|!=|<=|>=|=|<|>`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var grammar = participle.MustBuild[orExpr](
	participle.Lexer(filterLexer),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(2),
)

// orExpr := andExpr { OR andExpr }
type orExpr struct {
	Left  *andExpr   `parser:"@@"`
	Right []*andExpr `parser:"( 'OR' @@ )*"`
}

// andExpr := unaryExpr { AND unaryExpr }
type andExpr struct {
	Left  *unaryExpr   `parser:"@@"`
	Right []*unaryExpr `parser:"( 'AND' @@ )*"`
}

type unaryExpr struct {
	Not   *unaryExpr `parser:"  'NOT' @@"`
	Group *orExpr    `parser:"| '(' @@ ')'"`
	Pred  *predicate `parser:"| @@"`
}

type predicate struct {
	Reversed *reversedCompare `parser:"  @@"`
	Field    *fieldPredicate  `parser:"| @@"`
}

// reversedCompare is "3 < DriveType".
type reversedCompare struct {
	Lit   *literal `parser:"@@"`
	Op    string   `parser:"@Op"`
	Field string   `parser:"@Ident"`
}

type fieldPredicate struct {
	Field string    `parser:"@Ident"`
	Tail  *predTail `parser:"@@"`
}

type predTail struct {
	Compare *compareTail `parser:"  @@"`
	Null    *nullTail    `parser:"| @@"`
	Like    *likeTail    `parser:"| @@"`
}

type compareTail struct {
	Op  string   `parser:"@Op"`
	Lit *literal `parser:"@@"`
}

type nullTail struct {
	Not  bool `parser:"'IS' ( @'NOT' )?"`
	Null bool `parser:"@'NULL'"`
}

type likeTail struct {
	Not     bool   `parser:"( @'NOT' )? 'LIKE'"`
	Pattern string `parser:"@String"`
}

type literal struct {
	Str   *string `parser:"  @String"`
	Num   *string `parser:"| @Number"`
	True  bool    `parser:"| @'TRUE'"`
	False bool    `parser:"| @'FALSE'"`
	Null  bool    `parser:"| @'NULL'"`
}

func (e *orExpr) node() (node, error) {
	left, err := e.Left.node()
	if err != nil {
		return nil, err
	}
	for _, r := range e.Right {
		right, err := r.node()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (e *andExpr) node() (node, error) {
	left, err := e.Left.node()
	if err != nil {
		return nil, err
	}
	for _, r := range e.Right {
		right, err := r.node()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (u *unaryExpr) node() (node, error) {
	switch {
	case u.Not != nil:
		inner, err := u.Not.node()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	case u.Group != nil:
		return u.Group.node()
	case u.Pred != nil:
		return u.Pred.node()
	}
	return nil, fmt.Errorf("empty expression")
}

func (p *predicate) node() (node, error) {
	if r := p.Reversed; r != nil {
		lit, err := r.Lit.reading()
		if err != nil {
			return nil, err
		}
		return compareNode{field: r.Field, op: flip(r.Op), lit: lit}, nil
	}
	f := p.Field
	switch t := f.Tail; {
	case t.Compare != nil:
		lit, err := t.Compare.Lit.reading()
		if err != nil {
			return nil, err
		}
		return compareNode{field: f.Field, op: t.Compare.Op, lit: lit}, nil
	case t.Null != nil:
		return nullNode{field: f.Field, negate: t.Null.Not}, nil
	case t.Like != nil:
		var n node = likeNode{field: f.Field, pattern: unquote(t.Like.Pattern)}
		if t.Like.Not {
			n = notNode{n}
		}
		return n, nil
	}
	return nil, fmt.Errorf("expected operator after %q", f.Field)
}

func (l *literal) reading() (property.Reading, error) {
	switch {
	case l.Str != nil:
		return property.Str(unquote(*l.Str)), nil
	case l.Num != nil:
		if i, err := strconv.ParseInt(*l.Num, 10, 64); err == nil {
			return property.Int64(i), nil
		}
		f, err := strconv.ParseFloat(*l.Num, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", *l.Num)
		}
		return property.Float64(f), nil
	case l.True:
		return property.Bool(true), nil
	case l.False:
		return property.Bool(false), nil
	default:
		return property.Null{}, nil
	}
}

// unquote strips the quotes from a String token. A backslash escapes the
// next character and a doubled quote stands for one quote.
func unquote(tok string) string {
	if len(tok) < 2 {
		return tok
	}
	quote := tok[0]
	body := tok[1 : len(tok)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] == '\\' && i+1 < len(body):
			i++
			b.WriteByte(body[i])
		case body[i] == quote && i+1 < len(body) && body[i+1] == quote:
			i++
			b.WriteByte(quote)
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
