// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package scaletypes

import (
	"fmt"
	"strings"

	"github.com/pk910/dynamic-scale/scaleutils"
)

type TypeExprKind uint8

const (
	TypeExprName TypeExprKind = iota
	TypeExprCompact
	TypeExprSequence
	TypeExprOption
	TypeExprTuple
	TypeExprArray
)

// TypeExpr is the parsed form of a type string.
//
//   - TypeExprName:     Name holds a registry name ("u64", "SubnetInfo", "scale_info::3")
//   - TypeExprCompact:  Elems[0] is the compact inner type
//   - TypeExprSequence: Elems[0] is the element type
//   - TypeExprOption:   Elems[0] is the inner type
//   - TypeExprTuple:    Elems holds the element types (empty for the unit type)
//   - TypeExprArray:    Elems[0] is the element type, Len the length expression
type TypeExpr struct {
	Kind  TypeExprKind
	Name  string
	Elems []*TypeExpr
	Len   string
}

func (e *TypeExpr) String() string {
	switch e.Kind {
	case TypeExprCompact:
		return fmt.Sprintf("Compact<%v>", e.Elems[0])
	case TypeExprSequence:
		return fmt.Sprintf("Vec<%v>", e.Elems[0])
	case TypeExprOption:
		return fmt.Sprintf("Option<%v>", e.Elems[0])
	case TypeExprTuple:
		elems := make([]string, len(e.Elems))
		for i, elem := range e.Elems {
			elems[i] = elem.String()
		}
		if len(elems) == 1 {
			return fmt.Sprintf("(%v,)", elems[0])
		}
		return fmt.Sprintf("(%v)", strings.Join(elems, ", "))
	case TypeExprArray:
		return fmt.Sprintf("[%v; %v]", e.Elems[0], e.Len)
	}
	return e.Name
}

// ParseTypeString parses a type string like "Vec<(AccountId, Compact<u64>)>" into a TypeExpr.
//
// Supported forms:
//   - bare and path qualified names: "u64", "SubnetInfo", "T::AccountId", "scale_info::12"
//   - Compact<T>, Vec<T>, Option<T>
//   - tuples "(T1, T2)", the unit type "()" and one element tuples "(T,)"
//   - fixed arrays "[T; N]" where N is a number or a constant expression
//   - transparent wrappers Box<T>, Rc<T>, Arc<T>
//   - BTreeSet<T> / VecDeque<T> (sequences) and BTreeMap<K, V> / HashMap<K, V> (sequences of pairs)
func ParseTypeString(typeStr string) (*TypeExpr, error) {
	p := &typeParser{input: typeStr}

	expr, err := p.parseType()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing input %q", p.input[p.pos:])
	}

	return expr, nil
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %v at position %d in %q", scaleutils.ErrMalformedTypeString, fmt.Sprintf(format, args...), p.pos, p.input)
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) expect(c byte) error {
	if p.peek() != c {
		if p.pos >= len(p.input) {
			return p.errorf("expected '%c', got end of input", c)
		}
		return p.errorf("expected '%c', got '%c'", c, p.input[p.pos])
	}
	p.pos++
	return nil
}

func isIdentChar(c byte) bool {
	return c == '_' || c == ':' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *typeParser) parseType() (*TypeExpr, error) {
	c := p.peek()
	switch {
	case c == 0:
		return nil, p.errorf("unexpected end of input")
	case c == '(':
		return p.parseTuple()
	case c == '[':
		return p.parseArray()
	case isIdentChar(c):
		return p.parseNamed()
	}
	return nil, p.errorf("unexpected character '%c'", c)
}

func (p *typeParser) parseTuple() (*TypeExpr, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}

	expr := &TypeExpr{Kind: TypeExprTuple}
	trailingComma := false

	for p.peek() != ')' {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		expr.Elems = append(expr.Elems, elem)

		trailingComma = false
		if p.peek() == ',' {
			p.pos++
			trailingComma = true
			continue
		}
		if p.peek() != ')' {
			return nil, p.errorf("expected ',' or ')' in tuple")
		}
	}
	p.pos++

	// "(T)" is a parenthesized type, "(T,)" a one element tuple
	if len(expr.Elems) == 1 && !trailingComma {
		return expr.Elems[0], nil
	}

	return expr, nil
}

func (p *typeParser) parseArray() (*TypeExpr, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if err := p.expect(';'); err != nil {
		return nil, err
	}

	end := strings.IndexAny(p.input[p.pos:], "[]")
	if end < 0 || p.input[p.pos+end] != ']' {
		return nil, p.errorf("unterminated array length")
	}

	length := strings.TrimSpace(p.input[p.pos : p.pos+end])
	if length == "" {
		return nil, p.errorf("missing array length")
	}
	p.pos += end + 1

	return &TypeExpr{
		Kind:  TypeExprArray,
		Elems: []*TypeExpr{elem},
		Len:   length,
	}, nil
}

func (p *typeParser) parseNamed() (*TypeExpr, error) {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]
	if strings.HasSuffix(name, ":") || strings.HasPrefix(name, ":") || strings.Contains(strings.ReplaceAll(name, "::", ""), ":") {
		return nil, p.errorf("invalid path %q", name)
	}

	if p.peek() != '<' {
		return &TypeExpr{Kind: TypeExprName, Name: name}, nil
	}
	p.pos++

	params := []*TypeExpr{}
	for {
		param, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		if p.peek() == ',' {
			p.pos++
			continue
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		break
	}

	return p.buildGeneric(name, params)
}

func (p *typeParser) buildGeneric(name string, params []*TypeExpr) (*TypeExpr, error) {
	baseName := name
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		baseName = name[idx+2:]
	}

	single := func(kind TypeExprKind) (*TypeExpr, error) {
		if len(params) != 1 {
			return nil, p.errorf("%v expects 1 type parameter, got %d", baseName, len(params))
		}
		return &TypeExpr{Kind: kind, Elems: params}, nil
	}

	switch baseName {
	case "Compact":
		return single(TypeExprCompact)
	case "Vec", "BTreeSet", "VecDeque":
		return single(TypeExprSequence)
	case "Option":
		return single(TypeExprOption)
	case "Box", "Rc", "Arc":
		if len(params) != 1 {
			return nil, p.errorf("%v expects 1 type parameter, got %d", baseName, len(params))
		}
		return params[0], nil
	case "BTreeMap", "HashMap":
		if len(params) != 2 {
			return nil, p.errorf("%v expects 2 type parameters, got %d", baseName, len(params))
		}
		return &TypeExpr{
			Kind:  TypeExprSequence,
			Elems: []*TypeExpr{{Kind: TypeExprTuple, Elems: params}},
		}, nil
	}

	return nil, p.errorf("unsupported generic type %q", name)
}
