// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Kind discriminates the cases of Value, the evaluator's sum type for
// everything a `.gclient` or DEPS document can bind a name to.
type Kind int

const (
	KindNull Kind = iota
	KindStr
	KindMapping
	KindSequence
	KindFrom
)

// Value is the typed result of evaluating one manifest expression. Exactly
// one field group is meaningful, selected by Kind; this mirrors the "Values
// are modeled as a sum type" design note rather than using an interface,
// since every case here is a plain literal with no behavior of its own.
type Value struct {
	Kind Kind

	Str string

	// MappingKeys preserves source order; Mapping is keyed the same way.
	MappingKeys []string
	Mapping     map[string]Value

	Sequence []Value

	// From is the module name argument of a From(...) call.
	From string
}

func nullValue() Value   { return Value{Kind: KindNull} }
func strValue(s string) Value { return Value{Kind: KindStr, Str: s} }

// Document is the set of top-level name bindings produced by evaluating one
// manifest text, before schema-specific typed extraction (C2) runs.
type Document map[string]Value

// --- lexer ---
//
// The manifest grammar is a small literal subset of Python's expression
// syntax: string/None literals, {..} mappings, [..] sequences, and a single
// call form From("name"). No example in the retrieval pack parses this
// exact grammar (it is not TOML, not JSON, not HCL), so the lexer below is
// a bespoke hand-written scanner per the evaluator's design note, kept as
// small as the grammar allows.

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokString
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokColon
	tokComma
	tokEquals
)

type token struct {
	kind tokKind
	text string
}

type lexer struct {
	src []rune
	pos int
}

func newLexer(s string) *lexer {
	return &lexer{src: []rune(s)}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) skipSpaceAndComments() {
	for {
		r, ok := l.peekRune()
		if !ok {
			return
		}
		if unicode.IsSpace(r) {
			l.pos++
			continue
		}
		if r == '#' {
			for {
				r, ok := l.peekRune()
				if !ok || r == '\n' {
					break
				}
				l.pos++
			}
			continue
		}
		return
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	r, ok := l.peekRune()
	if !ok {
		return token{kind: tokEOF}, nil
	}

	switch r {
	case '{':
		l.pos++
		return token{kind: tokLBrace}, nil
	case '}':
		l.pos++
		return token{kind: tokRBrace}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket}, nil
	case '(':
		l.pos++
		return token{kind: tokLParen}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen}, nil
	case ':':
		l.pos++
		return token{kind: tokColon}, nil
	case ',':
		l.pos++
		return token{kind: tokComma}, nil
	case '=':
		l.pos++
		return token{kind: tokEquals}, nil
	case '\'', '"':
		return l.lexString(r)
	}

	if unicode.IsLetter(r) || r == '_' {
		return l.lexIdent(), nil
	}

	return token{}, errors.Errorf("unexpected character %q", r)
}

func (l *lexer) lexString(quote rune) (token, error) {
	l.pos++ // consume opening quote
	var b strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token{}, errors.New("unterminated string literal")
		}
		if r == quote {
			l.pos++
			return token{kind: tokString, text: b.String()}, nil
		}
		if r == '\\' {
			l.pos++
			esc, ok := l.peekRune()
			if !ok {
				return token{}, errors.New("unterminated escape sequence")
			}
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
			l.pos++
			continue
		}
		b.WriteRune(r)
		l.pos++
	}
}

func (l *lexer) lexIdent() token {
	start := l.pos
	for {
		r, ok := l.peekRune()
		if !ok || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			break
		}
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.src[start:l.pos])}
}

// --- parser ---

type parser struct {
	lex  *lexer
	cur  token
	kind EvalErrorKind
}

func parseDocument(text string) (Document, error) {
	p := &parser{lex: newLexer(text)}
	if err := p.advance(); err != nil {
		return nil, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}

	doc := Document{}
	for p.cur.kind != tokEOF {
		if p.cur.kind != tokIdent {
			return nil, &EvalError{Kind: EvalSyntax, Detail: "expected a top-level binding name"}
		}
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
		}
		if p.cur.kind != tokEquals {
			return nil, &EvalError{Kind: EvalSyntax, Detail: fmt.Sprintf("expected '=' after %q", name)}
		}
		if err := p.advance(); err != nil {
			return nil, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		doc[name] = val
	}
	return doc, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) parseExpr() (Value, error) {
	switch p.cur.kind {
	case tokString:
		s := p.cur.text
		if err := p.advance(); err != nil {
			return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
		}
		return strValue(s), nil
	case tokIdent:
		switch p.cur.text {
		case "None":
			if err := p.advance(); err != nil {
				return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
			}
			return nullValue(), nil
		case "From":
			return p.parseFrom()
		default:
			return Value{}, &EvalError{Kind: EvalSyntax, Detail: fmt.Sprintf("unexpected identifier %q in expression position", p.cur.text)}
		}
	case tokLBrace:
		return p.parseMapping()
	case tokLBracket:
		return p.parseSequence()
	default:
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: "expected a string, None, mapping, sequence, or From(...) expression"}
	}
}

func (p *parser) parseFrom() (Value, error) {
	if err := p.advance(); err != nil { // consume 'From'
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}
	if p.cur.kind != tokLParen {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: "expected '(' after From"}
	}
	if err := p.advance(); err != nil {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}
	if p.cur.kind != tokString {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: "From(...) requires a string module name"}
	}
	name := p.cur.text
	if err := p.advance(); err != nil {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}
	if p.cur.kind != tokRParen {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: "expected ')' to close From(...)"}
	}
	if err := p.advance(); err != nil {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}
	return Value{Kind: KindFrom, From: name}, nil
}

func (p *parser) parseMapping() (Value, error) {
	if err := p.advance(); err != nil { // consume '{'
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}
	v := Value{Kind: KindMapping, Mapping: map[string]Value{}}
	for p.cur.kind != tokRBrace {
		if p.cur.kind != tokString && p.cur.kind != tokIdent {
			return Value{}, &EvalError{Kind: EvalSyntax, Detail: "expected a mapping key"}
		}
		key := p.cur.text
		if err := p.advance(); err != nil {
			return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
		}
		if p.cur.kind != tokColon {
			return Value{}, &EvalError{Kind: EvalSyntax, Detail: fmt.Sprintf("expected ':' after key %q", key)}
		}
		if err := p.advance(); err != nil {
			return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
		}
		val, err := p.parseExpr()
		if err != nil {
			return Value{}, err
		}
		if _, dup := v.Mapping[key]; !dup {
			v.MappingKeys = append(v.MappingKeys, key)
		}
		v.Mapping[key] = val

		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
			}
			continue
		}
		break
	}
	if p.cur.kind != tokRBrace {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: "expected '}' to close mapping"}
	}
	if err := p.advance(); err != nil {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}
	return v, nil
}

func (p *parser) parseSequence() (Value, error) {
	if err := p.advance(); err != nil { // consume '['
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}
	v := Value{Kind: KindSequence}
	for p.cur.kind != tokRBracket {
		val, err := p.parseExpr()
		if err != nil {
			return Value{}, err
		}
		v.Sequence = append(v.Sequence, val)

		if p.cur.kind == tokComma {
			if err := p.advance(); err != nil {
				return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
			}
			continue
		}
		break
	}
	if p.cur.kind != tokRBracket {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: "expected ']' to close sequence"}
	}
	if err := p.advance(); err != nil {
		return Value{}, &EvalError{Kind: EvalSyntax, Detail: err.Error()}
	}
	return v, nil
}

// Evaluate parses text and returns its top-level bindings. It never
// sandboxes for safety (manifests are trusted, developer-authored input,
// per the evaluator's contract) — it only rejects malformed syntax.
func Evaluate(text string) (Document, error) {
	if !utf8.ValidString(text) {
		return nil, &EvalError{Kind: EvalSyntax, Detail: "manifest is not valid UTF-8"}
	}
	return parseDocument(text)
}
