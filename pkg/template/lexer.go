package template

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenNumber
	tokenString
	tokenPunct
	tokenOperator
	tokenPlaceholder
	tokenKeyword
)

// Snippet keywords. The snippet grammar is language-neutral; only the
// statement forms recipes synthesize are recognized.
//
//nolint:gochecknoglobals // Package-level lookup table, never mutated.
var keywords = map[string]bool{
	"return": true,
}

//nolint:gochecknoglobals // Package-level lookup table, never mutated.
var doubleOperators = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	input  string
	offset int
}

func (l *lexer) errorf(pos int, format string, args ...any) error {
	return fmt.Errorf("template: %s at offset %d in snippet", fmt.Sprintf(format, args...), pos)
}

// lex tokenizes the whole snippet up front; snippets are short.
func (l *lexer) lex() ([]token, error) {
	var tokens []token

	for {
		l.skipSpace()

		if l.offset >= len(l.input) {
			tokens = append(tokens, token{kind: tokenEOF, pos: l.offset})

			return tokens, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}
}

func (l *lexer) skipSpace() {
	for l.offset < len(l.input) && unicode.IsSpace(rune(l.input[l.offset])) {
		l.offset++
	}
}

func (l *lexer) next() (token, error) {
	start := l.offset
	ch := l.input[l.offset]

	switch {
	case ch == '#' && l.peekAt(1) == '{':
		return l.lexPlaceholder()
	case isIdentStart(ch):
		return l.lexIdent(), nil
	case ch >= '0' && ch <= '9':
		return l.lexNumber(), nil
	case ch == '"':
		return l.lexString()
	case strings.ContainsRune("(){}[],;:.", rune(ch)):
		l.offset++

		return token{kind: tokenPunct, text: string(ch), pos: start}, nil
	default:
		return l.lexOperator()
	}
}

func (l *lexer) peekAt(ahead int) byte {
	if l.offset+ahead >= len(l.input) {
		return 0
	}

	return l.input[l.offset+ahead]
}

func (l *lexer) lexPlaceholder() (token, error) {
	start := l.offset
	l.offset += 2 // consume "#{"

	end := strings.IndexByte(l.input[l.offset:], '}')
	if end < 0 {
		return token{}, l.errorf(start, "unterminated placeholder")
	}

	category := strings.TrimSpace(l.input[l.offset : l.offset+end])
	l.offset += end + 1

	return token{kind: tokenPlaceholder, text: category, pos: start}, nil
}

func (l *lexer) lexIdent() token {
	start := l.offset

	for l.offset < len(l.input) && isIdentPart(l.input[l.offset]) {
		l.offset++
	}

	text := l.input[start:l.offset]
	kind := tokenIdent

	if keywords[text] {
		kind = tokenKeyword
	}

	return token{kind: kind, text: text, pos: start}
}

func (l *lexer) lexNumber() token {
	start := l.offset

	for l.offset < len(l.input) && (isDigit(l.input[l.offset]) || l.input[l.offset] == '.') {
		l.offset++
	}

	return token{kind: tokenNumber, text: l.input[start:l.offset], pos: start}
}

func (l *lexer) lexString() (token, error) {
	start := l.offset
	l.offset++ // opening quote

	for l.offset < len(l.input) {
		if l.input[l.offset] == '\\' {
			l.offset += 2

			continue
		}

		if l.input[l.offset] == '"' {
			l.offset++

			return token{kind: tokenString, text: l.input[start:l.offset], pos: start}, nil
		}

		l.offset++
	}

	return token{}, l.errorf(start, "unterminated string literal")
}

func (l *lexer) lexOperator() (token, error) {
	start := l.offset

	if l.offset+1 < len(l.input) && doubleOperators[l.input[l.offset:l.offset+2]] {
		l.offset += 2

		return token{kind: tokenOperator, text: l.input[start:l.offset], pos: start}, nil
	}

	ch := l.input[l.offset]
	if strings.ContainsRune("+-*/%<>=!", rune(ch)) {
		l.offset++

		return token{kind: tokenOperator, text: string(ch), pos: start}, nil
	}

	return token{}, l.errorf(start, "unexpected character %q", ch)
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
