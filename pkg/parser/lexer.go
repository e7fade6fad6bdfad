package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/Celebrate-future/jmesgo/pkg/types"
)

const eof = -1

// Lexer converts an expression string into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go"
// technique: a cursor over the input with single-rune backup.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls. After an error, Next keeps returning TokenError.
func (l *Lexer) Next() Token {
	if l.err != nil {
		return Token{Type: TokenError, Position: l.start}
	}

	l.acceptAll(isWhitespace)
	l.ignore()

	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	// Two-character symbols first (e.g. ==, [?, ||)
	if rts := lookupSymbol2(ch); rts != nil {
		for _, rt := range rts {
			if l.acceptRune(rt.r) {
				return l.newToken(rt.tt)
			}
		}
	}

	// Single-character symbols
	if tt := lookupSymbol1(ch); tt > 0 {
		return l.newToken(tt)
	}

	switch {
	case ch == '"':
		return l.scanQuotedIdentifier()
	case ch == '\'':
		return l.scanRawString()
	case ch == '`':
		return l.scanJSONLiteral()
	case ch == '-' || isDigit(ch):
		l.backup()
		return l.scanNumber()
	case isIdentifierStart(ch):
		l.backup()
		return l.scanIdentifier()
	default:
		return l.error(fmt.Sprintf("unexpected character %q", ch))
	}
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

// Tokenize scans the whole input and returns the token sequence, excluding
// the trailing EOF token. A lex failure returns a *types.LexError.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		t := l.Next()
		if t.Type == TokenError {
			return nil, l.Error()
		}
		if t.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, t)
	}
}

// scanQuotedIdentifier reads a double-quoted identifier from the current
// position. The opening quote has already been consumed. Supported escapes
// are \", \\ and \uXXXX (including UTF-16 surrogate pairs); anything else
// after a backslash is an error.
func (l *Lexer) scanQuotedIdentifier() Token {
	var b strings.Builder
	for {
		switch ch := l.nextRune(); ch {
		case '"':
			return l.decodedToken(TokenQuotedIdentifier, b.String())
		case '\\':
			switch esc := l.nextRune(); esc {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'u':
				r, ok := l.unicodeEscape()
				if !ok {
					return l.error("invalid \\u escape in quoted identifier")
				}
				b.WriteRune(r)
			case eof:
				return l.error("unterminated quoted identifier")
			default:
				return l.error(fmt.Sprintf("unsupported escape \\%c in quoted identifier", esc))
			}
		case eof:
			return l.error("unterminated quoted identifier")
		default:
			b.WriteRune(ch)
		}
	}
}

// unicodeEscape reads the four hex digits of a \uXXXX escape (the "\u" has
// already been consumed). A high surrogate followed by a \uXXXX low
// surrogate is combined into the encoded code point.
func (l *Lexer) unicodeEscape() (rune, bool) {
	u16, ok := l.hex4()
	if !ok {
		return 0, false
	}
	if !utf16.IsSurrogate(rune(u16)) {
		return rune(u16), true
	}

	// Expect the low half of a surrogate pair.
	if !l.acceptRune('\\') || !l.acceptRune('u') {
		return utf8.RuneError, true
	}
	low, ok := l.hex4()
	if !ok {
		return 0, false
	}
	return utf16.DecodeRune(rune(u16), rune(low)), true
}

func (l *Lexer) hex4() (uint64, bool) {
	if l.current+4 > l.length {
		return 0, false
	}
	v, err := strconv.ParseUint(l.input[l.current:l.current+4], 16, 32)
	if err != nil {
		return 0, false
	}
	l.current += 4
	l.width = 0
	return v, true
}

// scanRawString reads a single-quoted raw string. The opening quote has
// already been consumed. Only \' and \\ are unescaped; any other backslash
// sequence is preserved literally.
func (l *Lexer) scanRawString() Token {
	var b strings.Builder
	for {
		switch ch := l.nextRune(); ch {
		case '\'':
			return l.decodedToken(TokenRawString, b.String())
		case '\\':
			switch esc := l.nextRune(); esc {
			case '\'':
				b.WriteByte('\'')
			case '\\':
				b.WriteByte('\\')
			case eof:
				return l.error("unterminated raw string")
			default:
				b.WriteByte('\\')
				b.WriteRune(esc)
			}
		case eof:
			return l.error("unterminated raw string")
		default:
			b.WriteRune(ch)
		}
	}
}

// scanJSONLiteral reads a back-tick delimited literal. The opening
// back-tick has already been consumed. The token value is the raw JSON
// payload (with \` unescaped); the parser decodes it.
func (l *Lexer) scanJSONLiteral() Token {
	var b strings.Builder
	for {
		switch ch := l.nextRune(); ch {
		case '`':
			return l.decodedToken(TokenJSONLiteral, b.String())
		case '\\':
			if l.acceptRune('`') {
				b.WriteByte('`')
			} else {
				b.WriteByte('\\')
			}
		case eof:
			return l.error("unterminated literal")
		default:
			b.WriteRune(ch)
		}
	}
}

// scanNumber reads a number: an optional leading minus followed by a run
// of ASCII digits. Signs are valid only here, which confines them to the
// bracket-index contexts where number tokens can appear.
func (l *Lexer) scanNumber() Token {
	l.acceptRune('-')
	if !l.acceptAll(isDigit) {
		return l.error("expected digits after '-'")
	}
	return l.newToken(TokenNumber)
}

// scanIdentifier reads an unquoted identifier: a letter or underscore
// followed by letters, digits and underscores.
func (l *Lexer) scanIdentifier() Token {
	l.accept(isIdentifierStart)
	l.acceptAll(isIdentifierPart)
	return l.newToken(TokenIdentifier)
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Type:     TokenEOF,
		Position: l.current,
	}
}

func (l *Lexer) error(reason string) Token {
	l.err = &types.LexError{
		Offset: l.start,
		Reason: reason,
	}
	return Token{Type: TokenError, Position: l.start}
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:     tt,
		Value:    l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

// decodedToken emits a token whose value was rebuilt during scanning
// (quoted and raw strings), keeping the position of the opening delimiter.
func (l *Lexer) decodedToken(tt TokenType, value string) Token {
	t := Token{
		Type:     tt,
		Value:    value,
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.err != nil || l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
