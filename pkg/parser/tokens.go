package parser

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals and names
	TokenIdentifier       // foo
	TokenQuotedIdentifier // "foo bar"
	TokenRawString        // 'hello'
	TokenJSONLiteral      // `{"a": 1}`
	TokenNumber           // 42, -3

	// Grouping symbols
	TokenLbracket // [
	TokenRbracket // ]
	TokenLbrace   // {
	TokenRbrace   // }
	TokenLparen   // (
	TokenRparen   // )
	TokenFlatten  // []
	TokenFilter   // [?

	// Basic symbols
	TokenDot     // .
	TokenComma   // ,
	TokenColon   // :
	TokenStar    // *
	TokenCurrent // @
	TokenExpref  // &

	// Boolean operators
	TokenPipe // |
	TokenOr   // ||
	TokenAnd  // &&
	TokenNot  // !

	// Comparison operators
	TokenEQ // ==
	TokenNE // !=
	TokenLT // <
	TokenLE // <=
	TokenGT // >
	TokenGE // >=
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenError:
		return "(error)"
	case TokenIdentifier:
		return "(identifier)"
	case TokenQuotedIdentifier:
		return "(quoted-identifier)"
	case TokenRawString:
		return "(raw-string)"
	case TokenJSONLiteral:
		return "(literal)"
	case TokenNumber:
		return "(number)"
	case TokenLbracket:
		return "["
	case TokenRbracket:
		return "]"
	case TokenLbrace:
		return "{"
	case TokenRbrace:
		return "}"
	case TokenLparen:
		return "("
	case TokenRparen:
		return ")"
	case TokenFlatten:
		return "[]"
	case TokenFilter:
		return "[?"
	case TokenDot:
		return "."
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenStar:
		return "*"
	case TokenCurrent:
		return "@"
	case TokenExpref:
		return "&"
	case TokenPipe:
		return "|"
	case TokenOr:
		return "||"
	case TokenAnd:
		return "&&"
	case TokenNot:
		return "!"
	case TokenEQ:
		return "=="
	case TokenNE:
		return "!="
	case TokenLT:
		return "<"
	case TokenLE:
		return "<="
	case TokenGT:
		return ">"
	case TokenGE:
		return ">="
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in an expression.
type Token struct {
	Type     TokenType // Type of the token
	Value    string    // Literal value of the token
	Position int       // Starting byte offset in the input string
}

// symbols1 maps single-character symbols to token types.
var symbols1 = [...]TokenType{
	']': TokenRbracket,
	'{': TokenLbrace,
	'}': TokenRbrace,
	'(': TokenLparen,
	')': TokenRparen,
	'.': TokenDot,
	',': TokenComma,
	':': TokenColon,
	'*': TokenStar,
	'@': TokenCurrent,
	'<': TokenLT,
	'>': TokenGT,
	'!': TokenNot,
	'|': TokenPipe,
	'&': TokenExpref,
	'[': TokenLbracket,
}

// runeTokenType pairs a rune with its corresponding token type.
type runeTokenType struct {
	r  rune
	tt TokenType
}

// symbols2 maps two-character symbol sequences to token types.
// The key is the first character of the sequence; when the second character
// does not follow, the lexer falls back to symbols1 (or errors for '=').
var symbols2 = [...][]runeTokenType{
	'[': {{']', TokenFlatten}, {'?', TokenFilter}},
	'|': {{'|', TokenOr}},
	'&': {{'&', TokenAnd}},
	'!': {{'=', TokenNE}},
	'=': {{'=', TokenEQ}},
	'<': {{'=', TokenLE}},
	'>': {{'=', TokenGE}},
}

const (
	symbol1Count = rune(len(symbols1))
	symbol2Count = rune(len(symbols2))
)

// lookupSymbol1 returns the token type for a single-character symbol.
// Returns 0 if the rune is not a valid symbol.
func lookupSymbol1(r rune) TokenType {
	if r < 0 || r >= symbol1Count {
		return 0
	}
	return symbols1[r]
}

// lookupSymbol2 returns possible two-character symbol completions.
// Returns nil if the rune cannot start a two-character symbol.
func lookupSymbol2(r rune) []runeTokenType {
	if r < 0 || r >= symbol2Count {
		return nil
	}
	return symbols2[r]
}
