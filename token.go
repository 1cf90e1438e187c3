package goldenscript

// tokenKind identifies the syntactic category of a lexed token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString // quoted string, already escape-decoded
	tokColon
	tokEquals
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokBang
	tokGt
	tokSeparator // ---
	tokNewline
	tokComment
	tokWhitespace
)

// token is a single lexed unit, annotated with its 1-based source line and
// the byte offset in the source where it begins (used to slice out raw,
// un-tokenized regions like literal command-section text).
type token struct {
	kind  tokenKind
	text  string
	line  int
	start int
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokColon:
		return "':'"
	case tokEquals:
		return "'='"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokComma:
		return "','"
	case tokBang:
		return "'!'"
	case tokGt:
		return "'>'"
	case tokSeparator:
		return "'---'"
	case tokNewline:
		return "newline"
	case tokComment:
		return "comment"
	case tokWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// isIdentStartRune reports whether r may begin an unquoted identifier. Only
// letters, digits, and '_' qualify; '-', '.', '/', '@' are identifier
// characters but never the first one, so a bare "-5" or ".foo" lexes as
// something other than an identifier rather than swallowing a leading
// punctuation character into the name.
func isIdentStartRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	default:
		return false
	}
}

// isIdentRune reports whether r may appear anywhere after the first
// character of an unquoted identifier.
func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == '.' || r == '/' || r == '@':
		return true
	default:
		return false
	}
}
