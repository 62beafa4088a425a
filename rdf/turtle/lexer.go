package turtle

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRIRef
	tokPName    // prefixed name, possibly just "prefix:"
	tokBlank    // _:label
	tokString   // quoted string, value already unescaped
	tokLangTag  // @en
	tokNumber   // integer / decimal / double, lexical form preserved
	tokBoolean  // true / false
	tokA        // the keyword "a"
	tokPrefix   // @prefix or PREFIX
	tokBase     // @base or BASE
	tokDot      // .
	tokSemi     // ;
	tokComma    // ,
	tokLBracket // [
	tokRBracket // ]
	tokLParen   // (
	tokRParen   // )
	tokCarets   // ^^
	tokAnon     // marker unused by lexer, kept for symmetry
)

type token struct {
	kind  tokenKind
	value string
	// numberKind distinguishes integer/decimal/double for tokNumber.
	numberKind string
	line, col  int
}

type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input, line: 1, col: 1}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) peekAt(offset int) rune {
	pos := l.pos
	for range offset {
		if pos >= len(l.input) {
			return 0
		}
		_, w := utf8.DecodeRuneInString(l.input[pos:])
		pos += w
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		r := l.peek()
		switch {
		case r == '#':
			for l.peek() != '\n' && l.peek() != 0 {
				l.advance()
			}
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.advance()
		default:
			return
		}
	}
}

// next returns the next token or a ParseError.
func (l *lexer) next() (token, error) {
	l.skipWhitespaceAndComments()
	line, col := l.line, l.col
	r := l.peek()

	switch {
	case r == 0:
		return token{kind: tokEOF, line: line, col: col}, nil
	case r == '<':
		return l.lexIRIRef(line, col)
	case r == '"' || r == '\'':
		return l.lexString(line, col)
	case r == '@':
		return l.lexAtKeyword(line, col)
	case r == '_' && l.peekAt(1) == ':':
		return l.lexBlankNode(line, col)
	case r == '.':
		// A dot may start a decimal (".5"); statement dots are far more
		// common, so only treat it as numeric when a digit follows.
		if isDigit(l.peekAt(1)) {
			return l.lexNumber(line, col)
		}
		l.advance()
		return token{kind: tokDot, line: line, col: col}, nil
	case r == ';':
		l.advance()
		return token{kind: tokSemi, line: line, col: col}, nil
	case r == ',':
		l.advance()
		return token{kind: tokComma, line: line, col: col}, nil
	case r == '[':
		l.advance()
		return token{kind: tokLBracket, line: line, col: col}, nil
	case r == ']':
		l.advance()
		return token{kind: tokRBracket, line: line, col: col}, nil
	case r == '(':
		l.advance()
		return token{kind: tokLParen, line: line, col: col}, nil
	case r == ')':
		l.advance()
		return token{kind: tokRParen, line: line, col: col}, nil
	case r == '^':
		l.advance()
		if l.peek() != '^' {
			return token{}, errorf(line, col, "expected '^^', got single '^'")
		}
		l.advance()
		return token{kind: tokCarets, line: line, col: col}, nil
	case isDigit(r) || r == '+' || r == '-':
		return l.lexNumber(line, col)
	default:
		return l.lexKeywordOrPName(line, col)
	}
}

func (l *lexer) lexIRIRef(line, col int) (token, error) {
	l.advance() // consume '<'
	var sb strings.Builder
	for {
		r := l.peek()
		switch r {
		case 0, '\n':
			return token{}, errorf(line, col, "unterminated IRI reference")
		case '>':
			l.advance()
			return token{kind: tokIRIRef, value: sb.String(), line: line, col: col}, nil
		case '\\':
			l.advance()
			esc, err := l.readUnicodeEscape(line, col)
			if err != nil {
				return token{}, err
			}
			sb.WriteRune(esc)
		default:
			l.advance()
			sb.WriteRune(r)
		}
	}
}

func (l *lexer) lexString(line, col int) (token, error) {
	quote := l.advance()
	long := false
	if l.peek() == quote && l.peekAt(1) == quote {
		l.advance()
		l.advance()
		long = true
	} else if l.peek() == quote {
		// Empty short string.
		l.advance()
		return token{kind: tokString, value: "", line: line, col: col}, nil
	}

	var sb strings.Builder
	for {
		r := l.peek()
		if r == 0 {
			return token{}, errorf(line, col, "unterminated string literal")
		}
		if !long && (r == '\n' || r == '\r') {
			return token{}, errorf(line, col, "newline in string literal")
		}
		if r == quote {
			if !long {
				l.advance()
				return token{kind: tokString, value: sb.String(), line: line, col: col}, nil
			}
			if l.peekAt(1) == quote && l.peekAt(2) == quote {
				l.advance()
				l.advance()
				l.advance()
				return token{kind: tokString, value: sb.String(), line: line, col: col}, nil
			}
			l.advance()
			sb.WriteRune(r)
			continue
		}
		if r == '\\' {
			l.advance()
			esc := l.peek()
			switch esc {
			case 't':
				sb.WriteRune('\t')
				l.advance()
			case 'b':
				sb.WriteRune('\b')
				l.advance()
			case 'n':
				sb.WriteRune('\n')
				l.advance()
			case 'r':
				sb.WriteRune('\r')
				l.advance()
			case 'f':
				sb.WriteRune('\f')
				l.advance()
			case '"', '\'', '\\':
				sb.WriteRune(esc)
				l.advance()
			case 'u', 'U':
				u, err := l.readUnicodeEscape(line, col)
				if err != nil {
					return token{}, err
				}
				sb.WriteRune(u)
			default:
				return token{}, errorf(l.line, l.col, "invalid string escape '\\%c'", esc)
			}
			continue
		}
		l.advance()
		sb.WriteRune(r)
	}
}

// readUnicodeEscape consumes a \uXXXX or \UXXXXXXXX escape body. The caller
// has already consumed the backslash.
func (l *lexer) readUnicodeEscape(line, col int) (rune, error) {
	kind := l.advance()
	var width int
	switch kind {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return 0, errorf(line, col, "invalid escape '\\%c'", kind)
	}
	var v rune
	for range width {
		r := l.advance()
		d := hexValue(r)
		if d < 0 {
			return 0, errorf(line, col, "invalid unicode escape digit %q", r)
		}
		v = v<<4 | rune(d)
	}
	return v, nil
}

func (l *lexer) lexAtKeyword(line, col int) (token, error) {
	l.advance() // consume '@'
	word := l.readWhile(func(r rune) bool {
		return unicode.IsLetter(r) || r == '-'
	})
	switch word {
	case "prefix":
		return token{kind: tokPrefix, line: line, col: col}, nil
	case "base":
		return token{kind: tokBase, line: line, col: col}, nil
	default:
		if word == "" {
			return token{}, errorf(line, col, "bare '@'")
		}
		return token{kind: tokLangTag, value: word, line: line, col: col}, nil
	}
}

func (l *lexer) lexBlankNode(line, col int) (token, error) {
	l.advance() // _
	l.advance() // :
	label := l.readWhile(isPNChar)
	if label == "" {
		return token{}, errorf(line, col, "empty blank node label")
	}
	return token{kind: tokBlank, value: label, line: line, col: col}, nil
}

func (l *lexer) lexNumber(line, col int) (token, error) {
	var sb strings.Builder
	if r := l.peek(); r == '+' || r == '-' {
		sb.WriteRune(l.advance())
	}
	kind := "integer"
	for isDigit(l.peek()) {
		sb.WriteRune(l.advance())
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		kind = "decimal"
		sb.WriteRune(l.advance())
		for isDigit(l.peek()) {
			sb.WriteRune(l.advance())
		}
	}
	if r := l.peek(); r == 'e' || r == 'E' {
		kind = "double"
		sb.WriteRune(l.advance())
		if r := l.peek(); r == '+' || r == '-' {
			sb.WriteRune(l.advance())
		}
		if !isDigit(l.peek()) {
			return token{}, errorf(line, col, "malformed double literal")
		}
		for isDigit(l.peek()) {
			sb.WriteRune(l.advance())
		}
	}
	if sb.Len() == 0 || sb.String() == "+" || sb.String() == "-" {
		return token{}, errorf(line, col, "malformed numeric literal")
	}
	return token{kind: tokNumber, value: sb.String(), numberKind: kind, line: line, col: col}, nil
}

// lexKeywordOrPName handles "a", booleans, SPARQL-style PREFIX/BASE, and
// prefixed names.
func (l *lexer) lexKeywordOrPName(line, col int) (token, error) {
	word := l.readWhile(func(r rune) bool {
		return isPNChar(r) || r == ':' || r == '%'
	})
	if word == "" {
		return token{}, errorf(line, col, "unexpected character %q", l.peek())
	}
	if !strings.Contains(word, ":") {
		switch word {
		case "a":
			return token{kind: tokA, line: line, col: col}, nil
		case "true", "false":
			return token{kind: tokBoolean, value: word, line: line, col: col}, nil
		}
		switch strings.ToUpper(word) {
		case "PREFIX":
			return token{kind: tokPrefix, line: line, col: col}, nil
		case "BASE":
			return token{kind: tokBase, line: line, col: col}, nil
		}
		return token{}, errorf(line, col, "unexpected keyword %q", word)
	}
	// Trailing dots belong to the statement terminator, not the local name.
	for strings.HasSuffix(word, ".") {
		word = word[:len(word)-1]
		l.pos--
		l.col--
	}
	return token{kind: tokPName, value: word, line: line, col: col}, nil
}

func (l *lexer) readWhile(pred func(rune) bool) string {
	var sb strings.Builder
	for {
		r := l.peek()
		if r == 0 || !pred(r) {
			return sb.String()
		}
		sb.WriteRune(l.advance())
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func hexValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}

// isPNChar approximates the PN_CHARS production: letters, digits,
// underscore, hyphen, dot.
func isPNChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}
