package sparql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ontoforge/guidance/rdf"
)

// ParseError reports a query syntax error.
type ParseError struct {
	Pos int
	Msg string
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("sparql: offset %d: %s", e.Pos, e.Msg)
}

type parser struct {
	input    string
	pos      int
	prefixes *rdf.PrefixMap
}

// Parse parses a SELECT or ASK query. The well-known prefixes are available
// without declaration; PREFIX clauses in the query add to or override them.
func Parse(query string) (*Query, error) {
	p := &parser{input: query, prefixes: rdf.NewPrefixMap()}
	return p.parseQuery()
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		r, w := utf8.DecodeRuneInString(p.input[p.pos:])
		if r == '#' {
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += w
	}
}

// peekKeyword reports whether the next token is the given keyword
// (case-insensitive) without consuming it.
func (p *parser) peekKeyword(kw string) bool {
	p.skipSpace()
	end := p.pos + len(kw)
	if end > len(p.input) {
		return false
	}
	if !strings.EqualFold(p.input[p.pos:end], kw) {
		return false
	}
	// Keyword must not continue as an identifier.
	if end < len(p.input) {
		r, _ := utf8.DecodeRuneInString(p.input[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return false
		}
	}
	return true
}

func (p *parser) keyword(kw string) bool {
	if !p.peekKeyword(kw) {
		return false
	}
	p.skipSpace()
	p.pos += len(kw)
	return true
}

func (p *parser) expectRune(r byte) error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != r {
		return p.errorf("expected %q", string(r))
	}
	p.pos++
	return nil
}

func (p *parser) peekRune() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) parseQuery() (*Query, error) {
	for p.keyword("PREFIX") {
		if err := p.parsePrefixDecl(); err != nil {
			return nil, err
		}
	}

	q := &Query{}
	switch {
	case p.keyword("SELECT"):
		q.Form = FormSelect
		if p.keyword("DISTINCT") {
			q.Distinct = true
		}
		if p.peekRune() == '*' {
			p.pos++
		} else {
			for p.peekRune() == '?' {
				v, err := p.parseVarName()
				if err != nil {
					return nil, err
				}
				q.Vars = append(q.Vars, v)
			}
			if len(q.Vars) == 0 {
				return nil, p.errorf("SELECT needs projected variables or *")
			}
		}
		p.keyword("WHERE") // optional
	case p.keyword("ASK"):
		q.Form = FormAsk
	default:
		return nil, p.errorf("expected SELECT or ASK")
	}

	where, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	q.Where = where

	if err := p.parseModifiers(q); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing input")
	}
	return q, nil
}

func (p *parser) parsePrefixDecl() error {
	p.skipSpace()
	colon := strings.IndexByte(p.input[p.pos:], ':')
	if colon < 0 {
		return p.errorf("malformed PREFIX declaration")
	}
	prefix := strings.TrimSpace(p.input[p.pos : p.pos+colon])
	p.pos += colon + 1
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '<' {
		return p.errorf("expected IRI in PREFIX declaration")
	}
	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		return p.errorf("unterminated IRI in PREFIX declaration")
	}
	p.prefixes.Bind(prefix, p.input[p.pos+1:p.pos+end])
	p.pos += end + 1
	return nil
}

func (p *parser) parseGroup() ([]Element, error) {
	if err := p.expectRune('{'); err != nil {
		return nil, err
	}
	var out []Element
	for {
		switch {
		case p.peekRune() == '}':
			p.pos++
			return out, nil
		case p.peekRune() == 0:
			return nil, p.errorf("unterminated group pattern")
		case p.peekKeyword("FILTER"):
			p.keyword("FILTER")
			f, err := p.parseFilter()
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		default:
			patterns, err := p.parseTriplesSameSubject()
			if err != nil {
				return nil, err
			}
			out = append(out, patterns...)
		}
		// Optional statement separator.
		if p.peekRune() == '.' {
			p.pos++
		}
	}
}

// parseTriplesSameSubject reads one subject with a predicate-object list.
func (p *parser) parseTriplesSameSubject() ([]Element, error) {
	subject, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	var out []Element
	for {
		pred, transitive, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		for {
			obj, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			out = append(out, TriplePattern{
				Subject:    subject,
				Predicate:  pred,
				Object:     obj,
				Transitive: transitive,
			})
			if p.peekRune() != ',' {
				break
			}
			p.pos++
		}
		if p.peekRune() != ';' {
			return out, nil
		}
		p.pos++
		if r := p.peekRune(); r == '.' || r == '}' {
			return out, nil
		}
	}
}

func (p *parser) parsePredicate() (PatternTerm, bool, error) {
	term, err := p.parseTerm()
	if err != nil {
		return PatternTerm{}, false, err
	}
	// A '+' directly after the predicate marks a transitive path.
	if p.pos < len(p.input) && p.input[p.pos] == '+' {
		if term.IsVar() {
			return PatternTerm{}, false, p.errorf("transitive path needs a concrete predicate")
		}
		p.pos++
		return term, true, nil
	}
	return term, false, nil
}

func (p *parser) parseFilter() (Filter, error) {
	if p.keyword("NOT") {
		if !p.keyword("EXISTS") {
			return Filter{}, p.errorf("expected EXISTS after NOT")
		}
		group, err := p.parseGroup()
		if err != nil {
			return Filter{}, err
		}
		return Filter{NotExists: group}, nil
	}
	if p.peekKeyword("REGEX") {
		p.keyword("REGEX")
		return p.parseRegex()
	}
	if err := p.expectRune('('); err != nil {
		return Filter{}, err
	}
	left, err := p.parseTerm()
	if err != nil {
		return Filter{}, err
	}
	op, err := p.parseComparisonOp()
	if err != nil {
		return Filter{}, err
	}
	right, err := p.parseTerm()
	if err != nil {
		return Filter{}, err
	}
	if err := p.expectRune(')'); err != nil {
		return Filter{}, err
	}
	return Filter{Comparison: &Comparison{Op: op, Left: left, Right: right}}, nil
}

func (p *parser) parseRegex() (Filter, error) {
	if err := p.expectRune('('); err != nil {
		return Filter{}, err
	}
	v, err := p.parseVarName()
	if err != nil {
		return Filter{}, err
	}
	if err := p.expectRune(','); err != nil {
		return Filter{}, err
	}
	pattern, err := p.parseStringLiteral()
	if err != nil {
		return Filter{}, err
	}
	flags := ""
	if p.peekRune() == ',' {
		p.pos++
		flags, err = p.parseStringLiteral()
		if err != nil {
			return Filter{}, err
		}
	}
	if err := p.expectRune(')'); err != nil {
		return Filter{}, err
	}
	expr := pattern
	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Filter{}, p.errorf("invalid regex: %v", err)
	}
	return Filter{Regex: &RegexFilter{Var: v, Pattern: re}}, nil
}

func (p *parser) parseComparisonOp() (string, error) {
	p.skipSpace()
	two := ""
	if p.pos+1 < len(p.input) {
		two = p.input[p.pos : p.pos+2]
	}
	switch two {
	case "!=", "<=", ">=":
		p.pos += 2
		return two, nil
	}
	if p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '=', '<', '>':
			op := string(p.input[p.pos])
			p.pos++
			return op, nil
		}
	}
	return "", p.errorf("expected comparison operator")
}

func (p *parser) parseModifiers(q *Query) error {
	for {
		switch {
		case p.keyword("ORDER"):
			if !p.keyword("BY") {
				return p.errorf("expected BY after ORDER")
			}
			for {
				desc := false
				switch {
				case p.keyword("DESC"):
					desc = true
					if err := p.expectRune('('); err != nil {
						return err
					}
					v, err := p.parseVarName()
					if err != nil {
						return err
					}
					if err := p.expectRune(')'); err != nil {
						return err
					}
					q.OrderBy = append(q.OrderBy, OrderKey{Var: v, Desc: desc})
					continue
				case p.keyword("ASC"):
					if err := p.expectRune('('); err != nil {
						return err
					}
					v, err := p.parseVarName()
					if err != nil {
						return err
					}
					if err := p.expectRune(')'); err != nil {
						return err
					}
					q.OrderBy = append(q.OrderBy, OrderKey{Var: v})
					continue
				}
				if p.peekRune() != '?' {
					break
				}
				v, err := p.parseVarName()
				if err != nil {
					return err
				}
				q.OrderBy = append(q.OrderBy, OrderKey{Var: v})
			}
			if len(q.OrderBy) == 0 {
				return p.errorf("ORDER BY needs at least one variable")
			}
		case p.keyword("LIMIT"):
			n, err := p.parseInt()
			if err != nil {
				return err
			}
			q.Limit = n
		case p.keyword("OFFSET"):
			n, err := p.parseInt()
			if err != nil {
				return err
			}
			q.Offset = n
		default:
			return nil
		}
	}
}

func (p *parser) parseInt() (int, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected integer")
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return 0, p.errorf("invalid integer")
	}
	return n, nil
}

func (p *parser) parseVarName() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.input) || (p.input[p.pos] != '?' && p.input[p.pos] != '$') {
		return "", p.errorf("expected variable")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.input) {
		r, w := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		p.pos += w
	}
	if start == p.pos {
		return "", p.errorf("empty variable name")
	}
	return p.input[start:p.pos], nil
}

func (p *parser) parseStringLiteral() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.input) || (p.input[p.pos] != '"' && p.input[p.pos] != '\'') {
		return "", p.errorf("expected string literal")
	}
	quote := p.input[p.pos]
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return "", p.errorf("unterminated escape")
			}
			esc := p.input[p.pos]
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string literal")
}

// parseTerm reads a variable, IRI, prefixed name, 'a', literal, or number.
func (p *parser) parseTerm() (PatternTerm, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return PatternTerm{}, p.errorf("expected term")
	}
	switch c := p.input[p.pos]; {
	case c == '?' || c == '$':
		v, err := p.parseVarName()
		if err != nil {
			return PatternTerm{}, err
		}
		return Variable(v), nil
	case c == '<':
		end := strings.IndexByte(p.input[p.pos:], '>')
		if end < 0 {
			return PatternTerm{}, p.errorf("unterminated IRI")
		}
		iri := rdf.IRI(p.input[p.pos+1 : p.pos+end])
		p.pos += end + 1
		return Concrete(iri), nil
	case c == '"' || c == '\'':
		value, err := p.parseStringLiteral()
		if err != nil {
			return PatternTerm{}, err
		}
		// Optional language tag or datatype.
		if p.pos < len(p.input) && p.input[p.pos] == '@' {
			p.pos++
			start := p.pos
			for p.pos < len(p.input) && (isAlnum(p.input[p.pos]) || p.input[p.pos] == '-') {
				p.pos++
			}
			return Concrete(rdf.NewLangLiteral(value, p.input[start:p.pos])), nil
		}
		if strings.HasPrefix(p.input[p.pos:], "^^") {
			p.pos += 2
			dt, err := p.parseTerm()
			if err != nil {
				return PatternTerm{}, err
			}
			dtIRI, ok := dt.Term.(rdf.IRI)
			if !ok {
				return PatternTerm{}, p.errorf("datatype must be an IRI")
			}
			return Concrete(rdf.NewTypedLiteral(value, dtIRI)), nil
		}
		return Concrete(rdf.NewLiteral(value)), nil
	case c >= '0' && c <= '9' || c == '-' || c == '+':
		start := p.pos
		p.pos++
		kind := rdf.XSDInteger
		for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
			if p.input[p.pos] == '.' {
				kind = rdf.XSDDecimal
			}
			p.pos++
		}
		return Concrete(rdf.NewTypedLiteral(p.input[start:p.pos], kind)), nil
	default:
		return p.parseKeywordOrPName()
	}
}

func (p *parser) parseKeywordOrPName() (PatternTerm, error) {
	start := p.pos
	for p.pos < len(p.input) {
		r, w := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != ':' && r != '.' {
			break
		}
		p.pos += w
	}
	word := p.input[start:p.pos]
	// A trailing dot is the statement terminator.
	for strings.HasSuffix(word, ".") {
		word = word[:len(word)-1]
		p.pos--
	}
	switch word {
	case "":
		return PatternTerm{}, p.errorf("unexpected character %q", p.input[start])
	case "a":
		return Concrete(rdf.RDFType), nil
	case "true", "false":
		return Concrete(rdf.NewTypedLiteral(word, rdf.XSDBoolean)), nil
	}
	if !strings.Contains(word, ":") {
		return PatternTerm{}, p.errorf("unexpected token %q", word)
	}
	iri, ok := p.prefixes.Expand(word)
	if !ok {
		return PatternTerm{}, p.errorf("undeclared prefix in %q", word)
	}
	return Concrete(iri), nil
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
