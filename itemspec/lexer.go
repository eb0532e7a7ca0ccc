package itemspec

import "strings"

// tokenKind enumerates the item-spec grammar's terminal symbols. Bare
// runs (identifiers, numbers, bools, unquoted strings) are not split
// further by the lexer; the parser decides how to interpret a bareToken
// from grammar context.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokEquals
	tokString
	tokBare
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// lex tokenizes input. It is string- and escape-aware so that a comma or
// bracket character inside a quoted string never becomes its own token;
// bracket-nested commas at the grammar level (inside compound/list
// values) are left for the parser's recursive descent to consume, since
// each nesting level's own comma belongs to that level's production.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	n := len(input)
	for i < n {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '{':
			toks = append(toks, token{tokLBrace, "{", i})
			i++
		case c == '}':
			toks = append(toks, token{tokRBrace, "}", i})
			i++
		case c == '[':
			toks = append(toks, token{tokLBracket, "[", i})
			i++
		case c == ']':
			toks = append(toks, token{tokRBracket, "]", i})
			i++
		case c == ':':
			toks = append(toks, token{tokColon, ":", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case c == '=':
			toks = append(toks, token{tokEquals, "=", i})
			i++
		case c == '"' || c == '\'':
			start := i
			text, next, err := lexQuoted(input, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokString, text, start})
			i = next
		default:
			start := i
			for i < n && !isDelimiter(input[i]) {
				i++
			}
			toks = append(toks, token{tokBare, input[start:i], start})
		}
	}
	toks = append(toks, token{tokEOF, "", n})
	return toks, nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '{', '}', '[', ']', ':', ',', '=', '"', '\'':
		return true
	default:
		return false
	}
}

// lexQuoted reads a quoted string starting at offset start (which must
// point at the opening quote), unescaping backslash sequences, and
// returns its content plus the offset just past the closing quote.
func lexQuoted(input string, start int) (string, int, error) {
	quote := input[start]
	var sb strings.Builder
	i := start + 1
	for i < len(input) {
		c := input[i]
		if c == '\\' && i+1 < len(input) {
			sb.WriteByte(input[i+1])
			i += 2
			continue
		}
		if c == quote {
			return sb.String(), i + 1, nil
		}
		sb.WriteByte(c)
		i++
	}
	return "", 0, &ParseError{Offset: start, Expected: "closing quote"}
}
