package itemspec

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/MythicSorcerer/azox-mc/nbt"
)

const defaultNamespace = "minecraft"

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token  { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}
func (p *parser) peekIs(k tokenKind) bool { return p.peek().kind == k }

func (p *parser) expect(k tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != k {
		return token{}, &ParseError{Offset: t.offset, Expected: what}
	}
	return p.advance(), nil
}

// Parse parses a give-command-style item spec, e.g.
// `diamond_sword[custom_name='"Sword"',enchantments={sharpness:5}] 2`.
func Parse(input string) (*ParsedItem, error) {
	toks, err := lex(strings.TrimSpace(input))
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}

	if p.peekIs(tokBare) && p.peek().text == "give" {
		p.advance()
	}
	if p.peekIs(tokBare) && strings.HasPrefix(p.peek().text, "@") {
		p.advance()
	}

	id, err := p.parseQualifiedID()
	if err != nil {
		return nil, err
	}

	var components *nbt.Compound
	if p.peekIs(tokLBracket) {
		p.advance()
		components = nbt.NewCompound()
		if !p.peekIs(tokRBracket) {
			for {
				if err := p.parseComponent(components); err != nil {
					return nil, err
				}
				if p.peekIs(tokComma) {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expect(tokRBracket, "]"); err != nil {
			return nil, err
		}
	}

	count := int32(1)
	if p.peekIs(tokBare) {
		tok := p.advance()
		n, err := strconv.ParseInt(tok.text, 10, 32)
		if err != nil {
			return nil, &ParseError{Offset: tok.offset, Expected: "item count"}
		}
		count = int32(n)
	}

	if !p.peekIs(tokEOF) {
		t := p.peek()
		return nil, &ParseError{Offset: t.offset, Expected: "end of input"}
	}

	return &ParsedItem{ID: id, Count: count, Components: components}, nil
}

// parseQualifiedID reads a bare_id, optionally followed by ":" bare_id,
// rewriting a missing namespace to "minecraft". Used both for the item
// id and for top-level component keys; nested compound/list entry keys
// do not go through this and are kept exactly as written.
func (p *parser) parseQualifiedID() (string, error) {
	first, err := p.expect(tokBare, "identifier")
	if err != nil {
		return "", err
	}
	if p.peekIs(tokColon) {
		p.advance()
		second, err := p.expect(tokBare, "identifier after ':'")
		if err != nil {
			return "", err
		}
		return first.text + ":" + second.text, nil
	}
	return defaultNamespace + ":" + first.text, nil
}

func (p *parser) parseComponent(into *nbt.Compound) error {
	key, err := p.parseQualifiedID()
	if err != nil {
		return err
	}
	if _, err := p.expect(tokEquals, "="); err != nil {
		return err
	}
	value, err := p.parseValue()
	if err != nil {
		return err
	}
	into.Set(key, value)
	return nil
}

func (p *parser) parseValue() (nbt.Tag, error) {
	t := p.peek()
	switch t.kind {
	case tokString:
		p.advance()
		return stringOrJSON(t.text), nil
	case tokLBrace:
		return p.parseCompound()
	case tokLBracket:
		return p.parseList()
	case tokBare:
		p.advance()
		return bareValue(t.text), nil
	default:
		return nbt.Tag{}, &ParseError{Offset: t.offset, Expected: "value"}
	}
}

// parseCompoundEntryKey reads an entry key, which may be quoted or bare;
// unlike parseQualifiedID it performs no default-namespace rewriting,
// since that convention applies only to the item id and its top-level
// component keys.
func (p *parser) parseCompoundEntryKey() (string, error) {
	t := p.peek()
	switch t.kind {
	case tokString:
		p.advance()
		return t.text, nil
	case tokBare:
		p.advance()
		return t.text, nil
	default:
		return "", &ParseError{Offset: t.offset, Expected: "compound key"}
	}
}

func (p *parser) parseCompound() (nbt.Tag, error) {
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nbt.Tag{}, err
	}
	c := nbt.NewCompound()
	if !p.peekIs(tokRBrace) {
		for {
			key, err := p.parseCompoundEntryKey()
			if err != nil {
				return nbt.Tag{}, err
			}
			if _, err := p.expect(tokColon, ":"); err != nil {
				return nbt.Tag{}, err
			}
			value, err := p.parseValue()
			if err != nil {
				return nbt.Tag{}, err
			}
			c.Set(key, value)
			if p.peekIs(tokComma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nbt.Tag{}, err
	}
	return nbt.CompoundTag(c), nil
}

func (p *parser) parseList() (nbt.Tag, error) {
	start := p.peek()
	if _, err := p.expect(tokLBracket, "["); err != nil {
		return nbt.Tag{}, err
	}
	if p.peekIs(tokRBracket) {
		p.advance()
		return nbt.ListTag(nbt.NewList(nbt.KindEnd)), nil
	}
	var l *nbt.List
	for {
		v, err := p.parseValue()
		if err != nil {
			return nbt.Tag{}, err
		}
		if l == nil {
			l = nbt.NewList(v.Kind())
		}
		if err := l.Append(v); err != nil {
			return nbt.Tag{}, &ParseError{Offset: start.offset, Expected: "list elements of a single kind"}
		}
		if p.peekIs(tokComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(tokRBracket, "]"); err != nil {
		return nbt.Tag{}, err
	}
	return nbt.ListTag(l), nil
}

// bareValue interprets an unquoted token as a bool, a number, or — if
// neither — a literal string.
func bareValue(text string) nbt.Tag {
	switch text {
	case "true":
		return nbt.Byte(1)
	case "false":
		return nbt.Byte(0)
	}
	if tag, ok := numberToTag(text); ok {
		return tag
	}
	return nbt.String(text)
}

// numberToTag parses text as an Int (or Long, on 32-bit overflow) when
// it has no decimal point or exponent, otherwise as a Double.
func numberToTag(text string) (nbt.Tag, bool) {
	if text == "" {
		return nbt.Tag{}, false
	}
	if strings.ContainsAny(text, ".eE") {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return nbt.Double(f), true
		}
		return nbt.Tag{}, false
	}
	if v, err := strconv.ParseInt(text, 10, 32); err == nil {
		return nbt.Int(int32(v)), true
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return nbt.Long(v), true
	}
	return nbt.Tag{}, false
}

// stringOrJSON implements the quoted-string "JSON degrade": if text
// parses as JSON it becomes the equivalent tag tree, otherwise it is
// kept as the literal string.
func stringOrJSON(text string) nbt.Tag {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nbt.String(text)
	}
	if dec.More() {
		return nbt.String(text)
	}
	tag, ok := jsonToTag(v)
	if !ok {
		return nbt.String(text)
	}
	return tag
}

func jsonToTag(v interface{}) (nbt.Tag, bool) {
	switch vv := v.(type) {
	case nil:
		return nbt.String(""), true
	case bool:
		if vv {
			return nbt.Byte(1), true
		}
		return nbt.Byte(0), true
	case json.Number:
		return numberToTag(string(vv))
	case string:
		return nbt.String(vv), true
	case []interface{}:
		if len(vv) == 0 {
			return nbt.ListTag(nbt.NewList(nbt.KindEnd)), true
		}
		var l *nbt.List
		for _, elem := range vv {
			t, ok := jsonToTag(elem)
			if !ok {
				return nbt.Tag{}, false
			}
			if l == nil {
				l = nbt.NewList(t.Kind())
			}
			if err := l.Append(t); err != nil {
				return nbt.Tag{}, false
			}
		}
		return nbt.ListTag(l), true
	case map[string]interface{}:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		c := nbt.NewCompound()
		for _, k := range keys {
			t, ok := jsonToTag(vv[k])
			if !ok {
				return nbt.Tag{}, false
			}
			c.Set(k, t)
		}
		return nbt.CompoundTag(c), true
	default:
		return nbt.Tag{}, false
	}
}
