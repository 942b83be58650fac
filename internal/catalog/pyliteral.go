package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// parsePyLiteral evaluates a Python literal expression made of strings,
// numbers, True/False/None, lists, tuples, sets and dicts. Lists, tuples and
// sets become []any; dicts become map[string]any with keys stringified.
func parsePyLiteral(s string) (any, error) {
	p := &pyParser{src: []rune(s)}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected trailing input at %d", p.pos)
	}
	return v, nil
}

type pyParser struct {
	src []rune
	pos int
}

func (p *pyParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *pyParser) peek() (rune, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *pyParser) value() (any, error) {
	r, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch {
	case r == '\'' || r == '"':
		return p.str()
	case r == '[':
		p.pos++
		return p.sequence(']')
	case r == '(':
		p.pos++
		return p.sequence(')')
	case r == '{':
		p.pos++
		return p.braced()
	case r == '-' || r == '+' || r == '.' || unicode.IsDigit(r):
		return p.number()
	case unicode.IsLetter(r):
		return p.word()
	}
	return nil, fmt.Errorf("unexpected %q at %d", r, p.pos)
}

func (p *pyParser) str() (any, error) {
	var out strings.Builder
	// Adjacent literals concatenate: 'a' 'b' == 'ab'.
	for {
		r, ok := p.peek()
		if !ok || (r != '\'' && r != '"') {
			break
		}
		s, err := p.quoted(r)
		if err != nil {
			return nil, err
		}
		out.WriteString(s)
	}
	return out.String(), nil
}

func (p *pyParser) quoted(q rune) (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch r {
		case q:
			p.pos++
			return b.String(), nil
		case '\\':
			if p.pos+1 >= len(p.src) {
				return "", fmt.Errorf("unterminated escape at %d", p.pos)
			}
			p.pos++
			switch e := p.src[p.pos]; e {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case '\\', '\'', '"':
				b.WriteRune(e)
			case '\n':
			default:
				b.WriteRune('\\')
				b.WriteRune(e)
			}
			p.pos++
		case '\n':
			return "", fmt.Errorf("newline in string starting at %d", start)
		default:
			b.WriteRune(r)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string starting at %d", start)
}

func (p *pyParser) number() (any, error) {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if unicode.IsDigit(r) || strings.ContainsRune("+-.eE_", r) {
			p.pos++
			continue
		}
		break
	}
	lit := strings.ReplaceAll(string(p.src[start:p.pos]), "_", "")
	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", lit)
	}
	return f, nil
}

func (p *pyParser) word() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
	switch w := string(p.src[start:p.pos]); w {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported name %q", w)
	}
}

func (p *pyParser) sequence(end rune) (any, error) {
	out := make([]any, 0)
	for {
		r, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("unterminated sequence")
		}
		if r == end {
			p.pos++
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if err := p.separator(end); err != nil {
			return nil, err
		}
	}
}

// braced parses either a dict or a set literal.
func (p *pyParser) braced() (any, error) {
	r, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unterminated braces")
	}
	if r == '}' {
		p.pos++
		return map[string]any{}, nil
	}

	first, err := p.value()
	if err != nil {
		return nil, err
	}

	if r, ok := p.peek(); ok && r == ':' {
		p.pos++
		m := map[string]any{}
		k := first
		for {
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			m[pyStr(k)] = v
			if err := p.separator('}'); err != nil {
				return nil, err
			}
			r, ok := p.peek()
			if !ok {
				return nil, fmt.Errorf("unterminated dict")
			}
			if r == '}' {
				p.pos++
				return m, nil
			}
			if k, err = p.value(); err != nil {
				return nil, err
			}
			if r, ok := p.peek(); !ok || r != ':' {
				return nil, fmt.Errorf("expected ':' at %d", p.pos)
			}
			p.pos++
		}
	}

	set := []any{first}
	if err := p.separator('}'); err != nil {
		return nil, err
	}
	rest, err := p.sequence('}')
	if err != nil {
		return nil, err
	}
	return append(set, rest.([]any)...), nil
}

// separator consumes a ',' or checks that end follows.
func (p *pyParser) separator(end rune) error {
	r, ok := p.peek()
	if !ok {
		return fmt.Errorf("unexpected end of input")
	}
	if r == ',' {
		p.pos++
		return nil
	}
	if r == end {
		return nil
	}
	return fmt.Errorf("expected ',' or %q at %d", end, p.pos)
}

// pyStr renders a parsed value the way str() would for the scalar cases
// that show up in course exports.
func pyStr(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatFloat(t, 'f', 1, 64)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
