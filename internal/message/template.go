package message

import (
	"fmt"
	"slices"
	"strings"
)

// Template is a message template with named {placeholders}.
// "{{" and "}}" render literal braces.
type Template struct {
	raw      string
	segments []segment
}

type segment struct {
	literal string
	field   string // empty for literal segments
}

// Compile parses raw and rejects placeholders not listed in fields.
func Compile(raw string, fields ...string) (*Template, error) {
	t := &Template{raw: raw}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("template %q: unclosed '{' at offset %d", raw, i)
			}
			name := strings.TrimSpace(raw[i+1 : i+1+end])
			if !slices.Contains(fields, name) {
				return nil, fmt.Errorf("template %q: unknown placeholder {%s} (known: %s)", raw, name, strings.Join(fields, ", "))
			}
			flush()
			t.segments = append(t.segments, segment{field: name})
			i += end + 1
		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("template %q: single '}' at offset %d", raw, i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

// Execute renders the template. Missing values render as empty strings.
func (t *Template) Execute(values map[string]string) string {
	var b strings.Builder
	b.Grow(len(t.raw) + 32)
	for _, s := range t.segments {
		if s.field == "" {
			b.WriteString(s.literal)
			continue
		}
		b.WriteString(values[s.field])
	}
	return b.String()
}

func (t *Template) String() string { return t.raw }
