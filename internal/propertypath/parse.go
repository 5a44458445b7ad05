package propertypath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type segmentKind int

const (
	segmentField segmentKind = iota
	segmentMethod
	segmentIndex
	segmentKey
)

// segment is one parsed element of a path expression.
type segment struct {
	kind  segmentKind
	name  string // field or method name
	index int    // segmentIndex
	key   string // segmentKey
}

// parse splits a path expression into segments.
// Supports: "City", "Address.City", "Primary().City", "Lines[0]", `Labels["team"]`.
func parse(expr string) ([]segment, error) {
	p := &pathParser{expr: strings.TrimSpace(expr)}
	return p.parse()
}

// pathParser is a single-pass scanner over a path expression.
type pathParser struct {
	expr     string
	pos      int
	segments []segment
}

func (p *pathParser) parse() ([]segment, error) {
	if p.expr == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSyntax)
	}

	// An index may open the path when the root itself is a slice or map.
	expectName := true

	for p.pos < len(p.expr) {
		switch ch := p.expr[p.pos]; {
		case ch == '.':
			if expectName {
				return nil, p.errorf("empty segment")
			}

			expectName = true
			p.pos++

		case ch == '[':
			if expectName && len(p.segments) > 0 {
				return nil, p.errorf("index must follow a name")
			}

			if err := p.bracket(); err != nil {
				return nil, err
			}

			expectName = false

		default:
			if !expectName {
				return nil, p.errorf("expected '.' or '['")
			}

			if err := p.name(); err != nil {
				return nil, err
			}

			expectName = false
		}
	}

	if expectName {
		return nil, p.errorf("path ends with '.'")
	}

	return p.segments, nil
}

// name reads an identifier, optionally followed by "()".
func (p *pathParser) name() error {
	start := p.pos
	for p.pos < len(p.expr) && isIdentRune(rune(p.expr[p.pos]), p.pos == start) {
		p.pos++
	}

	if p.pos == start {
		return p.errorf("unexpected character %q", p.expr[p.pos])
	}

	seg := segment{kind: segmentField, name: p.expr[start:p.pos]}

	if strings.HasPrefix(p.expr[p.pos:], "()") {
		seg.kind = segmentMethod
		p.pos += 2
	}

	p.segments = append(p.segments, seg)

	return nil
}

// bracket reads "[n]", "[key]" or `["key"]`.
func (p *pathParser) bracket() error {
	p.pos++ // '['

	if p.pos < len(p.expr) && p.expr[p.pos] == '"' {
		quoted, err := strconv.QuotedPrefix(p.expr[p.pos:])
		if err != nil {
			return p.errorf("unterminated string key")
		}

		key, _ := strconv.Unquote(quoted)
		p.pos += len(quoted)

		if p.pos >= len(p.expr) || p.expr[p.pos] != ']' {
			return p.errorf("expected ']'")
		}

		p.pos++
		p.segments = append(p.segments, segment{kind: segmentKey, key: key})

		return nil
	}

	end := strings.IndexByte(p.expr[p.pos:], ']')
	if end < 0 {
		return p.errorf("missing ']'")
	}

	content := p.expr[p.pos : p.pos+end]
	p.pos += end + 1

	switch {
	case content == "":
		return p.errorf("empty index")
	case isDigits(content):
		n, err := strconv.Atoi(content)
		if err != nil {
			return p.errorf("index %s: %v", content, err)
		}

		p.segments = append(p.segments, segment{kind: segmentIndex, index: n})
	case isIdent(content):
		p.segments = append(p.segments, segment{kind: segmentKey, key: content})
	default:
		return p.errorf("invalid index %q", content)
	}

	return nil
}

func (p *pathParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w %q at offset %d: %s", ErrSyntax, p.expr, p.pos, fmt.Sprintf(format, args...))
}

// render rebuilds the canonical text of a parsed path.
func render(segments []segment) string {
	var b strings.Builder

	for i, seg := range segments {
		switch seg.kind {
		case segmentField, segmentMethod:
			if i > 0 {
				b.WriteByte('.')
			}

			b.WriteString(seg.name)

			if seg.kind == segmentMethod {
				b.WriteString("()")
			}
		case segmentIndex:
			b.WriteString("[" + strconv.Itoa(seg.index) + "]")
		case segmentKey:
			b.WriteString("[" + strconv.Quote(seg.key) + "]")
		}
	}

	return b.String()
}

func isIdentRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}

	return !first && unicode.IsDigit(r)
}

func isIdent(s string) bool {
	for i, r := range s {
		if !isIdentRune(r, i == 0) {
			return false
		}
	}

	return s != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}

// Element is one element of a parsed path expression, for callers that walk
// paths against their own type model.
type Element struct {
	Name   string // field or method name, empty for element access
	Method bool
	Index  bool // element access: "[n]" or "[key]"
}

// Parse checks the syntax of expr and returns its elements in order.
func Parse(expr string) ([]Element, error) {
	segments, err := parse(expr)
	if err != nil {
		return nil, err
	}

	elements := make([]Element, 0, len(segments))
	for _, seg := range segments {
		elements = append(elements, Element{
			Name:   seg.name,
			Method: seg.kind == segmentMethod,
			Index:  seg.kind == segmentIndex || seg.kind == segmentKey,
		})
	}

	return elements, nil
}

// Canonical returns the canonical form of expr, with map keys always quoted.
func Canonical(expr string) (string, error) {
	segments, err := parse(expr)
	if err != nil {
		return "", err
	}

	return render(segments), nil
}
