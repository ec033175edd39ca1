package render

import "strings"

// Inline span kinds, in match priority order. Bold is tried before
// italic so that "**x**" never reads as two adjacent italics, and code
// is tried before italic so a backtick run keeps its interior verbatim.
type spanKind int

const (
	spanNone spanKind = iota
	spanBold
	spanCode
	spanItalic
)

type span struct {
	kind       spanKind
	start, end int // full span including delimiters, [start,end)
	innerStart int
	innerEnd   int
}

// renderInline converts one logical line into markup: escaped text runs
// interleaved with <strong>, <code> and <em> tags. Span interiors are
// escaped literally; there is no nesting of inline spans.
func renderInline(line string) string {
	var b strings.Builder
	rest := line
	for {
		sp, ok := nextSpan(rest)
		if !ok {
			b.WriteString(EscapeHTML(rest))
			break
		}
		b.WriteString(EscapeHTML(rest[:sp.start]))
		inner := rest[sp.innerStart:sp.innerEnd]
		switch sp.kind {
		case spanBold:
			b.WriteString("<strong>")
			b.WriteString(EscapeHTML(strings.TrimSpace(inner)))
			b.WriteString("</strong>")
		case spanCode:
			// Code keeps interior whitespace exactly.
			b.WriteString("<code>")
			b.WriteString(EscapeHTML(inner))
			b.WriteString("</code>")
		case spanItalic:
			b.WriteString("<em>")
			b.WriteString(EscapeHTML(strings.TrimSpace(inner)))
			b.WriteString("</em>")
		}
		rest = rest[sp.end:]
	}
	return b.String()
}

// nextSpan scans left to right for the first position where any span
// pattern matches. At a given position bold wins over code, code over
// italic. A dangling delimiter simply never matches and falls through
// as plain text.
func nextSpan(s string) (span, bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*':
			if sp, ok := matchBold(s, i); ok {
				return sp, true
			}
			if sp, ok := matchItalic(s, i); ok {
				return sp, true
			}
		case '`':
			if sp, ok := matchCode(s, i); ok {
				return sp, true
			}
		}
	}
	return span{}, false
}

// matchBold matches **...** at i where the interior contains no '*'.
func matchBold(s string, i int) (span, bool) {
	if i+1 >= len(s) || s[i+1] != '*' {
		return span{}, false
	}
	j := strings.IndexByte(s[i+2:], '*')
	if j < 0 {
		return span{}, false
	}
	j += i + 2
	if j == i+2 || j+1 >= len(s) || s[j+1] != '*' {
		// Empty interior or a lone '*' inside; not a bold span.
		return span{}, false
	}
	return span{kind: spanBold, start: i, end: j + 2, innerStart: i + 2, innerEnd: j}, true
}

// matchCode matches `...` at i where the interior contains no backtick.
func matchCode(s string, i int) (span, bool) {
	j := strings.IndexByte(s[i+1:], '`')
	if j < 0 {
		return span{}, false
	}
	j += i + 1
	if j == i+1 {
		return span{}, false
	}
	return span{kind: spanCode, start: i, end: j + 1, innerStart: i + 1, innerEnd: j}, true
}

// matchItalic matches *...* at i where the interior contains no '*' and
// does not start or end with whitespace. The whitespace rule keeps
// arithmetic like "5 * 3 = 15" from sprouting emphasis tags.
func matchItalic(s string, i int) (span, bool) {
	j := strings.IndexByte(s[i+1:], '*')
	if j < 0 {
		return span{}, false
	}
	j += i + 1
	if j == i+1 {
		return span{}, false
	}
	inner := s[i+1 : j]
	if inner[0] == ' ' || inner[0] == '\t' || inner[len(inner)-1] == ' ' || inner[len(inner)-1] == '\t' {
		return span{}, false
	}
	return span{kind: spanItalic, start: i, end: j + 1, innerStart: i + 1, innerEnd: j}, true
}
