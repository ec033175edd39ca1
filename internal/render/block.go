// Package render converts the constrained, line-oriented markup used in
// chat answers (headings, nested ordered/unordered lists, bold/italic/
// code spans, paragraphs) into sanitized HTML for direct display.
//
// The renderer is a pure synchronous transform: no state survives a
// call, identical input yields identical output, and malformed input
// degrades to literal paragraph text rather than failing. All literal
// text is escaped exactly once on its way into the output, so the view
// layer can trust the result without further sanitization.
package render

import (
	"fmt"
	"strings"
)

type listKind int

const (
	unordered listKind = iota
	ordered
)

// listContext tracks one currently-open list. The parser keeps a stack
// of these, outermost first, with strictly increasing levels.
type listContext struct {
	kind  listKind
	level int
}

type listItem struct {
	kind  listKind
	level int
	text  string
}

// HTML renders the full message text. It never fails: every line that
// does not exactly match a heading or list-item pattern falls through
// to the paragraph path.
func HTML(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")

	var (
		b     strings.Builder
		stack []listContext
		para  []string
	)

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(para, " "))
		para = para[:0]
		if text == "" {
			return
		}
		b.WriteString("<p>")
		b.WriteString(renderInline(text))
		b.WriteString("</p>")
	}
	closeTop := func() {
		if stack[len(stack)-1].kind == ordered {
			b.WriteString("</ol>")
		} else {
			b.WriteString("</ul>")
		}
		stack = stack[:len(stack)-1]
	}
	openList := func(item listItem) {
		if item.kind == ordered {
			b.WriteString("<ol>")
		} else {
			b.WriteString("<ul>")
		}
		stack = append(stack, listContext{kind: item.kind, level: item.level})
	}

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flushPara()
			continue
		}
		if level, text, ok := headingLine(trimmed); ok {
			flushPara()
			// A heading terminates every enclosing list, whatever its indent.
			for len(stack) > 0 {
				closeTop()
			}
			fmt.Fprintf(&b, "<h%d>%s</h%d>", level, renderInline(text), level)
			continue
		}
		if item, ok := listItemLine(line); ok {
			flushPara()
			// Reconcile the open-list stack against (kind, level): pop
			// anything deeper, and pop an equal-level list of the other
			// kind so it can be reopened.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.level > item.level || (top.level == item.level && top.kind != item.kind) {
					closeTop()
					continue
				}
				break
			}
			if len(stack) == 0 || stack[len(stack)-1].level < item.level {
				openList(item)
			}
			b.WriteString("<li>")
			b.WriteString(renderInline(item.text))
			b.WriteString("</li>")
			continue
		}
		para = append(para, trimmed)
	}

	flushPara()
	for len(stack) > 0 {
		closeTop()
	}
	return b.String()
}

// headingLine matches a run of '#' followed by at least one space and
// non-blank text. The level clamps at 6; "#text" without the space is
// not a heading.
func headingLine(line string) (level int, text string, ok bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0, "", false
	}
	text = strings.TrimSpace(line[n:])
	if text == "" {
		return 0, "", false
	}
	if n > 6 {
		n = 6
	}
	return n, text, true
}

// listItemLine matches "<indent><digits>. text" (ordered) or
// "<indent>-|*|+ text" (unordered). The indent level is
// floor(spaces/2); the indentation itself is never rendered.
func listItemLine(line string) (listItem, bool) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	rest := line[indent:]
	if len(rest) >= 2 && (rest[0] == '-' || rest[0] == '*' || rest[0] == '+') && rest[1] == ' ' {
		return listItem{kind: unordered, level: indent / 2, text: strings.TrimSpace(rest[2:])}, true
	}
	d := 0
	for d < len(rest) && rest[d] >= '0' && rest[d] <= '9' {
		d++
	}
	if d > 0 && d+1 < len(rest) && rest[d] == '.' && rest[d+1] == ' ' {
		return listItem{kind: ordered, level: indent / 2, text: strings.TrimSpace(rest[d+2:])}, true
	}
	return listItem{}, false
}
