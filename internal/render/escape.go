package render

import "strings"

// htmlEscaper rewrites the five characters an HTML parser treats as
// structure. Replacer works in a single left-to-right pass, so the
// entities it inserts are never themselves re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML sanitizes literal text for inclusion in rendered output.
// Every piece of raw message text must pass through here exactly once,
// at the moment it is appended; already-emitted tags never do.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
