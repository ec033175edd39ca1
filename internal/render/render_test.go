package render

import (
	"strings"
	"testing"
)

func TestHTMLBlocks(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank lines only", "\n\n\n", ""},
		{"paragraph", "hello world", "<p>hello world</p>"},
		{"paragraph joins lines", "hello\nworld", "<p>hello world</p>"},
		{"two paragraphs", "a\n\nb", "<p>a</p><p>b</p>"},
		{"crlf normalized", "a\r\n\r\nb", "<p>a</p><p>b</p>"},
		{"heading level 1", "# Title", "<h1>Title</h1>"},
		{"heading level 3", "### Deep", "<h3>Deep</h3>"},
		{"heading clamps at 6", "####### Too Deep", "<h6>Too Deep</h6>"},
		{"hash without space is text", "#nope", "<p>#nope</p>"},
		{"hash without text is text", "# ", "<p>#</p>"},
		{"flat unordered list", "- a\n- b", "<ul><li>a</li><li>b</li></ul>"},
		{"star and plus markers", "* a\n+ b", "<ul><li>a</li><li>b</li></ul>"},
		{"ordered list", "1. a\n2. b", "<ol><li>a</li><li>b</li></ol>"},
		{"nested list closes before outer", "- a\n  - b", "<ul><li>a</li><ul><li>b</li></ul></ul>"},
		{"dedent closes nested list", "- a\n  - b\n- c", "<ul><li>a</li><ul><li>b</li></ul><li>c</li></ul>"},
		{"kind change at equal level", "1. a\n- b", "<ol><li>a</li></ol><ul><li>b</li></ul>"},
		{"deep dedent closes several", "- a\n  - b\n    - c\n- d",
			"<ul><li>a</li><ul><li>b</li><ul><li>c</li></ul></ul><li>d</li></ul>"},
		{"heading terminates lists", "- a\n  - b\n# Done", "<ul><li>a</li><ul><li>b</li></ul></ul><h1>Done</h1>"},
		{"paragraph after list stays inside open container", "- a\n\ntext", "<ul><li>a</li><p>text</p></ul>"},
		{"paragraph between items does not close list", "- a\ntext\n- b", "<ul><li>a</li><p>text</p><li>b</li></ul>"},
		{"lists close at end of input", "1. a\n  1. b", "<ol><li>a</li><ol><li>b</li></ol></ol>"},
		{"mixed document", "# Guide\nIntro line.\n- step one\n- step two",
			"<h1>Guide</h1><p>Intro line.</p><ul><li>step one</li><li>step two</li></ul>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTML(tc.in); got != tc.want {
				t.Errorf("HTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestHTMLInlineSpans(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "a **b** c", "<p>a <strong>b</strong> c</p>"},
		{"italic", "a *b* c", "<p>a <em>b</em> c</p>"},
		{"code", "run `go test` now", "<p>run <code>go test</code> now</p>"},
		{"all three", "Hello **bold** and *em* and `code`",
			"<p>Hello <strong>bold</strong> and <em>em</em> and <code>code</code></p>"},
		{"bold interior trimmed", "** padded **", "<p><strong>padded</strong></p>"},
		{"code interior preserved", "`  spaced  `", "<p><code>  spaced  </code></p>"},
		{"arithmetic is not italic", "5 * 3 = 15", "<p>5 * 3 = 15</p>"},
		{"dangling bold is literal", "a ** b", "<p>a ** b</p>"},
		{"dangling backtick is literal", "a ` b", "<p>a ` b</p>"},
		{"no nesting inside bold", "**a *b* c**", "<p><strong>a *b* c</strong></p>"},
		{"no nesting inside code", "`**x**`", "<p><code>**x**</code></p>"},
		{"spans in list items", "- **a**\n- `b`", "<ul><li><strong>a</strong></li><li><code>b</code></li></ul>"},
		{"spans in headings", "# A *b*", "<h1>A <em>b</em></h1>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTML(tc.in); got != tc.want {
				t.Errorf("HTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestHTMLEscapesEverywhere(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"script tag", "<img onerror=alert(1)>", "<p>&lt;img onerror=alert(1)&gt;</p>"},
		{"ampersand once", "fish & chips", "<p>fish &amp; chips</p>"},
		{"already escaped input not double escaped literally", "&amp;", "<p>&amp;amp;</p>"},
		{"quotes", `say "hi" and 'bye'`, "<p>say &quot;hi&quot; and &#39;bye&#39;</p>"},
		{"inside bold", "**<b>**", "<p><strong>&lt;b&gt;</strong></p>"},
		{"inside code", "`a < b`", "<p><code>a &lt; b</code></p>"},
		{"inside heading", "# a < b", "<h1>a &lt; b</h1>"},
		{"inside list item", "- <li>", "<ul><li>&lt;li&gt;</li></ul>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTML(tc.in); got != tc.want {
				t.Errorf("HTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// Rendering the same input twice must yield byte-identical output; the
// renderer carries no state between calls.
func TestHTMLDeterministic(t *testing.T) {
	inputs := []string{
		"",
		"# Title\n- a\n  - b\n\npara **bold** `code`",
		"*****",
		strings.Repeat("*", 4096),
		"1. a\n- b\n  1. c\n### h\ntext",
	}
	for _, in := range inputs {
		if a, b := HTML(in), HTML(in); a != b {
			t.Errorf("HTML(%q) not deterministic: %q vs %q", in, a, b)
		}
	}
}

// No raw HTML-significant character from the input may survive outside
// the renderer's own tag vocabulary.
func TestHTMLNeverLeaksRawInput(t *testing.T) {
	hostile := []string{
		"<script>alert(1)</script>",
		"- <a href=\"x\">y</a>",
		"# <div>",
		"**<i>**",
		"`<code>`",
		"1. \"quoted\" & 'single'",
	}
	for _, in := range hostile {
		out := HTML(in)
		stripped := out
		for _, tag := range []string{
			"<p>", "</p>", "<ul>", "</ul>", "<ol>", "</ol>", "<li>", "</li>",
			"<strong>", "</strong>", "<em>", "</em>", "<code>", "</code>",
			"<h1>", "</h1>", "<h2>", "</h2>", "<h3>", "</h3>",
			"<h4>", "</h4>", "<h5>", "</h5>", "<h6>", "</h6>",
		} {
			stripped = strings.ReplaceAll(stripped, tag, "")
		}
		for _, c := range []string{"<", ">", "\"", "'"} {
			if strings.Contains(stripped, c) {
				t.Errorf("HTML(%q) leaked %q: %q", in, c, out)
			}
		}
		if amp := strings.Count(stripped, "&"); amp != strings.Count(stripped, "&amp;")+strings.Count(stripped, "&lt;")+strings.Count(stripped, "&gt;")+strings.Count(stripped, "&quot;")+strings.Count(stripped, "&#39;") {
			t.Errorf("HTML(%q) leaked raw ampersand: %q", in, out)
		}
	}
}

func TestEscapeHTML(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"plain", "plain"},
		{"&", "&amp;"},
		{"<>", "&lt;&gt;"},
		{`"'`, "&quot;&#39;"},
		{"a&b<c>d", "a&amp;b&lt;c&gt;d"},
		{"&amp;", "&amp;amp;"}, // escaping is literal, never entity-aware
	}
	for _, tc := range cases {
		if got := EscapeHTML(tc.in); got != tc.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
