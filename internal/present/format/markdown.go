package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

// WritePrettyAnswer renders the answer markup with glamour and appends
// a sources block.
func WritePrettyAnswer(w io.Writer, res api.QueryResult, wrap int) error {
	if wrap <= 0 {
		wrap = 80
	}

	md := strings.TrimSpace(res.Answer)
	if len(res.SourceGuides) > 0 {
		var b strings.Builder
		b.WriteString(md)
		b.WriteString("\n\n## Sources\n\n")
		for _, g := range res.SourceGuides {
			if g.URL != "" {
				b.WriteString(fmt.Sprintf("- %s <%s>\n", g.Title, g.URL))
			} else {
				b.WriteString("- " + g.Title + "\n")
			}
		}
		md = b.String()
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
