package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

// WritePlainAnswer writes the raw answer text followed by its sources.
func WritePlainAnswer(w io.Writer, res api.QueryResult) error {
	if _, err := io.WriteString(w, strings.TrimRight(res.Answer, "\n")+"\n"); err != nil {
		return err
	}
	if len(res.SourceGuides) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\nSources:\n"); err != nil {
		return err
	}
	for _, g := range res.SourceGuides {
		line := fmt.Sprintf("  - %s", g.Title)
		if g.URL != "" {
			line += " <" + g.URL + ">"
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
