package answer

import (
	"context"
	"strings"
)

// Extractive is the offline fallback generator: no model call, just the
// retrieved passages quoted back in the constrained chat markup. Keeps
// the whole pipeline usable without a completion endpoint.
type Extractive struct {
	// MaxPassage truncates each quoted passage; 0 means 300 runes.
	MaxPassage int
}

func (e Extractive) Generate(_ context.Context, q Question) (string, error) {
	if len(q.Contexts) == 0 {
		return "I could not find anything relevant to that in the ingested guides.", nil
	}
	limit := e.MaxPassage
	if limit <= 0 {
		limit = 300
	}
	var b strings.Builder
	b.WriteString("## From the documentation\n\n")
	for _, c := range q.Contexts {
		b.WriteString("- " + flatten(c, limit) + "\n")
	}
	b.WriteString("\nThis is quoted directly from the ingested guides; no model was consulted.")
	return b.String(), nil
}

// flatten collapses a passage to one line and truncates it on a word
// boundary so it stays a single list item in the answer markup.
func flatten(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + " …"
}
