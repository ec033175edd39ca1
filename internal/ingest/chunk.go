package ingest

import "strings"

const (
	defaultChunkSize = 1000
	defaultOverlap   = 200
)

// splitText cuts text into pieces of at most size runes, preferring
// sentence boundaries and carrying roughly overlap runes of trailing
// context into the next piece. Texts at or under size come back whole.
func splitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = defaultOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}
	if len([]rune(text)) <= size {
		return []string{text}
	}

	sentences := splitSentences(text)
	var (
		chunks []string
		cur    []string
		curLen int
		fresh  bool // cur holds content not yet emitted
	)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		chunks = append(chunks, strings.TrimSpace(strings.Join(cur, " ")))
		// Seed the next chunk with trailing sentences up to the overlap
		// budget, newest first.
		var keep []string
		kept := 0
		for i := len(cur) - 1; i >= 0 && kept < overlap; i-- {
			keep = append([]string{cur[i]}, keep...)
			kept += len([]rune(cur[i]))
		}
		cur = keep
		curLen = kept
		fresh = false
	}

	for _, sent := range sentences {
		n := len([]rune(sent))
		if curLen+n > size && curLen > 0 {
			flush()
		}
		// A single sentence longer than size gets hard-cut.
		if n > size {
			for _, piece := range hardCut(sent, size) {
				cur = append(cur, piece)
				curLen += len([]rune(piece))
				fresh = true
				if curLen >= size {
					flush()
				}
			}
			continue
		}
		cur = append(cur, sent)
		curLen += n
		fresh = true
	}
	if fresh && curLen > 0 {
		chunks = append(chunks, strings.TrimSpace(strings.Join(cur, " ")))
	}
	return chunks
}

// splitSentences breaks on sentence punctuation followed by space, and
// on newlines. Good enough for guide prose; no abbreviation handling.
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
			continue
		}
		b.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && runes[i+1] == ' ' {
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

func hardCut(s string, size int) []string {
	runes := []rune(s)
	var out []string
	for len(runes) > size {
		out = append(out, string(runes[:size]))
		runes = runes[size:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
