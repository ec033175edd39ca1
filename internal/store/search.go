package store

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

// rankChunks orders candidates against the query: primary score is the
// number of distinct query tokens the chunk contains, with a fuzzy
// match score as tiebreak. Chunks matching nothing are dropped.
//
// Lexical ranking stands in for the vector search of the original
// service; it needs no external embedding endpoint and is deterministic.
func rankChunks(query string, candidates []api.Chunk, topK int) []api.Chunk {
	if topK <= 0 || len(candidates) == 0 {
		return nil
	}
	qtoks := tokenize(query)
	if len(qtoks) == 0 {
		return nil
	}

	fuzzyScore := make([]int, len(candidates))
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	for _, m := range fuzzy.Find(query, texts) {
		fuzzyScore[m.Index] = m.Score
	}

	type scored struct {
		idx     int
		overlap int
	}
	var hits []scored
	for i, c := range candidates {
		text := strings.ToLower(c.Text)
		overlap := 0
		for _, t := range qtoks {
			if strings.Contains(text, t) {
				overlap++
			}
		}
		if overlap > 0 {
			hits = append(hits, scored{idx: i, overlap: overlap})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].overlap != hits[b].overlap {
			return hits[a].overlap > hits[b].overlap
		}
		return fuzzyScore[hits[a].idx] > fuzzyScore[hits[b].idx]
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	out := make([]api.Chunk, len(hits))
	for i, h := range hits {
		out[i] = candidates[h.idx]
	}
	return out
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-character noise.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			out = append(out, f)
		}
	}
	return out
}
