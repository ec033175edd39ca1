// Package answer resolves a chat question: retrieve context chunks from
// the store, generate an answer over them, and collect the guides the
// answer drew from.
package answer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Dozuki/rag-guide-chat-poc/internal/store"
	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

var (
	// ErrRetrieval marks a failure searching the chunk store.
	ErrRetrieval = errors.New("search knowledge base")
	// ErrGenerate marks a failure from the answer generator.
	ErrGenerate = errors.New("generate answer")
)

// Question is one answerable query with its retrieved context and any
// prior conversation turns, oldest first, formatted "Role: text".
type Question struct {
	Text     string
	Contexts []string
	History  []string
}

// Generator produces an answer in the constrained chat markup.
type Generator interface {
	Generate(ctx context.Context, q Question) (string, error)
}

// GuideLookup fetches guide metadata for source attribution. Satisfied
// by *dozuki.Client.
type GuideLookup interface {
	GuideTitle(ctx context.Context, guideID int) (title, url string, err error)
}

// Result is the resolved answer before rendering.
type Result struct {
	Answer       string
	Sources      []string
	Contexts     []string
	SourceGuides []api.SourceGuide
}

// Service wires retrieval and generation together.
type Service struct {
	Store  store.Store
	Gen    Generator
	Guides GuideLookup // optional; fills titles missing from stored chunks
	Log    *log.Logger
	TopK   int
}

// Answer retrieves context for the question and generates a reply.
// Retrieval failures abort; per-guide metadata failures only log.
func (s *Service) Answer(ctx context.Context, question string, history []string) (Result, error) {
	topK := s.TopK
	if topK <= 0 {
		topK = 5
	}
	chunks, err := s.Store.Search(ctx, question, topK)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	res := Result{}
	seenSource := map[string]bool{}
	type meta struct{ title, url string }
	guideMeta := map[int]meta{}
	var guideOrder []int
	for _, c := range chunks {
		res.Contexts = append(res.Contexts, c.Text)
		if c.Source != "" && !seenSource[c.Source] {
			seenSource[c.Source] = true
			res.Sources = append(res.Sources, c.Source)
		}
		if c.GuideID > 0 {
			if _, ok := guideMeta[c.GuideID]; !ok {
				guideMeta[c.GuideID] = meta{title: c.GuideTitle, url: c.GuideURL}
				guideOrder = append(guideOrder, c.GuideID)
			}
		}
	}

	text, err := s.Gen.Generate(ctx, Question{Text: question, Contexts: res.Contexts, History: history})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	res.Answer = text

	for _, gid := range guideOrder {
		m := guideMeta[gid]
		if m.title == "" && s.Guides != nil {
			title, url, err := s.Guides.GuideTitle(ctx, gid)
			if err != nil {
				if s.Log != nil {
					s.Log.Printf("answer: unable to fetch guide %d: %v", gid, err)
				}
			} else {
				m.title, m.url = title, url
			}
		}
		if m.title == "" {
			m.title = fmt.Sprintf("Guide %d", gid)
		}
		res.SourceGuides = append(res.SourceGuides, api.SourceGuide{GuideID: gid, Title: m.title, URL: m.url})
	}
	return res, nil
}
