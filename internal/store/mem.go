package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

// memStore mirrors the sqlite backend for tests and throwaway runs.
type memStore struct {
	mu       sync.RWMutex
	chunks   map[string]api.Chunk
	settings map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		chunks:   make(map[string]api.Chunk),
		settings: make(map[string]string),
	}
}

func (m *memStore) UpsertChunks(ctx context.Context, chunks []api.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range chunks {
		m.chunks[c.ID] = c
	}
	return nil
}

func (m *memStore) DeleteSource(ctx context.Context, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.chunks {
		if c.Source == source {
			delete(m.chunks, id)
		}
	}
	return nil
}

func (m *memStore) Search(ctx context.Context, query string, topK int) ([]api.Chunk, error) {
	m.mu.RLock()
	candidates := make([]api.Chunk, 0, len(m.chunks))
	for _, c := range m.chunks {
		candidates = append(candidates, c)
	}
	m.mu.RUnlock()
	// Map order is random; fix it so ranking ties break the same way
	// every call.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return rankChunks(query, candidates, topK), nil
}

func (m *memStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks), nil
}

func (m *memStore) Guides(ctx context.Context) ([]api.SourceGuide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byID := make(map[int]api.SourceGuide)
	for _, c := range m.chunks {
		if c.GuideID <= 0 {
			continue
		}
		g, ok := byID[c.GuideID]
		if !ok {
			g = api.SourceGuide{GuideID: c.GuideID}
		}
		if g.Title == "" {
			g.Title = c.GuideTitle
		}
		if g.URL == "" {
			g.URL = c.GuideURL
		}
		byID[c.GuideID] = g
	}
	out := make([]api.SourceGuide, 0, len(byID))
	for _, g := range byID {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GuideID < out[j].GuideID })
	return out, nil
}

func (m *memStore) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = make(map[string]api.Chunk)
	m.settings = make(map[string]string)
	return nil
}

func (m *memStore) GetSetting(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.settings[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memStore) PutSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *memStore) Close() error { return nil }
