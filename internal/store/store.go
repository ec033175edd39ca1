// Package store persists ingested guide chunks and small settings, and
// answers lexical retrieval queries over the chunks.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

var ErrNotFound = errors.New("not found")

// Store is the chunk and settings persistence interface.
type Store interface {
	// UpsertChunks writes chunks keyed by their id; existing rows are
	// replaced, so re-ingesting a source is idempotent.
	UpsertChunks(ctx context.Context, chunks []api.Chunk) error
	// DeleteSource removes every chunk ingested under a source id.
	DeleteSource(ctx context.Context, source string) error
	// Search returns the topK chunks ranked against the query.
	Search(ctx context.Context, query string, topK int) ([]api.Chunk, error)
	// Count reports the number of stored chunks.
	Count(ctx context.Context) (int, error)
	// Guides lists the distinct guides that have chunks in the store.
	Guides(ctx context.Context) ([]api.SourceGuide, error)
	// ClearAll drops every chunk and setting.
	ClearAll(ctx context.Context) error

	// GetSetting returns ErrNotFound when the key has never been set.
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error

	Close() error
}

// Open returns a Store based on a DSN: sqlite://<path> or mem://.
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	case dsn == "mem://" || dsn == "mem":
		return newMemStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store dsn %q", dsn)
	}
}
