package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

type sqliteStore struct{ db *sql.DB }

// openSQLite connects using the modernc.org/sqlite driver and ensures
// the schema exists.
func openSQLite(ctx context.Context, path string) (Store, error) {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return &sqliteStore{db: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS chunks (
  id TEXT PRIMARY KEY,
  source TEXT NOT NULL,
  guide_id INTEGER NOT NULL,
  text TEXT NOT NULL,
  images TEXT NOT NULL DEFAULT '[]',
  guide_title TEXT NOT NULL DEFAULT '',
  guide_url TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source);
CREATE INDEX IF NOT EXISTS idx_chunks_guide ON chunks(guide_id);
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	return err
}

func (s *sqliteStore) UpsertChunks(ctx context.Context, chunks []api.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO chunks (id, source, guide_id, text, images, guide_title, guide_url)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  source=excluded.source, guide_id=excluded.guide_id, text=excluded.text,
  images=excluded.images, guide_title=excluded.guide_title, guide_url=excluded.guide_url`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, c := range chunks {
		imagesJSON, _ := json.Marshal(c.Images)
		if c.Images == nil {
			imagesJSON = []byte("[]")
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.Source, c.GuideID, c.Text, string(imagesJSON), c.GuideTitle, c.GuideURL); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) DeleteSource(ctx context.Context, source string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE source=?`, source)
	return err
}

// Search prefilters candidates in SQL with a LIKE per query token, then
// ranks the survivors in memory.
func (s *sqliteStore) Search(ctx context.Context, query string, topK int) ([]api.Chunk, error) {
	toks := tokenize(query)
	if len(toks) == 0 {
		return nil, nil
	}
	conds := make([]string, 0, len(toks))
	args := make([]any, 0, len(toks))
	for _, t := range toks {
		conds = append(conds, "lower(text) LIKE ?")
		args = append(args, "%"+t+"%")
	}
	q := `SELECT id, source, guide_id, text, images, guide_title, guide_url FROM chunks WHERE ` +
		strings.Join(conds, " OR ") + ` LIMIT 500`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var candidates []api.Chunk
	for rows.Next() {
		c, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rankChunks(query, candidates, topK), nil
}

func scanChunk(rows *sql.Rows) (api.Chunk, error) {
	var c api.Chunk
	var imagesJSON string
	if err := rows.Scan(&c.ID, &c.Source, &c.GuideID, &c.Text, &imagesJSON, &c.GuideTitle, &c.GuideURL); err != nil {
		return api.Chunk{}, err
	}
	_ = json.Unmarshal([]byte(imagesJSON), &c.Images)
	return c, nil
}

func (s *sqliteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n)
	return n, err
}

func (s *sqliteStore) Guides(ctx context.Context) ([]api.SourceGuide, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT guide_id, MAX(guide_title), MAX(guide_url)
FROM chunks WHERE guide_id > 0
GROUP BY guide_id ORDER BY guide_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.SourceGuide
	for rows.Next() {
		var g api.SourceGuide
		if err := rows.Scan(&g.GuideID, &g.Title, &g.URL); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *sqliteStore) ClearAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks; DELETE FROM settings;`)
	return err
}

func (s *sqliteStore) GetSetting(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key=?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return v, err
}

func (s *sqliteStore) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	return err
}

func (s *sqliteStore) Close() error { return s.db.Close() }
