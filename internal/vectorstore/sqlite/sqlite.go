// Package sqlite is a persistent vector store backed by SQLite with the
// sqlite-vec extension. The index survives process restarts, which the
// interactive query path relies on.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"carbongpt/internal/domain"
)

// Storage keeps chunk metadata in a plain table and embeddings in a vec0
// virtual table sharing rowids.
type Storage struct {
	db        *sql.DB
	dimension int
}

// Open opens (or creates) the index database at path.
func Open(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure index dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	s := &Storage{db: db}
	if dim, err := s.storedDimension(); err == nil {
		s.dimension = dim
	}
	return s, nil
}

func (s *Storage) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS chunks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			source TEXT NOT NULL,
			page INTEGER NOT NULL,
			clause TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS index_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE VIRTUAL TABLE IF NOT EXISTS vec_chunks USING vec0(
			embedding float[%d]
		);
	`, dimension)
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create index schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO index_meta (key, value) VALUES ('dimension', ?)",
		fmt.Sprint(dimension),
	); err != nil {
		return err
	}
	s.dimension = dimension
	return nil
}

func (s *Storage) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertChunk, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks (content, source, page, clause) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insertChunk.Close()
	insertVec, err := tx.PrepareContext(ctx,
		"INSERT INTO vec_chunks (rowid, embedding) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer insertVec.Close()

	for i, ch := range chunks {
		if len(vectors[i]) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		res, err := insertChunk.ExecContext(ctx, ch.Content, ch.Source, ch.Page, ch.Clause)
		if err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := insertVec.ExecContext(ctx, id, encodeFloat32(vectors[i])); err != nil {
			return fmt.Errorf("insert embedding: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Storage) Search(ctx context.Context, vector []float32, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.content, c.source, c.page, c.clause, v.distance
		FROM vec_chunks v
		JOIN chunks c ON c.id = v.rowid
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance`,
		encodeFloat32(vector), topK,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var ch domain.Chunk
		var distance float64
		if err := rows.Scan(&ch.Content, &ch.Source, &ch.Page, &ch.Clause, &distance); err != nil {
			return nil, err
		}
		// vec0 reports distance ascending; keep a similarity-style score.
		results = append(results, domain.SearchResult{Chunk: ch, Score: 1 - distance})
	}
	return results, rows.Err()
}

func (s *Storage) Clear(ctx context.Context) error {
	for _, stmt := range []string{
		"DELETE FROM chunks",
		"DELETE FROM vec_chunks",
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			// Tables may not exist yet on a fresh index.
			continue
		}
	}
	return nil
}

func (s *Storage) Close() error { return s.db.Close() }

func (s *Storage) storedDimension() (int, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM index_meta WHERE key = 'dimension'").Scan(&value)
	if err != nil {
		return 0, err
	}
	var dim int
	if _, err := fmt.Sscanf(value, "%d", &dim); err != nil {
		return 0, err
	}
	return dim, nil
}

// encodeFloat32 converts a vector to the little-endian blob layout vec0
// expects.
func encodeFloat32(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
