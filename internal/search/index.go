// Package search owns the persistent full-text index over the scanned
// knowledge base: query normalization, ranked multi-field retrieval and
// snippet extraction.
package search

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver with FTS5 compiled in

	"hct-voice/internal/knowledge"
)

// dbFileName is the index database inside the index directory. The
// directory layout is opaque to callers; nothing outside this package
// should parse it.
const dbFileName = "knowledge.db"

// matchFields is the column set a query term may match in. A term
// matches if it matches in ANY of these fields.
const matchFields = "product topic content category subcategory"

// Index is a persistent, field-structured full-text index over the
// document corpus. Topic and content are matched with porter stemming;
// category, product and subcategory are keyword fields matched on
// literal tokens; path is stored for display only.
//
// An Index starts unloaded. It becomes loaded on a successful Build or
// on the first read that finds a persisted index on disk, and stays
// loaded for the process lifetime. Concurrent reads against a loaded
// index are safe; Build assumes exclusive access to the index
// directory for its duration.
type Index struct {
	dir    string
	logger *slog.Logger

	mu sync.Mutex
	db *sql.DB
}

// NewIndex creates an index handle rooted at dir. No files are touched
// until Build or the first query.
func NewIndex(dir string) *Index {
	return &Index{
		dir:    dir,
		logger: slog.Default(),
	}
}

// Dir returns the index directory.
func (ix *Index) Dir() string {
	return ix.dir
}

// Close releases the underlying database handle.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.db == nil {
		return nil
	}
	err := ix.db.Close()
	ix.db = nil
	return err
}

// Loaded reports whether the index has been built or loaded from disk.
func (ix *Index) Loaded() bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.db != nil
}

// Load opens the persisted index if one exists at the configured
// location. It returns false, without error, when no index has been
// built yet; an empty knowledge base is a reportable state, not a
// fault.
func (ix *Index) Load(ctx context.Context) (bool, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.db != nil {
		return true, nil
	}

	path := filepath.Join(ix.dir, dbFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat index: %w", err)
	}

	db, err := ix.open(ctx, path)
	if err != nil {
		return false, err
	}
	ix.db = db
	return true, nil
}

// Build discards any prior index at the target location and writes
// every entry fresh inside a single transaction. It is the only
// ingestion path; there is no incremental update. A failed Build
// leaves the previous index state undefined and the caller must retry
// from scratch.
func (ix *Index) Build(ctx context.Context, docs []knowledge.Document) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.db == nil {
		if err := os.MkdirAll(ix.dir, 0o755); err != nil {
			return fmt.Errorf("failed to create index directory: %w", err)
		}
		db, err := ix.open(ctx, filepath.Join(ix.dir, dbFileName))
		if err != nil {
			return err
		}
		ix.db = db
	}

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin index build: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (filename, path, category, product, subcategory, topic, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, doc := range docs {
		if _, err := stmt.ExecContext(ctx,
			doc.Filename, doc.Path, doc.Category, doc.Product, doc.Subcategory, doc.Topic, doc.Content,
		); err != nil {
			return fmt.Errorf("failed to index %s: %w", doc.Filename, err)
		}
	}

	// Repopulate the FTS table wholesale from the content table.
	if _, err := tx.ExecContext(ctx, "INSERT INTO documents_fts(documents_fts) VALUES('rebuild')"); err != nil {
		return fmt.Errorf("failed to rebuild full-text index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index build: %w", err)
	}

	ix.logger.Info("search index built", "documents", len(docs), "dir", ix.dir)
	return nil
}

// Query normalizes rawQuery, matches it jointly across the product,
// topic, content, category and subcategory fields and returns up to
// maxResults hits in descending relevance order with 1-based ranks and
// content snippets.
//
// If no persisted index exists yet, Query returns an empty slice and
// no error. A query the engine cannot parse degrades to a literal
// match of its terms instead of failing the request.
func (ix *Index) Query(ctx context.Context, rawQuery string, maxResults int) ([]Result, error) {
	if maxResults < 1 {
		maxResults = 1
	}

	loaded, err := ix.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !loaded {
		ix.logger.Warn("no search index found", "dir", ix.dir)
		return nil, nil
	}

	normalized := Normalize(rawQuery)
	if strings.TrimSpace(normalized) == "" {
		return nil, nil
	}

	rows, err := ix.match(ctx, fmt.Sprintf("{%s} : (%s)", matchFields, normalized), maxResults)
	if err != nil {
		// Malformed query expression: degrade to a literal-term match
		// rather than failing the whole request.
		ix.logger.Debug("query expression rejected, retrying literal", "query", normalized, "error", err)
		rows, err = ix.match(ctx, fmt.Sprintf("{%s} : (%s)", matchFields, quoteTerms(normalized)), maxResults)
		if err != nil {
			return nil, fmt.Errorf("failed to execute query: %w", err)
		}
	}

	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Snippet = Snippet(rows[i].Content, normalized, DefaultSnippetLength)
	}
	return rows, nil
}

// GetByProduct returns every stored entry whose product field equals
// productName, case-insensitively. This is an exact keyword lookup
// with no cross-field union and no snippet computation.
func (ix *Index) GetByProduct(ctx context.Context, productName string, maxResults int) ([]Entry, error) {
	if maxResults < 1 {
		maxResults = 1
	}

	loaded, err := ix.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !loaded {
		ix.logger.Warn("no search index found", "dir", ix.dir)
		return nil, nil
	}

	rows, err := ix.db.QueryContext(ctx,
		`SELECT filename, path, category, product, subcategory, topic, content
		 FROM documents
		 WHERE product = ? COLLATE NOCASE
		 LIMIT ?`,
		strings.ToLower(productName), maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query by product: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Filename, &e.Path, &e.Category, &e.Product, &e.Subcategory, &e.Topic, &e.Content); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

// Stats reports whether an index is loaded and how many documents it
// holds.
func (ix *Index) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{IndexPath: ix.dir}

	loaded, err := ix.Load(ctx)
	if err != nil {
		return stats, err
	}
	if !loaded {
		return stats, nil
	}

	var count int
	if err := ix.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return stats, fmt.Errorf("failed to count documents: %w", err)
	}
	stats.Indexed = true
	stats.DocumentCount = count
	return stats, nil
}

// match runs one FTS query and returns hits best-first. Scores are the
// negated bm25 values so that higher means more relevant.
func (ix *Index) match(ctx context.Context, matchExpr string, limit int) ([]Result, error) {
	rows, err := ix.db.QueryContext(ctx,
		`SELECT d.filename, d.path, d.category, d.product, d.subcategory, d.topic, d.content,
		        bm25(documents_fts) AS score
		 FROM documents_fts
		 JOIN documents d ON d.id = documents_fts.rowid
		 WHERE documents_fts MATCH ?
		 ORDER BY score
		 LIMIT ?`,
		matchExpr, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []Result
	for rows.Next() {
		var r Result
		var score float64
		if err := rows.Scan(&r.Filename, &r.Path, &r.Category, &r.Product, &r.Subcategory, &r.Topic, &r.Content, &score); err != nil {
			return nil, err
		}
		r.Score = -score
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// open opens the index database and ensures the schema exists.
func (ix *Index) open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL,
			path TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			product TEXT NOT NULL DEFAULT '',
			subcategory TEXT NOT NULL DEFAULT '',
			topic TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			filename, category, product, subcategory, topic, content,
			content='documents', content_rowid='id',
			tokenize='porter unicode61'
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create index schema: %w", err)
		}
	}
	return db, nil
}

// quoteTerms turns every whitespace-separated term of q into a quoted
// FTS string so the engine treats it literally.
func quoteTerms(q string) string {
	terms := strings.Fields(q)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
