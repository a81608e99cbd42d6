package vectorstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"embedlab/internal/config"
	"embedlab/internal/models"
)

const vectorSize = 768

// SentenceEmbedding is one embedded sentence row, namespaced by cache key
// so one table serves many option sets.
type SentenceEmbedding struct {
	bun.BaseModel `bun:"table:sentence_embeddings,alias:se"`
	ID            int64     `bun:"id,pk,autoincrement"`
	CacheKey      string    `bun:"cache_key,notnull"`
	Content       string    `bun:"content,notnull"`
	Category      string    `bun:"category"`
	Embedding     []float32 `bun:"embedding,notnull,type:vector(768)"`
	Distance      float64   `bun:"distance,scanonly"`
}

// ConnectDB opens the Postgres connection for the pgvector backend.
func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: postgres backend needs database.dsn", models.ErrConfiguration)
	}
	opts := []pgdriver.Option{pgdriver.WithDSN(cfg.DSN)}
	if cfg.Password != "" {
		opts = append(opts, pgdriver.WithPassword(cfg.Password))
	}
	return sql.OpenDB(pgdriver.NewConnector(opts...)), nil
}

// NewDB wraps the connection with bun and its debug hook.
func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(debug)))
	return db
}

// InitDB creates the embeddings table if needed.
func InitDB(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*SentenceEmbedding)(nil)).IfNotExists().Exec(ctx)
	return err
}

// PgStore serves similarity searches over the rows stored for one cache key.
type PgStore struct {
	db  *bun.DB
	key string
}

// NewPgStore binds a store to the rows addressed by key.
func NewPgStore(db *bun.DB, key string) *PgStore {
	return &PgStore{db: db, key: key}
}

// Add inserts embedded documents under the store's cache key.
func (s *PgStore) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	rows := make([]SentenceEmbedding, len(docs))
	for i, d := range docs {
		rows[i] = SentenceEmbedding{
			CacheKey:  s.key,
			Content:   d.Content,
			Category:  d.Category,
			Embedding: d.Embedding,
		}
	}
	_, err := s.db.NewInsert().Model(&rows).Exec(ctx)
	return err
}

// Count returns the number of rows stored under the cache key.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	return s.db.NewSelect().
		Model((*SentenceEmbedding)(nil)).
		Where("se.cache_key = ?", s.key).
		Count(ctx)
}

// Search returns up to k hits ordered by ascending cosine distance.
func (s *PgStore) Search(ctx context.Context, queryEmbedding []float32, k int) ([]Hit, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: result count must be at least 1, got %d", models.ErrConfiguration, k)
	}
	lit := vectorLiteral(queryEmbedding)

	var rows []SentenceEmbedding
	err := s.db.NewSelect().
		Model(&rows).
		Column("content", "category").
		ColumnExpr("se.embedding <=> ?::vector AS distance", lit).
		Where("se.cache_key = ?", s.key).
		OrderExpr("se.embedding <=> ?::vector", lit).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}

	hits := make([]Hit, len(rows))
	for i, r := range rows {
		hits[i] = Hit{Content: r.Content, Category: r.Category, Distance: r.Distance}
	}
	return hits, nil
}

// Metric reports the pgvector operator class in use.
func (s *PgStore) Metric() string {
	return models.MetricCosine
}

// ResolvePg reuses the rows stored for key, building them when absent.
// A failed build deletes the key's rows so nothing partial stays behind.
func ResolvePg(ctx context.Context, db *bun.DB, key string, build BuildFunc) (*PgStore, Status, error) {
	store := NewPgStore(db, key)

	count, err := store.Count(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("count rows for %s: %w", key, err)
	}
	if count > 0 {
		return store, StatusLoaded, nil
	}

	if err := build(ctx, store.Add); err != nil {
		_, _ = db.NewDelete().
			Model((*SentenceEmbedding)(nil)).
			Where("cache_key = ?", key).
			Exec(ctx)
		return nil, "", err
	}
	return store, StatusCreated, nil
}

// vectorLiteral renders an embedding as a pgvector input literal.
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
