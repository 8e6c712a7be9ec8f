package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// One statement per Exec; pgx rejects multi-statement strings over the
// extended protocol.
var documentsDDL = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id         UUID PRIMARY KEY,
		collection TEXT NOT NULL,
		seq        BIGSERIAL,
		doc        JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS documents_collection_seq_idx
		ON documents (collection, seq)`,
}

// pgPool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore keeps all documents in a single JSONB table ordered by an
// insertion sequence per collection.
type PostgresStore struct {
	pool pgPool
}

// NewPostgresStore opens a pgx pool for the DSN, verifies the connection and
// ensures the documents table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreWithPool wraps an existing pool. Tests use this with
// pgxmock.
func NewPostgresStoreWithPool(pool pgPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range documentsDDL {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure documents table: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, doc Document) (ID, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	id := NewID()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (id, collection, doc) VALUES ($1, $2, $3::jsonb)`,
		id.String(), collection, string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	return id, nil
}

// Find filters with JSONB containment, which is plain equality for the
// top-level scalar fields filters are built from.
func (s *PostgresStore) Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error) {
	limit = ClampLimit(limit)

	if filter == nil {
		filter = Filter{}
	}
	cond, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, doc::text FROM documents
		 WHERE collection = $1 AND doc @> $2::jsonb
		 ORDER BY seq
		 LIMIT $3`,
		collection, string(cond), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0, limit)
	for rows.Next() {
		var idStr, raw string
		if err := rows.Scan(&idStr, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		doc, err := decodeDocument([]byte(raw), ID(idStr))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection string, id ID) (Document, error) {
	var raw string
	err := s.pool.QueryRow(ctx,
		`SELECT doc::text FROM documents WHERE collection = $1 AND id = $2`,
		collection, id.String(),
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return decodeDocument([]byte(raw), id)
}

func (s *PostgresStore) Update(ctx context.Context, collection string, id ID, fields Document) (Document, error) {
	patch, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update: %w", err)
	}

	var raw string
	err = s.pool.QueryRow(ctx,
		`UPDATE documents SET doc = doc || $3::jsonb
		 WHERE collection = $1 AND id = $2
		 RETURNING doc::text`,
		collection, id.String(), string(patch),
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return decodeDocument([]byte(raw), id)
}

func (s *PostgresStore) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM documents WHERE collection = $1`,
		collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT collection FROM documents ORDER BY collection`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}
	return names, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
