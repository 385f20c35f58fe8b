package facts

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Counter allocates monotonically increasing ids for user facts. Ids are
// never reused, even after a fact is deleted, so a fact's id is stable for
// its whole lifetime.
type Counter interface {
	// Next returns the next available id and advances the counter.
	Next(ctx context.Context) (int, error)
}

// FileCounter persists the counter as a single integer in a text file.
// Suitable for single-process deployments only: concurrent writers can
// race between the read and the write.
type FileCounter struct {
	Path string
}

// NewFileCounter creates a file-backed counter at the given path. The file
// is created on first use.
func NewFileCounter(path string) *FileCounter {
	return &FileCounter{Path: path}
}

// Next reads the current value, writes value+1 back, and returns the value
// that was read. A missing file starts the counter at zero.
func (c *FileCounter) Next(ctx context.Context) (int, error) {
	current := 0
	data, err := os.ReadFile(c.Path)
	if err == nil {
		current, err = strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			return 0, &CounterError{Message: fmt.Sprintf("counter file %s is corrupt", c.Path), Cause: err}
		}
	} else if !os.IsNotExist(err) {
		return 0, &CounterError{Message: "failed to read counter file", Cause: err}
	}

	next := strconv.Itoa(current + 1)
	if err := os.WriteFile(c.Path, []byte(next+"\n"), 0644); err != nil {
		return 0, &CounterError{Message: "failed to write counter file", Cause: err}
	}
	return current, nil
}

// PostgresCounter allocates ids from a single-row table using an atomic
// UPDATE, so multiple server instances can share one counter safely.
type PostgresCounter struct {
	pool *pgxpool.Pool
}

// NewPostgresCounter connects to the database and ensures the counter row
// exists.
func NewPostgresCounter(ctx context.Context, databaseURL string) (*PostgresCounter, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &CounterError{Message: "failed to connect to database", Cause: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &CounterError{Message: "failed to ping database", Cause: err}
	}

	_, err = pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS fact_counter (
		     id bool PRIMARY KEY DEFAULT true CHECK (id),
		     value integer NOT NULL
		 )`)
	if err != nil {
		pool.Close()
		return nil, &CounterError{Message: "failed to create counter table", Cause: err}
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO fact_counter (id, value) VALUES (true, 0)
		 ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		pool.Close()
		return nil, &CounterError{Message: "failed to seed counter row", Cause: err}
	}
	return &PostgresCounter{pool: pool}, nil
}

// Next atomically advances the counter and returns the pre-increment value.
func (c *PostgresCounter) Next(ctx context.Context) (int, error) {
	var after int
	err := c.pool.QueryRow(ctx,
		`UPDATE fact_counter SET value = value + 1 WHERE id RETURNING value`,
	).Scan(&after)
	if err != nil {
		return 0, &CounterError{Message: "failed to advance counter", Cause: err}
	}
	return after - 1, nil
}

// Close closes the connection pool.
func (c *PostgresCounter) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}
