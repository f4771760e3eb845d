package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/repository/postgres"
	"go-portfolio-site/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createContactTable = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// connect needs a disposable database in DATABASE_URL; the test is skipped otherwise.
func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresConnection(ctx, dsn)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, createContactTable)
	require.NoError(t, err)
	return pool
}

func TestInsertReturnsStoredRow(t *testing.T) {
	ctx := context.Background()
	pool := connect(t)
	defer pool.Close()

	repo := postgres.NewContactRepository(pool)
	record, err := repo.Insert(ctx, &domain.ContactSubmission{
		Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM contact_messages WHERE id::text = $1", record.ID)
	})

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "Ada", record.Name)
	assert.False(t, record.CreatedAt.IsZero())

	var message string
	require.NoError(t, pool.QueryRow(ctx, "SELECT message FROM contact_messages WHERE id::text = $1", record.ID).Scan(&message))
	assert.Equal(t, "Hello", message)
}

func TestInsertWrapsFailures(t *testing.T) {
	pool := connect(t)
	pool.Close()

	repo := postgres.NewContactRepository(pool)
	record, err := repo.Insert(context.Background(), &domain.ContactSubmission{
		Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello",
	})

	assert.Nil(t, record)
	var storeErr *domain.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "postgres", storeErr.Backend)
}

func TestNewPostgresConnectionRequiresURL(t *testing.T) {
	pool, err := database.NewPostgresConnection(context.Background(), "")
	assert.Nil(t, pool)

	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"DATABASE_URL"}, cfgErr.Missing)
}
