package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/repositories/repomanager"
	"github.com/dmitrijs2005/solidarias/internal/server/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

// newStore opens a private in-memory SQLite store with the schema and seed
// data applied.
func newStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, dialect, err := dbx.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLRepositoryManager(dialect)
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

func newUserService(t *testing.T, db *sql.DB, m repomanager.RepositoryManager) *UserService {
	t.Helper()
	s := NewUserService(db, m, &config.Config{
		SecretKey:               "k",
		SessionValidityDuration: time.Hour,
	})
	s.bcryptCost = bcrypt.MinCost
	return s
}

func register(t *testing.T, s *UserService, name string) int64 {
	t.Helper()
	u, err := s.Register(context.Background(), Registration{
		UserName: name, Email: name + "@example.com", Password: "pw", ConfirmPassword: "pw",
	})
	require.NoError(t, err)
	return u.ID
}
