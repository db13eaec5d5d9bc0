package auth

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// User is a signed-in account.
type User struct {
	ID         string
	Email      string
	Name       string
	Provider   string
	ProviderID string
	CreatedAt  time.Time
}

// UsersRepo persists accounts created on first login.
type UsersRepo interface {
	Upsert(ctx context.Context, u User) error
}

// PGUsersRepo implements UsersRepo using Postgres.
type PGUsersRepo struct {
	DB *sql.DB
}

// Upsert inserts the user or refreshes email and name on repeat logins.
func (r *PGUsersRepo) Upsert(ctx context.Context, u User) error {
	const query = `
INSERT INTO users (id, email, name, provider, provider_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.Provider, u.ProviderID, u.CreatedAt)
	return err
}

// MemoryUsersRepo is an in-memory implementation of UsersRepo.
type MemoryUsersRepo struct {
	mu   sync.Mutex
	data map[string]User
}

// NewMemoryUsersRepo constructs a MemoryUsersRepo.
func NewMemoryUsersRepo() *MemoryUsersRepo {
	return &MemoryUsersRepo{data: make(map[string]User)}
}

// Upsert stores or refreshes the user.
func (r *MemoryUsersRepo) Upsert(ctx context.Context, u User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.data[u.ID]; ok {
		existing.Email = u.Email
		existing.Name = u.Name
		r.data[u.ID] = existing
		return nil
	}
	r.data[u.ID] = u
	return nil
}

var (
	_ UsersRepo = (*PGUsersRepo)(nil)
	_ UsersRepo = (*MemoryUsersRepo)(nil)
)
