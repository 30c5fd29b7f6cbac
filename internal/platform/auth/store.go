package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/db"
)

// User is a row of the users table. Rows are provisioned outside this service.
type User struct {
	ID       int64
	Username string
	Password string
	Role     string
}

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) UserStore {
	return &Store{db: conn}
}

// GetByUsername returns nil, nil when no user matches.
func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	const q = `
SELECT id, username, password, role
FROM users
WHERE username = ?
LIMIT 1
`
	var u User
	var role sql.NullString
	err := s.db.QueryRowContext(ctx, q, username).Scan(&u.ID, &u.Username, &u.Password, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role = role.String
	return &u, nil
}
