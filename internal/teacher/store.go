package teacher

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

func (s *Store) Create(ctx context.Context, nama, kodeQR string) (int64, error) {
	const q = `
		INSERT INTO guru (nama, kode_qr)
		VALUES (?, ?)
	`
	r, err := s.db.ExecContext(ctx, q, nama, kodeQR)
	if err != nil {
		return 0, err
	}
	return r.LastInsertId()
}

// GetByID returns nil, nil when no teacher has the id.
func (s *Store) GetByID(ctx context.Context, id int64) (*Teacher, error) {
	const q = `
		SELECT id, nama, kode_qr
		FROM guru
		WHERE id = ?
	`
	var t Teacher
	err := s.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Nama, &t.KodeQR)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
