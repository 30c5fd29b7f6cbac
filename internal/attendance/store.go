package attendance

import (
	"context"
	"fmt"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

// Insert writes one check-in and returns its id.
func (s *Store) Insert(ctx context.Context, a Attendance) (int64, error) {
	const q = `
	INSERT INTO absensi (nama, qrCode, lat, lng, waktu)
	VALUES (?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, q, a.Nama, a.QRCode, floatOrNil(a.Lat), floatOrNil(a.Lng), a.Waktu.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert absensi: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert absensi: %w", err)
	}
	return id, nil
}

// List returns every record, newest first.
func (s *Store) List(ctx context.Context) ([]Attendance, error) {
	return s.query(ctx, `
	SELECT id, nama, qrCode, lat, lng, waktu
	FROM absensi
	ORDER BY waktu DESC, id DESC`)
}

// ListChronological returns every record, oldest first (export order).
func (s *Store) ListChronological(ctx context.Context) ([]Attendance, error) {
	return s.query(ctx, `
	SELECT id, nama, qrCode, lat, lng, waktu
	FROM absensi
	ORDER BY waktu ASC, id ASC`)
}

// DeleteAll empties the table and returns the number of rows removed.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM absensi`)
	if err != nil {
		return 0, fmt.Errorf("delete absensi: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete absensi: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, q string) ([]Attendance, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select absensi: %w", err)
	}
	defer rows.Close()

	out := make([]Attendance, 0, 64)
	for rows.Next() {
		var r attendanceRow
		if err := rows.Scan(&r.ID, &r.Nama, &r.QRCode, &r.Lat, &r.Lng, &r.Waktu); err != nil {
			return nil, fmt.Errorf("scan absensi: %w", err)
		}
		out = append(out, r.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select absensi: %w", err)
	}
	return out, nil
}
