package attendance

import (
	"database/sql"
	"time"
)

// row of the absensi table (scan target)
type attendanceRow struct {
	ID     int64
	Nama   string
	QRCode string
	Lat    sql.NullFloat64
	Lng    sql.NullFloat64
	Waktu  time.Time
}

// Attendance is the model shared by Service and Store.
type Attendance struct {
	ID     int64
	Nama   string
	QRCode string
	Lat    *float64
	Lng    *float64
	Waktu  time.Time
}

func (r attendanceRow) toModel() Attendance {
	return Attendance{
		ID:     r.ID,
		Nama:   r.Nama,
		QRCode: r.QRCode,
		Lat:    nullFloat(r.Lat),
		Lng:    nullFloat(r.Lng),
		Waktu:  r.Waktu.UTC(),
	}
}

func (a Attendance) toDTO() AttendanceResponse {
	return AttendanceResponse{
		ID:     a.ID,
		Nama:   a.Nama,
		QRCode: a.QRCode,
		Lat:    a.Lat,
		Lng:    a.Lng,
		Waktu:  a.Waktu,
	}
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
