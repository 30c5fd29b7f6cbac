package attendance

import "time"

const (
	SheetName       = "Absensi"
	ExportTimestamp = "02/01/2006 15:04:05"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CheckInRequest is the body of POST /absen. Field names follow the
// frontend ("qrCode" is camel case, unlike the guru endpoints).
type CheckInRequest struct {
	Nama   string   `json:"nama" binding:"required"`
	QRCode string   `json:"qrCode" binding:"required"`
	Lat    *float64 `json:"lat,omitempty" binding:"omitempty,latitude"`
	Lng    *float64 `json:"lng,omitempty" binding:"omitempty,longitude"`
}

type CheckInResponse struct {
	Message    string   `json:"message"`
	ID         int64    `json:"id"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

type AttendanceResponse struct {
	ID     int64     `json:"id"`
	Nama   string    `json:"nama"`
	QRCode string    `json:"qrCode"`
	Lat    *float64  `json:"lat"`
	Lng    *float64  `json:"lng"`
	Waktu  time.Time `json:"waktu"`
}
