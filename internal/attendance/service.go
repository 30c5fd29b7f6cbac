package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mfarhila/ABSENSI-GURU/internal/geo"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/db"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/metrics"
)

// ===== Error model (same shape as auth/teacher) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeOutOfRange      Code = "OUT_OF_RANGE"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string        { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError    { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrOutOfRange(msg string) *APIError { return &APIError{Code: CodeOutOfRange, Message: msg} }
func ErrInternal(msg string) *APIError   { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeOutOfRange:
			return 403
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Options struct {
	// Geofence is checked on every check-in when GeofenceEnabled is set.
	Geofence        geo.Fence
	GeofenceEnabled bool
	// ExportLocation is the zone export timestamps are rendered in.
	ExportLocation *time.Location
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Clock          Clock
}

type Service struct {
	store     *Store
	fence     geo.Fence
	fenceOn   bool
	exportLoc *time.Location
	log       *zap.Logger
	metrics   *metrics.Metrics
	clock     Clock
}

func NewService(conn db.DBTX, opts Options) *Service {
	s := &Service{
		store:     NewStore(conn),
		fence:     opts.Geofence,
		fenceOn:   opts.GeofenceEnabled,
		exportLoc: opts.ExportLocation,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		clock:     opts.Clock,
	}
	if s.exportLoc == nil {
		s.exportLoc = time.FixedZone("UTC+8", 8*3600)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	return s
}

// POST /absen
func (s *Service) CheckIn(ctx context.Context, in CheckInRequest) (CheckInResponse, error) {
	nama := strings.TrimSpace(in.Nama)
	qr := strings.TrimSpace(in.QRCode)
	if nama == "" || qr == "" {
		s.metrics.CheckIn(metrics.CheckInInvalid)
		return CheckInResponse{}, ErrInvalid(msgRequired)
	}

	hasLat, hasLng := in.Lat != nil, in.Lng != nil
	if hasLat != hasLng || (s.fenceOn && !hasLat) {
		s.metrics.CheckIn(metrics.CheckInInvalid)
		return CheckInResponse{}, ErrInvalid(msgLocation)
	}

	var distance *float64
	if hasLat {
		// coordinate ranges are enforced by the request binding
		p := geo.Point{Lat: *in.Lat, Lng: *in.Lng}
		if s.fenceOn {
			d, inside := s.fence.Contains(p)
			if !inside {
				s.metrics.CheckIn(metrics.CheckInOutside)
				s.log.Warn("check-in outside geofence",
					zap.String("nama", nama),
					zap.Float64("distance_km", d),
					zap.Float64("radius_km", s.fence.RadiusKm),
				)
				return CheckInResponse{}, ErrOutOfRange(fmt.Sprintf(
					"Anda berada di luar area sekolah (%.0f m, batas %.0f m)", d*1000, s.fence.RadiusKm*1000))
			}
			distance = &d
		}
	}

	rec := Attendance{
		Nama:   nama,
		QRCode: qr,
		Lat:    in.Lat,
		Lng:    in.Lng,
		Waktu:  s.clock.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		s.metrics.CheckIn(metrics.CheckInError)
		s.log.Error("insert absensi failed", zap.String("nama", nama), zap.Error(err))
		return CheckInResponse{}, ErrInternal("Gagal menyimpan absensi")
	}

	s.metrics.CheckIn(metrics.CheckInAccepted)
	return CheckInResponse{Message: "Absensi berhasil", ID: id, DistanceKm: distance}, nil
}

// GET /absen
func (s *Service) List(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("list absensi failed", zap.Error(err))
		return nil, ErrInternal("Gagal mengambil data absensi")
	}
	out := make([]AttendanceResponse, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		out = append(out, rows[i].toDTO())
	}
	return out, nil
}

// Reset deletes every attendance record. Used by the monthly job.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		s.log.Error("reset absensi failed", zap.Error(err))
		return 0, ErrInternal("Gagal menghapus data absensi")
	}
	s.log.Info("absensi reset", zap.Int64("deleted", n))
	return n, nil
}
