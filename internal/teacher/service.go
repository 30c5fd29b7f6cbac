package teacher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/db"
)

// ===== Error model (same shape as auth/attendance) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	store    *Store
	renderer Renderer
	ids      IDGen
	log      *zap.Logger
}

func NewService(conn db.DBTX, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    NewStore(conn),
		renderer: qrRenderer{},
		ids:      newULIDGen(),
		log:      log,
	}
}

// POST /guru
func (s *Service) Create(ctx context.Context, in CreateTeacherRequest) (CreateTeacherResponse, error) {
	nama := strings.TrimSpace(in.Nama)
	kode := strings.TrimSpace(in.KodeQR)
	if nama == "" || kode == "" {
		return CreateTeacherResponse{}, ErrInvalid("Nama dan kode_qr wajib diisi")
	}

	id, err := s.store.Create(ctx, nama, kode)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return CreateTeacherResponse{}, ErrConflict("kode_qr sudah dipakai guru lain")
		}
		s.log.Error("insert guru failed", zap.String("nama", nama), zap.Error(err))
		return CreateTeacherResponse{}, ErrInternal("Gagal menambahkan guru")
	}
	s.log.Info("guru added", zap.Int64("id", id), zap.String("kode_qr", kode))
	return CreateTeacherResponse{Message: "Guru berhasil ditambahkan", ID: id}, nil
}

// GET /guru/:id/qr
func (s *Service) Get(ctx context.Context, id int64) (TeacherResponse, error) {
	if id <= 0 {
		return TeacherResponse{}, ErrInvalid("id tidak valid")
	}
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.log.Error("select guru failed", zap.Int64("id", id), zap.Error(err))
		return TeacherResponse{}, ErrInternal("Gagal mengambil guru")
	}
	if t == nil {
		return TeacherResponse{}, ErrNotFound("Guru tidak ditemukan")
	}
	return t.toDTO(), nil
}

// QRImage renders the stored kode_qr of teacher id as a PNG.
func (s *Service) QRImage(ctx context.Context, id int64) ([]byte, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := s.renderer.PNG(t.KodeQR, QRSize)
	if err != nil {
		s.log.Error("render qr failed", zap.Int64("id", id), zap.Error(err))
		return nil, ErrInternal("Gagal Membuat QR Code")
	}
	return png, nil
}

// GET /generate-qr
func (s *Service) GenerateQR(ctx context.Context) (GeneratedQRResponse, error) {
	kode, err := s.ids.New()
	if err != nil {
		s.log.Error("generate qr id failed", zap.Error(err))
		return GeneratedQRResponse{}, ErrInternal("Gagal Membuat QR Code")
	}
	png, err := s.renderer.PNG(kode, QRSize)
	if err != nil {
		s.log.Error("render qr failed", zap.String("kode_qr", kode), zap.Error(err))
		return GeneratedQRResponse{}, ErrInternal("Gagal Membuat QR Code")
	}
	return GeneratedQRResponse{KodeQR: kode, QRImage: dataURL(png)}, nil
}
