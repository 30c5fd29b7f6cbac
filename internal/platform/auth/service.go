package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/config"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/db"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/metrics"
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      Identity
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type Service struct {
	store        UserStore
	issuer       *Issuer
	passwordMode string
	log          *zap.Logger
	metrics      *metrics.Metrics
}

type Options struct {
	// PasswordMode is config.PasswordModePlain (default) or config.PasswordModeBcrypt.
	PasswordMode string
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
}

func NewService(conn db.DBTX, issuer *Issuer, opts Options) *Service {
	return NewServiceWithStore(NewStore(conn), issuer, opts)
}

func NewServiceWithStore(store UserStore, issuer *Issuer, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	mode := opts.PasswordMode
	if mode == "" {
		mode = config.PasswordModePlain
	}
	return &Service{
		store:        store,
		issuer:       issuer,
		passwordMode: mode,
		log:          log,
		metrics:      opts.Metrics,
	}
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalid("Username dan password wajib diisi")
	}

	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		s.log.Error("login lookup failed", zap.String("username", username), zap.Error(err))
		return nil, ErrInternal("Terjadi kesalahan server")
	}
	if u == nil {
		s.metrics.Login(false)
		return nil, ErrUnauthenticated("Username tidak ditemukan")
	}
	if !s.passwordMatches(u.Password, password) {
		s.metrics.Login(false)
		return nil, ErrUnauthenticated("Password salah")
	}

	id := Identity{ID: u.ID, Username: u.Username, Role: u.Role}
	token, exp, err := s.issuer.Issue(id)
	if err != nil {
		s.log.Error("sign token failed", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, ErrInternal("Terjadi kesalahan server")
	}

	s.metrics.Login(true)
	s.log.Info("login", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	return &LoginResult{Token: token, ExpiresAt: exp, User: id}, nil
}

// passwordMatches compares in plain text unless bcrypt mode is configured.
// Plain text is what the existing users table holds.
func (s *Service) passwordMatches(stored, given string) bool {
	if s.passwordMode == config.PasswordModeBcrypt {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}
