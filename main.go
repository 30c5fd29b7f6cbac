package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mfarhila/ABSENSI-GURU/internal/attendance"
	"github.com/mfarhila/ABSENSI-GURU/internal/geo"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/auth"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/config"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/db"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/logging"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/metrics"
	"github.com/mfarhila/ABSENSI-GURU/internal/scheduler"
	"github.com/mfarhila/ABSENSI-GURU/internal/teacher"
)

// Frontend pages and assets. Keep the directive, the build needs it.
//
//go:embed public
var embedded embed.FS

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, flush, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer flush()
	restore := zap.ReplaceGlobals(logger)
	defer restore()
	logger.Info("starting", zap.String("mode", cfg.Mode), zap.String("version", cfg.Version))

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info("connected to DB", zap.String("db", cfg.DB.DBName), zap.String("host", cfg.DB.Host))

	m := metrics.New()
	issuer := auth.NewIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	attendanceSvc := attendance.NewService(conn, attendance.Options{
		Geofence: geo.Fence{
			Center:   geo.Point{Lat: cfg.Geofence.Lat, Lng: cfg.Geofence.Lng},
			RadiusKm: cfg.Geofence.RadiusKm,
		},
		GeofenceEnabled: cfg.Geofence.Enabled,
		ExportLocation:  cfg.ExportLocation(),
		Logger:          logger.Named("absensi"),
		Metrics:         m,
	})
	if !cfg.Geofence.Enabled {
		logger.Warn("geofence disabled, check-ins are accepted from anywhere")
	}

	loc, err := cfg.SchedulerLocation()
	if err != nil {
		return err
	}
	jobs, err := scheduler.New(cfg.Scheduler.ResetSpec, loc, attendanceSvc, logger, m)
	if err != nil {
		return err
	}
	jobs.Start()

	static, err := fs.Sub(embedded, "public")
	if err != nil {
		return err
	}

	r := newRouter(routerDeps{
		cfg:      cfg,
		db:       conn,
		log:      logger,
		metrics:  m,
		verifier: issuer,
		auth: auth.NewService(conn, issuer, auth.Options{
			PasswordMode: cfg.Auth.PasswordMode,
			Logger:       logger.Named("auth"),
			Metrics:      m,
		}),
		attendance: attendanceSvc,
		teacher:    teacher.NewService(conn, logger.Named("guru")),
		static:     static,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		certs := cfg.Server.Certificate
		var err error
		if certs.Cert != "" && certs.Key != "" {
			logger.Info("listening (TLS)", zap.String("addr", srv.Addr))
			err = srv.ListenAndServeTLS(certs.Cert, certs.Key)
		} else {
			logger.Info("listening", zap.String("addr", srv.Addr))
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err := <-errCh:
		if err != nil {
			_ = jobs.Stop(context.Background())
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown", zap.Error(err))
	}
	return nil
}
