package main

import (
	"context"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mfarhila/ABSENSI-GURU/internal/attendance"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/apidoc"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/auth"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/config"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/logging"
	"github.com/mfarhila/ABSENSI-GURU/internal/platform/metrics"
	"github.com/mfarhila/ABSENSI-GURU/internal/teacher"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type routerDeps struct {
	cfg        *config.Config
	db         pinger
	log        *zap.Logger
	metrics    *metrics.Metrics
	verifier   auth.TokenVerifier
	auth       auth.AuthService
	attendance *attendance.Service
	teacher    *teacher.Service
	static     fs.FS
}

// pages maps the frontend's pretty paths to files under public/.
var pages = map[string]string{
	"":      "index.html",
	"login": "login.html",
	"admin": "admin.html",
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(logging.RequestLogger(d.log), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if len(d.cfg.CORS.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.cfg.CORS.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", logging.RequestIDHeader},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := d.db.PingContext(ctx); err != nil {
			logging.FromContext(c, d.log).Warn("health check failed", zap.Error(err))
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(d.metrics.Handler()))
	apidoc.RegisterRoutes(r)

	api := r.Group("/api")
	auth.RegisterRoutes(api, d.auth)

	private := api.Group("")
	private.Use(auth.RequireAuth(d.verifier), auth.RequireRole(d.cfg.Auth.AdminRoles...))

	attendance.RegisterRoutes(api, private, d.attendance, d.cfg.Export.Filename)
	teacher.RegisterRoutes(private, d.teacher)

	r.NoRoute(staticHandler(d.static))
	return r
}

// staticHandler serves the embedded frontend. Unknown paths fall back to
// index.html; unknown API paths get a JSON 404.
func staticHandler(files fs.FS) gin.HandlerFunc {
	fileFS := http.FS(files)

	serve := func(c *gin.Context, name string) bool {
		f, err := fileFS.Open(name)
		if err != nil {
			return false
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			return false
		}
		if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
			c.Header("Content-Type", ct)
		}
		// html always revalidates, assets are cached
		if !strings.HasSuffix(name, ".html") {
			c.Header("Cache-Control", "public, max-age=86400")
		}
		http.ServeContent(c.Writer, c.Request, name, info.ModTime(), f)
		return true
	}

	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Endpoint tidak ditemukan"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		name := strings.Trim(p, "/")
		if page, ok := pages[name]; ok {
			name = page
		}
		if serve(c, name) || serve(c, "index.html") {
			return
		}
		c.Status(http.StatusNotFound)
	}
}
