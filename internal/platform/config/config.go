package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

const (
	PasswordModePlain  = "plain"
	PasswordModeBcrypt = "bcrypt"
)

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"user"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	Certificate Certs  `yaml:"certificate"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	PasswordMode string        `yaml:"password_mode"`
	// AdminRoles may use the admin endpoints (teacher management, list, export).
	AdminRoles []string `yaml:"admin_roles"`
}

type GeofenceConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Lat      float64 `yaml:"lat"`
	Lng      float64 `yaml:"lng"`
	RadiusKm float64 `yaml:"radius_km"`
}

type ExportConfig struct {
	UTCOffsetHours int    `yaml:"utc_offset_hours"`
	Filename       string `yaml:"filename"`
}

type SchedulerConfig struct {
	ResetSpec string `yaml:"reset_spec"`
	Timezone  string `yaml:"timezone"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type Config struct {
	Version   string          `yaml:"version"`
	Mode      string          `yaml:"mode"`
	Server    ServerConfig    `yaml:"server"`
	DB        DatabaseConfig  `yaml:"database"`
	CORS      CORSConfig      `yaml:"cors"`
	Auth      AuthConfig      `yaml:"auth"`
	Geofence  GeofenceConfig  `yaml:"geofence"`
	Export    ExportConfig    `yaml:"export"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// Default returns the values used when neither the YAML file nor the
// environment sets a key.
func Default() Config {
	return Config{
		Mode:   "dev",
		Server: ServerConfig{Addr: ":3000"},
		DB: DatabaseConfig{
			Host:         "localhost",
			Port:         3306,
			Username:     "root",
			DBName:       "absensi_db",
			MaxOpenConns: 20,
			MaxIdleConns: 5,
		},
		CORS: CORSConfig{AllowOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"}},
		Auth: AuthConfig{
			TokenTTL:     2 * time.Hour,
			PasswordMode: PasswordModePlain,
			AdminRoles:   []string{"admin"},
		},
		Geofence: GeofenceConfig{Enabled: true, RadiusKm: 0.15},
		Export:   ExportConfig{UTCOffsetHours: 8, Filename: "absensi.xlsx"},
		Scheduler: SchedulerConfig{
			ResetSpec: "0 0 1 * *",
			Timezone:  "Local",
		},
		Log: LogConfig{
			Level:      "info",
			File:       "logs/app.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Load reads the YAML file at path (a missing file is not an error), applies
// environment overrides (a .env file in the working directory is loaded
// first if present) and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	buf, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	var problems []string

	if c.Mode != "dev" && c.Mode != "release" {
		problems = append(problems, fmt.Sprintf("mode must be dev or release, got %q", c.Mode))
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		problems = append(problems, "auth.jwt_secret (JWT_SECRET) is required")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.token_ttl must be positive")
	}
	if c.Auth.PasswordMode != PasswordModePlain && c.Auth.PasswordMode != PasswordModeBcrypt {
		problems = append(problems, fmt.Sprintf("auth.password_mode must be %s or %s", PasswordModePlain, PasswordModeBcrypt))
	}
	if len(c.Auth.AdminRoles) == 0 {
		problems = append(problems, "auth.admin_roles (AUTH_ADMIN_ROLES) needs at least one role")
	}
	if c.Geofence.Enabled {
		if c.Geofence.RadiusKm <= 0 {
			problems = append(problems, "geofence.radius_km must be positive")
		}
		if c.Geofence.Lat < -90 || c.Geofence.Lat > 90 || c.Geofence.Lng < -180 || c.Geofence.Lng > 180 {
			problems = append(problems, "geofence.lat/lng out of range")
		}
		if c.Geofence.Lat == 0 && c.Geofence.Lng == 0 {
			problems = append(problems, "geofence.lat/lng (SCHOOL_LAT, SCHOOL_LNG) are required when the geofence is enabled")
		}
	}
	if c.Export.UTCOffsetHours < -12 || c.Export.UTCOffsetHours > 14 {
		problems = append(problems, "export.utc_offset_hours must be between -12 and 14")
	}
	if strings.TrimSpace(c.DB.DBName) == "" {
		problems = append(problems, "database.dbname (DB_NAME) is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ExportLocation is the fixed zone export timestamps are rendered in.
func (c *Config) ExportLocation() *time.Location {
	h := c.Export.UTCOffsetHours
	return time.FixedZone(fmt.Sprintf("UTC%+d", h), h*3600)
}

// SchedulerLocation resolves scheduler.timezone, falling back to time.Local.
func (c *Config) SchedulerLocation() (*time.Location, error) {
	tz := strings.TrimSpace(c.Scheduler.Timezone)
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}
