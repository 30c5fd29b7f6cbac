package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func applyEnv(cfg *Config) error {
	var err error
	set := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	stringEnv("APP_MODE", &cfg.Mode)
	stringEnv("SERVER_ADDR", &cfg.Server.Addr)

	stringEnv("DB_HOST", &cfg.DB.Host)
	set(intEnv("DB_PORT", &cfg.DB.Port))
	stringEnv("DB_USER", &cfg.DB.Username)
	stringEnv("DB_PASSWORD", &cfg.DB.Password)
	stringEnv("DB_NAME", &cfg.DB.DBName)
	set(intEnv("DB_MAX_OPEN_CONNS", &cfg.DB.MaxOpenConns))

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS")); v != "" {
		cfg.CORS.AllowOrigins = splitList(v)
	}

	stringEnv("JWT_SECRET", &cfg.Auth.JWTSecret)
	set(durationEnv("JWT_TTL", &cfg.Auth.TokenTTL))
	stringEnv("AUTH_PASSWORD_MODE", &cfg.Auth.PasswordMode)
	if v := strings.TrimSpace(os.Getenv("AUTH_ADMIN_ROLES")); v != "" {
		cfg.Auth.AdminRoles = splitList(v)
	}

	set(boolEnv("GEOFENCE_ENABLED", &cfg.Geofence.Enabled))
	set(floatEnv("SCHOOL_LAT", &cfg.Geofence.Lat))
	set(floatEnv("SCHOOL_LNG", &cfg.Geofence.Lng))
	set(floatEnv("GEOFENCE_RADIUS_KM", &cfg.Geofence.RadiusKm))

	set(intEnv("EXPORT_UTC_OFFSET_HOURS", &cfg.Export.UTCOffsetHours))

	stringEnv("RESET_CRON", &cfg.Scheduler.ResetSpec)
	stringEnv("RESET_TZ", &cfg.Scheduler.Timezone)

	stringEnv("LOG_LEVEL", &cfg.Log.Level)
	stringEnv("LOG_FILE", &cfg.Log.File)
	set(intEnv("LOG_MAX_SIZE_MB", &cfg.Log.MaxSizeMB))
	set(intEnv("LOG_MAX_BACKUPS", &cfg.Log.MaxBackups))
	set(intEnv("LOG_MAX_AGE_DAYS", &cfg.Log.MaxAgeDays))
	set(boolEnv("LOG_COMPRESS", &cfg.Log.Compress))

	return err
}

func stringEnv(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func intEnv(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func floatEnv(key string, dst *float64) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	*dst = f
	return nil
}

func boolEnv(key string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

func durationEnv(key string, dst *time.Duration) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
