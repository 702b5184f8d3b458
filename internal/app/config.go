package app

import (
	"strings"
	"time"

	"github.com/yungbote/coursehub-backend/internal/data/db"
	"github.com/yungbote/coursehub-backend/internal/observability"
	"github.com/yungbote/coursehub-backend/internal/platform/envutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

type Config struct {
	Port    string
	LogMode string

	DB db.Config

	JWTSecret        string
	TokenTTL         time.Duration
	CookieSecure     bool
	AllowAdminSignup bool

	AllowedOrigins []string

	StorageMode string
	AssetsDir   string

	OTPTTL         time.Duration
	OTPMaxAttempts int

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:    envutil.String("PORT", "8080", log),
		LogMode: envutil.String("LOG_MODE", "development", log),
		DB: db.Config{
			Driver: strings.ToLower(envutil.String("DB_DRIVER", "postgres", log)),
			Postgres: db.PostgresConfig{
				Host:     envutil.String("POSTGRES_HOST", "localhost", log),
				Port:     envutil.String("POSTGRES_PORT", "5432", log),
				User:     envutil.String("POSTGRES_USER", "postgres", log),
				Password: envutil.String("POSTGRES_PASSWORD", "", log),
				Name:     envutil.String("POSTGRES_NAME", "coursehub", log),
				SSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			},
			SQLitePath: envutil.String("SQLITE_PATH", "coursehub.db", log),
			Pool: db.PoolConfig{
				MaxOpenConns:    envutil.Int("DB_MAX_OPEN_CONNS", 20, log),
				MaxIdleConns:    envutil.Int("DB_MAX_IDLE_CONNS", 5, log),
				ConnMaxLifetime: envutil.Duration("DB_CONN_MAX_LIFETIME", 30*time.Minute, log),
			},
		},
		JWTSecret:        envutil.String("JWT_SECRET", "", log),
		TokenTTL:         envutil.Duration("TOKEN_TTL", services.DefaultTokenTTL, log),
		CookieSecure:     envutil.Bool("COOKIE_SECURE", false, log),
		AllowAdminSignup: envutil.Bool("ALLOW_ADMIN_SIGNUP", false, log),
		StorageMode:      strings.ToLower(envutil.String("STORAGE_MODE", StorageLocal, log)),
		AssetsDir:        envutil.String("ASSETS_DIR", "./assets", log),
		OTPTTL:           envutil.Duration("OTP_TTL", services.DefaultOTPTTL, log),
		OTPMaxAttempts:   envutil.Int("OTP_MAX_ATTEMPTS", services.DefaultOTPMaxAttempts, log),
		Otel:             observability.OtelConfigFromEnv(log),
	}

	for _, key := range []string{"CLIENT_ORIGIN1", "CLIENT_ORIGIN2"} {
		if o := envutil.String(key, "", log); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	cfg.AllowedOrigins = append(cfg.AllowedOrigins, envutil.List("CORS_ORIGINS", log)...)
	return cfg
}
