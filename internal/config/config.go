package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Contratos"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		// TimeZone decides which calendar day "today" is for received-date
		// checks and the expiration sweeps.
		TimeZone string `envconfig:"APP_TIMEZONE" default:"UTC"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"contratos"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
		MaxUpload   int64         `envconfig:"MAX_UPLOAD_BYTES" default:"20971520"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
		Issuer    string `envconfig:"JWT_ISSUER" default:"contratos"`
	}

	// Storage holds the Document Store credentials. They are fixed at start
	// and never read from user records.
	Storage struct {
		Bucket          string `envconfig:"GCS_BUCKET"`
		Folder          string `envconfig:"GCS_FOLDER" default:"contratos"`
		CredentialsJSON string `envconfig:"GCS_CREDENTIALS_JSON"`
		PublicBaseURL   string `envconfig:"GCS_PUBLIC_BASE_URL"`
	}

	Mail struct {
		Enabled         bool   `envconfig:"MAIL_ENABLED" default:"false"`
		ProjectID       string `envconfig:"PUBSUB_PROJECT_ID"`
		Topic           string `envconfig:"PUBSUB_TOPIC" default:"notificaciones-email"`
		CredentialsJSON string `envconfig:"PUBSUB_CREDENTIALS_JSON"`
	}

	Redis struct {
		Address  string `envconfig:"REDIS_ADDRESS" default:"localhost:6379"`
		Password string `envconfig:"REDIS_PASSWORD" default:""`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	Sweep struct {
		ExpiringSpec   string        `envconfig:"SWEEP_EXPIRING_SPEC" default:"0 6 * * *"`
		ExpiredSpec    string        `envconfig:"SWEEP_EXPIRED_SPEC" default:"5 0 * * *"`
		ArchiveSpec    string        `envconfig:"SWEEP_ARCHIVE_SPEC" default:"30 0 * * *"`
		LookaheadDays  int           `envconfig:"SWEEP_LOOKAHEAD_DAYS" default:"30"`
		LockTTL        time.Duration `envconfig:"SWEEP_LOCK_TTL" default:"10m"`
		CollapseOnRead bool          `envconfig:"NOTIFICATION_COLLAPSE_ON_READ" default:"false"`
	}

	// Operator is the identity the console acts as.
	Operator struct {
		ID    string `envconfig:"OPERATOR_ID"`
		Name  string `envconfig:"OPERATOR_NAME" default:"operador"`
		Email string `envconfig:"OPERATOR_EMAIL"`
		Role  string `envconfig:"OPERATOR_ROLE" default:"Admin_Gnl"`
		// RelationID is the director a specialist operator reports to.
		RelationID string `envconfig:"OPERATOR_RELATION_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Level maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

// Location resolves APP_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.App.TimeZone, err)
	}

	return loc, nil
}

// Clock returns the current time in the configured zone.
func (c *Config) Clock() (func() time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	return func() time.Time { return time.Now().In(loc) }, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
