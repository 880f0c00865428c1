package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "MAINT_APP_ENV"
	EnvPort   = "MAINT_APP_PORT"
	EnvDBDSN  = "MAINT_DB_DSN"
	EnvDBHost = "MAINT_DB_HOST"
	EnvDBUser = "MAINT_DB_USER"
	EnvDBName = "MAINT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	HTTP         HTTPConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MAINT_APP_ENV" required:"true"`
	Port         string `envconfig:"MAINT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MAINT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAINT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"MAINT_DB_DSN"`

	LegacyHost     string `envconfig:"MAINT_DB_HOST"`
	LegacyPort     int    `envconfig:"MAINT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MAINT_DB_USER"`
	LegacyPassword string `envconfig:"MAINT_DB_PASSWORD"`
	LegacyName     string `envconfig:"MAINT_DB_NAME"`
	LegacySSLMode  string `envconfig:"MAINT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MAINT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MAINT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MAINT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MAINT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// HTTPConfig carries the outward-facing API settings shared with pkg/client.
type HTTPConfig struct {
	// BaseURL is the address API consumers should dial. Injected so client
	// code never bakes in a host/port literal.
	BaseURL     string   `envconfig:"MAINT_API_BASE_URL" default:"http://localhost:3000"`
	CORSOrigins []string `envconfig:"MAINT_CORS_ORIGINS" default:"http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"MAINT_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"MAINT_SQLITE_PATH" default:"maintenance.db"`
	AutoMigrate bool   `envconfig:"MAINT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
