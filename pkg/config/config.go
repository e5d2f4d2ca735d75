package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"DERMACART_APP_ENV" required:"true"`
	Port         string `envconfig:"DERMACART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DERMACART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DERMACART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DERMACART_DB_DSN"`
	Driver string `envconfig:"DERMACART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DERMACART_DB_HOST"`
	LegacyPort     int    `envconfig:"DERMACART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DERMACART_DB_USER"`
	LegacyPassword string `envconfig:"DERMACART_DB_PASSWORD"`
	LegacyName     string `envconfig:"DERMACART_DB_NAME"`
	LegacySSLMode  string `envconfig:"DERMACART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DERMACART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DERMACART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DERMACART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DERMACART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver was selected (local/dev runs).
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"DERMACART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DERMACART_REDIS_ADDR"`
	Password     string        `envconfig:"DERMACART_REDIS_PASSWORD"`
	DB           int           `envconfig:"DERMACART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DERMACART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DERMACART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DERMACART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DERMACART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DERMACART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	// TTL bounds how long an abandoned cart survives in the key-value store.
	TTL        time.Duration `envconfig:"DERMACART_CART_TTL" default:"720h"`
	CompareTTL time.Duration `envconfig:"DERMACART_COMPARE_TTL" default:"168h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DERMACART_CORS_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DERMACART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:dermacart.db?cache=shared"
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
