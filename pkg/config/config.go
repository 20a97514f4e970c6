package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	RateLimit     RateLimitConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"BEGGY_APP_ENV" required:"true"`
	Port            string        `envconfig:"BEGGY_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"BEGGY_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"BEGGY_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"BEGGY_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	DSN        string `envconfig:"BEGGY_DB_DSN"`
	Driver     string `envconfig:"BEGGY_DB_DRIVER" default:"postgres"`
	SQLitePath string `envconfig:"BEGGY_SQLITE_PATH" default:"beggy.db"`

	Host     string `envconfig:"BEGGY_DB_HOST"`
	Port     int    `envconfig:"BEGGY_DB_PORT" default:"5432"`
	User     string `envconfig:"BEGGY_DB_USER"`
	Password string `envconfig:"BEGGY_DB_PASSWORD"`
	Name     string `envconfig:"BEGGY_DB_NAME"`
	SSLMode  string `envconfig:"BEGGY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BEGGY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BEGGY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BEGGY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BEGGY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"BEGGY_REDIS_URL" required:"true"`
	Password     string        `envconfig:"BEGGY_REDIS_PASSWORD"`
	PoolSize     int           `envconfig:"BEGGY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BEGGY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BEGGY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BEGGY_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"BEGGY_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BEGGY_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BEGGY_JWT_ISSUER" default:"beggy"`
	ExpirationMinutes      int    `envconfig:"BEGGY_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTokenTTLMinutes int    `envconfig:"BEGGY_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BEGGY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BEGGY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BEGGY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BEGGY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BEGGY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BEGGY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BEGGY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BEGGY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BEGGY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BEGGY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BEGGY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// RateLimitConfig drives the in-process per-client token bucket on the API routes.
type RateLimitConfig struct {
	Enabled bool    `envconfig:"BEGGY_RATE_LIMIT_ENABLED" default:"true"`
	RPS     float64 `envconfig:"BEGGY_RATE_LIMIT_RPS" default:"20"`
	Burst   int     `envconfig:"BEGGY_RATE_LIMIT_BURST" default:"40"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BEGGY_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	MaxAgeSeconds  int      `envconfig:"BEGGY_CORS_MAX_AGE_SECONDS" default:"300"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BEGGY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BEGGY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = db.SQLitePath
		return nil
	}

	legacyValues := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	var missing []string
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}
	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
