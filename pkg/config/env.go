package config

// EnvPrefix is handed to envconfig. Every field also carries its full variable name.
const EnvPrefix = "BEGGY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "BEGGY_APP_ENV"
	EnvPort         = "BEGGY_APP_PORT"
	EnvLogLevel     = "BEGGY_LOG_LEVEL"
	EnvLogWarnStack = "BEGGY_LOG_WARN_STACK"

	EnvDBDSN      = "BEGGY_DB_DSN"
	EnvDBDriver   = "BEGGY_DB_DRIVER"
	EnvDBHost     = "BEGGY_DB_HOST"
	EnvDBPort     = "BEGGY_DB_PORT"
	EnvDBUser     = "BEGGY_DB_USER"
	EnvDBPassword = "BEGGY_DB_PASSWORD"
	EnvDBName     = "BEGGY_DB_NAME"
	EnvDBSSLMode  = "BEGGY_DB_SSLMODE"
	EnvSQLitePath = "BEGGY_SQLITE_PATH"

	EnvRedisURL = "BEGGY_REDIS_URL"

	EnvJWTSecret              = "BEGGY_JWT_SECRET"
	EnvJWTIssuer              = "BEGGY_JWT_ISSUER"
	EnvJWTExpMins             = "BEGGY_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "BEGGY_REFRESH_TOKEN_TTL_MINUTES"

	EnvUseSQLite   = "BEGGY_USE_SQLITE"
	EnvAutoMigrate = "BEGGY_AUTO_MIGRATE"

	EnvRateLimitRPS   = "BEGGY_RATE_LIMIT_RPS"
	EnvRateLimitBurst = "BEGGY_RATE_LIMIT_BURST"

	EnvCORSAllowedOrigins = "BEGGY_CORS_ALLOWED_ORIGINS"
)

// legacyDBEnvVars must all be present when no DSN is configured for postgres.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
