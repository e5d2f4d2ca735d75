package config

const (
	EnvPrefix = "DERMACART"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv   = "DERMACART_APP_ENV"
	EnvPort     = "DERMACART_APP_PORT"
	EnvDBDSN    = "DERMACART_DB_DSN"
	EnvDBHost   = "DERMACART_DB_HOST"
	EnvDBUser   = "DERMACART_DB_USER"
	EnvDBName   = "DERMACART_DB_NAME"
	EnvRedisURL = "DERMACART_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
