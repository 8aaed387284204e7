package config

// EnvPrefix namespaces every environment variable the backend reads.
const EnvPrefix = "FERMEDIRECT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "FERMEDIRECT_APP_ENV"
	EnvPort       = "FERMEDIRECT_APP_PORT"
	EnvDBDSN      = "FERMEDIRECT_DB_DSN"
	EnvDBHost     = "FERMEDIRECT_DB_HOST"
	EnvDBUser     = "FERMEDIRECT_DB_USER"
	EnvDBName     = "FERMEDIRECT_DB_NAME"
	EnvRedisURL   = "FERMEDIRECT_REDIS_URL"
	EnvJWTSecret  = "FERMEDIRECT_JWT_SECRET"
	EnvJWTIssuer  = "FERMEDIRECT_JWT_ISSUER"
	EnvJWTExpMins = "FERMEDIRECT_JWT_EXPIRATION_MINUTES"

	EnvRefreshTokenTTLMinutes = "FERMEDIRECT_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
