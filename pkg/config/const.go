package config

// EnvPrefix is empty because every variable carries the LEAFLINE_ prefix in its tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "LEAFLINE_APP_ENV"
	EnvPort       = "LEAFLINE_APP_PORT"
	EnvDBDSN      = "LEAFLINE_DB_DSN"
	EnvDBHost     = "LEAFLINE_DB_HOST"
	EnvDBUser     = "LEAFLINE_DB_USER"
	EnvDBName     = "LEAFLINE_DB_NAME"
	EnvRedisURL   = "LEAFLINE_REDIS_URL"
	EnvJWTSecret  = "LEAFLINE_JWT_SECRET"
	EnvJWTIssuer  = "LEAFLINE_JWT_ISSUER"
	EnvJWTExpMins = "LEAFLINE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
