package config

const (
	EnvPrefix = "SALESCAST"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	DataSourceCSV      = "csv"
	DataSourceDatabase = "database"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Environment variable names referenced outside struct tags (tests,
// error messages).
const (
	EnvAppEnv     = "SALESCAST_APP_ENV"
	EnvPort       = "SALESCAST_APP_PORT"
	EnvDataSource = "SALESCAST_DATA_SOURCE"
	EnvDBDSN      = "SALESCAST_DB_DSN"
	EnvRedisURL   = "SALESCAST_REDIS_URL"
)
