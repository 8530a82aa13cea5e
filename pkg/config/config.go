package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Artifacts ArtifactsConfig
	Data      DataConfig
	DB        DBConfig
	Redis     RedisConfig
	Cache     CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Data.validate(); err != nil {
		return nil, err
	}
	if cfg.Data.IsDatabase() && cfg.DB.DSN == "" {
		return nil, fmt.Errorf("%s is required when %s=database", EnvDBDSN, EnvDataSource)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SALESCAST_APP_ENV" required:"true"`
	Port         string `envconfig:"SALESCAST_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SALESCAST_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"SALESCAST_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"SALESCAST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ArtifactsConfig struct {
	Dir string `envconfig:"SALESCAST_ARTIFACTS_DIR" default:"modelAI"`
}

// DataConfig points the historical series loader at its source. The
// cleaned CSV is optional and only feeds the month/weekday group
// averages; when absent those averages fall back to the raw series.
type DataConfig struct {
	Source     string `envconfig:"SALESCAST_DATA_SOURCE" default:"csv"`
	DailyCSV   string `envconfig:"SALESCAST_DATA_DAILY_CSV" default:"data/Daily_sales.csv"`
	CleanedCSV string `envconfig:"SALESCAST_DATA_CLEANED_CSV"`
	RecentDays int    `envconfig:"SALESCAST_DATA_RECENT_DAYS" default:"30"`
}

func (d DataConfig) IsDatabase() bool {
	return strings.EqualFold(d.Source, DataSourceDatabase)
}

func (d DataConfig) validate() error {
	switch strings.ToLower(d.Source) {
	case DataSourceCSV, DataSourceDatabase:
		return nil
	default:
		return fmt.Errorf("invalid %s %q (expected csv or database)", EnvDataSource, d.Source)
	}
}

type DBConfig struct {
	DSN    string `envconfig:"SALESCAST_DB_DSN"`
	Driver string `envconfig:"SALESCAST_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"SALESCAST_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SALESCAST_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SALESCAST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SALESCAST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

// RedisConfig is optional: an empty URL disables the prediction cache.
type RedisConfig struct {
	URL          string        `envconfig:"SALESCAST_REDIS_URL"`
	Address      string        `envconfig:"SALESCAST_REDIS_ADDR"`
	Password     string        `envconfig:"SALESCAST_REDIS_PASSWORD"`
	DB           int           `envconfig:"SALESCAST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SALESCAST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SALESCAST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SALESCAST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SALESCAST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SALESCAST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CacheConfig struct {
	PredictionTTL time.Duration `envconfig:"SALESCAST_CACHE_PREDICTION_TTL" default:"1h"`
}
