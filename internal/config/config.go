package config

import (
	"errors"
	"fmt"

	"github.com/maxviazov/petclinic-service/internal/logger"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Store    StoreConfig         `mapstructure:"store"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	// ReadTimeout and WriteTimeout are seconds.
	ReadTimeout  int `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout int `mapstructure:"write_timeout" validate:"min=0"`
}

// PostgresConfig holds connection and pool tuning. Durations are seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// StoreConfig picks the persistence backend. Seed loads the reference dataset into an empty store.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory postgres"`
	Seed   bool   `mapstructure:"seed"`
}

// Validate checks cross-section rules the struct tags cannot express.
func (c *Config) Validate() error {
	if c.Store.Driver != DriverPostgres {
		return nil
	}
	var missing []error
	if c.Postgres.User == "" {
		missing = append(missing, errors.New("postgres.user is required"))
	}
	if c.Postgres.Password == "" {
		missing = append(missing, errors.New("postgres.password is required"))
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, errors.New("postgres.dbname is required"))
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(missing...))
	}
	return nil
}
