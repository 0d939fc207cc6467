package models

import "time"

// Config represents the application configuration
type Config struct {
	RemoteBackend string `env:"REMOTE_BACKEND" envDefault:"sqlite"`
	FixturesFile  string `env:"FIXTURES_FILE" envDefault:"drafts.yaml"`
	Database      DatabaseConfig
	Formance      FormanceConfig
	Slot          SlotConfig
	Server        ServerConfig
	Log           LogConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string        `env:"DATABASE_PATH" envDefault:"campaigns.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"30s"`
	PingTimeout     time.Duration `env:"DB_PING_TIMEOUT" envDefault:"5s"`
}

// FormanceConfig holds the Formance Stack connection used when
// REMOTE_BACKEND=formance.
type FormanceConfig struct {
	StackURL     string `env:"FORMANCE_STACK_URL"`
	ClientID     string `env:"FORMANCE_CLIENT_ID"`
	ClientSecret string `env:"FORMANCE_CLIENT_SECRET"`
	LedgerName   string `env:"FORMANCE_LEDGER" envDefault:"campaign-drafts"`
}

// SlotConfig selects and configures the local draft slot backend
type SlotConfig struct {
	Backend  string        `env:"SLOT_BACKEND" envDefault:"bolt"`
	Path     string        `env:"SLOT_PATH" envDefault:"drafts.db"`
	RedisURL string        `env:"SLOT_REDIS_URL" envDefault:"localhost:6379"`
	RedisTTL time.Duration `env:"SLOT_REDIS_TTL" envDefault:"0s"`
}

// ServerConfig holds HTTP facade settings
type ServerConfig struct {
	Addr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
}

// LogConfig controls the zap logger flavour
type LogConfig struct {
	Development bool `env:"LOG_DEVELOPMENT" envDefault:"false"`
}
