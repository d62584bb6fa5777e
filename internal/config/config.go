package config

import "fmt"

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Rubric   RubricConfig   `mapstructure:"rubric"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns the HTTP listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	// Driver selects the storage backend: "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`

	// Path is the database file for the sqlite driver.
	Path string `mapstructure:"path"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`

	MaxOpenConns    int `mapstructure:"max_open_conns"`
	MaxIdleConns    int `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime"` // in minutes
}

// DSN returns the postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type RedisConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Addresses    []string `mapstructure:"addresses"`
	Password     string   `mapstructure:"password"`
	DB           int      `mapstructure:"db"`
	PoolSize     int      `mapstructure:"pool_size"`
	MinIdleConns int      `mapstructure:"min_idle_conns"`
}

type KafkaConfig struct {
	Brokers      []string `mapstructure:"brokers"`
	AuditTopic   string   `mapstructure:"audit_topic"`
	WriteTimeout int      `mapstructure:"write_timeout"` // in seconds
	RequiredAcks int      `mapstructure:"required_acks"`
	BatchSize    int      `mapstructure:"batch_size"`
	BatchTimeout int      `mapstructure:"batch_timeout"` // in milliseconds
}

type AuditConfig struct {
	// Backend selects the audit sink: "db" or "kafka".
	Backend string `mapstructure:"backend"`

	// SigningKey enables HMAC signing of audit events when non-empty.
	SigningKey string `mapstructure:"signing_key"`
}

type AuthConfig struct {
	// JWTSecret signs and verifies rubric-editor tokens. Rubric replacement
	// over HTTP is disabled when empty.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type RubricConfig struct {
	// Path is the rubric yaml file. The built-in default rubric is used
	// when empty.
	Path string `mapstructure:"path"`

	// Watch hot-reloads the rubric on file changes.
	Watch bool `mapstructure:"watch"`
}

type ExportConfig struct {
	// OutputDir is the directory evidence bundles are written under.
	OutputDir string `mapstructure:"output_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
	Environment    string  `mapstructure:"environment"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.Host == "" || c.Database.Database == "" {
			return fmt.Errorf("database.host and database.database are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver: %q", c.Database.Driver)
	}

	switch c.Audit.Backend {
	case "db":
	case "kafka":
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is required for the kafka audit backend")
		}
	default:
		return fmt.Errorf("unsupported audit.backend: %q", c.Audit.Backend)
	}

	return nil
}
