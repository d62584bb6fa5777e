package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/quantgov/mrm/pkg/errors"
)

// LoadConfig loads the configuration from file and environment variables.
// Environment variables use the MRM_ prefix with dots replaced by
// underscores, e.g. MRM_SERVER_PORT overrides server.port.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/mrm/")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.ErrInternal.WithMessage("failed to read config file").WithError(err)
		}
	}

	v.SetEnvPrefix("MRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.ErrInternal.WithMessage("failed to unmarshal config").WithError(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ErrInternal.WithMessage("invalid configuration").WithError(err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "mrm.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("kafka.audit_topic", "mrm.audit.events")
	v.SetDefault("kafka.write_timeout", 10)
	v.SetDefault("kafka.required_acks", -1)
	v.SetDefault("kafka.batch_size", 100)
	v.SetDefault("kafka.batch_timeout", 100)

	v.SetDefault("audit.backend", "db")

	v.SetDefault("rubric.watch", false)

	v.SetDefault("export.output_dir", "reports")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "mrm-service")
	v.SetDefault("tracing.sampling_rate", 1.0)
}
