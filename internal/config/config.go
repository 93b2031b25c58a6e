package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type MySQLConfig struct {
	Host     string `envconfig:"MYSQL_HOST" default:"localhost"`
	Port     string `envconfig:"MYSQL_PORT" default:"3306"`
	User     string `envconfig:"MYSQL_USER" default:"root"`
	Password string `envconfig:"MYSQL_PASSWORD" default:""`
	Database string `envconfig:"MYSQL_DATABASE" default:"ratan_decor"`
}

type Config struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	Environment string        `envconfig:"APP_ENV" default:"development"`
	MySQL       MySQLConfig   `envconfig:""`
	RedisHost   string        `envconfig:"REDIS_HOST" default:""`
	RabbitURL   string        `envconfig:"RABBITMQ_URL" default:""`
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"change-me"`
	JWTExpiry   time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
