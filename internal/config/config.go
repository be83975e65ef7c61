package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Database *DatabaseConfig `mapstructure:"database"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	SQLite   *SQLiteConfig   `mapstructure:"sqlite"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Kafka    *KafkaConfig    `mapstructure:"kafka"`
	Election *ElectionConfig `mapstructure:"election"`
	Seed     *SeedConfig     `mapstructure:"seed"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type ElectionConfig struct {
	// RefreshStatusOnRead re-derives status from the date range when
	// elections are read and persists any change.
	RefreshStatusOnRead bool `mapstructure:"refresh_status_on_read"`
}

type SeedConfig struct {
	Enabled        bool      `mapstructure:"enabled"`
	Admin          SeedAdmin `mapstructure:"admin"`
	Voter          SeedVoter `mapstructure:"voter"`
	Constituencies []string  `mapstructure:"constituencies"`
}

type SeedAdmin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	FullName string `mapstructure:"full_name"`
}

type SeedVoter struct {
	NID            string `mapstructure:"nid"`
	Password       string `mapstructure:"password"`
	FullName       string `mapstructure:"full_name"`
	DateOfBirth    string `mapstructure:"date_of_birth"`
	Gender         string `mapstructure:"gender"`
	ConstituencyID int64  `mapstructure:"constituency_id"`
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.jwt_ttl", 24*time.Hour)
	v.SetDefault("api.shutdown_timeout", 10*time.Second)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("sqlite.path", "evoting.db")
	v.SetDefault("redis.ttl", 72*time.Hour)
	v.SetDefault("kafka.topic", "evoting.events")
}

func (c *AppConfig) Validate() error {
	err := validation.ValidateStruct(
		c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Database, validation.Required),
	)
	if err != nil {
		return err
	}

	err = validation.ValidateStruct(
		c.API,
		validation.Field(&c.API.Port, validation.Required),
		validation.Field(&c.API.JWTSigningKey, validation.Required, validation.Length(16, 0)),
	)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	err = validation.ValidateStruct(
		c.Database,
		validation.Field(&c.Database.Driver, validation.Required, validation.In(DriverPostgres, DriverSQLite)),
	)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if c.Redis != nil && c.Redis.Enabled {
		if err = validation.Validate(c.Redis.Addr, validation.Required); err != nil {
			return fmt.Errorf("redis.addr: %w", err)
		}
	}

	if c.Kafka != nil && c.Kafka.Enabled {
		err = validation.ValidateStruct(
			c.Kafka,
			validation.Field(&c.Kafka.Brokers, validation.Required),
			validation.Field(&c.Kafka.Topic, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
	}

	if c.Election == nil {
		c.Election = &ElectionConfig{}
	}

	return nil
}
