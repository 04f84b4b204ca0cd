package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"db"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Similarity  SimilarityConfig  `mapstructure:"similarity"`
	Admission   AdmissionConfig   `mapstructure:"admission"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// RedisConfig is only consulted when admission.lock is "redis".
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SimilarityConfig holds the tunables of the duplicate detector.
// Threshold is compared with a strict ">" against each cosine score.
type SimilarityConfig struct {
	Threshold      float64  `mapstructure:"threshold"`
	MaxFeatures    int      `mapstructure:"max_features"`
	ExtraStopWords []string `mapstructure:"extra_stop_words"`
}

type AdmissionConfig struct {
	Lock    string        `mapstructure:"lock"` // local, redis or none
	LockTTL time.Duration `mapstructure:"lock_ttl"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RecommenderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	UploadPath  string `mapstructure:"upload_path"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	LockLocal = "local"
	LockRedis = "redis"
	LockNone  = "none"
)

// Load resolves configuration from defaults, an optional YAML file and the
// environment (MATCHER_ prefix, "." replaced by "_"). A .env file in the
// working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MATCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "capstone_matcher")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("similarity.threshold", 0.5)
	v.SetDefault("similarity.max_features", 1000)
	v.SetDefault("similarity.extra_stop_words", []string{})

	v.SetDefault("admission.lock", LockLocal)
	v.SetDefault("admission.lock_ttl", "30s")
	v.SetDefault("admission.timeout", "15s")

	v.SetDefault("recommender.base_url", "https://recommendation-system-production-390d.up.railway.app")
	v.SetDefault("recommender.timeout", "10s")

	v.SetDefault("storage.upload_path", "./uploads")
	v.SetDefault("storage.max_file_size", 10485760)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func (c *Config) Validate() error {
	if c.Similarity.Threshold < 0 || c.Similarity.Threshold > 1 {
		return fmt.Errorf("invalid config: similarity.threshold must be within [0,1], got %v", c.Similarity.Threshold)
	}
	if c.Similarity.MaxFeatures <= 0 {
		return fmt.Errorf("invalid config: similarity.max_features must be positive, got %d", c.Similarity.MaxFeatures)
	}
	switch c.Admission.Lock {
	case LockLocal, LockRedis, LockNone:
	default:
		return fmt.Errorf("invalid config: admission.lock must be one of local, redis, none, got %q", c.Admission.Lock)
	}
	if c.Admission.Timeout <= 0 {
		return fmt.Errorf("invalid config: admission.timeout must be positive")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("invalid config: server.port is required")
	}
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
