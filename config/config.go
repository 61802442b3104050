package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Log    LogConfig
	Store  StoreConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Queue  QueueConfig
	Backup BackupConfig
}

type AppConfig struct {
	Port       string
	Env        string
	CORSOrigin string
}

type LogConfig struct {
	Level string
}

// StoreConfig selects where store snapshots are kept.
type StoreConfig struct {
	Backend          string // file, redis, postgres or memory
	Dir              string
	Key              string
	MaxSnapshotBytes int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type QueueConfig struct {
	Scope string // doctor or clinic
}

type BackupConfig struct {
	Dir string
}

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var ErrUnknownBackend = errors.New("unknown STORE_BACKEND")

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", BackendFile)
	v.SetDefault("STORE_DIR", "./data")
	v.SetDefault("STORE_KEY", "sqlite_db_binary")
	v.SetDefault("STORE_MAX_SNAPSHOT_BYTES", 0)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "medicore:")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_ACCESS_EXPIRY", "15m")
	v.SetDefault("QUEUE_SCOPE", "doctor")
	v.SetDefault("BACKUP_DIR", "./backups")
}

// LoadConfig reads .env (if present) into the environment and builds the
// configuration from environment variables and defaults.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			CORSOrigin: v.GetString("APP_CORS_ORIGIN"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			Backend:          strings.ToLower(v.GetString("STORE_BACKEND")),
			Dir:              v.GetString("STORE_DIR"),
			Key:              v.GetString("STORE_KEY"),
			MaxSnapshotBytes: v.GetInt("STORE_MAX_SNAPSHOT_BYTES"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Prefix:   v.GetString("REDIS_PREFIX"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Queue: QueueConfig{
			Scope: strings.ToLower(v.GetString("QUEUE_SCOPE")),
		},
		Backup: BackupConfig{
			Dir: v.GetString("BACKUP_DIR"),
		},
	}

	switch config.Store.Backend {
	case BackendFile, BackendRedis, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Store.Backend)
	}

	return config, nil
}
