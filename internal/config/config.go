package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	KeepAlive KeepAliveConfig
	Backup    BackupConfig
	MinIO     MinIOConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	StaticDir       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Production reports whether the service runs in its hosted environment.
func (s ServerConfig) Production() bool {
	return strings.EqualFold(s.Environment, "production")
}

type StorageConfig struct {
	Backend string // file | redis | mongo
	DataDir string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

type KeepAliveConfig struct {
	Enabled        bool
	Interval       time.Duration
	URL            string
	WakeupURL      string
	WakeupInterval time.Duration
	HeartbeatFile  string
	HeartbeatDelay time.Duration
}

type BackupConfig struct {
	Enabled  bool
	Dir      string
	Interval time.Duration
	Keep     int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Configured reports whether snapshot uploads are enabled.
func (m MinIOConfig) Configured() bool { return m.Endpoint != "" }

// LoadConfig loads configuration from environment variables and an optional .env file.
// Values bound through viper (for example cobra flags) take precedence over the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("NODE_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STATIC_DIR", "public")
	viper.SetDefault("STORAGE_BACKEND", "file")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("MONGODB_DATABASE", "familyboard")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PREFIX", "familyboard:")
	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("KEEPALIVE_INTERVAL", "5m")
	viper.SetDefault("WAKEUP_INTERVAL", "1m")
	viper.SetDefault("HEARTBEAT_DELAY", "1s")
	viper.SetDefault("BACKUP_ENABLED", true)
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("BACKUP_INTERVAL", "24h")
	viper.SetDefault("MINIO_BUCKET", "familyboard-backups")

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = viper.GetString("NODE_ENV")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            viper.GetString("PORT"),
			Host:            viper.GetString("HOST"),
			Environment:     env,
			StaticDir:       viper.GetString("STATIC_DIR"),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_BACKEND"))),
			DataDir: viper.GetString("DATA_DIR"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Prefix:   viper.GetString("REDIS_PREFIX"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		KeepAlive: KeepAliveConfig{
			Interval:       viper.GetDuration("KEEPALIVE_INTERVAL"),
			URL:            viper.GetString("KEEPALIVE_URL"),
			WakeupURL:      viper.GetString("WAKEUP_URL"),
			WakeupInterval: viper.GetDuration("WAKEUP_INTERVAL"),
			HeartbeatFile:  viper.GetString("HEARTBEAT_FILE"),
			HeartbeatDelay: viper.GetDuration("HEARTBEAT_DELAY"),
		},
		Backup: BackupConfig{
			Enabled:  viper.GetBool("BACKUP_ENABLED"),
			Dir:      viper.GetString("BACKUP_DIR"),
			Interval: viper.GetDuration("BACKUP_INTERVAL"),
			Keep:     viper.GetInt("BACKUP_KEEP"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// self-ping only runs in production unless explicitly toggled
	if viper.IsSet("KEEPALIVE_ENABLED") {
		cfg.KeepAlive.Enabled = viper.GetBool("KEEPALIVE_ENABLED")
	} else {
		cfg.KeepAlive.Enabled = cfg.Server.Production()
	}
	if cfg.KeepAlive.URL == "" {
		cfg.KeepAlive.URL = "http://localhost:" + cfg.Server.Port
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "file":
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("STORAGE_BACKEND=redis requires REDIS_HOST")
		}
	case "mongo":
		if c.MongoDB.URI == "" {
			return fmt.Errorf("STORAGE_BACKEND=mongo requires MONGODB_URI")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want file, redis or mongo)", c.Storage.Backend)
	}
	if c.KeepAlive.Enabled && c.KeepAlive.Interval <= 0 {
		return fmt.Errorf("KEEPALIVE_INTERVAL must be positive")
	}
	if c.KeepAlive.Enabled && c.KeepAlive.WakeupURL != "" && c.KeepAlive.WakeupInterval <= 0 {
		return fmt.Errorf("WAKEUP_INTERVAL must be positive")
	}
	if c.Backup.Enabled && c.Backup.Interval <= 0 {
		return fmt.Errorf("BACKUP_INTERVAL must be positive")
	}
	return nil
}
