package config

import (
	"compress/flate"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/caarlos0/env/v11"
)

// Config holds the drive service configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	App       AppConfig       `json:"app" yaml:"app"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
	Zip       ZipConfig       `json:"zip" yaml:"zip"`
	Quota     QuotaConfig     `json:"quota" yaml:"quota"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	Redis     RedisConfig     `json:"redis" yaml:"redis"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Observers ObserversConfig `json:"observers" yaml:"observers"`
	Logger    logger.Config   `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" env:"DRIVE_SERVER_ADDR"`
}

type AppConfig struct {
	NodeID        int64  `json:"node_id" yaml:"node_id" env:"DRIVE_NODE_ID"`
	BaseURL       string `json:"base_url" yaml:"base_url" env:"DRIVE_BASE_URL"`
	MaxUploadSize int64  `json:"max_upload_size" yaml:"max_upload_size" env:"DRIVE_MAX_UPLOAD_SIZE"`
	ShareTTLHours int    `json:"share_ttl_hours" yaml:"share_ttl_hours" env:"DRIVE_SHARE_TTL_HOURS"`
	RecentLimit   int    `json:"recent_limit" yaml:"recent_limit"`
}

type AuthConfig struct {
	JWTSecret     string `json:"jwt_secret" yaml:"jwt_secret" env:"DRIVE_JWT_SECRET"`
	Issuer        string `json:"issuer" yaml:"issuer" env:"DRIVE_JWT_ISSUER"`
	TokenTTLHours int    `json:"token_ttl_hours" yaml:"token_ttl_hours"`
}

type ZipConfig struct {
	MaxFiles         int `json:"max_files" yaml:"max_files"`
	CompressionLevel int `json:"compression_level" yaml:"compression_level"`
}

type QuotaConfig struct {
	// Backend is "sqlite" or "redis".
	Backend          string `json:"backend" yaml:"backend" env:"DRIVE_QUOTA_BACKEND"`
	Limit            int    `json:"limit" yaml:"limit" env:"DRIVE_QUOTA_LIMIT"`
	WindowSeconds    int    `json:"window_seconds" yaml:"window_seconds" env:"DRIVE_QUOTA_WINDOW_SECONDS"`
	// RetentionSeconds bounds how long quota events are kept. Zero keeps them forever.
	RetentionSeconds int    `json:"retention_seconds" yaml:"retention_seconds" env:"DRIVE_QUOTA_RETENTION_SECONDS"`
}

type EventsConfig struct {
	Workers   int `json:"workers" yaml:"workers"`
	QueueSize int `json:"queue_size" yaml:"queue_size"`
}

type StorageConfig struct {
	// Backend is "local", "segment" or "s3".
	Backend string        `json:"backend" yaml:"backend" env:"DRIVE_STORAGE_BACKEND"`
	Local   LocalConfig   `json:"local" yaml:"local"`
	Segment SegmentConfig `json:"segment" yaml:"segment"`
	S3      S3Config      `json:"s3" yaml:"s3"`
}

type LocalConfig struct {
	Dir string `json:"dir" yaml:"dir" env:"DRIVE_LOCAL_DIR"`
}

type SegmentConfig struct {
	Dir                       string `json:"dir" yaml:"dir" env:"DRIVE_SEGMENT_DIR"`
	MaxSegmentBytes           int64  `json:"max_segment_bytes" yaml:"max_segment_bytes"`
	FSync                     bool   `json:"fsync" yaml:"fsync"`
	CompactionIntervalSeconds int    `json:"compaction_interval_seconds" yaml:"compaction_interval_seconds"`
}

type S3Config struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint" env:"DRIVE_S3_ENDPOINT"`
	AccessKey string `json:"access_key" yaml:"access_key" env:"DRIVE_S3_ACCESS_KEY"`
	SecretKey string `json:"secret_key" yaml:"secret_key" env:"DRIVE_S3_SECRET_KEY"`
	Bucket    string `json:"bucket" yaml:"bucket" env:"DRIVE_S3_BUCKET"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl" env:"DRIVE_S3_USE_SSL"`
}

type DatabaseConfig struct {
	Path string `json:"path" yaml:"path" env:"DRIVE_DB_PATH"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr" env:"DRIVE_REDIS_ADDR"`
	Password string `json:"password" yaml:"password" env:"DRIVE_REDIS_PASSWORD"`
	DB       int    `json:"db" yaml:"db"`
}

type CacheConfig struct {
	FolderSize       int `json:"folder_size" yaml:"folder_size"`
	FolderTTLSeconds int `json:"folder_ttl_seconds" yaml:"folder_ttl_seconds"`
}

type ObserversConfig struct {
	UsageLogPath string `json:"usage_log_path" yaml:"usage_log_path" env:"DRIVE_USAGE_LOG_PATH"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		App: AppConfig{
			NodeID:        1,
			BaseURL:       "http://localhost:8080",
			MaxUploadSize: 512 * 1024 * 1024, // 512MB
			ShareTTLHours: 24,
			RecentLimit:   20,
		},
		Auth: AuthConfig{
			JWTSecret:     "change-me",
			Issuer:        "go-cloud-drive",
			TokenTTLHours: 24,
		},
		Zip: ZipConfig{
			MaxFiles:         5,
			CompressionLevel: flate.BestCompression,
		},
		Quota: QuotaConfig{
			Backend:       "sqlite",
			Limit:         3,
			WindowSeconds: 60,
		},
		Events: EventsConfig{
			Workers:   4,
			QueueSize: 256,
		},
		Storage: StorageConfig{
			Backend: "local",
			Local:   LocalConfig{Dir: "data/blobs"},
			Segment: SegmentConfig{
				Dir:                       "data/segments",
				MaxSegmentBytes:           64 * 1024 * 1024, // 64MB
				CompactionIntervalSeconds: 3600,
			},
			S3: S3Config{Bucket: "drive"},
		},
		Database: DatabaseConfig{
			Path: "data/drive.db",
		},
		Redis: RedisConfig{
			Addr: "",
		},
		Cache: CacheConfig{
			FolderSize:       1024,
			FolderTTLSeconds: 30,
		},
		Observers: ObserversConfig{
			UsageLogPath: "logs/usage.log",
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// QuotaWindow returns the sliding window as a duration.
func (c *Config) QuotaWindow() time.Duration {
	return time.Duration(c.Quota.WindowSeconds) * time.Second
}

// ShareTTL returns how long a public link stays valid.
// QuotaRetention is zero when quota events are never deleted.
func (c *Config) QuotaRetention() time.Duration {
	return time.Duration(c.Quota.RetentionSeconds) * time.Second
}

func (c *Config) ShareTTL() time.Duration {
	return time.Duration(c.App.ShareTTLHours) * time.Hour
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.Quota.Limit <= 0 {
		return fmt.Errorf("quota.limit must be positive, got %d", c.Quota.Limit)
	}
	if c.Quota.WindowSeconds <= 0 {
		return fmt.Errorf("quota.window_seconds must be positive, got %d", c.Quota.WindowSeconds)
	}
	if r := c.Quota.RetentionSeconds; r != 0 && r < c.Quota.WindowSeconds {
		return fmt.Errorf("quota.retention_seconds must be 0 or at least window_seconds, got %d", r)
	}
	if c.Zip.MaxFiles <= 0 {
		return fmt.Errorf("zip.max_files must be positive, got %d", c.Zip.MaxFiles)
	}
	if c.Zip.CompressionLevel < flate.HuffmanOnly || c.Zip.CompressionLevel > flate.BestCompression {
		return fmt.Errorf("zip.compression_level out of range: %d", c.Zip.CompressionLevel)
	}
	switch c.Storage.Backend {
	case "local", "segment", "s3":
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	switch c.Quota.Backend {
	case "sqlite":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("quota.backend redis requires redis.addr")
		}
	default:
		return fmt.Errorf("unknown quota.backend %q", c.Quota.Backend)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	return nil
}

// Load reads the YAML file, applies DRIVE_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		envName := os.Getenv("ENV")
		if envName == "" {
			envName = "local"
		}
		configPath = filepath.Join("internal", "drive", "config", envName+".yaml")
	}

	cfg := DefaultConfig()
	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		// The logger is not initialised yet.
		log.Printf("Config file not loaded, path: %s, error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
	} else {
		cfg = parsedCfg
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
