package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	filePath := os.Getenv(envKey + "_FILE")
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	os.Setenv(envKey, strings.TrimSpace(string(data)))
}

type Config struct {
	Server    ServerConfig
	Chat      ChatConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Export    ExportConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// ChatConfig points at the workspace chat API that writes the lyrics.
type ChatConfig struct {
	APIKey    string
	BaseURL   string
	Workspace string
	SessionID string
	Timeout   int // seconds
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// JWTConfig enables bearer auth on the API routes when Secret is set.
type JWTConfig struct {
	Secret string
}

type RateLimitConfig struct {
	LyricsPerMin  int
	ExportPerHour int
}

// StorageConfig describes the S3-compatible bucket used for shared exports.
type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
}

// ExportConfig tunes PDF exports. FontPath names a UTF-8 TrueType font;
// without it exports are limited to Western European text.
type ExportConfig struct {
	FontPath string
}

func Load() (*Config, error) {
	// .env is optional; values already in the environment win.
	_ = godotenv.Load()

	readSecret("CHAT_API_KEY")
	readSecret("REDIS_PASSWORD")
	readSecret("JWT_SECRET")
	readSecret("STORAGE_ACCESS_KEY_ID")
	readSecret("STORAGE_SECRET_ACCESS_KEY")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()

	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.env", "SERVER_ENV")
	_ = v.BindEnv("server.log_level", "LOG_LEVEL")
	_ = v.BindEnv("chat.api_key", "CHAT_API_KEY")
	_ = v.BindEnv("chat.base_url", "CHAT_BASE_URL")
	_ = v.BindEnv("chat.workspace", "CHAT_WORKSPACE")
	_ = v.BindEnv("chat.session_id", "CHAT_SESSION_ID")
	_ = v.BindEnv("chat.timeout", "CHAT_TIMEOUT")
	_ = v.BindEnv("redis.enabled", "REDIS_ENABLED")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("ratelimit.lyrics_per_min", "RATELIMIT_LYRICS_PER_MIN")
	_ = v.BindEnv("ratelimit.export_per_hour", "RATELIMIT_EXPORT_PER_HOUR")
	_ = v.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	_ = v.BindEnv("storage.region", "STORAGE_REGION")
	_ = v.BindEnv("storage.access_key_id", "STORAGE_ACCESS_KEY_ID")
	_ = v.BindEnv("storage.secret_access_key", "STORAGE_SECRET_ACCESS_KEY")
	_ = v.BindEnv("storage.bucket_name", "STORAGE_BUCKET_NAME")
	_ = v.BindEnv("storage.public_url", "STORAGE_PUBLIC_URL")
	_ = v.BindEnv("export.font_path", "EXPORT_FONT_PATH")

	// Defaults
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("chat.base_url", "http://localhost:3001/api/v1")
	v.SetDefault("chat.workspace", "genm")
	v.SetDefault("chat.session_id", "lyrics_generation")
	v.SetDefault("chat.timeout", 120)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("ratelimit.lyrics_per_min", 30)
	v.SetDefault("ratelimit.export_per_hour", 60)
	v.SetDefault("storage.region", "auto")

	// Try to read config file (optional)
	_ = v.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetString("server.port"),
			Env:      v.GetString("server.env"),
			LogLevel: v.GetString("server.log_level"),
		},
		Chat: ChatConfig{
			APIKey:    v.GetString("chat.api_key"),
			BaseURL:   v.GetString("chat.base_url"),
			Workspace: v.GetString("chat.workspace"),
			SessionID: v.GetString("chat.session_id"),
			Timeout:   v.GetInt("chat.timeout"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		RateLimit: RateLimitConfig{
			LyricsPerMin:  v.GetInt("ratelimit.lyrics_per_min"),
			ExportPerHour: v.GetInt("ratelimit.export_per_hour"),
		},
		Storage: StorageConfig{
			Endpoint:        v.GetString("storage.endpoint"),
			Region:          v.GetString("storage.region"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			BucketName:      v.GetString("storage.bucket_name"),
			PublicURL:       v.GetString("storage.public_url"),
		},
		Export: ExportConfig{
			FontPath: v.GetString("export.font_path"),
		},
	}

	return cfg, nil
}
