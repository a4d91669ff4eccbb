package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logger   LoggerConfig   `yaml:"logger"`
	BoardAPI BoardAPIConfig `yaml:"board_api"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Session  SessionConfig  `yaml:"session"`
	Redis    RedisConfig    `yaml:"redis"`
	Profile  ProfileConfig  `yaml:"profile"`
	S3       S3Config       `yaml:"s3"`
	Sidebar  SidebarConfig  `yaml:"sidebar"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	Env             string        `yaml:"env"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Timezone is used to interpret zone-less timestamps from the board API.
	Timezone string `yaml:"timezone"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type BoardAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ViewerConfig identifies the fixed user the frontend acts as.
type ViewerConfig struct {
	UserID int64 `yaml:"user_id"`
}

type SessionConfig struct {
	Store      string        `yaml:"store"` // memory | redis
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Addr returns host:port for the redis connection.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type ProfileConfig struct {
	Source string `yaml:"source"` // api | s3
}

type S3Config struct {
	Bucket    string        `yaml:"bucket"`
	Region    string        `yaml:"region"`
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	URLExpiry time.Duration `yaml:"url_expiry"`
}

type SidebarConfig struct {
	RefreshSpec string `yaml:"refresh_spec"`
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	ProfileSourceAPI = "api"
	ProfileSourceS3  = "s3"
)

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Env:             "dev",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			Timezone:        "Local",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		BoardAPI: BoardAPIConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: 5 * time.Second,
		},
		Viewer: ViewerConfig{
			UserID: 1,
		},
		Session: SessionConfig{
			Store:      SessionStoreMemory,
			TTL:        30 * time.Minute,
			CookieName: "board_web_visitor",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			DB:   0,
		},
		Profile: ProfileConfig{
			Source: ProfileSourceAPI,
		},
		S3: S3Config{
			URLExpiry: 15 * time.Minute,
		},
		Sidebar: SidebarConfig{
			RefreshSpec: "@every 30s",
		},
	}
}

// Load reads the yaml file at path (if it exists) over the defaults and
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envInt, envInt64 and envDuration set *dst from the variable key when it
// is present; a malformed value is an error.
func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func envInt64(key string, dst *int64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func applyEnv(cfg *Config) error {
	typed := []error{
		envInt("PORT", &cfg.Server.Port),
		envDuration("BOARD_API_TIMEOUT", &cfg.BoardAPI.Timeout),
		envInt64("VIEWER_USER_ID", &cfg.Viewer.UserID),
		envDuration("SESSION_TTL", &cfg.Session.TTL),
		envInt("REDIS_PORT", &cfg.Redis.Port),
		envInt("REDIS_DB", &cfg.Redis.DB),
	}
	for _, err := range typed {
		if err != nil {
			return err
		}
	}

	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		cfg.Server.Timezone = tz
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.Logger.Level = logLevel
	}
	if apiURL := os.Getenv("BOARD_API_URL"); apiURL != "" {
		cfg.BoardAPI.BaseURL = apiURL
	}
	if store := os.Getenv("SESSION_STORE"); store != "" {
		cfg.Session.Store = store
	}
	if cookie := os.Getenv("SESSION_COOKIE"); cookie != "" {
		cfg.Session.CookieName = cookie
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cfg.Redis.URL = redisURL
	}
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		cfg.Redis.Host = redisHost
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if source := os.Getenv("PROFILE_PIC_SOURCE"); source != "" {
		cfg.Profile.Source = source
	}
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		cfg.S3.Bucket = bucket
	}
	if region := os.Getenv("S3_REGION"); region != "" {
		cfg.S3.Region = region
	}
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		cfg.S3.Endpoint = endpoint
	}
	if accessKey := os.Getenv("S3_ACCESS_KEY"); accessKey != "" {
		cfg.S3.AccessKey = accessKey
	}
	if secretKey := os.Getenv("S3_SECRET_KEY"); secretKey != "" {
		cfg.S3.SecretKey = secretKey
	}
	if spec := os.Getenv("SIDEBAR_REFRESH_SPEC"); spec != "" {
		cfg.Sidebar.RefreshSpec = spec
	}
	return nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.BoardAPI.BaseURL == "" {
		return fmt.Errorf("board_api.base_url is required")
	}
	if c.BoardAPI.Timeout <= 0 {
		return fmt.Errorf("board_api.timeout must be positive")
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown session store %q (must be 'memory' or 'redis')", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name is required")
	}
	switch c.Profile.Source {
	case ProfileSourceAPI:
	case ProfileSourceS3:
		if c.S3.Bucket == "" || c.S3.Region == "" {
			return fmt.Errorf("s3.bucket and s3.region are required when profile.source is 's3'")
		}
	default:
		return fmt.Errorf("unknown profile source %q (must be 'api' or 's3')", c.Profile.Source)
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("invalid server.timezone %q: %w", c.Server.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
