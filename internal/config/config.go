package config

import (
	"errors"
	"fmt"
	"time"
)

type DB struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// DSN returns the lib/pq connection string.
func (d DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type MinIO struct {
	Endpoint   string        `koanf:"endpoint"`
	AccessKey  string        `koanf:"access_key"`
	SecretKey  string        `koanf:"secret_key"`
	BucketName string        `koanf:"bucket_name"`
	UseSSL     bool          `koanf:"use_ssl"`
	Region     string        `koanf:"region"`
	URLExpiry  time.Duration `koanf:"url_expiry"`
	PublicURL  string        `koanf:"public_url"`
}

// Redis holds the code store connection. An empty Addr disables the store.
type Redis struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Notify sizes the push dispatch queue.
type Notify struct {
	Workers   int `koanf:"workers"`
	QueueSize int `koanf:"queue_size"`
}

type Config struct {
	ServerPort           int           `koanf:"server_port"`
	ReadTimeout          time.Duration `koanf:"read_timeout"`
	WriteTimeout         time.Duration `koanf:"write_timeout"`
	ShutdownTimeout      time.Duration `koanf:"shutdown_timeout"`
	DB                   DB            `koanf:"db"`
	MinIO                MinIO         `koanf:"minio"`
	Redis                Redis         `koanf:"redis"`
	Log                  Log           `koanf:"log"`
	Notify               Notify        `koanf:"notify"`
	JWTSecretKey         string        `koanf:"jwt_secret_key"`
	AccessTokenDuration  time.Duration `koanf:"access_token_duration"`
	RefreshTokenDuration time.Duration `koanf:"refresh_token_duration"`
	MaxUploadSize        int64         `koanf:"max_upload_size"`
	PicksFeedName        string        `koanf:"picks_feed_name"`
}

// New returns the configuration defaults.
func New() *Config {
	return &Config{
		ServerPort:      8080,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		DB: DB{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "password",
			Name:     "photofeed",
			SSLMode:  "disable",
		},
		MinIO: MinIO{
			Endpoint:   "localhost:9000",
			AccessKey:  "minioadmin",
			SecretKey:  "minioadmin",
			BucketName: "photos",
			Region:     "us-east-1",
			URLExpiry:  168 * time.Hour,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Notify: Notify{
			Workers:   4,
			QueueSize: 1024,
		},
		AccessTokenDuration:  2 * time.Hour,
		RefreshTokenDuration: 168 * time.Hour,
		MaxUploadSize:        10 * 1024 * 1024,
		PicksFeedName:        "AOV Picks",
	}
}

var (
	ErrMissingSecret = errors.New("JWT_SECRET_KEY is not set")
	ErrInvalidPort   = errors.New("server port must be between 1 and 65535")
)

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return ErrMissingSecret
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return ErrInvalidPort
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadSize)
	}
	if c.Notify.Workers <= 0 || c.Notify.QueueSize <= 0 {
		return errors.New("notify workers and queue size must be positive")
	}
	return nil
}
