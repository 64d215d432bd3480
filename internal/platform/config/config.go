package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	APIPort string
	Env     string

	JWTSecret []byte
	JWTExp    time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NotifyQueueName  string
	NotifyWebhookURL string

	CloudinaryURL  string
	UploadFolder   string
	UploadMaxBytes int64
}

// IsProduction gates the Secure attribute on the credential cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment, seeded from a .env file
// when one is present. It returns a handle instead of populating a global.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Fine in production; OS-set env vars take over.
		fmt.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("API_PORT", "8000")
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("JWT_SECRET", "defaultsecret")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "docuverify_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("NOTIFY_QUEUE_NAME", "decision_events_queue")
	v.SetDefault("NOTIFY_WEBHOOK_URL", "")
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("UPLOAD_FOLDER", "docuverify/documents")
	v.SetDefault("UPLOAD_MAX_BYTES", int64(10*1024*1024))

	cfg := &Config{
		APIPort:          v.GetString("API_PORT"),
		Env:              v.GetString("APP_ENV"),
		JWTSecret:        []byte(v.GetString("JWT_SECRET")),
		JWTExp:           time.Duration(v.GetInt("JWT_EXPIRATION_MINUTES")) * time.Minute,
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		DBName:           v.GetString("DB_NAME"),
		DBSslMode:        v.GetString("DB_SSLMODE"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		NotifyQueueName:  v.GetString("NOTIFY_QUEUE_NAME"),
		NotifyWebhookURL: v.GetString("NOTIFY_WEBHOOK_URL"),
		CloudinaryURL:    v.GetString("CLOUDINARY_URL"),
		UploadFolder:     v.GetString("UPLOAD_FOLDER"),
		UploadMaxBytes:   v.GetInt64("UPLOAD_MAX_BYTES"),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg, nil
}
