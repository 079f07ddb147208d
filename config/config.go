package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs. It is loaded once in main
// and passed down explicitly; nothing reads the environment afterwards.
type Config struct {
	Port     string
	Env      string // "development" | "production"
	LogLevel string

	MongoURI    string
	MongoDBName string

	JWTSecret []byte

	AWSRegion     string
	S3Region      string
	S3Bucket      string
	CloudFrontURL string
	SESEmail      string
	SNSFCMArn     string
}

func Load() (*Config, error) {
	// .env is a local development convenience; in deployment the
	// environment is set by the platform.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		Env:           getenv("APP_ENV", "development"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		MongoURI:      getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBName:   getenv("DB_NAME", "fitfoodie"),
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		AWSRegion:     getenv("AWS_REGION", "us-east-1"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		CloudFrontURL: os.Getenv("CLOUDFRONT_URL"),
		SESEmail:      os.Getenv("SES_EMAIL"),
		SNSFCMArn:     os.Getenv("SNS_FCM_ARN"),
	}
	cfg.S3Region = getenv("S3_REGION", cfg.AWSRegion)

	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
