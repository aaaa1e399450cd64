package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/storefront/pkg/config"
)

const (
	DefaultDatabaseURL = "sqlite::memory:"
	DefaultUploadDir   = "uploads"
	DefaultESIndex     = "products"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string
	JWTSecret   []byte

	UploadDir    string
	UploadTmpDir string
	BodyLimit    string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	SeedProducts string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("notice: .env not loaded: %v", err)
	}

	cfg := &Config{
		ServiceName: config.EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  config.EnvIntDefault("SERVER_PORT", 5000),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		DatabaseURL: config.EnvDefault("DATABASE_URL", DefaultDatabaseURL),
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),

		UploadDir: config.EnvDefault("UPLOAD_DIR", DefaultUploadDir),
		BodyLimit: config.EnvDefault("BODY_LIMIT", "10M"),

		KafkaBrokers: config.CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    config.EnvDefault("ES_INDEX", DefaultESIndex),

		SeedProducts: os.Getenv("SEED_PRODUCTS"),
	}

	// Temp files are renamed into UploadDir, so they must live on the same filesystem.
	cfg.UploadTmpDir = config.EnvDefault("UPLOAD_TMP_DIR", filepath.Join(cfg.UploadDir, ".tmp"))

	if err := config.NonEmpty(string(cfg.JWTSecret), "JWT_SECRET"); err != nil {
		return nil, err
	}

	return cfg, nil
}
