package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	DatabasePath   string
	JWTSecret      string
	CORSOrigins    string
	DocumentsDir   string // uploaded documents are stored and served from here
	ImagesDir      string // uploaded images are stored and served from here
	RevokeOnLogout bool
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "3000"),
		DatabasePath:   getEnv("DATABASE_PATH", "./db/database.sqlite"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "*"),
		DocumentsDir:   getEnv("DOCUMENTS_DIR", "./documents"),
		ImagesDir:      getEnv("IMAGES_DIR", "./images"),
		RevokeOnLogout: getEnv("REVOKE_ON_LOGOUT", "") == "1",
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment variable is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.CORSOrigins == "*" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS allows every origin, set your own domain for production")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
