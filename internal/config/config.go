package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	Server   ServerConfig
	Storage  StorageConfig
	CORS     CORSConfig
	Clinic   ClinicConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

type ServerConfig struct {
	Port    string
	GinMode string
}

// StorageConfig selects the entity store backend: "memory" or "mysql".
type StorageConfig struct {
	Driver string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// ClinicConfig holds the scheduling constants: every consultation occupies a
// fixed slot, and no other booking may start inside the guard interval before
// an existing one.
type ClinicConfig struct {
	SlotDuration  time.Duration
	BookingBuffer time.Duration
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "hospital_management"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-secret-key"),
			TokenExpiry: parseDuration(getEnv("TOKEN_EXPIRY", "24h"), 24*time.Hour),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "memory"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Clinic: ClinicConfig{
			SlotDuration:  parseDuration(getEnv("CLINIC_SLOT_DURATION", "30m"), 30*time.Minute),
			BookingBuffer: parseDuration(getEnv("CLINIC_BOOKING_BUFFER", "30m"), 30*time.Minute),
		},
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return fallback
	}
	return duration
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
