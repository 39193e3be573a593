package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the first .env file it finds.
// A missing file is fine when the process environment is already set up.
func LoadEnv() error {
	possiblePaths := []string{
		".env",
		"../.env",
		os.Getenv("PULSE_ENV"),
	}

	for _, path := range possiblePaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			log.Printf("Loading environment variables from %s", path)
			return godotenv.Load(path)
		}
	}

	log.Printf("No .env file found, relying on process environment")
	return nil
}

// BoundaryPath returns the GeoJSON boundary file location.
func BoundaryPath() string {
	return GetEnvWithDefault("GEOJSON_PATH", "Indian_States.geojson")
}

// GetEnvWithDefault reads an environment variable with a fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt reads an integer environment variable with a fallback.
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsBool reads a boolean environment variable with a fallback.
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
