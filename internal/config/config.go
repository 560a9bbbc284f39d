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
	Session  SessionConfig
	Server   ServerConfig
	CORS     CORSConfig
	MQTT     MQTTConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// SessionConfig controls the signed session tokens handed out on each scan.
type SessionConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CORSConfig struct {
	// "*" (the default) leaves the kiosk API open to any origin.
	AllowedOrigins []string
}

// MQTTConfig configures the optional broker-side ingest path.
// The subscriber is only started when Broker is non-empty.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

type LogConfig struct {
	File      string
	ToConsole bool
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
			Database: getEnv("DB_NAME", "patient_kiosk"),
		},
		Session: SessionConfig{
			TokenSecret: getEnv("SESSION_TOKEN_SECRET", "kiosk-session-secret"),
			TokenExpiry: parseDuration(getEnv("SESSION_TOKEN_EXPIRY", "12h")),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		},
		MQTT: MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", ""),
			ClientID: getEnv("MQTT_CLIENT_ID", "patient-kiosk-backend"),
			Username: getEnv("MQTT_USERNAME", ""),
			Password: getEnv("MQTT_PASSWORD", ""),
			Topic:    getEnv("MQTT_READINGS_TOPIC", "kiosk/readings"),
		},
		Log: LogConfig{
			File:      getEnv("LOG_FILE", "./logs/kiosk.log"),
			ToConsole: getEnv("LOG_TO_CONSOLE", "true") == "true",
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

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return 12 * time.Hour
	}
	return duration
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
