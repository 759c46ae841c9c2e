package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the backend.
// These values are loaded from environment variables, with an optional
// .env file for local development.
type Config struct {
	ServerPort                string `mapstructure:"SERVER_PORT"`
	Environment               string `mapstructure:"ENV"`
	FirebaseProjectID         string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsJSON   string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	FirebaseCredentialsBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_BASE64"`
	CORSAllowedOrigins        string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	// Best effort; the .env file only exists in local development.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENV", "development")

	for _, key := range []string{
		"SERVER_PORT",
		"ENV",
		"FIREBASE_PROJECT_ID",
		"FIREBASE_SERVICE_ACCOUNT_JSON",
		"FIREBASE_SERVICE_ACCOUNT_BASE64",
		"CORS_ALLOWED_ORIGINS",
	} {
		_ = viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	// PORT is what the hosting platform sets; it wins over SERVER_PORT.
	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerPort = port
	}
	return cfg, nil
}

// IsDevelopment reports whether the process runs outside production.
func (c Config) IsDevelopment() bool {
	return c.Environment != "production"
}
