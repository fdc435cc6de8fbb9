package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// MinSigningKeyBytes is the smallest JWT secret we accept: HS256 wants a key
// of at least 256 bits.
const MinSigningKeyBytes = 32

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s dbname=%s port=%s sslmode=%s password=%s",
		c.Host, c.User, c.Name, c.Port, c.SSLMode, c.Password)
}

type AppConfig struct {
	Port    string
	GinMode string

	DB DBConfig

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
}

// Load reads configuration from the environment. A .env file is honored when
// present. Validation failures are configuration errors and should be fatal
// at startup, never surfaced per request.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	cfg := &AppConfig{
		Port:    getenvDefault("PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getenvDefault("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getenvDefault("DB_SSLMODE", "disable"),
		},
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTIssuer:          os.Getenv("JWT_ISSUER"),
		JWTAudience:        os.Getenv("JWT_AUDIENCE"),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
	}

	if len([]byte(cfg.JWTSecret)) < MinSigningKeyBytes {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSigningKeyBytes)
	}
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
