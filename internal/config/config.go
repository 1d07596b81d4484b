package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	Auth        AuthConfig
	Spoonacular SpoonacularConfig
	Import      ImportConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds settings for validating bearer tokens issued by the
// authentication service.
type AuthConfig struct {
	JWTSecret string
}

// SpoonacularConfig contains credentials and options for the Spoonacular API.
// An empty APIKey disables the recipe import job.
type SpoonacularConfig struct {
	APIKey  string
	BaseURL string
}

// ImportConfig holds recipe-import scheduler settings.
type ImportConfig struct {
	CronSchedule string
	BatchSize    int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://127.0.0.1:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "nutritrack"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Spoonacular: SpoonacularConfig{
			APIKey:  os.Getenv("SPOONACULAR_API_KEY"),
			BaseURL: getenvWithDefault("SPOONACULAR_BASE_URL", "https://api.spoonacular.com"),
		},
		Import: ImportConfig{
			CronSchedule: getenvWithDefault("RECIPE_IMPORT_CRON", "0 0 * * 0"),
			BatchSize:    30,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}

	if c.Spoonacular.BaseURL == "" {
		return errors.New("SPOONACULAR_BASE_URL must not be empty")
	}

	if c.Import.CronSchedule == "" {
		return errors.New("RECIPE_IMPORT_CRON must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
