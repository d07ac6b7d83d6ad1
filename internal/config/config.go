package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env string `toml:"env"`

	// Server
	Port             string   `toml:"port"`
	CORSAllowOrigins []string `toml:"cors_allow_origins"`
	EnablePprof      bool     `toml:"enable_pprof"`
	RateLimitRPS     float64  `toml:"rate_limit_rps"`
	RateLimitBurst   int      `toml:"rate_limit_burst"`

	// Database
	DBDriver   string `toml:"db_driver"`
	DBHost     string `toml:"db_host"`
	DBPort     string `toml:"db_port"`
	DBUser     string `toml:"db_user"`
	DBPassword string `toml:"db_password"`
	DBName     string `toml:"db_name"`
	DBSSLMode  string `toml:"db_sslmode"`
	DBPath     string `toml:"db_path"`

	// JWT
	JWTSecret        string        `toml:"jwt_secret"`
	JWTExpirationDur time.Duration `toml:"-"`

	// Weddings
	DefaultCurrency string `toml:"default_currency"`
}

var appConfig *Config

// defaults returns the configuration used when neither a config file nor
// the environment set a value.
func defaults() *Config {
	return &Config{
		Env:              "development",
		Port:             "8080",
		CORSAllowOrigins: []string{"*"},
		RateLimitRPS:     5,
		RateLimitBurst:   10,
		DBDriver:         "postgres",
		DBHost:           "localhost",
		DBPort:           "5432",
		DBUser:           "wedplan",
		DBPassword:       "wedplan",
		DBName:           "wedplan",
		DBSSLMode:        "disable",
		DBPath:           "wedplan.db",
		JWTSecret:        "fallback-secret-key-for-dev-only",
		JWTExpirationDur: 15 * time.Minute,
		DefaultCurrency:  "ILS",
	}
}

// Load loads configuration from an optional TOML file (CONFIG_FILE) and
// then from environment variables, which take precedence.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, err
		}
	}

	config.Env = getEnv("ENV", config.Env)
	config.Port = getEnv("PORT", config.Port)
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		config.CORSAllowOrigins = strings.Fields(origins)
	}
	config.EnablePprof = getEnvBool("ENABLE_PPROF", config.EnablePprof)
	config.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", config.RateLimitRPS)
	config.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", config.RateLimitBurst)

	config.DBDriver = getEnv("DB_DRIVER", config.DBDriver)
	config.DBHost = getEnv("DB_HOST", config.DBHost)
	config.DBPort = getEnv("DB_PORT", config.DBPort)
	config.DBUser = getEnv("DB_USER", config.DBUser)
	config.DBPassword = getEnv("DB_PASSWORD", config.DBPassword)
	config.DBName = getEnv("DB_NAME", config.DBName)
	config.DBSSLMode = getEnv("DB_SSLMODE", config.DBSSLMode)
	config.DBPath = getEnv("DB_PATH", config.DBPath)

	config.JWTSecret = getEnv("JWT_SECRET", config.JWTSecret)
	config.DefaultCurrency = strings.ToUpper(getEnv("DEFAULT_CURRENCY", config.DefaultCurrency))

	// Parse JWT expiration duration
	if expStr := os.Getenv("JWT_EXPIRES_IN"); expStr != "" {
		expDur, err := time.ParseDuration(expStr)
		if err != nil {
			log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to %s\n", expStr, config.JWTExpirationDur)
		} else {
			config.JWTExpirationDur = expDur
		}
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}
