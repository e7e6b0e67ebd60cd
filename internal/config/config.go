package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	CORS     CORSConfig     `yaml:"cors"`
}

// DatabaseConfig contains MySQL connection settings
type DatabaseConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	User                string `yaml:"user"`
	Password            string `yaml:"password"`
	Database            string `yaml:"database"`
	PoolSize            int    `yaml:"pool_size"`
	QueryTimeoutSeconds int    `yaml:"query_timeout_seconds"`
}

// APIConfig contains HTTP server settings
type APIConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CORSConfig contains the comma-separated allowed origin list
type CORSConfig struct {
	Origins string `yaml:"origins"`
}

// OriginList splits the configured origins into a slice
func (c CORSConfig) OriginList() []string {
	parts := strings.Split(c.Origins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:                "localhost",
			Port:                3306,
			User:                "root",
			Password:            "",
			Database:            "airbnb",
			PoolSize:            5,
			QueryTimeoutSeconds: 30,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		CORS: CORSConfig{
			Origins: "http://localhost:5173,http://localhost:3000",
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file, and finally environment variables. A .env file is
// loaded first if present, so exported variables always win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Database = getEnv("DB_NAME", c.Database.Database)
	c.API.Host = getEnv("API_HOST", c.API.Host)
	c.API.Port = getEnvInt("API_PORT", c.API.Port)
	c.CORS.Origins = getEnv("CORS_ORIGINS", c.CORS.Origins)
}

// QueryTimeout returns the per-query execution cap as a duration
func (c *DatabaseConfig) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

// Addr returns the API bind address
func (c *APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
