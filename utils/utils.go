package utils

import (
	"fmt"
	"strings"
	"time"

	"crm-gateway/models"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// GetConfig reads the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the gateway configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	setDefaults(v)

	// Environment variables win over file values
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, env vars and defaults carry production
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.UserService = serviceConfig(v, "user_service")
	config.ProfileService = serviceConfig(v, "profile_service")
	config.CompanyService = serviceConfig(v, "company_service")
	config.FilesService = serviceConfig(v, "files_service")
	config.SettingsService = serviceConfig(v, "settings_service")
	config.NewsService = serviceConfig(v, "news_service")
	config.ClientsService = serviceConfig(v, "clients_service")

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// serviceConfig reads the <NAME>_SERVICE_HOST / <NAME>_SERVICE_PORT pair
func serviceConfig(v *viper.Viper, prefix string) models.ServiceConfig {
	return models.ServiceConfig{
		Host: v.GetString(prefix + "_host"),
		Port: v.GetString(prefix + "_port"),
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "CRM API Gateway")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("api_gateway_port", "3000")

	// JWT defaults
	v.SetDefault("jwt_secret", "change-this-development-secret")
	v.SetDefault("verify_session", false)

	// Backend service defaults (local single-host deployment)
	for name, port := range map[string]string{
		"user_service":     "8701",
		"profile_service":  "8702",
		"company_service":  "8703",
		"files_service":    "8704",
		"settings_service": "8705",
		"news_service":     "8706",
		"clients_service":  "8707",
	} {
		v.SetDefault(name+"_host", "127.0.0.1")
		v.SetDefault(name+"_port", port)
	}

	// RPC defaults
	v.SetDefault("rpc_timeout", 5*time.Second)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"*"})

	// Rate limiting defaults
	v.SetDefault("rate_limit_requests_per_minute", 100)
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Error tracking
	v.SetDefault("sentry_dsn", "")

	// Health probe every 30 seconds
	v.SetDefault("health_check_schedule", "@every 30s")

	// Base Path default
	v.SetDefault("base_path", "/api/v1")
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.JWTSecret == "change-this-development-secret" && c.AppEnv == "production" {
		return fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	if c.RPCTimeout <= 0 {
		return fmt.Errorf("rpc_timeout must be positive")
	}

	return nil
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}
