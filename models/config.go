package models

import "time"

// ServiceConfig holds the address of one backend microservice.
type ServiceConfig struct {
	Host string
	Port string
}

// Addr returns the host:port pair of the service.
func (s ServiceConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Config holds all configuration for the gateway
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"api_gateway_port"`

	// JWT
	JWTSecret string `mapstructure:"jwt_secret"`

	// When true, every authenticated request cross-checks the token
	// against the user service session record (pattern user:email).
	VerifySession bool `mapstructure:"verify_session"`

	// Backend microservices. The roles service is served by the same
	// process as the user service, so it has no address of its own.
	UserService     ServiceConfig `mapstructure:"-"`
	ProfileService  ServiceConfig `mapstructure:"-"`
	CompanyService  ServiceConfig `mapstructure:"-"`
	FilesService    ServiceConfig `mapstructure:"-"`
	SettingsService ServiceConfig `mapstructure:"-"`
	NewsService     ServiceConfig `mapstructure:"-"`
	ClientsService  ServiceConfig `mapstructure:"-"`

	// RPC
	RPCTimeout time.Duration `mapstructure:"rpc_timeout"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Rate limiting (disabled when redis_addr is empty)
	RateLimitRequestsPerMinute int    `mapstructure:"rate_limit_requests_per_minute"`
	RedisAddr                  string `mapstructure:"redis_addr"`
	RedisPassword              string `mapstructure:"redis_password"`
	RedisDB                    int    `mapstructure:"redis_db"`

	// Error tracking
	SentryDSN string `mapstructure:"sentry_dsn"`

	// Backend health probe schedule (cron expression)
	HealthCheckSchedule string `mapstructure:"health_check_schedule"`

	// Base Path
	BasePath string `mapstructure:"base_path"`
}
