package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Supabase   SupabaseConfig
	Odoo       OdooConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	Analytics  AnalyticsConfig
	Adoption   AdoptionConfig
	Exclusions ExclusionsConfig
	Settings   SettingsConfig
	Durations  DurationsConfig
}

// SupabaseConfig points at the hosted table store (PostgREST surface).
type SupabaseConfig struct {
	URL            string
	ServiceRoleKey string
	MetricTable    string
	MessageTable   string
	TokenTable     string
	EmployeeTable  string
	PageSize       int
	RequestTimeout time.Duration
}

// OdooConfig holds ERP connection credentials for the JSON-RPC endpoints.
type OdooConfig struct {
	URL            string
	DB             string
	Username       string
	Password       string
	RequestTimeout time.Duration
	InsecureTLS    bool
}

// DatabaseConfig configures the optional direct-Postgres fast path.
// When URL is empty the fast path is skipped entirely.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AnalyticsConfig governs response caching for the heavier aggregates.
// Caching is off by default so every read recomputes from raw rows.
type AnalyticsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	WarmInterval time.Duration
}

// AdoptionConfig selects the department-adoption join strategy.
type AdoptionConfig struct {
	JoinStrategy string
}

// ExclusionsConfig lists internal/test accounts hidden from aggregates.
type ExclusionsConfig struct {
	ExactNames []string
	Substrings []string
}

// SettingsConfig locates the flat-file settings documents.
type SettingsConfig struct {
	StorageDir string
}

// DurationsConfig fixes which request families get duration estimates
// and the order they are reported in.
type DurationsConfig struct {
	RequestTypes []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Supabase = SupabaseConfig{
		URL:            strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		ServiceRoleKey: v.GetString("SUPABASE_SERVICE_ROLE"),
		MetricTable:    v.GetString("SUPABASE_METRIC_TABLE"),
		MessageTable:   v.GetString("SUPABASE_MESSAGE_TABLE"),
		TokenTable:     v.GetString("SUPABASE_REFRESH_TOKEN_TABLE"),
		EmployeeTable:  v.GetString("SUPABASE_EMPLOYEES_TABLE"),
		PageSize:       v.GetInt("SUPABASE_PAGE_SIZE"),
		RequestTimeout: parseDuration(v.GetString("SUPABASE_REQUEST_TIMEOUT"), 30*time.Second),
	}

	cfg.Odoo = OdooConfig{
		URL:            strings.TrimRight(v.GetString("ODOO_URL"), "/"),
		DB:             v.GetString("ODOO_DB"),
		Username:       v.GetString("ODOO_USERNAME"),
		Password:       v.GetString("ODOO_PASSWORD"),
		RequestTimeout: parseDuration(v.GetString("ODOO_REQUEST_TIMEOUT"), 60*time.Second),
		InsecureTLS:    v.GetBool("ODOO_INSECURE_TLS"),
	}

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("SUPABASE_POSTGRES_URL"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Analytics = AnalyticsConfig{
		CacheEnabled: v.GetBool("ENABLE_ANALYTICS_CACHE"),
		CacheTTL:     parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 10*time.Minute),
		WarmInterval: parseDuration(v.GetString("ANALYTICS_WARM_INTERVAL"), 0),
	}

	cfg.Adoption = AdoptionConfig{
		JoinStrategy: v.GetString("ADOPTION_JOIN_STRATEGY"),
	}

	cfg.Exclusions = ExclusionsConfig{
		ExactNames: splitAndTrim(v.GetString("EXCLUDED_USER_NAMES")),
		Substrings: splitAndTrim(v.GetString("EXCLUDED_NAME_SUBSTRINGS")),
	}

	cfg.Settings = SettingsConfig{
		StorageDir: v.GetString("SETTINGS_STORAGE_DIR"),
	}

	cfg.Durations = DurationsConfig{
		RequestTypes: splitAndTrim(v.GetString("DURATION_REQUEST_TYPES")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_SERVICE_ROLE", "")
	v.SetDefault("SUPABASE_METRIC_TABLE", "session_metrics")
	v.SetDefault("SUPABASE_MESSAGE_TABLE", "chat_messages")
	v.SetDefault("SUPABASE_REFRESH_TOKEN_TABLE", "refresh_tokens")
	v.SetDefault("SUPABASE_EMPLOYEES_TABLE", "employees_reference")
	v.SetDefault("SUPABASE_PAGE_SIZE", 1000)
	v.SetDefault("SUPABASE_REQUEST_TIMEOUT", "30s")
	v.SetDefault("SUPABASE_POSTGRES_URL", "")

	v.SetDefault("ODOO_URL", "")
	v.SetDefault("ODOO_DB", "")
	v.SetDefault("ODOO_USERNAME", "")
	v.SetDefault("ODOO_PASSWORD", "")
	v.SetDefault("ODOO_REQUEST_TIMEOUT", "60s")
	v.SetDefault("ODOO_INSECURE_TLS", true)

	v.SetDefault("DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_ANALYTICS_CACHE", false)
	v.SetDefault("ANALYTICS_CACHE_TTL", "10m")
	v.SetDefault("ANALYTICS_WARM_INTERVAL", "")

	v.SetDefault("ADOPTION_JOIN_STRATEGY", "roster")

	v.SetDefault("EXCLUDED_USER_NAMES", "Omar Basem Elhasan,Saba S. F. Abuhouran Dababneh,Sanad Feras Khaleel Zaqtan")
	v.SetDefault("EXCLUDED_NAME_SUBSTRINGS", "omar,saba,sanad")

	v.SetDefault("SETTINGS_STORAGE_DIR", "./settings")

	v.SetDefault("DURATION_REQUEST_TYPES", "log_hours,timeoff,overtime")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
