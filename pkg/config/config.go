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
	Timezone  string

	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Scheduling   SchedulingConfig
	Availability AvailabilityConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
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

// SchedulingConfig seeds the persisted scheduling settings row on first
// boot. Session bounds are fractional hours (15.5 = 15:30).
type SchedulingConfig struct {
	UrgentDaysAhead     int
	SemiUrgentDaysAhead int
	NormalDaysAhead     int
	ChronicWeeksAhead   int
	EmergencyDaysAhead  int
	BlockFridays        bool
	BlockSaturdays      bool
	MorningStartHour    float64
	MorningEndHour      float64
	AfternoonStartHour  float64
	AfternoonEndHour    float64
	SlotDurationMinutes int
	UrgentReserve       bool
	AutoDistribute      bool
	BookingRetries      int
}

// AvailabilityConfig governs caching of calendar availability payloads.
type AvailabilityConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
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
	cfg.Timezone = v.GetString("CLINIC_TIMEZONE")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
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

	cfg.Scheduling = SchedulingConfig{
		UrgentDaysAhead:     v.GetInt("SCHED_URGENT_DAYS_AHEAD"),
		SemiUrgentDaysAhead: v.GetInt("SCHED_SEMI_URGENT_DAYS_AHEAD"),
		NormalDaysAhead:     v.GetInt("SCHED_NORMAL_DAYS_AHEAD"),
		ChronicWeeksAhead:   v.GetInt("SCHED_CHRONIC_WEEKS_AHEAD"),
		EmergencyDaysAhead:  v.GetInt("SCHED_EMERGENCY_DAYS_AHEAD"),
		BlockFridays:        v.GetBool("SCHED_BLOCK_FRIDAYS"),
		BlockSaturdays:      v.GetBool("SCHED_BLOCK_SATURDAYS"),
		MorningStartHour:    v.GetFloat64("SCHED_MORNING_START_HOUR"),
		MorningEndHour:      v.GetFloat64("SCHED_MORNING_END_HOUR"),
		AfternoonStartHour:  v.GetFloat64("SCHED_AFTERNOON_START_HOUR"),
		AfternoonEndHour:    v.GetFloat64("SCHED_AFTERNOON_END_HOUR"),
		SlotDurationMinutes: v.GetInt("SCHED_SLOT_DURATION_MINUTES"),
		UrgentReserve:       v.GetBool("SCHED_URGENT_RESERVE"),
		AutoDistribute:      v.GetBool("SCHED_AUTO_DISTRIBUTE"),
		BookingRetries:      v.GetInt("SCHED_BOOKING_RETRIES"),
	}

	cfg.Availability = AvailabilityConfig{
		CacheEnabled: v.GetBool("ENABLE_AVAILABILITY_CACHE"),
		CacheTTL:     parseDuration(v.GetString("AVAILABILITY_CACHE_TTL"), 5*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("CLINIC_TIMEZONE", "Asia/Riyadh")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "physio_booking")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHED_URGENT_DAYS_AHEAD", 1)
	v.SetDefault("SCHED_SEMI_URGENT_DAYS_AHEAD", 3)
	v.SetDefault("SCHED_NORMAL_DAYS_AHEAD", 30)
	v.SetDefault("SCHED_CHRONIC_WEEKS_AHEAD", 8)
	v.SetDefault("SCHED_EMERGENCY_DAYS_AHEAD", 2)
	v.SetDefault("SCHED_BLOCK_FRIDAYS", true)
	v.SetDefault("SCHED_BLOCK_SATURDAYS", true)
	v.SetDefault("SCHED_MORNING_START_HOUR", 8.0)
	v.SetDefault("SCHED_MORNING_END_HOUR", 12.0)
	v.SetDefault("SCHED_AFTERNOON_START_HOUR", 12.0)
	v.SetDefault("SCHED_AFTERNOON_END_HOUR", 15.5)
	v.SetDefault("SCHED_SLOT_DURATION_MINUTES", 15)
	v.SetDefault("SCHED_URGENT_RESERVE", true)
	v.SetDefault("SCHED_AUTO_DISTRIBUTE", true)
	v.SetDefault("SCHED_BOOKING_RETRIES", 3)

	v.SetDefault("ENABLE_AVAILABILITY_CACHE", false)
	v.SetDefault("AVAILABILITY_CACHE_TTL", "5m")
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
