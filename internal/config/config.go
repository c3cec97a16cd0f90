// Package config загрузка конфигурации сервиса из TOML-файла
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config корневая конфигурация сервиса
type Config struct {
	Server         Server         `toml:"server"`
	Database       Database       `toml:"database"`
	Logs           Logs           `toml:"logs"`
	Metrics        Metrics        `toml:"metrics"`
	CatalogService CatalogService `toml:"catalog_service"`
	Policy         Policy         `toml:"policy"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN возвращает строку подключения PostgreSQL
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки Prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// CatalogService настройки клиента каталога услуг
type CatalogService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// Policy настройки политики отмены и переноса бронирований
type Policy struct {
	FreeCancellationHours float64 `toml:"free_cancellation_hours"`
	LateFeePercent        int64   `toml:"late_fee_percent"`
	SameDayFeePercent     int64   `toml:"same_day_fee_percent"`
	SameDayThresholdHours float64 `toml:"same_day_threshold_hours"`
	MaxReschedules        int     `toml:"max_reschedules"`
	MinRescheduleHours    float64 `toml:"min_reschedule_hours"`
}

// ToDomain конвертирует секцию в domain.PolicyConfig
// Нулевые значения заменяются дефолтами, списки статусов фиксированы политикой
func (p Policy) ToDomain() domain.PolicyConfig {
	cfg := domain.DefaultPolicyConfig()

	if p.FreeCancellationHours > 0 {
		cfg.FreeCancellationHours = p.FreeCancellationHours
	}
	if p.LateFeePercent > 0 {
		cfg.LateFeePercent = p.LateFeePercent
	}
	if p.SameDayFeePercent > 0 {
		cfg.SameDayFeePercent = p.SameDayFeePercent
	}
	if p.SameDayThresholdHours > 0 {
		cfg.SameDayThresholdHours = p.SameDayThresholdHours
	}
	if p.MaxReschedules > 0 {
		cfg.MaxReschedules = p.MaxReschedules
	}
	if p.MinRescheduleHours > 0 {
		cfg.MinRescheduleHours = p.MinRescheduleHours
	}

	return cfg
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "scheduling-service"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.CatalogService.Timeout == 0 {
		cfg.CatalogService.Timeout = 5
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if cfg.CatalogService.URL == "" {
		return fmt.Errorf("%w: catalog_service.url is required", ErrInvalidConfig)
	}
	if cfg.Policy.LateFeePercent < 0 || cfg.Policy.LateFeePercent > 100 {
		return fmt.Errorf("%w: policy.late_fee_percent must be within [0, 100]", ErrInvalidConfig)
	}
	if cfg.Policy.SameDayFeePercent < 0 || cfg.Policy.SameDayFeePercent > 100 {
		return fmt.Errorf("%w: policy.same_day_fee_percent must be within [0, 100]", ErrInvalidConfig)
	}
	return nil
}
