package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Префикс переменных окружения, переопределяющих значения из файла
const envPrefix = "ROOMS_"

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Redis          RedisConfig          `toml:"redis"`
	Lock           LockConfig           `toml:"lock"`
	Commit         CommitConfig         `toml:"commit"`
	Allocation     AllocationConfig     `toml:"allocation"`
	Catalog        CatalogConfig        `toml:"catalog"`
	Availability   AvailabilityConfig   `toml:"availability"`
	ProfileService ProfileServiceConfig `toml:"profile_service"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig параметры Redis для распределенных блокировок
// При Enabled=false используется блокировка в памяти процесса
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LockConfig параметры блокировки комнаты на день
type LockConfig struct {
	TTLMs        int `toml:"ttl_ms"`
	RetryCount   int `toml:"retry_count"`
	RetryDelayMs int `toml:"retry_delay_ms"`
}

// CommitConfig параметры транзакции фиксации бронирования
type CommitConfig struct {
	TimeoutMs  int `toml:"timeout_ms"`
	MaxRetries int `toml:"max_retries"`
	BackoffMs  int `toml:"backoff_ms"`
}

// AllocationConfig параметры подбора
type AllocationConfig struct {
	MaxAttempts     int `toml:"max_attempts"`
	MaxAlternatives int `toml:"max_alternatives"`
}

// CatalogDefault значения по умолчанию для комнаты по имени
type CatalogDefault struct {
	Name     string `toml:"name"`
	Capacity int    `toml:"capacity"`
	Type     string `toml:"type"`
}

// CatalogConfig таблица значений по умолчанию для каталога
type CatalogConfig struct {
	FallbackCapacity int              `toml:"fallback_capacity"`
	FallbackType     string           `toml:"fallback_type"`
	Defaults         []CatalogDefault `toml:"defaults"`
}

// AvailabilityConfig учебный день и шаг сетки свободных окон комнаты
type AvailabilityConfig struct {
	DayStart    string `toml:"day_start"`
	DayEnd      string `toml:"day_end"`
	SlotMinutes int    `toml:"slot_minutes"`
}

// ProfileServiceConfig параметры сервиса профилей (таймаут в секундах)
type ProfileServiceConfig struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	Timeout    int    `toml:"timeout"`
	RetryCount int    `toml:"retry_count"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML файла и .env из текущей директории
func Load(path string) (*Config, error) {
	return LoadWithEnvFile(path, ".env")
}

// LoadWithEnvFile загружает конфигурацию из TOML файла, затем применяет переменные окружения
// Отсутствующий .env файл не считается ошибкой
func LoadWithEnvFile(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "rooms",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Lock: LockConfig{
			TTLMs:        10000,
			RetryCount:   5,
			RetryDelayMs: 50,
		},
		Commit: CommitConfig{
			TimeoutMs:  5000,
			MaxRetries: 3,
			BackoffMs:  20,
		},
		Allocation: AllocationConfig{
			MaxAttempts:     3,
			MaxAlternatives: domain.MaxAlternatives,
		},
		Catalog: CatalogConfig{
			FallbackCapacity: domain.DefaultRoomCapacity,
			FallbackType:     string(domain.DefaultRoomType),
		},
		Availability: AvailabilityConfig{
			DayStart:    "08:00",
			DayEnd:      "20:00",
			SlotMinutes: 30,
		},
		ProfileService: ProfileServiceConfig{
			Timeout:    2,
			RetryCount: 1,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "room-allocation-service",
		},
	}
}

// applyDefaults подставляет значения по умолчанию для обнуленных в файле полей
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = def.Server.HTTPPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Allocation.MaxAttempts == 0 {
		c.Allocation.MaxAttempts = def.Allocation.MaxAttempts
	}
	if c.Allocation.MaxAlternatives == 0 {
		c.Allocation.MaxAlternatives = def.Allocation.MaxAlternatives
	}
	if c.Catalog.FallbackCapacity == 0 {
		c.Catalog.FallbackCapacity = def.Catalog.FallbackCapacity
	}
	if c.Catalog.FallbackType == "" {
		c.Catalog.FallbackType = def.Catalog.FallbackType
	}
	if c.Availability.DayStart == "" {
		c.Availability.DayStart = def.Availability.DayStart
	}
	if c.Availability.DayEnd == "" {
		c.Availability.DayEnd = def.Availability.DayEnd
	}
	if c.Availability.SlotMinutes == 0 {
		c.Availability.SlotMinutes = def.Availability.SlotMinutes
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = def.Metrics.ServiceName
	}
	if c.Logs.Level == "" {
		c.Logs.Level = def.Logs.Level
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения ROOMS_*
func (c *Config) applyEnv() error {
	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, envPrefix, name, v)
		}
		*dst = n
		return nil
	}
	setBool := func(name string, dst *bool) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalidConfig, envPrefix, name, v)
		}
		*dst = b
		return nil
	}

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("PROFILE_SERVICE_URL", &c.ProfileService.URL)
	setString("LOG_LEVEL", &c.Logs.Level)

	if err := setInt("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	if err := setInt("HTTP_PORT", &c.Server.HTTPPort); err != nil {
		return err
	}
	if err := setBool("REDIS_ENABLED", &c.Redis.Enabled); err != nil {
		return err
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Commit.TimeoutMs <= 0 {
		return fmt.Errorf("%w: commit.timeout_ms must be positive", ErrInvalidConfig)
	}
	// блокировка не должна истечь раньше, чем завершится транзакция под ней
	if c.Lock.TTLMs <= c.Commit.TimeoutMs {
		return fmt.Errorf("%w: lock.ttl_ms (%d) must be greater than commit.timeout_ms (%d)",
			ErrInvalidConfig, c.Lock.TTLMs, c.Commit.TimeoutMs)
	}
	if c.Lock.RetryCount < 0 || c.Lock.RetryDelayMs < 0 {
		return fmt.Errorf("%w: lock retries must not be negative", ErrInvalidConfig)
	}
	if c.Commit.MaxRetries < 0 || c.Commit.BackoffMs < 0 {
		return fmt.Errorf("%w: commit retries must not be negative", ErrInvalidConfig)
	}
	if c.Allocation.MaxAttempts < 1 {
		return fmt.Errorf("%w: allocation.max_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.Allocation.MaxAlternatives < 0 {
		return fmt.Errorf("%w: allocation.max_alternatives must not be negative", ErrInvalidConfig)
	}
	if c.ProfileService.Enabled && c.ProfileService.URL == "" {
		return fmt.Errorf("%w: profile_service.url is required when enabled", ErrInvalidConfig)
	}
	if _, err := c.RoomDefaults(); err != nil {
		return fmt.Errorf("%w: catalog: %v", ErrInvalidConfig, err)
	}
	if _, _, err := c.AvailabilityWindow(); err != nil {
		return err
	}
	if c.Availability.SlotMinutes <= 0 {
		return fmt.Errorf("%w: availability.slot_minutes must be positive", ErrInvalidConfig)
	}
	return nil
}

// RoomDefaults строит таблицу значений по умолчанию каталога
func (c *Config) RoomDefaults() (*domain.RoomDefaults, error) {
	fallbackType, err := domain.ParseRoomType(c.Catalog.FallbackType)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]domain.RoomDefault, len(c.Catalog.Defaults))
	for _, d := range c.Catalog.Defaults {
		roomType, err := domain.ParseRoomType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", d.Name, err)
		}
		entries[d.Name] = domain.RoomDefault{Capacity: d.Capacity, Type: roomType}
	}

	return domain.NewRoomDefaults(entries, domain.RoomDefault{
		Capacity: c.Catalog.FallbackCapacity,
		Type:     fallbackType,
	})
}

// LockTTL время жизни блокировки
func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.Lock.TTLMs) * time.Millisecond
}

// LockRetryDelay пауза между попытками получить блокировку
func (c *Config) LockRetryDelay() time.Duration {
	return time.Duration(c.Lock.RetryDelayMs) * time.Millisecond
}

// CommitTimeout таймаут транзакции фиксации
func (c *Config) CommitTimeout() time.Duration {
	return time.Duration(c.Commit.TimeoutMs) * time.Millisecond
}

// CommitBackoff начальная пауза перед повтором транзакции
func (c *Config) CommitBackoff() time.Duration {
	return time.Duration(c.Commit.BackoffMs) * time.Millisecond
}

// AvailabilityWindow границы учебного дня для сетки свободных окон
func (c *Config) AvailabilityWindow() (types.TimeString, types.TimeString, error) {
	start, err := types.NewTimeStringFromString(c.Availability.DayStart)
	if err != nil {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: availability.day_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.NewTimeStringFromString(c.Availability.DayEnd)
	if err != nil {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: availability.day_end: %v", ErrInvalidConfig, err)
	}
	if !start.IsBefore(end) {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: availability.day_start %s must be before day_end %s",
			ErrInvalidConfig, start, end)
	}
	return start, end, nil
}
