package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/risk-map-service/internal/pkg/utils"
	"github.com/spf13/viper"
)

const (
	BoundarySourceFile     = "file"
	BoundarySourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Map      MapConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

// DataConfig - откуда загружать полигоны и CSV с рисками
type DataConfig struct {
	BoundarySource     string
	BoundaryPath       string
	RiskTablePath      string
	FetchTimeout       time.Duration
	BoundaryAdminLevel int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	MapSnapshotTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	ConsumerName      string
	StandaloneGroup   string // группа cmd/worker: своя копия карты, нужны все команды
	CommandStream     string
	EventStream       string
	StreamReadTimeout time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	ShutdownTimeout   time.Duration
}

// MapConfig - начальный вид карты для фронтенда
type MapConfig struct {
	CenterLat       float64
	CenterLon       float64
	Zoom            int
	TileURL         string
	TileAttribution string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("DATA_BOUNDARY_SOURCE", BoundarySourceFile)
	v.SetDefault("DATA_BOUNDARY_PATH", "data/metro_manila.geojson")
	v.SetDefault("DATA_RISK_TABLE_PATH", "data/metro_manila_risk_pivoted.csv")
	v.SetDefault("DATA_FETCH_TIMEOUT", 30)
	v.SetDefault("DATA_BOUNDARY_ADMIN_LEVEL", 6)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("MAP_CACHE_TTL", 600)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("WORKER_CONSUMER_GROUP", "riskmap-command-workers")
	v.SetDefault("WORKER_CONSUMER_NAME", "riskmap-worker-1")
	v.SetDefault("WORKER_STANDALONE_GROUP", "riskmap-standalone-workers")
	v.SetDefault("WORKER_COMMAND_STREAM", "stream:riskmap:commands")
	v.SetDefault("WORKER_EVENT_STREAM", "stream:riskmap:events")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_RETRY_DELAY", 500)
	v.SetDefault("WORKER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("MAP_CENTER_LAT", 14.5995)
	v.SetDefault("MAP_CENTER_LON", 120.9842)
	v.SetDefault("MAP_ZOOM", 11)
	v.SetDefault("MAP_TILE_URL", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("MAP_TILE_ATTRIBUTION", "© OpenStreetMap contributors")
}

// Load читает конфигурацию из .env (если файл есть) и переменных окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из указанного env-файла; отсутствие файла не ошибка
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			AllowOrigins: v.GetString("API_ALLOW_ORIGINS"),
		},
		Data: DataConfig{
			BoundarySource:     strings.ToLower(v.GetString("DATA_BOUNDARY_SOURCE")),
			BoundaryPath:       v.GetString("DATA_BOUNDARY_PATH"),
			RiskTablePath:      v.GetString("DATA_RISK_TABLE_PATH"),
			FetchTimeout:       time.Duration(v.GetInt("DATA_FETCH_TIMEOUT")) * time.Second,
			BoundaryAdminLevel: v.GetInt("DATA_BOUNDARY_ADMIN_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			MapSnapshotTTL: time.Duration(v.GetInt("MAP_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			ConsumerName:      v.GetString("WORKER_CONSUMER_NAME"),
			StandaloneGroup:   v.GetString("WORKER_STANDALONE_GROUP"),
			CommandStream:     v.GetString("WORKER_COMMAND_STREAM"),
			EventStream:       v.GetString("WORKER_EVENT_STREAM"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			RetryDelay:        time.Duration(v.GetInt("WORKER_RETRY_DELAY")) * time.Millisecond,
			ShutdownTimeout:   time.Duration(v.GetInt("WORKER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
		Map: MapConfig{
			CenterLat:       v.GetFloat64("MAP_CENTER_LAT"),
			CenterLon:       v.GetFloat64("MAP_CENTER_LON"),
			Zoom:            v.GetInt("MAP_ZOOM"),
			TileURL:         v.GetString("MAP_TILE_URL"),
			TileAttribution: v.GetString("MAP_TILE_ATTRIBUTION"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Data.BoundarySource {
	case BoundarySourceFile:
		if c.Data.BoundaryPath == "" {
			return errors.New("DATA_BOUNDARY_PATH is required for file boundary source")
		}
	case BoundarySourcePostgres:
		if c.Database.DBName == "" {
			return errors.New("DB_NAME is required for postgres boundary source")
		}
	default:
		return fmt.Errorf("invalid DATA_BOUNDARY_SOURCE %q: want %q or %q",
			c.Data.BoundarySource, BoundarySourceFile, BoundarySourcePostgres)
	}
	if c.Data.RiskTablePath == "" {
		return errors.New("DATA_RISK_TABLE_PATH is required")
	}
	if c.Data.FetchTimeout <= 0 {
		return errors.New("DATA_FETCH_TIMEOUT must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid API_PORT %d", c.Server.Port)
	}
	if c.Worker.Enabled && !c.Redis.Enabled {
		return errors.New("WORKER_ENABLED requires REDIS_ENABLED")
	}
	if c.Worker.StandaloneGroup == c.Worker.ConsumerGroup {
		return errors.New("WORKER_STANDALONE_GROUP must differ from WORKER_CONSUMER_GROUP")
	}
	if c.Worker.MaxRetries < 0 {
		return errors.New("WORKER_MAX_RETRIES must not be negative")
	}
	if !utils.ValidateCoordinates(c.Map.CenterLat, c.Map.CenterLon) {
		return errors.New("MAP_CENTER_LAT/MAP_CENTER_LON out of range")
	}
	if !utils.ValidateZoom(c.Map.Zoom) {
		return fmt.Errorf("invalid MAP_ZOOM %d", c.Map.Zoom)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
