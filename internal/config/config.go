// Package config предоставялет структуры и функции для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// EnvLocal — локальный запуск, текстовые логи.
	EnvLocal = "local"
	// EnvDev — dev-окружение, JSON-логи с уровнем debug.
	EnvDev = "dev"
	// EnvProd — боевое окружение, детали паник не логируются.
	EnvProd = "prod"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Session                 `yaml:"session"`
	Auth                    `yaml:"auth"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"localhost:3333"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш сессий.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Session описывает параметры cookie сессии.
type Session struct {
	CookieName string        `yaml:"cookie_name" env-default:"sessionId"`
	CookiePath string        `yaml:"cookie_path" env-default:"/meals"`
	MaxAge     time.Duration `yaml:"max_age" env-default:"168h"`
}

// Auth описывает параметры регистрации и входа.
type Auth struct {
	BcryptCost     int     `yaml:"bcrypt_cost" env-default:"6"`
	LoginRateLimit float64 `yaml:"login_rate_limit" env-default:"5"`
	LoginBurst     int     `yaml:"login_burst" env-default:"10"`
}

// Load читает конфиг из файла path с учётом переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// env-required не срабатывает, если переменная задана пустой строкой
	if cfg.StorageConnectionString == "" {
		return nil, fmt.Errorf("%s: storage_connection_string is required", op)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// CacheEnabled сообщает, настроен ли redis для кеша сессий.
func (c *Config) CacheEnabled() bool {
	return c.AddressRedis != ""
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  CookieName: %s\n"+
			"  CookiePath: %s\n"+
			"  MaxAge: %s\n"+
			"Auth:\n"+
			"  BcryptCost: %d\n"+
			"  LoginRateLimit: %.2f\n"+
			"  LoginBurst: %d\n",
		c.Env,
		c.MigrationsPath,
		c.AddressRedis,
		c.DB,
		c.MaxRetries,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.CookieName,
		c.CookiePath,
		c.MaxAge,
		c.BcryptCost,
		c.LoginRateLimit,
		c.LoginBurst,
	)
}
