package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	Lock  LockConfig
	Stats StatsConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type LockConfig struct {
	// TTL bounds how long an allocation critical section may hold a
	// resource lock before it expires on its own.
	TTL time.Duration
}

type StatsConfig struct {
	// CacheTTL is the staleness window for cached dashboard statistics.
	CacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	lockTTL, err := time.ParseDuration(viper.GetString("LOCK_TTL"))
	if err != nil {
		lockTTL = 10 * time.Second
	}

	statsCacheTTL, err := time.ParseDuration(viper.GetString("STATS_CACHE_TTL"))
	if err != nil {
		statsCacheTTL = 30 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Lock: LockConfig{
			TTL: lockTTL,
		},
		Stats: StatsConfig{
			CacheTTL: statsCacheTTL,
		},
	}

	return config, nil
}
