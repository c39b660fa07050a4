package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
	Coach   CoachConfig   `mapstructure:"coach"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	HTTPAddress     string        `mapstructure:"http_address"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Heartbeat       time.Duration `mapstructure:"heartbeat"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SessionConfig struct {
	StartingBalance int64         `mapstructure:"starting_balance"`
	Role            string        `mapstructure:"role"`
	NoticeTTL       time.Duration `mapstructure:"notice_ttl"`
	SubmitDelay     time.Duration `mapstructure:"submit_delay"`
}

type CoachConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.heartbeat", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("session.starting_balance", 250)
	v.SetDefault("session.role", "ADMIN")
	v.SetDefault("session.notice_ttl", 3*time.Second)
	v.SetDefault("session.submit_delay", 1500*time.Millisecond)
	v.SetDefault("coach.endpoint", "https://generativelanguage.googleapis.com")
	v.SetDefault("coach.model", "gemini-3-flash-preview")
	v.SetDefault("coach.api_key", "")
	v.SetDefault("coach.timeout", 10*time.Second)
	v.SetDefault("metrics.namespace", "arena")
}

// LoadConfig reads .env, then config.yaml from path, then ARENA_* variables.
// Missing files are fine; every key has a default.
func LoadConfig(path string) (config *Config, err error) {
	// .env only seeds the process environment; absent is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("arena")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = v.Unmarshal(&config)
	return
}
