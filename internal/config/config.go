package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 进程级配置，启动时解析一次
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	App       AppConfig       `mapstructure:"app"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Client    ClientConfig    `mapstructure:"client"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type AppConfig struct {
	Env string `mapstructure:"env"` // development / production
}

// OpenAIConfig ApiKey 为空时服务进入占位模式
type OpenAIConfig struct {
	ApiKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ClientConfig 布局请求客户端的两个候选地址
type ClientConfig struct {
	ProductionBaseURL  string        `mapstructure:"production_base_url"`
	DevelopmentBaseURL string        `mapstructure:"development_base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig DSN 为空时不记录生成日志
type DatabaseConfig struct {
	DSN           string `mapstructure:"dsn"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// RateLimitConfig Interval 为 0 表示不限流
type RateLimitConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ==================== 默认值 & 环境变量 ====================

var defaults = map[string]interface{}{
	"server.port":                 "8080",
	"app.env":                     "development",
	"openai.api_key":              "",
	"openai.base_url":             "https://api.openai.com",
	"openai.model":                "gpt-3.5-turbo",
	"openai.max_tokens":           1000,
	"openai.temperature":          0.7,
	"openai.timeout":              "30s",
	"client.production_base_url":  "http://localhost:8080",
	"client.development_base_url": "http://localhost:3001",
	"client.timeout":              "60s",
	"database.dsn":                "",
	"database.retention_days":     30,
	"ratelimit.interval":          "0s",
	"log.level":                   "info",
}

var envBindings = map[string]string{
	"server.port":                 "SERVER_PORT",
	"app.env":                     "APP_ENV",
	"openai.api_key":              "OPENAI_API_KEY",
	"openai.base_url":             "OPENAI_BASE_URL",
	"openai.model":                "OPENAI_MODEL",
	"openai.max_tokens":           "OPENAI_MAX_TOKENS",
	"openai.temperature":          "OPENAI_TEMPERATURE",
	"openai.timeout":              "OPENAI_TIMEOUT",
	"client.production_base_url":  "LAYOUT_API_PRODUCTION_URL",
	"client.development_base_url": "LAYOUT_API_DEVELOPMENT_URL",
	"client.timeout":              "LAYOUT_API_TIMEOUT",
	"database.dsn":                "GENERATION_LOG_DSN",
	"database.retention_days":     "GENERATION_LOG_RETENTION_DAYS",
	"ratelimit.interval":          "GENERATE_COOLDOWN",
	"log.level":                   "LOG_LEVEL",
}

// Load 读取配置。cfgFile 可为空，环境变量优先于文件
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.OpenAI.ApiKey = strings.TrimSpace(cfg.OpenAI.ApiKey)
	return &cfg, nil
}

// IsProduction 是否生产部署
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// HasProviderCredential 是否配置了 OpenAI 凭证
func (c *Config) HasProviderCredential() bool {
	return c.OpenAI.ApiKey != ""
}
