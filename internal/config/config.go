package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// APIKeyEnv Voyage API Key 环境变量名
const APIKeyEnv = "VOYAGEAI_API_KEY"

// ErrMissingAPIKey 未设置 Voyage API Key
var ErrMissingAPIKey = fmt.Errorf("environment variable '%s' is not set", APIKeyEnv)

// Config 应用配置
type Config struct {
	App     AppConfig
	Server  ServerConfig
	Log     LogConfig
	Segment SegmentConfig
	Voyage  VoyageConfig
	Metrics MetricsConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string
	Port         int
	Mode         string
	ReadTimeout  int
	WriteTimeout int
	// RequestTimeout 请求处理截止时间（秒），需小于 WriteTimeout
	RequestTimeout int
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string
	Format string
}

// SegmentConfig 分词配置
type SegmentConfig struct {
	Provider  string
	DictFiles string
	CKIP      CKIPConfig
}

// CKIPConfig 远程 CKIP 分词服务配置
type CKIPConfig struct {
	BaseURL string
	Timeout int
}

// VoyageConfig Voyage 重排配置
type VoyageConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	TopK    int
	Timeout int
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// Load 加载配置
// path 为空或文件不存在时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	// 环境变量
	v.SetEnvPrefix("NEXT_NLP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("voyage.apiKey", APIKeyEnv); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", APIKeyEnv, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验必填配置
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Voyage.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.Segment.Provider {
	case "gse":
	case "ckip":
		if c.Segment.CKIP.BaseURL == "" {
			return fmt.Errorf("segment.ckip.baseUrl is required for provider ckip")
		}
	default:
		return fmt.Errorf("unsupported segment provider: %s", c.Segment.Provider)
	}
	if c.Server.WriteTimeout > 0 && c.Server.RequestTimeout >= c.Server.WriteTimeout {
		return fmt.Errorf("server.requestTimeout (%d) must be less than server.writeTimeout (%d)",
			c.Server.RequestTimeout, c.Server.WriteTimeout)
	}
	if c.Voyage.TopK <= 0 {
		return fmt.Errorf("voyage.topK must be positive, got %d", c.Voyage.TopK)
	}
	return nil
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DictFileList 返回分词词典文件列表
// 交给 segment.NewGseTagger 时按原顺序合并加载
func (c *SegmentConfig) DictFileList() []string {
	var files []string
	for _, f := range strings.Split(c.DictFiles, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "next-nlp")
	v.SetDefault("app.environment", "production")
	v.SetDefault("app.version", "1.0.0")

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.requestTimeout", 55)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Segment
	v.SetDefault("segment.provider", "gse")
	v.SetDefault("segment.dictFiles", "")
	v.SetDefault("segment.ckip.baseUrl", "")
	v.SetDefault("segment.ckip.timeout", 0)

	// Voyage
	v.SetDefault("voyage.apiKey", "")
	v.SetDefault("voyage.baseUrl", "https://api.voyageai.com/v1")
	v.SetDefault("voyage.model", "rerank-2")
	v.SetDefault("voyage.topK", 20)
	v.SetDefault("voyage.timeout", 0)

	// Metrics
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "next_nlp")
}
