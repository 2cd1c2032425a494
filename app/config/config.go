// Package config load cấu hình service từ file YAML + biến môi trường.
// Biến môi trường ghi đè giá trị trong file (PORT, REDIS_URL, MONGO_URI...).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Nguồn dữ liệu gazetteer
const (
	GazetteerSourceFile  = "file"
	GazetteerSourceMongo = "mongo"
)

// Backend cache kết quả resolve
const (
	CacheBackendLRU    = "lru"
	CacheBackendRedis  = "redis"
	CacheBackendHybrid = "hybrid"
)

// Backend gợi ý
const (
	SuggestBackendFuzzy = "fuzzy"
	SuggestBackendMeili = "meili"
)

// Config cấu hình toàn service
type Config struct {
	AppEnv string `mapstructure:"app_env"`
	Port   string `mapstructure:"port"`

	GazetteerSource string `mapstructure:"gazetteer_source"`
	GazetteerPath   string `mapstructure:"gazetteer_path"`

	MongoURI        string `mapstructure:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection"`

	CacheBackend string        `mapstructure:"cache_backend"`
	CacheSize    int           `mapstructure:"cache_size"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	RedisURL     string        `mapstructure:"redis_url"`

	SuggestBackend string `mapstructure:"suggest_backend"`
	SuggestTopK    int    `mapstructure:"suggest_top_k"`
	MeiliHost      string `mapstructure:"meili_host"`
	MeiliAPIKey    string `mapstructure:"meili_api_key"`
	MeiliIndex     string `mapstructure:"meili_index"`
}

// Load đọc cấu hình từ file (nếu có) và biến môi trường
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("gazetteer_source", GazetteerSourceFile)
	v.SetDefault("gazetteer_path", "data/gazetteer.yaml")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "address_resolver")
	v.SetDefault("mongo_collection", "admin_units")
	v.SetDefault("cache_backend", CacheBackendLRU)
	v.SetDefault("cache_size", 10000)
	v.SetDefault("cache_ttl", 24*time.Hour)
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("suggest_backend", SuggestBackendFuzzy)
	v.SetDefault("suggest_top_k", 5)
	v.SetDefault("meili_host", "http://localhost:7700")
	v.SetDefault("meili_api_key", "")
	v.SetDefault("meili_index", "admin_units")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("lỗi đọc config %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("lỗi parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate kiểm tra các giá trị enum của config
func (c *Config) Validate() error {
	switch c.GazetteerSource {
	case GazetteerSourceFile, GazetteerSourceMongo:
	default:
		return fmt.Errorf("gazetteer_source %q không hợp lệ", c.GazetteerSource)
	}
	switch c.CacheBackend {
	case CacheBackendLRU, CacheBackendRedis, CacheBackendHybrid:
	default:
		return fmt.Errorf("cache_backend %q không hợp lệ", c.CacheBackend)
	}
	switch c.SuggestBackend {
	case SuggestBackendFuzzy, SuggestBackendMeili:
	default:
		return fmt.Errorf("suggest_backend %q không hợp lệ", c.SuggestBackend)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size phải lớn hơn 0")
	}
	return nil
}

// IsProduction môi trường production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
