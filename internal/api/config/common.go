package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Detector  DetectorConfig  `mapstructure:"detector"`
	DataLake  DataLakeConfig  `mapstructure:"datalake"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// CacheConfig 查询结果缓存配置
type CacheConfig struct {
	DefaultTTL int `mapstructure:"default_ttl"` // 秒
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Limit  int `mapstructure:"limit"`  // 每窗口允许的请求数
	Window int `mapstructure:"window"` // 窗口长度，秒
}

// TelegramConfig Telegram抓取配置
type TelegramConfig struct {
	ApiID       int      `mapstructure:"api_id"`
	ApiHash     string   `mapstructure:"api_hash"`
	BotToken    string   `mapstructure:"bot_token"`
	SessionFile string   `mapstructure:"session_file"`
	Channels    []string `mapstructure:"channels"`
	Limit       int      `mapstructure:"limit"` // 每个频道抓取的消息数
}

// DetectorConfig 目标检测服务配置
type DetectorConfig struct {
	URL           string  `mapstructure:"url"`
	Timeout       int     `mapstructure:"timeout"` // 秒
	MaxImageWidth int     `mapstructure:"max_image_width"`
	Confidence    float64 `mapstructure:"confidence"`
}

// DataLakeConfig 数据湖配置
type DataLakeConfig struct {
	Backend string      `mapstructure:"backend"` // local / minio
	Path    string      `mapstructure:"path"`
	MinIO   MinIOConfig `mapstructure:"minio"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// PipelineConfig 流水线配置
type PipelineConfig struct {
	Schedule string `mapstructure:"schedule"` // cron 表达式
}
