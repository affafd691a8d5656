package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	Chat      ChatConfig      `yaml:"chat"`
	Ticket    TicketConfig    `yaml:"ticket"`
	Admin     AdminConfig     `yaml:"admin"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Content   ContentConfig   `yaml:"content"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Name           string   `yaml:"name"`
	AllowedOrigins []string `yaml:"allowedOrigins"` // 为空时允许任意来源
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ChatConfig 聊天会话配置
type ChatConfig struct {
	ReplyDelay   time.Duration `yaml:"replyDelay"`   // 机器人回复前的模拟延迟
	ArticleDelay time.Duration `yaml:"articleDelay"` // 推荐文章相对回复的额外延迟
	SessionTTL   time.Duration `yaml:"sessionTTL"`   // 会话空闲过期时间
}

// TicketConfig 工单提交配置
type TicketConfig struct {
	Backend     string        `yaml:"backend"` // mock, redis, http
	SubmitDelay time.Duration `yaml:"submitDelay"`
	APIURL      string        `yaml:"apiUrl"`
	APIKey      string        `yaml:"apiKey"`
	MaxRetries  int           `yaml:"maxRetries"`
	BaseDelay   time.Duration `yaml:"baseDelay"`
	MaxDelay    time.Duration `yaml:"maxDelay"`
	TTL         time.Duration `yaml:"ttl"` // redis 中工单保留时间，0 表示不过期
}

// AdminConfig 管理后台配置
type AdminConfig struct {
	AccessCode string `yaml:"accessCode"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	PerMinute int `yaml:"perMinute"` // 0 表示不限流
}

// ContentConfig 静态内容配置
type ContentConfig struct {
	Path string `yaml:"path"` // 为空时使用内置内容
}

const (
	TicketBackendMock  = "mock"
	TicketBackendRedis = "redis"
	TicketBackendHTTP  = "http"
)

// LoadConfig 加载配置文件，随后应用环境变量覆盖和默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// .env 可选，生产环境变量可能已直接设置
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Parse 解析 YAML 并填充默认值
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Name == "" {
		c.Server.Name = "support-center"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Chat.ReplyDelay == 0 {
		c.Chat.ReplyDelay = time.Second
	}
	if c.Chat.ArticleDelay == 0 {
		c.Chat.ArticleDelay = 500 * time.Millisecond
	}
	if c.Chat.SessionTTL == 0 {
		c.Chat.SessionTTL = 30 * time.Minute
	}
	if c.Ticket.Backend == "" {
		c.Ticket.Backend = TicketBackendMock
	}
	if c.Ticket.SubmitDelay == 0 {
		c.Ticket.SubmitDelay = 1500 * time.Millisecond
	}
	if c.Ticket.MaxRetries == 0 {
		c.Ticket.MaxRetries = 3
	}
	if c.Ticket.BaseDelay == 0 {
		c.Ticket.BaseDelay = 500 * time.Millisecond
	}
	if c.Ticket.MaxDelay == 0 {
		c.Ticket.MaxDelay = 5 * time.Second
	}
}

// applyEnv 环境变量覆盖敏感或部署相关的配置
func (c *Config) applyEnv() error {
	if v := os.Getenv("SUPPORT_ADMIN_CODE"); v != "" {
		c.Admin.AccessCode = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("TICKET_API_URL"); v != "" {
		c.Ticket.APIURL = v
	}
	if v := os.Getenv("TICKET_API_KEY"); v != "" {
		c.Ticket.APIKey = v
	}
	if v := os.Getenv("SUPPORT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SUPPORT_PORT 不是有效端口: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Ticket.Backend {
	case TicketBackendMock, TicketBackendRedis:
	case TicketBackendHTTP:
		if c.Ticket.APIURL == "" {
			return fmt.Errorf("ticket.backend=http 需要配置 ticket.apiUrl")
		}
	default:
		return fmt.Errorf("未知的工单后端: %s", c.Ticket.Backend)
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rateLimit.perMinute 不能为负数")
	}
	return nil
}
