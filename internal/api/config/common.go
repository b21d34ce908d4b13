package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Upload   UploadConfig   `mapstructure:"upload"`
	LinkedIn LinkedInConfig `mapstructure:"linkedin"`
	Publish  PublishConfig  `mapstructure:"publish"`
	Security SecurityConfig `mapstructure:"security"`
	Cron     CronConfig     `mapstructure:"cron"`
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

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// UploadConfig 导出文件上传限制
type UploadConfig struct {
	MaxSizeMB   int      `mapstructure:"max_size_mb"`
	AllowedExts []string `mapstructure:"allowed_exts"`
}

// LinkedInConfig LinkedIn 开放平台接入配置
type LinkedInConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	AuthURL      string `mapstructure:"auth_url"`
	TokenURL     string `mapstructure:"token_url"`
	APIBaseURL   string `mapstructure:"api_base_url"`
	Scopes       string `mapstructure:"scopes"`
}

// PublishConfig 发布去重窗口
type PublishConfig struct {
	DedupWindowSize int `mapstructure:"dedup_window_size"`
	DedupTTLMinutes int `mapstructure:"dedup_ttl_minutes"`
}

// SecurityConfig 令牌加密与 state 签名密钥
type SecurityConfig struct {
	TokenCipherKey string `mapstructure:"token_cipher_key"`
	StateSignKey   string `mapstructure:"state_sign_key"`
}

type CronConfig struct {
	TokenRefreshSpec string `mapstructure:"token_refresh_spec"`
}

// MaxUploadBytes 上传大小上限，配置缺省时回落到 50MB
func (c *Config) MaxUploadBytes() int64 {
	mb := c.Upload.MaxSizeMB
	if mb <= 0 {
		mb = 50
	}
	return int64(mb) << 20
}
