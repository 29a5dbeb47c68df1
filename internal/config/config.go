package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN            string `env:"DSN,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Vision struct {
		APIKey         string `env:"API_KEY,required"`
		Model          string `env:"MODEL" envDefault:"qwen-vl-max"`
		Endpoint       string `env:"ENDPOINT" envDefault:"https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"`
		RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"60"`
		MaxRetries     int    `env:"MAX_RETRIES" envDefault:"2"`
	} `envPrefix:"VISION_"`
	Quota struct {
		GuestDailyLimit int    `env:"GUEST_DAILY_LIMIT" envDefault:"10"`
		Salt            string `env:"SALT" envDefault:"aircourse-guest"`
	} `envPrefix:"QUOTA_"`
	JWT struct {
		// 为空时任何携带 Bearer Token 的请求都视为已登录用户
		Secret string `env:"SECRET"`
	} `envPrefix:"JWT_"`
	Session struct {
		Expiration        int `env:"EXPIRATION" envDefault:"86400"` // 24 小时
		DefaultTotalWeeks int `env:"DEFAULT_TOTAL_WEEKS" envDefault:"16"`
	} `envPrefix:"SESSION_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host           string `env:"HOST" envDefault:"localhost"`
		Port           int    `env:"PORT" envDefault:"6379"`
		Password       string `env:"PASSWORD,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
