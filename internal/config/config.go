package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// 讨论阶段的默认时长（秒），创建对局时可以覆盖
	DiscussionTimerSeconds int `mapstructure:"discussion_timer_seconds"`
	// 未结算对局的保留时长（分钟），超过后由清理协程回收
	RoundTTLMinutes int `mapstructure:"round_ttl_minutes"`
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

func InitConfig() *AppConfig {
	v := viper.New()

	v.SetConfigFile("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetDefault("discussion_timer_seconds", 300)
	v.SetDefault("round_ttl_minutes", 120)

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("加载配置失败: %w", err))
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("解析配置失败: %w", err))
	}

	return &config
}
