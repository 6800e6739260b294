package main

import (
	"time"

	"one-night-werewolf-be/internal/api/http"
	"one-night-werewolf-be/internal/config"
	"one-night-werewolf-be/internal/logger"
	"one-night-werewolf-be/internal/service"
	"one-night-werewolf-be/internal/state"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)

	// 组装应用状态
	appState := state.NewAppState(
		cfg,
		service.NewRoundService(
			time.Duration(cfg.DiscussionTimerSeconds)*time.Second,
			time.Duration(cfg.RoundTTLMinutes)*time.Minute,
		),
	)

	// 启动服务器
	http.RunServer(appState)
}
