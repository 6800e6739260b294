package state

import (
	"one-night-werewolf-be/internal/config"
	"one-night-werewolf-be/internal/service"
)

type AppState struct {
	Cfg      *config.AppConfig
	RoundSvc *service.RoundService
}

func NewAppState(
	cfg *config.AppConfig,
	roundSvc *service.RoundService,
) *AppState {
	return &AppState{
		Cfg:      cfg,
		RoundSvc: roundSvc,
	}
}
