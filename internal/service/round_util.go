package service

import (
	"time"

	"one-night-werewolf-be/internal/service/game"
)

// 已结算的对局在结算之后再保留十分钟给客户端拉取结果
const FINISHED_ROUND_GRACE = 10 * time.Minute

func isRoundExpired(rm *game.RoundMachine, ttl time.Duration) bool {
	if rm == nil {
		return true
	}

	if rm.Finished() {
		return time.Since(rm.FinishedAt()) > FINISHED_ROUND_GRACE
	}

	return time.Since(rm.CreatedAt()) > ttl
}
