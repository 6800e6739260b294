package dto

// 创建一局时只提供玩家名单，玩家 ID 由服务端生成后随响应返回，
// 客户端之后的所有请求都带这个 ID
type CreateRoundRequest struct {
	PlayerNames            []string `json:"player_names"`
	Roles                  []string `json:"roles"`
	DiscussionTimerSeconds int      `json:"discussion_timer_seconds,omitempty"`
}

type RoundPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateRoundResponse struct {
	RoundID string        `json:"round_id"`
	Players []RoundPlayer `json:"players"`
	Phase   string        `json:"phase"`
}
