package game

import "time"

// 一局游戏分为 4 个阶段，分别是：
// 1. 夜晚阶段（Night）：各角色按唤醒顺序执行私密行动
// 2. 讨论阶段（Discussion）：玩家公开讨论，计时结束后进入投票
// 3. 投票阶段（Voting）：每位玩家投出一票，票齐后进入结算
// 4. 结算阶段（Results）：计票、结算死亡与胜负，之后状态只读
const (
	PHASE_NIGHT      = "Night"
	PHASE_DISCUSSION = "Discussion"
	PHASE_VOTING     = "Voting"
	PHASE_RESULTS    = "Results"
)

// 角色牌
const (
	ROLE_WEREWOLF     = "Werewolf"
	ROLE_MINION       = "Minion"
	ROLE_MASON        = "Mason"
	ROLE_SEER         = "Seer"
	ROLE_ROBBER       = "Robber"
	ROLE_TROUBLEMAKER = "Troublemaker"
	ROLE_DRUNK        = "Drunk"
	ROLE_INSOMNIAC    = "Insomniac"
	ROLE_VILLAGER     = "Villager"
	ROLE_TANNER       = "Tanner"
	ROLE_HUNTER       = "Hunter"
)

// 阵营（按发牌时的 currentRole 划定，之后的交换不再改变）
const (
	TEAM_VILLAGE  = "village"
	TEAM_WEREWOLF = "werewolf"
	TEAM_TANNER   = "tanner"

	// WINNER_MINION 只作为无狼局的获胜方出现，不是发牌阵营
	WINNER_MINION = "minion"
)

// NightWakeOrder 是官方规则中的夜晚唤醒顺序。
// 只有出现在这里的角色才有夜间行动；村民、皮匠、猎人不在其中。
var NightWakeOrder = []string{
	ROLE_WEREWOLF,
	ROLE_MINION,
	ROLE_MASON,
	ROLE_SEER,
	ROLE_ROBBER,
	ROLE_TROUBLEMAKER,
	ROLE_DRUNK,
	ROLE_INSOMNIAC,
}

// KnownRoles 是全部合法角色牌的集合
var KnownRoles = map[string]struct{}{
	ROLE_WEREWOLF:     {},
	ROLE_MINION:       {},
	ROLE_MASON:        {},
	ROLE_SEER:         {},
	ROLE_ROBBER:       {},
	ROLE_TROUBLEMAKER: {},
	ROLE_DRUNK:        {},
	ROLE_INSOMNIAC:    {},
	ROLE_VILLAGER:     {},
	ROLE_TANNER:       {},
	ROLE_HUNTER:       {},
}

// TeamForRole 返回角色牌在发牌时所属的阵营
func TeamForRole(role string) string {
	switch role {
	case ROLE_WEREWOLF, ROLE_MINION:
		return TEAM_WEREWOLF
	case ROLE_TANNER:
		return TEAM_TANNER
	default:
		return TEAM_VILLAGE
	}
}

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoleAssignment 是单个玩家在本局中的角色记录。
// InitialRole 在发牌后永不变化，决定"谁有权执行该角色的一次性行动"；
// CurrentRole 会被交换类行动修改，决定"你此刻到底是什么"。
type RoleAssignment struct {
	PlayerID        string `json:"player_id"`
	PlayerName      string `json:"player_name"`
	InitialRole     string `json:"initial_role"`
	CurrentRole     string `json:"current_role"`
	Team            string `json:"team"`
	ActionCompleted bool   `json:"action_completed"`
	RoleRevealed    bool   `json:"role_revealed"`
	DiedInVote      bool   `json:"died_in_vote"`
}

// 中央三张牌的固定位置
var CenterPositions = []string{"left", "center", "right"}

type CenterCard struct {
	Position string `json:"position"`
	Role     string `json:"role"`
}

// 行动类型
const (
	ACTION_VIEW                  = "VIEW_CARD"
	ACTION_SWAP_PLAYER_TO_PLAYER = "SWAP_PLAYER_TO_PLAYER"
	ACTION_SWAP_PLAYER_TO_CENTER = "SWAP_PLAYER_TO_CENTER"
	ACTION_SWAP_TWO_PLAYERS      = "SWAP_TWO_PLAYERS"
)

// 中央牌在行动记录中以下标字符串 "0"/"1"/"2" 引用；
// CENTER_SENTINEL 是守夜人"另一位在中央牌堆"的哨兵引用。
const CENTER_SENTINEL = "center"

// ActionRecord 是只追加的行动台账条目，用于回放每位玩家的私密所见。
// SourceRef/TargetRef 是玩家 ID、中央牌下标字符串或哨兵值。
type ActionRecord struct {
	ActorPlayerID string    `json:"actor_player_id"`
	Kind          string    `json:"kind"`
	SourceRef     string    `json:"source_ref"`
	TargetRef     string    `json:"target_ref"`
	SourceRole    string    `json:"source_role"`
	TargetRole    string    `json:"target_role"`
	Timestamp     time.Time `json:"timestamp"`
}

type Vote struct {
	VoterID  string    `json:"voter_id"`
	TargetID string    `json:"target_id"`
	CastAt   time.Time `json:"-"`
}

// RoundResults 是结算阶段一次性计算并缓存的结果
type RoundResults struct {
	Deaths      []string        `json:"deaths"`
	WinningTeam string          `json:"winning_team"`
	Players     []PlayerOutcome `json:"players"`
	VoteTally   map[string]int  `json:"vote_summary"`
}

type PlayerOutcome struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	InitialRole string `json:"initial_role"`
	CurrentRole string `json:"current_role"`
	Team        string `json:"team"`
	Died        bool   `json:"died"`
	Won         bool   `json:"won"`
}
