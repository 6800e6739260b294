package game

import "time"

// 对局快照（任意阶段可读，读取本身会惰性推进到期的转换）

type RoundSnapshotResponse struct {
	RoundID                     string   `json:"round_id"`
	Phase                       string   `json:"phase"`
	CurrentStep                 string   `json:"current_step,omitempty"`
	ActiveRoleOrder             []string `json:"active_role_order"`
	Simulated                   bool     `json:"simulated_step"`
	SimulatedRemainingSeconds   int      `json:"simulated_remaining_seconds,omitempty"`
	AllPlayersAcknowledgedRoles bool     `json:"all_players_acknowledged_roles"`
	CreatedAt                   time.Time `json:"created_at"`
}

type RosterResponse struct {
	Players []Player `json:"players"`
	Count   int      `json:"count"`
}

type PlayerRoleRequest struct {
	PlayerID string `json:"player_id"`
}

type AcknowledgeRoleRequest struct {
	PlayerID string `json:"player_id"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// 夜晚阶段

type NightStatusResponse struct {
	CurrentStep               string   `json:"current_step,omitempty"`
	CompletedSteps            []string `json:"completed_steps"`
	ActiveRoles               []string `json:"active_roles"`
	Simulated                 bool     `json:"simulated_step"`
	SimulatedRemainingSeconds int      `json:"simulated_remaining_seconds,omitempty"`
}

type NightInfoRequest struct {
	PlayerID string `json:"player_id"`
}

// NightInfoResponse 按角色返回行动前的私密信息，未涉及的字段留空
type NightInfoResponse struct {
	Role            string   `json:"role"`
	CurrentRole     string   `json:"current_role,omitempty"`
	IsLoneWolf      *bool    `json:"is_lone_wolf,omitempty"`
	OtherWerewolves []Player `json:"other_werewolves,omitempty"`
	Werewolves      []Player `json:"werewolves,omitempty"`
	OtherMason      *Player  `json:"other_mason,omitempty"`
	MasonInCenter   *bool    `json:"mason_in_center,omitempty"`
	ActionCompleted bool     `json:"action_completed"`
}

type WerewolfViewRequest struct {
	PlayerID  string `json:"player_id"`
	CardIndex int    `json:"card_index"`
}

type ViewCardResponse struct {
	Role string `json:"role"`
}

type AcknowledgeRequest struct {
	PlayerID string `json:"player_id"`
}

// Seer 的两种行动二选一
const (
	SEER_VIEW_PLAYER = "view_player"
	SEER_VIEW_CENTER = "view_center"
)

type SeerActionRequest struct {
	PlayerID       string `json:"player_id"`
	ActionType     string `json:"action_type"`
	TargetPlayerID string `json:"target_player_id,omitempty"`
	CardIndices    []int  `json:"card_indices,omitempty"`
}

type SeerActionResponse struct {
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

type RobberActionRequest struct {
	PlayerID       string `json:"player_id"`
	TargetPlayerID string `json:"target_player_id"`
}

type RobberActionResponse struct {
	NewRole string `json:"new_role"`
	Message string `json:"message"`
}

type TroublemakerActionRequest struct {
	PlayerID  string `json:"player_id"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
}

type DrunkActionRequest struct {
	PlayerID  string `json:"player_id"`
	CardIndex int    `json:"card_index"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AvailableActionsRequest struct {
	PlayerID string `json:"player_id"`
}

type AvailableActionsResponse struct {
	ActionablePlayers     []Player `json:"actionable_players"`
	ActionableCenterCards []int    `json:"actionable_center_cards"`
	Instructions          string   `json:"instructions"`
}

type ActionHistoryRequest struct {
	PlayerID string `json:"player_id"`
}

type ActionEntry struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type ActionHistoryResponse struct {
	Actions []ActionEntry `json:"actions"`
}

// 白天阶段

type DiscussionStatusRequest struct {
	PlayerID string `json:"player_id,omitempty"`
}

type DiscussionStatusResponse struct {
	TimeRemainingSeconds int    `json:"time_remaining_seconds"`
	Phase                string `json:"phase"`
	VoteNowCount         int    `json:"vote_now_count"`
	TotalPlayers         int    `json:"total_players"`
	VoteNowMajority      int    `json:"vote_now_majority"`
	PlayerVotedNow       bool   `json:"current_player_voted_now"`
}

type VoteNowRequest struct {
	PlayerID string `json:"player_id"`
}

type VoteNowResponse struct {
	Status          string `json:"status"`
	VoteNowCount    int    `json:"vote_now_count"`
	TotalPlayers    int    `json:"total_players"`
	VoteNowMajority int    `json:"vote_now_majority"`
	Phase           string `json:"phase"`
}

type CastVoteRequest struct {
	VoterID  string `json:"voter_id"`
	TargetID string `json:"target_id"`
}

type VotesResponse struct {
	Votes        []Vote `json:"votes"`
	VotesCast    int    `json:"votes_cast"`
	TotalPlayers int    `json:"total_players"`
}

// TimeoutRequest 由 RoundMachine 在惰性推进时注入，客户端不会发送它
type TimeoutRequest struct {
	Phase string `json:"phase"`
}
