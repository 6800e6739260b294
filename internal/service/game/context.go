package game

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// RoundContext 是一局游戏的全部可变状态。
// 它只能在对应 RoundMachine 的互斥锁内被读写，局与局之间没有共享状态。
type RoundContext struct {
	RoundID string
	Phase   string

	// 发牌顺序即 roster 顺序，一经创建不增不删
	Assignments []*RoleAssignment
	Center      []*CenterCard

	// 只追加
	Actions []ActionRecord

	Votes    []Vote
	VoteNow  map[string]struct{}

	// 夜晚调度状态
	ActiveRoleOrder []string
	StepIndex       int // len(ActiveRoleOrder) 表示夜晚已结束

	// 模拟步骤（该角色只在中央牌堆时）的计时
	SimStartedAt time.Time
	SimDuration  time.Duration

	DiscussionTimer     time.Duration
	DiscussionStartedAt time.Time

	// 结算缓存，只写一次；FinishedAt 在结算完成时一并落下
	Results    *RoundResults
	FinishedAt time.Time

	CreatedAt time.Time

	rng *rand.Rand
	now func() time.Time
}

// CurrentStep 返回当前唤醒步骤的角色名，夜晚结束后返回空串
func (rc *RoundContext) CurrentStep() string {
	if rc.StepIndex < 0 || rc.StepIndex >= len(rc.ActiveRoleOrder) {
		return ""
	}

	return rc.ActiveRoleOrder[rc.StepIndex]
}

// CompletedSteps 返回排在当前步骤之前、已经完成的角色列表
func (rc *RoundContext) CompletedSteps() []string {
	end := rc.StepIndex
	if end > len(rc.ActiveRoleOrder) {
		end = len(rc.ActiveRoleOrder)
	}

	completed := make([]string, 0, end)
	completed = append(completed, rc.ActiveRoleOrder[:end]...)

	return completed
}

func (rc *RoundContext) Assignment(playerID string) (*RoleAssignment, error) {
	for _, ra := range rc.Assignments {
		if ra.PlayerID == playerID {
			return ra, nil
		}
	}

	return nil, fmt.Errorf("%w: 玩家 %s 不在本局中", ErrNotFound, playerID)
}

// AssignmentsWithInitialRole 返回初始角色为 role 的全部玩家记录。
// 这是夜间步骤的"参与者"集合：行动权归属发牌时的持有者。
func (rc *RoundContext) AssignmentsWithInitialRole(role string) []*RoleAssignment {
	var out []*RoleAssignment
	for _, ra := range rc.Assignments {
		if ra.InitialRole == role {
			out = append(out, ra)
		}
	}

	return out
}

// AssignmentsWithCurrentRole 返回当前角色为 role 的全部玩家记录。
// 狼人计数、爪牙看狼等"此刻谁是什么"的问题用它回答。
func (rc *RoundContext) AssignmentsWithCurrentRole(role string) []*RoleAssignment {
	var out []*RoleAssignment
	for _, ra := range rc.Assignments {
		if ra.CurrentRole == role {
			out = append(out, ra)
		}
	}

	return out
}

func (rc *RoundContext) CenterByIndex(idx int) (*CenterCard, error) {
	if idx < 0 || idx >= len(rc.Center) {
		return nil, fmt.Errorf("%w: 中央牌下标 %d 越界", ErrInvalidTarget, idx)
	}

	return rc.Center[idx], nil
}

// CenterHoldsRole 判断中央牌堆里是否有指定角色牌
func (rc *RoundContext) CenterHoldsRole(role string) bool {
	for _, cc := range rc.Center {
		if cc.Role == role {
			return true
		}
	}

	return false
}

func (rc *RoundContext) Roster() []Player {
	players := make([]Player, 0, len(rc.Assignments))
	for _, ra := range rc.Assignments {
		players = append(players, Player{ID: ra.PlayerID, Name: ra.PlayerName})
	}

	return players
}

func (rc *RoundContext) PlayerName(playerID string) string {
	for _, ra := range rc.Assignments {
		if ra.PlayerID == playerID {
			return ra.PlayerName
		}
	}

	return playerID
}

func (rc *RoundContext) HasVoted(voterID string) bool {
	for _, v := range rc.Votes {
		if v.VoterID == voterID {
			return true
		}
	}

	return false
}

// AppendAction 向只追加的行动台账写入一条记录
func (rc *RoundContext) AppendAction(actorID, kind, sourceRef, targetRef, sourceRole, targetRole string) {
	rc.Actions = append(rc.Actions, ActionRecord{
		ActorPlayerID: actorID,
		Kind:          kind,
		SourceRef:     sourceRef,
		TargetRef:     targetRef,
		SourceRole:    sourceRole,
		TargetRole:    targetRole,
		Timestamp:     rc.now(),
	})
}

// ActionsByActor 返回某个玩家的全部行动记录（按写入顺序）
func (rc *RoundContext) ActionsByActor(playerID string) []ActionRecord {
	var out []ActionRecord
	for _, a := range rc.Actions {
		if a.ActorPlayerID == playerID {
			out = append(out, a)
		}
	}

	return out
}

func (rc *RoundContext) simActive() bool {
	return !rc.SimStartedAt.IsZero()
}

func (rc *RoundContext) simExpired() bool {
	return rc.simActive() && rc.now().Sub(rc.SimStartedAt) >= rc.SimDuration
}

// SimRemainingSeconds 返回模拟步骤的剩余秒数，没有模拟步骤时返回 0
func (rc *RoundContext) SimRemainingSeconds() int {
	if !rc.simActive() {
		return 0
	}

	remaining := rc.SimDuration - rc.now().Sub(rc.SimStartedAt)
	if remaining < 0 {
		return 0
	}

	return int(remaining / time.Second)
}

func (rc *RoundContext) discussionStarted() bool {
	return !rc.DiscussionStartedAt.IsZero()
}

// DiscussionRemainingSeconds 返回讨论阶段剩余秒数
func (rc *RoundContext) DiscussionRemainingSeconds() int {
	if !rc.discussionStarted() {
		return int(rc.DiscussionTimer / time.Second)
	}

	remaining := rc.DiscussionTimer - rc.now().Sub(rc.DiscussionStartedAt)
	if remaining < 0 {
		return 0
	}

	return int(remaining / time.Second)
}

func (rc *RoundContext) discussionExpired() bool {
	return rc.discussionStarted() && rc.now().Sub(rc.DiscussionStartedAt) >= rc.DiscussionTimer
}

// VoteNowMajority 返回提前进入投票所需的"过半"人数
func (rc *RoundContext) VoteNowMajority() int {
	return len(rc.Assignments)/2 + 1
}
