package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

const (
	MIN_PLAYERS = 3
	MAX_PLAYERS = 10
)

// NewRoundContext 创建一局游戏：洗牌、发牌、填充中央牌堆并计算唤醒顺序。
// roles 的长度必须等于玩家数 + 3。rng 与 now 由调用方注入，
// 测试中传入固定种子与假时钟即可确定性回放整局。
func NewRoundContext(
	roundID string,
	roster []Player,
	roles []string,
	discussionTimer time.Duration,
	rng *rand.Rand,
	now func() time.Time,
) (*RoundContext, error) {
	if len(roster) < MIN_PLAYERS || len(roster) > MAX_PLAYERS {
		return nil, fmt.Errorf(
			"%w: 玩家数必须在 %d 到 %d 之间，当前为 %d",
			ErrInvalidConfiguration, MIN_PLAYERS, MAX_PLAYERS, len(roster),
		)
	}

	if len(roles) != len(roster)+3 {
		return nil, fmt.Errorf(
			"%w: 需要 %d 张角色牌（玩家数 + 3），当前为 %d",
			ErrInvalidConfiguration, len(roster)+3, len(roles),
		)
	}

	for _, role := range roles {
		if _, ok := KnownRoles[role]; !ok {
			return nil, fmt.Errorf("%w: 未知角色牌 %q", ErrInvalidConfiguration, role)
		}
	}

	seen := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: 玩家 ID 不能为空", ErrInvalidConfiguration)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: 玩家 ID %s 重复", ErrInvalidConfiguration, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	// 洗牌
	shuffled := make([]string, len(roles))
	copy(shuffled, roles)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	// 前 N 张发给玩家
	assignments := make([]*RoleAssignment, 0, len(roster))
	for i, p := range roster {
		role := shuffled[i]
		assignments = append(assignments, &RoleAssignment{
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			InitialRole: role,
			CurrentRole: role,
			Team:        TeamForRole(role),
		})
	}

	// 剩余 3 张按洗牌顺序放入中央 left/center/right
	center := make([]*CenterCard, 0, 3)
	for i, role := range shuffled[len(roster):] {
		center = append(center, &CenterCard{
			Position: CenterPositions[i],
			Role:     role,
		})
	}

	ctx := &RoundContext{
		RoundID:         roundID,
		Phase:           PHASE_NIGHT,
		Assignments:     assignments,
		Center:          center,
		VoteNow:         make(map[string]struct{}),
		ActiveRoleOrder: activeRoleOrder(roles),
		DiscussionTimer: discussionTimer,
		CreatedAt:       now(),
		rng:             rng,
		now:             now,
	}

	zap.L().Info(
		"对局创建完成",
		zap.String("round_id", roundID),
		zap.Int("players", len(roster)),
		zap.Strings("active_role_order", ctx.ActiveRoleOrder),
	)

	return ctx, nil
}

// activeRoleOrder 把固定唤醒顺序过滤为本局实际存在的角色。
// 角色在不在场只取决于发出的牌的多重集合（玩家手中或中央皆可），与洗牌结果无关。
func activeRoleOrder(roles []string) []string {
	dealt := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		dealt[role] = struct{}{}
	}

	order := make([]string, 0, len(NightWakeOrder))
	for _, role := range NightWakeOrder {
		if _, ok := dealt[role]; ok {
			order = append(order, role)
		}
	}

	return order
}
