package game

import (
	"fmt"
	"strconv"
	"strings"
)

// projectActionHistory 把某玩家的行动台账投影为可读的履历。
// 纯派生状态：只读台账和该玩家的角色记录，重复调用结果不变。
func projectActionHistory(ctx *RoundContext, playerID string) (ActionHistoryResponse, error) {
	ra, err := ctx.Assignment(playerID)
	if err != nil {
		return ActionHistoryResponse{}, err
	}

	records := ctx.ActionsByActor(playerID)
	entries := make([]ActionEntry, 0, len(records))

	// 狼人/爪牙确认时会写多条"看到狼人"的 View 记录，聚合成一行
	fellowWolves := make([]string, 0)

	flushWolves := func() {
		if len(fellowWolves) == 0 {
			return
		}

		var desc string
		if ra.InitialRole == ROLE_MINION {
			desc = fmt.Sprintf("狼人是：%s", strings.Join(fellowWolves, "、"))
		} else {
			desc = fmt.Sprintf("你的狼人同伴是：%s", strings.Join(fellowWolves, "、"))
		}

		entries = append(entries, ActionEntry{Kind: ACTION_VIEW, Description: desc})
		fellowWolves = fellowWolves[:0]
	}

	for _, rec := range records {
		if rec.Kind == ACTION_VIEW && rec.TargetRole == ROLE_WEREWOLF &&
			rec.TargetRef != playerID && !isCenterRef(rec.TargetRef) &&
			(ra.InitialRole == ROLE_WEREWOLF || ra.InitialRole == ROLE_MINION) {
			fellowWolves = append(fellowWolves, ctx.PlayerName(rec.TargetRef))
			continue
		}

		flushWolves()

		switch rec.Kind {
		case ACTION_VIEW:
			entries = append(entries, ActionEntry{
				Kind:        ACTION_VIEW,
				Description: describeView(ctx, playerID, rec),
			})

		case ACTION_SWAP_PLAYER_TO_PLAYER:
			entries = append(entries, ActionEntry{
				Kind: ACTION_SWAP_PLAYER_TO_PLAYER,
				Description: fmt.Sprintf(
					"你和 %s 交换了牌，你现在是：%s",
					ctx.PlayerName(rec.TargetRef), rec.TargetRole,
				),
			})

		case ACTION_SWAP_PLAYER_TO_CENTER:
			idx, _ := strconv.Atoi(rec.TargetRef)
			entries = append(entries, ActionEntry{
				Kind: ACTION_SWAP_PLAYER_TO_CENTER,
				Description: fmt.Sprintf(
					"你和中央牌【%s】交换了牌，你不知道自己的新身份",
					centerLabel(idx),
				),
			})

		case ACTION_SWAP_TWO_PLAYERS:
			entries = append(entries, ActionEntry{
				Kind: ACTION_SWAP_TWO_PLAYERS,
				Description: fmt.Sprintf(
					"你交换了 %s 和 %s 的牌",
					ctx.PlayerName(rec.SourceRef), ctx.PlayerName(rec.TargetRef),
				),
			})
		}
	}

	flushWolves()

	return ActionHistoryResponse{Actions: entries}, nil
}

func describeView(ctx *RoundContext, playerID string, rec ActionRecord) string {
	switch {
	case rec.TargetRef == CENTER_SENTINEL:
		return "另一名守夜人不在场上，另一张守夜人牌在中央牌堆"

	case isCenterRef(rec.TargetRef):
		idx, _ := strconv.Atoi(rec.TargetRef)
		return fmt.Sprintf("你查看了中央牌【%s】，这张牌是：%s", centerLabel(idx), rec.TargetRole)

	case rec.TargetRef == playerID:
		return fmt.Sprintf("你查看了自己的牌，你现在是：%s", rec.TargetRole)

	default:
		return fmt.Sprintf("你查看了 %s 的牌，那是：%s", ctx.PlayerName(rec.TargetRef), rec.TargetRole)
	}
}

// isCenterRef 判断行动记录里的引用是否指向中央牌（"0"/"1"/"2"）
func isCenterRef(ref string) bool {
	return ref == "0" || ref == "1" || ref == "2"
}

// availableActions 返回当前步骤下该玩家可以选择的目标。
// 读侧口径与行动鉴权一致：按 initialRole 判定是否轮到该玩家，
// 不在自己步骤时只返回等待提示，绝不报错。
func availableActions(ctx *RoundContext, playerID string) (AvailableActionsResponse, error) {
	ra, err := ctx.Assignment(playerID)
	if err != nil {
		return AvailableActionsResponse{}, err
	}

	resp := AvailableActionsResponse{
		ActionablePlayers:     []Player{},
		ActionableCenterCards: []int{},
	}

	if ctx.Phase != PHASE_NIGHT {
		resp.Instructions = "夜晚阶段之外没有可执行的行动。"
		return resp, nil
	}

	step := ctx.CurrentStep()
	if step == "" || ra.InitialRole != step {
		resp.Instructions = fmt.Sprintf("等待 %s 完成行动……", stepLabel(step))
		return resp, nil
	}

	if ra.ActionCompleted {
		resp.Instructions = "你已完成本局的夜间行动。"
		return resp, nil
	}

	switch step {
	case ROLE_WEREWOLF:
		if len(ctx.AssignmentsWithCurrentRole(ROLE_WEREWOLF)) == 1 {
			resp.ActionableCenterCards = []int{0, 1, 2}
			resp.Instructions = "你是孤狼，选择一张中央牌查看。"
		} else {
			resp.Instructions = "你是狼人，确认你的同伴。"
		}

	case ROLE_MINION:
		resp.Instructions = "你是爪牙，确认谁是狼人。"

	case ROLE_MASON:
		resp.Instructions = "你是守夜人，确认另一名守夜人。"

	case ROLE_SEER:
		resp.ActionablePlayers = othersOf(ctx, playerID)
		resp.ActionableCenterCards = []int{0, 1, 2}
		resp.Instructions = "你是预言家，查看一名玩家的牌，或查看两张中央牌。"

	case ROLE_ROBBER:
		resp.ActionablePlayers = othersOf(ctx, playerID)
		resp.Instructions = "你是强盗，选择一名玩家交换牌。"

	case ROLE_TROUBLEMAKER:
		resp.ActionablePlayers = othersOf(ctx, playerID)
		resp.Instructions = "你是捣蛋鬼，选择两名其他玩家交换他们的牌（不能查看）。"

	case ROLE_DRUNK:
		resp.ActionableCenterCards = []int{0, 1, 2}
		resp.Instructions = "你是酒鬼，选择一张中央牌与之交换（不能查看）。"

	case ROLE_INSOMNIAC:
		resp.Instructions = "你是失眠者，确认你现在的牌。"
	}

	return resp, nil
}

func othersOf(ctx *RoundContext, playerID string) []Player {
	others := make([]Player, 0, len(ctx.Assignments)-1)
	for _, ra := range ctx.Assignments {
		if ra.PlayerID != playerID {
			others = append(others, Player{ID: ra.PlayerID, Name: ra.PlayerName})
		}
	}

	return others
}

func stepLabel(step string) string {
	if step == "" {
		return "其他角色"
	}

	return step
}
