package game

import (
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// 各角色的行动解析器。除前置校验（见 authorize）外每个解析器做三件事：
// 施加效果、写入行动台账、将自己标记为已完成并触发步骤完成检查。

// handleNightInfo 返回行动前的角色私密信息（狼人、爪牙、守夜人、失眠者）。
// 只读，不消耗一次性行动。
func (nh *nightPhaseHandler) handleNightInfo(ctx *RoundContext, req *NightInfoRequest) (ResponseWrapper, error) {
	ra, err := ctx.Assignment(req.PlayerID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	step := ctx.CurrentStep()
	if step == "" {
		return ResponseWrapper{}, fmt.Errorf("%w: 夜晚步骤已全部结束", ErrNotCurrentStep)
	}

	if ra.InitialRole != step {
		return ResponseWrapper{}, fmt.Errorf(
			"%w: 只有轮到你的初始角色时才能查看夜间信息",
			ErrNotAuthorized,
		)
	}

	info := NightInfoResponse{
		Role:            step,
		ActionCompleted: ra.ActionCompleted,
	}

	switch step {
	case ROLE_WEREWOLF:
		wolves := ctx.AssignmentsWithCurrentRole(ROLE_WEREWOLF)
		isLone := len(wolves) == 1
		info.IsLoneWolf = &isLone

		others := make([]Player, 0)
		for _, w := range wolves {
			if w.PlayerID != req.PlayerID {
				others = append(others, Player{ID: w.PlayerID, Name: w.PlayerName})
			}
		}
		info.OtherWerewolves = others

	case ROLE_MINION:
		wolves := ctx.AssignmentsWithCurrentRole(ROLE_WEREWOLF)
		list := make([]Player, 0, len(wolves))
		for _, w := range wolves {
			list = append(list, Player{ID: w.PlayerID, Name: w.PlayerName})
		}
		info.Werewolves = list

	case ROLE_MASON:
		if other := nh.otherMason(ctx, req.PlayerID); other != nil {
			info.OtherMason = &Player{ID: other.PlayerID, Name: other.PlayerName}
		} else {
			inCenter := ctx.CenterHoldsRole(ROLE_MASON)
			info.MasonInCenter = &inCenter
		}

	case ROLE_INSOMNIAC:
		info.CurrentRole = ra.CurrentRole

	default:
		return ResponseWrapper{}, fmt.Errorf(
			"%w: 角色 %s 没有可查看的夜间信息",
			ErrInvalidTarget, step,
		)
	}

	return WrapResponse(RESP_NIGHT_INFO, info), nil
}

// handleWerewolfView 处理孤狼查看一张中央牌。
// 注意门控用的是 currentRole 的狼人数量（"此刻有几只狼"），
// 而调用权仍按 initialRole 判定（"谁被发了狼人牌"）。
func (nh *nightPhaseHandler) handleWerewolfView(ctx *RoundContext, req *WerewolfViewRequest) (ResponseWrapper, error) {
	ra, err := nh.authorize(ctx, ROLE_WEREWOLF, req.PlayerID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	if len(ctx.AssignmentsWithCurrentRole(ROLE_WEREWOLF)) != 1 {
		return ResponseWrapper{}, fmt.Errorf(
			"%w: 只有孤狼可以查看中央牌",
			ErrNotAuthorized,
		)
	}

	cc, err := ctx.CenterByIndex(req.CardIndex)
	if err != nil {
		return ResponseWrapper{}, err
	}

	ref := strconv.Itoa(req.CardIndex)
	ctx.AppendAction(req.PlayerID, ACTION_VIEW, ref, ref, cc.Role, cc.Role)

	ra.ActionCompleted = true
	nh.checkStepCompletion(ctx)

	return WrapResponse(RESP_VIEW_CARD, ViewCardResponse{Role: cc.Role}), nil
}

// handleAcknowledge 处理确认类行动（狼人、爪牙、守夜人、失眠者）。
// 确认本身就是这些角色的一次性行动，重复确认会失败。
func (nh *nightPhaseHandler) handleAcknowledge(ctx *RoundContext, req *AcknowledgeRequest) (ResponseWrapper, error) {
	step := ctx.CurrentStep()

	switch step {
	case ROLE_WEREWOLF, ROLE_MINION, ROLE_MASON, ROLE_INSOMNIAC:
	default:
		return ResponseWrapper{}, fmt.Errorf(
			"%w: 步骤 %s 不支持确认操作",
			ErrNotCurrentStep, step,
		)
	}

	ra, err := nh.authorize(ctx, step, req.PlayerID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	switch step {
	case ROLE_WEREWOLF:
		// 每看到一名其他的当前狼人就记一条 View
		for _, w := range ctx.AssignmentsWithCurrentRole(ROLE_WEREWOLF) {
			if w.PlayerID != req.PlayerID {
				ctx.AppendAction(req.PlayerID, ACTION_VIEW, w.PlayerID, w.PlayerID, ROLE_WEREWOLF, ROLE_WEREWOLF)
			}
		}

	case ROLE_MINION:
		for _, w := range ctx.AssignmentsWithCurrentRole(ROLE_WEREWOLF) {
			ctx.AppendAction(req.PlayerID, ACTION_VIEW, w.PlayerID, w.PlayerID, ROLE_WEREWOLF, ROLE_WEREWOLF)
		}

	case ROLE_MASON:
		if other := nh.otherMason(ctx, req.PlayerID); other != nil {
			ctx.AppendAction(req.PlayerID, ACTION_VIEW, other.PlayerID, other.PlayerID, ROLE_MASON, ROLE_MASON)
		} else {
			// 另一张守夜人牌在中央牌堆：写入哨兵引用
			ctx.AppendAction(req.PlayerID, ACTION_VIEW, CENTER_SENTINEL, CENTER_SENTINEL, ROLE_MASON, ROLE_MASON)
		}

	case ROLE_INSOMNIAC:
		// 失眠者排在唤醒顺序最后，看到的是交换尘埃落定后的自己
		ctx.AppendAction(req.PlayerID, ACTION_VIEW, req.PlayerID, req.PlayerID, ra.CurrentRole, ra.CurrentRole)
	}

	ra.ActionCompleted = true
	nh.checkStepCompletion(ctx)

	return WrapResponse(RESP_STATUS, StatusResponse{Status: "ok"}), nil
}

func (nh *nightPhaseHandler) otherMason(ctx *RoundContext, playerID string) *RoleAssignment {
	for _, ra := range ctx.AssignmentsWithCurrentRole(ROLE_MASON) {
		if ra.PlayerID != playerID {
			return ra
		}
	}

	return nil
}

// handleSeerAction 处理预言家行动：看一名其他玩家，或看两张不同的中央牌
func (nh *nightPhaseHandler) handleSeerAction(ctx *RoundContext, req *SeerActionRequest) (ResponseWrapper, error) {
	ra, err := nh.authorize(ctx, ROLE_SEER, req.PlayerID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	switch req.ActionType {
	case SEER_VIEW_PLAYER:
		if req.TargetPlayerID == "" {
			return ResponseWrapper{}, fmt.Errorf("%w: view_player 需要指定目标玩家", ErrInvalidTarget)
		}

		if req.TargetPlayerID == req.PlayerID {
			return ResponseWrapper{}, fmt.Errorf("%w: 预言家不能查看自己的牌", ErrInvalidTarget)
		}

		target, err := ctx.Assignment(req.TargetPlayerID)
		if err != nil {
			return ResponseWrapper{}, err
		}

		ctx.AppendAction(req.PlayerID, ACTION_VIEW, target.PlayerID, target.PlayerID, target.CurrentRole, target.CurrentRole)

		ra.ActionCompleted = true
		nh.checkStepCompletion(ctx)

		return WrapResponse(RESP_SEER_ACTION, SeerActionResponse{Role: target.CurrentRole}), nil

	case SEER_VIEW_CENTER:
		if len(req.CardIndices) != 2 {
			return ResponseWrapper{}, fmt.Errorf("%w: 必须恰好查看两张中央牌", ErrInvalidTarget)
		}

		if req.CardIndices[0] == req.CardIndices[1] {
			return ResponseWrapper{}, fmt.Errorf("%w: 两张中央牌必须不同", ErrInvalidTarget)
		}

		indices := []int{req.CardIndices[0], req.CardIndices[1]}
		sort.Ints(indices)

		// 先校验两个下标，再写流水，避免失败请求留下半条记录
		cards := make([]*CenterCard, 0, 2)
		for _, idx := range indices {
			cc, err := ctx.CenterByIndex(idx)
			if err != nil {
				return ResponseWrapper{}, err
			}
			cards = append(cards, cc)
		}

		roles := make([]string, 0, 2)
		for i, cc := range cards {
			ref := strconv.Itoa(indices[i])
			ctx.AppendAction(req.PlayerID, ACTION_VIEW, ref, ref, cc.Role, cc.Role)
			roles = append(roles, cc.Role)
		}

		ra.ActionCompleted = true
		nh.checkStepCompletion(ctx)

		return WrapResponse(RESP_SEER_ACTION, SeerActionResponse{Roles: roles}), nil
	}

	return ResponseWrapper{}, fmt.Errorf(
		"%w: action_type 必须是 %s 或 %s",
		ErrInvalidTarget, SEER_VIEW_PLAYER, SEER_VIEW_CENTER,
	)
}

// handleRobberAction 处理强盗行动：与目标玩家交换牌并得知新身份
func (nh *nightPhaseHandler) handleRobberAction(ctx *RoundContext, req *RobberActionRequest) (ResponseWrapper, error) {
	ra, err := nh.authorize(ctx, ROLE_ROBBER, req.PlayerID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	if req.TargetPlayerID == req.PlayerID {
		return ResponseWrapper{}, fmt.Errorf("%w: 强盗不能和自己交换", ErrInvalidTarget)
	}

	target, err := ctx.Assignment(req.TargetPlayerID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	robberOld := ra.CurrentRole
	newRole := target.CurrentRole

	ra.CurrentRole = newRole
	target.CurrentRole = robberOld

	// target_role 记录强盗拿到的牌
	ctx.AppendAction(req.PlayerID, ACTION_SWAP_PLAYER_TO_PLAYER, req.PlayerID, target.PlayerID, robberOld, newRole)

	zap.L().Debug(
		"强盗完成交换",
		zap.String("round_id", ctx.RoundID),
		zap.String("robber", req.PlayerID),
		zap.String("target", target.PlayerID),
	)

	ra.ActionCompleted = true
	nh.checkStepCompletion(ctx)

	return WrapResponse(RESP_ROBBER_ACTION, RobberActionResponse{
		NewRole: newRole,
		Message: fmt.Sprintf("你现在是 %s。", newRole),
	}), nil
}

// handleTroublemakerAction 处理捣蛋鬼行动：交换另外两名玩家的牌，自己不看
func (nh *nightPhaseHandler) handleTroublemakerAction(ctx *RoundContext, req *TroublemakerActionRequest) (ResponseWrapper, error) {
	ra, err := nh.authorize(ctx, ROLE_TROUBLEMAKER, req.PlayerID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	if req.Player1ID == req.Player2ID {
		return ResponseWrapper{}, fmt.Errorf("%w: 必须选择两名不同的玩家", ErrInvalidTarget)
	}

	if req.Player1ID == req.PlayerID || req.Player2ID == req.PlayerID {
		return ResponseWrapper{}, fmt.Errorf("%w: 捣蛋鬼不能交换自己的牌", ErrInvalidTarget)
	}

	p1, err := ctx.Assignment(req.Player1ID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	p2, err := ctx.Assignment(req.Player2ID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	r1, r2 := p1.CurrentRole, p2.CurrentRole
	p1.CurrentRole = r2
	p2.CurrentRole = r1

	ctx.AppendAction(req.PlayerID, ACTION_SWAP_TWO_PLAYERS, p1.PlayerID, p2.PlayerID, r1, r2)

	ra.ActionCompleted = true
	nh.checkStepCompletion(ctx)

	return WrapResponse(RESP_MESSAGE, MessageResponse{
		Message: "你交换了两名玩家的牌。",
	}), nil
}

// handleDrunkAction 处理酒鬼行动：与一张中央牌交换，自己不看新牌
func (nh *nightPhaseHandler) handleDrunkAction(ctx *RoundContext, req *DrunkActionRequest) (ResponseWrapper, error) {
	ra, err := nh.authorize(ctx, ROLE_DRUNK, req.PlayerID)
	if err != nil {
		return ResponseWrapper{}, err
	}

	cc, err := ctx.CenterByIndex(req.CardIndex)
	if err != nil {
		return ResponseWrapper{}, err
	}

	drunkOld := ra.CurrentRole
	centerOld := cc.Role

	ref := strconv.Itoa(req.CardIndex)
	ctx.AppendAction(req.PlayerID, ACTION_SWAP_PLAYER_TO_CENTER, req.PlayerID, ref, drunkOld, centerOld)

	ra.CurrentRole = centerOld
	cc.Role = drunkOld

	ra.ActionCompleted = true
	nh.checkStepCompletion(ctx)

	return WrapResponse(RESP_MESSAGE, MessageResponse{
		Message: fmt.Sprintf("你和中央牌【%s】交换了牌，你不知道自己的新身份。", centerLabel(req.CardIndex)),
	}), nil
}

// centerLabel 返回中央牌位置的展示名
func centerLabel(idx int) string {
	labels := []string{"左", "中", "右"}
	if idx < 0 || idx >= len(labels) {
		return strconv.Itoa(idx)
	}

	return labels[idx]
}
