package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PhaseHandler 是各阶段的处理器接口。
// 状态切换通过 onSwitch 回调修改 ctx.Phase，由 RoundMachine 统一执行换手。
type PhaseHandler interface {
	Phase() string

	OnEnter(ctx *RoundContext)
	OnHandle(ctx *RoundContext, req RequestWrapper) (ResponseWrapper, error)
	OnExit(ctx *RoundContext)

	SetOnSwitch(func(nextPhase string))
}

// RoundMachine 是一局游戏的状态机。
// 客户端纯轮询、服务端不推送，因此这里没有事件循环协程：
// 每个请求在本局的互斥锁内同步处理，到期的定时转换（模拟步骤、
// 讨论计时）在处理请求前惰性补演，这保证了所有门控条件都在
// 同一个临界区内被重新校验。
type RoundMachine struct {
	mu      sync.Mutex
	ctx     *RoundContext
	handler PhaseHandler

	createdAt time.Time
}

func NewRoundMachine(ctx *RoundContext) *RoundMachine {
	rm := &RoundMachine{
		ctx:       ctx,
		createdAt: ctx.CreatedAt,
	}

	rm.handler = NewNightPhaseHandler()
	rm.handler.SetOnSwitch(rm.onSwitch)

	// 执行初始 handler 的 OnEnter；
	// 若唤醒顺序为空，夜晚会在这里立即结束
	rm.handler.OnEnter(rm.ctx)
	rm.switchIfNeeded()

	return rm
}

func (rm *RoundMachine) onSwitch(nextPhase string) {
	rm.ctx.Phase = nextPhase
}

// Dispatch 在本局的互斥锁内处理一个请求
func (rm *RoundMachine) Dispatch(req RequestWrapper) (ResponseWrapper, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	// 先补演已到期的定时转换
	rm.tick()

	// 跨阶段的只读请求不依赖当前阶段处理器
	if resp, handled, err := rm.handleShared(req); handled {
		return resp, err
	}

	resp, err := rm.handler.OnHandle(rm.ctx, req)
	if err != nil {
		zap.L().Debug(
			"处理请求失败",
			zap.Error(err),
			zap.String("round_id", rm.ctx.RoundID),
			zap.String("phase", rm.handler.Phase()),
			zap.String("request_type", req.ReqType),
		)
	}

	rm.switchIfNeeded()

	return resp, err
}

// tick 检查到期的定时事件并以超时请求的形式交给当前处理器。
// 循环是必要的：一个模拟步骤结束后可能紧跟另一个模拟步骤。
func (rm *RoundMachine) tick() {
	for {
		var tmo *TimeoutRequest

		switch {
		case rm.ctx.Phase == PHASE_NIGHT && rm.ctx.simExpired():
			tmo = &TimeoutRequest{Phase: PHASE_NIGHT}
		case rm.ctx.Phase == PHASE_DISCUSSION && rm.ctx.discussionExpired():
			tmo = &TimeoutRequest{Phase: PHASE_DISCUSSION}
		default:
			return
		}

		zap.L().Debug(
			"补演超时事件",
			zap.String("round_id", rm.ctx.RoundID),
			zap.String("phase", rm.ctx.Phase),
		)

		if _, err := rm.handler.OnHandle(rm.ctx, WrapRequest(REQ_TIMEOUT, tmo)); err != nil {
			zap.L().Warn(
				"超时事件处理失败",
				zap.Error(err),
				zap.String("round_id", rm.ctx.RoundID),
			)
			return
		}

		rm.switchIfNeeded()
	}
}

func (rm *RoundMachine) switchIfNeeded() {
	for rm.ctx.Phase != rm.handler.Phase() {
		rm.handler.OnExit(rm.ctx)

		var newHandler PhaseHandler

		switch rm.ctx.Phase {
		case PHASE_NIGHT:
			newHandler = NewNightPhaseHandler()
		case PHASE_DISCUSSION:
			newHandler = NewDiscussionPhaseHandler()
		case PHASE_VOTING:
			newHandler = NewVotingPhaseHandler()
		case PHASE_RESULTS:
			newHandler = NewResultsPhaseHandler()
		default:
			zap.L().Error(
				"未知的游戏阶段",
				zap.String("round_id", rm.ctx.RoundID),
				zap.String("phase", rm.ctx.Phase),
			)
			return
		}

		newHandler.SetOnSwitch(rm.onSwitch)
		rm.handler = newHandler

		rm.handler.OnEnter(rm.ctx)
	}
}

// handleShared 处理与阶段无关的只读请求
func (rm *RoundMachine) handleShared(req RequestWrapper) (ResponseWrapper, bool, error) {
	switch req.ReqType {
	case REQ_ROUND_SNAPSHOT:
		return rm.snapshot(), true, nil

	case REQ_ROSTER:
		resp := WrapResponse(RESP_ROSTER, RosterResponse{
			Players: rm.ctx.Roster(),
			Count:   len(rm.ctx.Assignments),
		})
		return resp, true, nil

	case REQ_PLAYER_ROLE:
		prq := TryUnwrapPlayerRoleRequest(req)
		if prq == nil {
			return ResponseWrapper{}, true, fmt.Errorf("%w: 请求载荷非法", ErrInvalidTarget)
		}

		ra, err := rm.ctx.Assignment(prq.PlayerID)
		if err != nil {
			return ResponseWrapper{}, true, err
		}

		return WrapResponse(RESP_PLAYER_ROLE, *ra), true, nil

	case REQ_ACKNOWLEDGE_ROLE:
		arq := TryUnwrapAcknowledgeRoleRequest(req)
		if arq == nil {
			return ResponseWrapper{}, true, fmt.Errorf("%w: 请求载荷非法", ErrInvalidTarget)
		}

		ra, err := rm.ctx.Assignment(arq.PlayerID)
		if err != nil {
			return ResponseWrapper{}, true, err
		}

		ra.RoleRevealed = true

		return WrapResponse(RESP_STATUS, StatusResponse{Status: "ok"}), true, nil

	case REQ_ACTION_HISTORY:
		ahq := TryUnwrapActionHistoryRequest(req)
		if ahq == nil {
			return ResponseWrapper{}, true, fmt.Errorf("%w: 请求载荷非法", ErrInvalidTarget)
		}

		resp, err := projectActionHistory(rm.ctx, ahq.PlayerID)
		if err != nil {
			return ResponseWrapper{}, true, err
		}

		return WrapResponse(RESP_ACTION_HISTORY, resp), true, nil

	case REQ_AVAILABLE_ACTIONS:
		aaq := TryUnwrapAvailableActionsRequest(req)
		if aaq == nil {
			return ResponseWrapper{}, true, fmt.Errorf("%w: 请求载荷非法", ErrInvalidTarget)
		}

		resp, err := availableActions(rm.ctx, aaq.PlayerID)
		if err != nil {
			return ResponseWrapper{}, true, err
		}

		return WrapResponse(RESP_AVAILABLE_ACTIONS, resp), true, nil

	case REQ_GET_VOTES:
		votes := make([]Vote, len(rm.ctx.Votes))
		copy(votes, rm.ctx.Votes)

		resp := WrapResponse(RESP_VOTES, VotesResponse{
			Votes:        votes,
			VotesCast:    len(votes),
			TotalPlayers: len(rm.ctx.Assignments),
		})
		return resp, true, nil
	}

	return ResponseWrapper{}, false, nil
}

func (rm *RoundMachine) snapshot() ResponseWrapper {
	allAcked := len(rm.ctx.Assignments) > 0
	for _, ra := range rm.ctx.Assignments {
		if !ra.RoleRevealed {
			allAcked = false
			break
		}
	}

	return WrapResponse(RESP_ROUND_SNAPSHOT, RoundSnapshotResponse{
		RoundID:                     rm.ctx.RoundID,
		Phase:                       rm.ctx.Phase,
		CurrentStep:                 rm.ctx.CurrentStep(),
		ActiveRoleOrder:             rm.ctx.ActiveRoleOrder,
		Simulated:                   rm.ctx.simActive(),
		SimulatedRemainingSeconds:   rm.ctx.SimRemainingSeconds(),
		AllPlayersAcknowledgedRoles: allAcked,
		CreatedAt:                   rm.ctx.CreatedAt,
	})
}

// Finished 报告本局是否已经结算完毕（供清理协程判断）
func (rm *RoundMachine) Finished() bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	return rm.ctx.Phase == PHASE_RESULTS && rm.ctx.Results != nil
}

func (rm *RoundMachine) CreatedAt() time.Time {
	return rm.createdAt
}

// FinishedAt 返回结算完成的时间，尚未结算时为零值
func (rm *RoundMachine) FinishedAt() time.Time {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	return rm.ctx.FinishedAt
}
