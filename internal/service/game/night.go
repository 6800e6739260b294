package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// 模拟步骤（角色只在中央牌堆时）的随机时长区间，单位秒
const (
	SIM_STEP_MIN_SECONDS = 15
	SIM_STEP_MAX_SECONDS = 40
)

// 夜晚阶段处理器：沿 ActiveRoleOrder 驱动各角色的唤醒步骤。
// 一个步骤的"参与者"是 initialRole 等于该步骤的玩家——行动权
// 永远属于发牌时的持有者，中途换到这张牌的玩家不会再触发它。
type nightPhaseHandler struct {
	onSwitch func(string)
}

func NewNightPhaseHandler() *nightPhaseHandler {
	return &nightPhaseHandler{}
}

func (nh *nightPhaseHandler) Phase() string {
	return PHASE_NIGHT
}

func (nh *nightPhaseHandler) OnEnter(ctx *RoundContext) {
	ctx.StepIndex = 0
	nh.gateStep(ctx)
}

// gateStep 对当前步骤做门控：
// 没有剩余步骤则结束夜晚；没有参与者（角色只在中央）则启动模拟步骤；
// 参与者全部完成则推进到下一步骤。否则停在原地等待行动请求。
func (nh *nightPhaseHandler) gateStep(ctx *RoundContext) {
	for {
		step := ctx.CurrentStep()
		if step == "" {
			nh.endNight(ctx)
			return
		}

		participants := ctx.AssignmentsWithInitialRole(step)
		if len(participants) == 0 {
			// 该角色的牌全部在中央：启动随机时长的模拟步骤
			ctx.SimStartedAt = ctx.now()
			ctx.SimDuration = time.Duration(
				SIM_STEP_MIN_SECONDS+ctx.rng.IntN(SIM_STEP_MAX_SECONDS-SIM_STEP_MIN_SECONDS+1),
			) * time.Second

			zap.L().Info(
				"启动模拟步骤",
				zap.String("round_id", ctx.RoundID),
				zap.String("role", step),
				zap.Duration("duration", ctx.SimDuration),
			)
			return
		}

		allDone := true
		for _, ra := range participants {
			if !ra.ActionCompleted {
				allDone = false
				break
			}
		}

		if !allDone {
			return
		}

		ctx.StepIndex++
	}
}

// advanceStep 结束当前步骤并对下一步骤重新门控
func (nh *nightPhaseHandler) advanceStep(ctx *RoundContext) {
	zap.L().Info(
		"夜晚步骤完成",
		zap.String("round_id", ctx.RoundID),
		zap.String("role", ctx.CurrentStep()),
	)

	ctx.SimStartedAt = time.Time{}
	ctx.SimDuration = 0
	ctx.StepIndex++

	nh.gateStep(ctx)
}

// checkStepCompletion 在某个参与者行动完成后检查整个步骤是否完成
func (nh *nightPhaseHandler) checkStepCompletion(ctx *RoundContext) {
	step := ctx.CurrentStep()
	if step == "" {
		return
	}

	participants := ctx.AssignmentsWithInitialRole(step)
	if len(participants) == 0 {
		// 模拟步骤由计时推进，不在这里处理
		return
	}

	for _, ra := range participants {
		if !ra.ActionCompleted {
			return
		}
	}

	nh.advanceStep(ctx)
}

func (nh *nightPhaseHandler) endNight(ctx *RoundContext) {
	zap.L().Info(
		"夜晚结束，进入讨论阶段",
		zap.String("round_id", ctx.RoundID),
	)

	nh.onSwitch(PHASE_DISCUSSION)
}

func (nh *nightPhaseHandler) OnHandle(ctx *RoundContext, req RequestWrapper) (ResponseWrapper, error) {
	// 处理超时事件：到期的模拟步骤视同全部（零个）参与者已完成
	if tmo := TryUnwrapTimeoutRequest(req); tmo != nil {
		if tmo.Phase == PHASE_NIGHT && ctx.simExpired() {
			nh.advanceStep(ctx)
		}

		return WrapResponse(RESP_STATUS, StatusResponse{Status: "ok"}), nil
	}

	if req.ReqType == REQ_NIGHT_STATUS {
		return WrapResponse(RESP_NIGHT_STATUS, NightStatusResponse{
			CurrentStep:               ctx.CurrentStep(),
			CompletedSteps:            ctx.CompletedSteps(),
			ActiveRoles:               ctx.ActiveRoleOrder,
			Simulated:                 ctx.simActive(),
			SimulatedRemainingSeconds: ctx.SimRemainingSeconds(),
		}), nil
	}

	if niq := TryUnwrapNightInfoRequest(req); niq != nil {
		return nh.handleNightInfo(ctx, niq)
	}

	if wvq := TryUnwrapWerewolfViewRequest(req); wvq != nil {
		return nh.handleWerewolfView(ctx, wvq)
	}

	if akq := TryUnwrapAcknowledgeRequest(req); akq != nil {
		return nh.handleAcknowledge(ctx, akq)
	}

	if saq := TryUnwrapSeerActionRequest(req); saq != nil {
		return nh.handleSeerAction(ctx, saq)
	}

	if raq := TryUnwrapRobberActionRequest(req); raq != nil {
		return nh.handleRobberAction(ctx, raq)
	}

	if taq := TryUnwrapTroublemakerActionRequest(req); taq != nil {
		return nh.handleTroublemakerAction(ctx, taq)
	}

	if daq := TryUnwrapDrunkActionRequest(req); daq != nil {
		return nh.handleDrunkAction(ctx, daq)
	}

	return ResponseWrapper{}, fmt.Errorf("%w: 夜晚阶段不接受 %s 请求", ErrWrongPhase, req.ReqType)
}

func (nh *nightPhaseHandler) OnExit(ctx *RoundContext) {
	ctx.SimStartedAt = time.Time{}
	ctx.SimDuration = 0
}

func (nh *nightPhaseHandler) SetOnSwitch(onSwitch func(string)) {
	nh.onSwitch = onSwitch
}

// authorize 是所有角色行动共用的前置校验：
// 步骤匹配、玩家在局中、初始角色匹配、一次性行动未用过。
func (nh *nightPhaseHandler) authorize(ctx *RoundContext, role, playerID string) (*RoleAssignment, error) {
	if ctx.CurrentStep() != role {
		return nil, fmt.Errorf(
			"%w: %s 不是当前步骤（当前为 %s）",
			ErrNotCurrentStep, role, ctx.CurrentStep(),
		)
	}

	ra, err := ctx.Assignment(playerID)
	if err != nil {
		return nil, err
	}

	if ra.InitialRole != role {
		return nil, fmt.Errorf(
			"%w: 只有初始角色为 %s 的玩家可以执行该行动",
			ErrNotAuthorized, role,
		)
	}

	if ra.ActionCompleted {
		return nil, fmt.Errorf("%w: %s 的夜间行动已执行", ErrAlreadyActed, role)
	}

	return ra, nil
}
