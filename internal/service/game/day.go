package game

import (
	"fmt"

	"go.uber.org/zap"
)

// 讨论阶段处理器：倒计时 + "立即投票" 提案。
// 倒计时到期或过半数玩家提案立即投票时切到投票阶段。
type discussionPhaseHandler struct {
	onSwitch func(string)
}

func NewDiscussionPhaseHandler() *discussionPhaseHandler {
	return &discussionPhaseHandler{}
}

func (dh *discussionPhaseHandler) Phase() string {
	return PHASE_DISCUSSION
}

func (dh *discussionPhaseHandler) OnEnter(ctx *RoundContext) {
	ctx.DiscussionStartedAt = ctx.now()

	zap.L().Info(
		"讨论阶段开始",
		zap.String("round_id", ctx.RoundID),
		zap.Duration("timer", ctx.DiscussionTimer),
	)
}

func (dh *discussionPhaseHandler) OnHandle(ctx *RoundContext, req RequestWrapper) (ResponseWrapper, error) {
	if tmo := TryUnwrapTimeoutRequest(req); tmo != nil {
		if tmo.Phase == PHASE_DISCUSSION && ctx.discussionExpired() {
			zap.L().Info("讨论时间耗尽，进入投票阶段", zap.String("round_id", ctx.RoundID))
			dh.onSwitch(PHASE_VOTING)
		}

		return WrapResponse(RESP_STATUS, StatusResponse{Status: "ok"}), nil
	}

	if dsq := TryUnwrapDiscussionStatusRequest(req); dsq != nil {
		return WrapResponse(RESP_DISCUSSION_STATUS, dh.status(ctx, dsq.PlayerID)), nil
	}

	if vnq := TryUnwrapVoteNowRequest(req); vnq != nil {
		return dh.handleVoteNow(ctx, vnq)
	}

	return ResponseWrapper{}, fmt.Errorf("%w: 讨论阶段不接受 %s 请求", ErrWrongPhase, req.ReqType)
}

func (dh *discussionPhaseHandler) status(ctx *RoundContext, playerID string) DiscussionStatusResponse {
	_, votedNow := ctx.VoteNow[playerID]

	return DiscussionStatusResponse{
		TimeRemainingSeconds: ctx.DiscussionRemainingSeconds(),
		Phase:                ctx.Phase,
		VoteNowCount:         len(ctx.VoteNow),
		TotalPlayers:         len(ctx.Assignments),
		VoteNowMajority:      ctx.VoteNowMajority(),
		PlayerVotedNow:       votedNow,
	}
}

// handleVoteNow 登记一条"立即投票"提案。重复提案是幂等的。
// 提案数达到过半（n/2+1）时立刻结束讨论。
func (dh *discussionPhaseHandler) handleVoteNow(ctx *RoundContext, req *VoteNowRequest) (ResponseWrapper, error) {
	if _, err := ctx.Assignment(req.PlayerID); err != nil {
		return ResponseWrapper{}, err
	}

	ctx.VoteNow[req.PlayerID] = struct{}{}

	if len(ctx.VoteNow) >= ctx.VoteNowMajority() {
		zap.L().Info(
			"过半数玩家要求立即投票",
			zap.String("round_id", ctx.RoundID),
			zap.Int("vote_now_count", len(ctx.VoteNow)),
		)

		dh.onSwitch(PHASE_VOTING)
	}

	return WrapResponse(RESP_VOTE_NOW, VoteNowResponse{
		Status:          "ok",
		VoteNowCount:    len(ctx.VoteNow),
		TotalPlayers:    len(ctx.Assignments),
		VoteNowMajority: ctx.VoteNowMajority(),
		Phase:           ctx.Phase,
	}), nil
}

func (dh *discussionPhaseHandler) OnExit(ctx *RoundContext) {}

func (dh *discussionPhaseHandler) SetOnSwitch(onSwitch func(string)) {
	dh.onSwitch = onSwitch
}

// 投票阶段处理器：每名玩家对另一名玩家投出一票，
// 票全部投出后切到结算阶段。
type votingPhaseHandler struct {
	onSwitch func(string)
}

func NewVotingPhaseHandler() *votingPhaseHandler {
	return &votingPhaseHandler{}
}

func (vh *votingPhaseHandler) Phase() string {
	return PHASE_VOTING
}

func (vh *votingPhaseHandler) OnEnter(ctx *RoundContext) {
	zap.L().Info(
		"投票阶段开始",
		zap.String("round_id", ctx.RoundID),
		zap.Int("players", len(ctx.Assignments)),
	)
}

func (vh *votingPhaseHandler) OnHandle(ctx *RoundContext, req RequestWrapper) (ResponseWrapper, error) {
	if tmo := TryUnwrapTimeoutRequest(req); tmo != nil {
		// 投票阶段没有计时器，忽略
		return WrapResponse(RESP_STATUS, StatusResponse{Status: "ok"}), nil
	}

	if dsq := TryUnwrapDiscussionStatusRequest(req); dsq != nil {
		_, votedNow := ctx.VoteNow[dsq.PlayerID]

		return WrapResponse(RESP_DISCUSSION_STATUS, DiscussionStatusResponse{
			TimeRemainingSeconds: 0,
			Phase:                ctx.Phase,
			VoteNowCount:         len(ctx.VoteNow),
			TotalPlayers:         len(ctx.Assignments),
			VoteNowMajority:      ctx.VoteNowMajority(),
			PlayerVotedNow:       votedNow,
		}), nil
	}

	if cvq := TryUnwrapCastVoteRequest(req); cvq != nil {
		return vh.handleCastVote(ctx, cvq)
	}

	return ResponseWrapper{}, fmt.Errorf("%w: 投票阶段不接受 %s 请求", ErrWrongPhase, req.ReqType)
}

func (vh *votingPhaseHandler) handleCastVote(ctx *RoundContext, req *CastVoteRequest) (ResponseWrapper, error) {
	if _, err := ctx.Assignment(req.VoterID); err != nil {
		return ResponseWrapper{}, err
	}

	if req.TargetID == req.VoterID {
		return ResponseWrapper{}, fmt.Errorf("%w: 不能投票给自己", ErrInvalidTarget)
	}

	if _, err := ctx.Assignment(req.TargetID); err != nil {
		return ResponseWrapper{}, err
	}

	if ctx.HasVoted(req.VoterID) {
		return ResponseWrapper{}, fmt.Errorf("%w: 每名玩家只能投一票", ErrAlreadyVoted)
	}

	ctx.Votes = append(ctx.Votes, Vote{
		VoterID:  req.VoterID,
		TargetID: req.TargetID,
		CastAt:   ctx.now(),
	})

	zap.L().Debug(
		"玩家完成投票",
		zap.String("round_id", ctx.RoundID),
		zap.String("voter", req.VoterID),
		zap.Int("votes_cast", len(ctx.Votes)),
	)

	if len(ctx.Votes) == len(ctx.Assignments) {
		zap.L().Info("所有票已投出，进入结算阶段", zap.String("round_id", ctx.RoundID))
		vh.onSwitch(PHASE_RESULTS)
	}

	return WrapResponse(RESP_STATUS, StatusResponse{Status: "ok"}), nil
}

func (vh *votingPhaseHandler) OnExit(ctx *RoundContext) {}

func (vh *votingPhaseHandler) SetOnSwitch(onSwitch func(string)) {
	vh.onSwitch = onSwitch
}
