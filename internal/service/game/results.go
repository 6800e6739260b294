package game

import (
	"fmt"

	"go.uber.org/zap"
)

// 结算阶段处理器。进入时一次性算出死亡与胜负并缓存在 ctx.Results，
// 之后的结果查询全部读缓存，结算本身是不可变的。
type resultsPhaseHandler struct {
	onSwitch func(string)
}

func NewResultsPhaseHandler() *resultsPhaseHandler {
	return &resultsPhaseHandler{}
}

func (rh *resultsPhaseHandler) Phase() string {
	return PHASE_RESULTS
}

func (rh *resultsPhaseHandler) OnEnter(ctx *RoundContext) {
	if ctx.Results == nil {
		ctx.Results = computeResults(ctx)
		ctx.FinishedAt = ctx.now()

		zap.L().Info(
			"本局结算完成",
			zap.String("round_id", ctx.RoundID),
			zap.String("winning_team", ctx.Results.WinningTeam),
			zap.Strings("deaths", ctx.Results.Deaths),
		)
	}
}

func (rh *resultsPhaseHandler) OnHandle(ctx *RoundContext, req RequestWrapper) (ResponseWrapper, error) {
	if tmo := TryUnwrapTimeoutRequest(req); tmo != nil {
		return WrapResponse(RESP_STATUS, StatusResponse{Status: "ok"}), nil
	}

	if req.ReqType == REQ_GET_RESULTS {
		return WrapResponse(RESP_RESULTS, *ctx.Results), nil
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

	return ResponseWrapper{}, fmt.Errorf("%w: 本局已结算，不接受 %s 请求", ErrWrongPhase, req.ReqType)
}

func (rh *resultsPhaseHandler) OnExit(ctx *RoundContext) {}

func (rh *resultsPhaseHandler) SetOnSwitch(onSwitch func(string)) {
	rh.onSwitch = onSwitch
}

// computeResults 计算死亡名单和获胜阵营。
// 计票规则：最高票不超过 1 票时无人死亡，否则最高票全部死亡；
// 猎人死亡会带走他投的目标（只传导一跳，且以初始死亡名单为准）。
func computeResults(ctx *RoundContext) *RoundResults {
	tally := make(map[string]int)
	for _, v := range ctx.Votes {
		tally[v.TargetID]++
	}

	deaths := make([]string, 0)
	if len(tally) > 0 {
		maxVotes := 0
		for _, n := range tally {
			if n > maxVotes {
				maxVotes = n
			}
		}

		if maxVotes > 1 {
			for _, ra := range ctx.Assignments {
				if tally[ra.PlayerID] == maxVotes {
					deaths = append(deaths, ra.PlayerID)
				}
			}
		}
	}

	// 猎人连锁：只从初始死亡名单出发，被猎人带走的人即使也是猎人
	// 也不再继续传导
	voteTarget := make(map[string]string)
	for _, v := range ctx.Votes {
		voteTarget[v.VoterID] = v.TargetID
	}

	dead := make(map[string]bool, len(deaths))
	voteDead := make(map[string]bool, len(deaths))
	for _, pid := range deaths {
		dead[pid] = true
		voteDead[pid] = true
	}

	for _, ra := range ctx.Assignments {
		if ra.CurrentRole != ROLE_HUNTER || !voteDead[ra.PlayerID] {
			continue
		}

		if target := voteTarget[ra.PlayerID]; target != "" && !dead[target] {
			deaths = append(deaths, target)
			dead[target] = true
		}
	}

	for _, ra := range ctx.Assignments {
		ra.DiedInVote = dead[ra.PlayerID]
	}

	winningTeam := decideWinner(ctx, dead)

	players := make([]PlayerOutcome, 0, len(ctx.Assignments))
	for _, ra := range ctx.Assignments {
		players = append(players, PlayerOutcome{
			PlayerID:    ra.PlayerID,
			PlayerName:  ra.PlayerName,
			InitialRole: ra.InitialRole,
			CurrentRole: ra.CurrentRole,
			Team:        ra.Team,
			Died:        ra.DiedInVote,
			Won:         playerWon(ra, winningTeam),
		})
	}

	return &RoundResults{
		Deaths:      deaths,
		WinningTeam: winningTeam,
		Players:     players,
		VoteTally:   tally,
	}
}

// decideWinner 按优先级裁定获胜阵营：
// 皮匠死亡 > 狼人死亡（村民胜）> 无狼局爪牙规则 > 狼人胜
func decideWinner(ctx *RoundContext, dead map[string]bool) string {
	tannerDied := false
	anyWerewolfDied := false
	werewolfCount := 0
	minionExists := false
	otherThanMinionDied := false

	for _, ra := range ctx.Assignments {
		switch ra.CurrentRole {
		case ROLE_WEREWOLF:
			werewolfCount++
			if dead[ra.PlayerID] {
				anyWerewolfDied = true
			}
		case ROLE_TANNER:
			if dead[ra.PlayerID] {
				tannerDied = true
			}
		case ROLE_MINION:
			minionExists = true
		}

		if dead[ra.PlayerID] && ra.CurrentRole != ROLE_MINION {
			otherThanMinionDied = true
		}
	}

	switch {
	case tannerDied:
		return TEAM_TANNER
	case anyWerewolfDied:
		return TEAM_VILLAGE
	case werewolfCount == 0 && minionExists && otherThanMinionDied:
		// 无狼局：只要有爪牙以外的玩家死亡，爪牙获胜
		return WINNER_MINION
	default:
		return TEAM_WEREWOLF
	}
}

func playerWon(ra *RoleAssignment, winningTeam string) bool {
	switch winningTeam {
	case TEAM_TANNER:
		return ra.CurrentRole == ROLE_TANNER
	case TEAM_VILLAGE:
		return ra.Team == TEAM_VILLAGE
	case TEAM_WEREWOLF:
		return ra.Team == TEAM_WEREWOLF || ra.CurrentRole == ROLE_MINION
	case WINNER_MINION:
		return ra.CurrentRole == ROLE_MINION
	}

	return false
}
