package game

import (
	"testing"
)

func castVotes(ctx *RoundContext, votes map[string]string) {
	for voter, target := range votes {
		ctx.Votes = append(ctx.Votes, Vote{VoterID: voter, TargetID: target, CastAt: ctx.now()})
	}
}

func outcomeOf(t *testing.T, res *RoundResults, playerID string) PlayerOutcome {
	t.Helper()

	for _, p := range res.Players {
		if p.PlayerID == playerID {
			return p
		}
	}

	t.Fatalf("player %s missing from results", playerID)
	return PlayerOutcome{}
}

func TestResults_CyclicVotesKillNobody(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_WEREWOLF, ROLE_VILLAGER, ROLE_VILLAGER},
		[]string{ROLE_VILLAGER, ROLE_SEER, ROLE_TANNER},
		clk,
	)

	// 三人循环指认，每人一票，无人死亡
	castVotes(ctx, map[string]string{"Al": "Bo", "Bo": "Ca", "Ca": "Al"})

	res := computeResults(ctx)

	if len(res.Deaths) != 0 {
		t.Fatalf("max tally 1 must kill nobody, deaths = %v", res.Deaths)
	}
	if res.WinningTeam != TEAM_WEREWOLF {
		t.Fatalf("no werewolf died, winner = %s, want werewolf", res.WinningTeam)
	}
	if !outcomeOf(t, res, "Al").Won || outcomeOf(t, res, "Bo").Won {
		t.Fatalf("werewolf should win, villagers should lose")
	}
}

func TestResults_MajorityKillsWerewolf(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_WEREWOLF, ROLE_VILLAGER, ROLE_VILLAGER},
		[]string{ROLE_VILLAGER, ROLE_SEER, ROLE_TANNER},
		clk,
	)

	castVotes(ctx, map[string]string{"Al": "Bo", "Bo": "Al", "Ca": "Al"})

	res := computeResults(ctx)

	if len(res.Deaths) != 1 || res.Deaths[0] != "Al" {
		t.Fatalf("deaths = %v, want [Al]", res.Deaths)
	}
	if res.WinningTeam != TEAM_VILLAGE {
		t.Fatalf("werewolf died, winner = %s, want village", res.WinningTeam)
	}
	if res.VoteTally["Al"] != 2 {
		t.Fatalf("tally for Al = %d, want 2", res.VoteTally["Al"])
	}
	if !ctx.Assignments[0].DiedInVote {
		t.Fatalf("diedInVote not persisted for Al")
	}
	if outcomeOf(t, res, "Al").Won || !outcomeOf(t, res, "Bo").Won {
		t.Fatalf("village team should win")
	}
}

func TestResults_HunterSingleHopChain(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_HUNTER, ROLE_WEREWOLF, ROLE_VILLAGER, ROLE_VILLAGER},
		[]string{ROLE_VILLAGER, ROLE_SEER, ROLE_TANNER},
		clk,
	)

	// 猎人 Al 被两票处决，他自己投了 Bo
	castVotes(ctx, map[string]string{"Al": "Bo", "Bo": "Al", "Ca": "Al", "Da": "Ca"})

	res := computeResults(ctx)

	if len(res.Deaths) != 2 {
		t.Fatalf("deaths = %v, want hunter plus their target", res.Deaths)
	}

	dead := map[string]bool{}
	for _, pid := range res.Deaths {
		dead[pid] = true
	}
	if !dead["Al"] || !dead["Bo"] {
		t.Fatalf("deaths = %v, want Al and Bo", res.Deaths)
	}

	// 被带走的 Bo 是狼人，村民获胜
	if res.WinningTeam != TEAM_VILLAGE {
		t.Fatalf("winner = %s, want village", res.WinningTeam)
	}
}

func TestResults_HunterChainDoesNotPropagate(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_HUNTER, ROLE_HUNTER, ROLE_VILLAGER, ROLE_WEREWOLF},
		[]string{ROLE_VILLAGER, ROLE_SEER, ROLE_TANNER},
		clk,
	)

	// 猎人 Al 被处决，带走猎人 Bo；被带走的猎人不再继续带人
	castVotes(ctx, map[string]string{"Al": "Bo", "Bo": "Ca", "Ca": "Al", "Da": "Al"})

	res := computeResults(ctx)

	if len(res.Deaths) != 2 {
		t.Fatalf("deaths = %v, want exactly Al and Bo", res.Deaths)
	}

	dead := map[string]bool{}
	for _, pid := range res.Deaths {
		dead[pid] = true
	}
	if !dead["Al"] || !dead["Bo"] || dead["Ca"] {
		t.Fatalf("deaths = %v, want [Al Bo] and Ca alive", res.Deaths)
	}
	if ctx.Assignments[2].DiedInVote {
		t.Fatalf("Ca must survive a second-hop chain")
	}
}

func TestResults_TannerBeatsEveryone(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_TANNER, ROLE_WEREWOLF, ROLE_VILLAGER, ROLE_HUNTER},
		[]string{ROLE_VILLAGER, ROLE_SEER, ROLE_VILLAGER},
		clk,
	)

	// 皮匠和狼人同票同死，皮匠优先
	castVotes(ctx, map[string]string{"Al": "Bo", "Bo": "Al", "Ca": "Al", "Da": "Bo"})

	res := computeResults(ctx)

	if res.WinningTeam != TEAM_TANNER {
		t.Fatalf("winner = %s, want tanner", res.WinningTeam)
	}

	for _, p := range res.Players {
		want := p.CurrentRole == ROLE_TANNER
		if p.Won != want {
			t.Fatalf("player %s won=%v, want %v", p.PlayerID, p.Won, want)
		}
	}
}

func TestResults_MinionWinsWolfLessGame(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_MINION, ROLE_VILLAGER, ROLE_VILLAGER},
		[]string{ROLE_WEREWOLF, ROLE_WEREWOLF, ROLE_SEER},
		clk,
	)

	// 没有玩家是狼人，村民 Bo 被处决，爪牙获胜
	castVotes(ctx, map[string]string{"Al": "Bo", "Bo": "Al", "Ca": "Bo"})

	res := computeResults(ctx)

	if res.WinningTeam != WINNER_MINION {
		t.Fatalf("winner = %s, want minion", res.WinningTeam)
	}
	if !outcomeOf(t, res, "Al").Won {
		t.Fatalf("minion should win")
	}
	if outcomeOf(t, res, "Ca").Won {
		t.Fatalf("villager should lose a minion win")
	}
}

func TestResults_OnlyMinionDiedIsWerewolfWin(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_MINION, ROLE_VILLAGER, ROLE_VILLAGER},
		[]string{ROLE_WEREWOLF, ROLE_WEREWOLF, ROLE_SEER},
		clk,
	)

	// 无狼局里只有爪牙自己死了：狼人阵营获胜
	castVotes(ctx, map[string]string{"Al": "Bo", "Bo": "Al", "Ca": "Al"})

	res := computeResults(ctx)

	if res.WinningTeam != TEAM_WEREWOLF {
		t.Fatalf("winner = %s, want werewolf", res.WinningTeam)
	}
	if !outcomeOf(t, res, "Al").Won {
		t.Fatalf("minion is on the werewolf team and should still win")
	}
}
