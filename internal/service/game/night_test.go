package game

import (
	"errors"
	"testing"
	"time"
)

type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: fixedNow()}
}

func (tc *testClock) Now() time.Time {
	return tc.t
}

func (tc *testClock) Advance(d time.Duration) {
	tc.t = tc.t.Add(d)
}

// newTestContext 绕过洗牌，按给定顺序直接摆牌：
// playerRoles[i] 发给第 i 名玩家，centerRoles 依次放入中央
func newTestContext(playerRoles, centerRoles []string, clk *testClock) *RoundContext {
	roster := testRoster(len(playerRoles))

	assignments := make([]*RoleAssignment, 0, len(playerRoles))
	for i, role := range playerRoles {
		assignments = append(assignments, &RoleAssignment{
			PlayerID:    roster[i].ID,
			PlayerName:  roster[i].Name,
			InitialRole: role,
			CurrentRole: role,
			Team:        TeamForRole(role),
		})
	}

	center := make([]*CenterCard, 0, 3)
	for i, role := range centerRoles {
		center = append(center, &CenterCard{Position: CenterPositions[i], Role: role})
	}

	all := append(append([]string{}, playerRoles...), centerRoles...)

	return &RoundContext{
		RoundID:         "r1",
		Phase:           PHASE_NIGHT,
		Assignments:     assignments,
		Center:          center,
		VoteNow:         make(map[string]struct{}),
		ActiveRoleOrder: activeRoleOrder(all),
		DiscussionTimer: 5 * time.Minute,
		CreatedAt:       clk.Now(),
		rng:             fixedRand(),
		now:             clk.Now,
	}
}

func mustDispatch(t *testing.T, rm *RoundMachine, req RequestWrapper) ResponseWrapper {
	t.Helper()

	resp, err := rm.Dispatch(req)
	if err != nil {
		t.Fatalf("%s failed: %v", req.ReqType, err)
	}

	return resp
}

func nightStatus(t *testing.T, rm *RoundMachine) NightStatusResponse {
	t.Helper()

	resp := mustDispatch(t, rm, WrapRequest(REQ_NIGHT_STATUS, nil))

	return resp.Data.(NightStatusResponse)
}

func TestNightScheduler_WakeOrderMonotonic(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_WEREWOLF, ROLE_SEER, ROLE_ROBBER, ROLE_TROUBLEMAKER, ROLE_INSOMNIAC},
		[]string{ROLE_VILLAGER, ROLE_VILLAGER, ROLE_TANNER},
		clk,
	)
	rm := NewRoundMachine(ctx)

	wantOrder := []string{ROLE_WEREWOLF, ROLE_SEER, ROLE_ROBBER, ROLE_TROUBLEMAKER, ROLE_INSOMNIAC}
	for i, want := range wantOrder {
		if got := ctx.ActiveRoleOrder[i]; got != want {
			t.Fatalf("wake order[%d] = %s, want %s", i, got, want)
		}
	}

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_WEREWOLF {
		t.Fatalf("first step = %s, want Werewolf", st.CurrentStep)
	}

	// 孤狼看一张中央牌
	mustDispatch(t, rm, WrapRequest(REQ_WEREWOLF_VIEW, &WerewolfViewRequest{PlayerID: "Al", CardIndex: 0}))

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_SEER {
		t.Fatalf("after werewolf, step = %s, want Seer", st.CurrentStep)
	}

	mustDispatch(t, rm, WrapRequest(REQ_SEER_ACTION, &SeerActionRequest{
		PlayerID: "Bo", ActionType: SEER_VIEW_PLAYER, TargetPlayerID: "Al",
	}))

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_ROBBER {
		t.Fatalf("after seer, step = %s, want Robber", st.CurrentStep)
	}

	mustDispatch(t, rm, WrapRequest(REQ_ROBBER_ACTION, &RobberActionRequest{
		PlayerID: "Ca", TargetPlayerID: "Al",
	}))

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_TROUBLEMAKER {
		t.Fatalf("after robber, step = %s, want Troublemaker", st.CurrentStep)
	}

	mustDispatch(t, rm, WrapRequest(REQ_TROUBLEMAKER_ACTION, &TroublemakerActionRequest{
		PlayerID: "Da", Player1ID: "Al", Player2ID: "Bo",
	}))

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_INSOMNIAC {
		t.Fatalf("after troublemaker, step = %s, want Insomniac", st.CurrentStep)
	}

	mustDispatch(t, rm, WrapRequest(REQ_ACKNOWLEDGE, &AcknowledgeRequest{PlayerID: "Ev"}))

	if ctx.Phase != PHASE_DISCUSSION {
		t.Fatalf("night should end after last step, phase = %s", ctx.Phase)
	}

	completed := ctx.CompletedSteps()
	if len(completed) != len(wantOrder) {
		t.Fatalf("completed steps %v, want all of %v", completed, wantOrder)
	}
}

func TestNightActions_OneShot(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_MASON, ROLE_MASON, ROLE_SEER},
		[]string{ROLE_VILLAGER, ROLE_VILLAGER, ROLE_HUNTER},
		clk,
	)
	rm := NewRoundMachine(ctx)

	ack := WrapRequest(REQ_ACKNOWLEDGE, &AcknowledgeRequest{PlayerID: "Al"})
	mustDispatch(t, rm, ack)

	// 另一名守夜人还没确认，步骤仍停在 Mason，重复确认必须失败
	if _, err := rm.Dispatch(ack); !errors.Is(err, ErrAlreadyActed) {
		t.Fatalf("second acknowledge: want ErrAlreadyActed, got %v", err)
	}

	mustDispatch(t, rm, WrapRequest(REQ_ACKNOWLEDGE, &AcknowledgeRequest{PlayerID: "Bo"}))

	seerReq := WrapRequest(REQ_SEER_ACTION, &SeerActionRequest{
		PlayerID: "Ca", ActionType: SEER_VIEW_CENTER, CardIndices: []int{2, 0},
	})
	resp := mustDispatch(t, rm, seerReq)

	roles := resp.Data.(SeerActionResponse).Roles
	// 下标排序后是 0 和 2
	if len(roles) != 2 || roles[0] != ROLE_VILLAGER || roles[1] != ROLE_HUNTER {
		t.Fatalf("seer saw %v, want [Villager Hunter]", roles)
	}

	// 夜晚已经结束，重复的行动请求落在错误的阶段
	if _, err := rm.Dispatch(seerReq); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("seer action after night: want ErrWrongPhase, got %v", err)
	}
}

func TestSeerViewCenter_BadIndexLeavesNoRecord(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_SEER, ROLE_VILLAGER, ROLE_TANNER},
		[]string{ROLE_VILLAGER, ROLE_VILLAGER, ROLE_HUNTER},
		clk,
	)
	rm := NewRoundMachine(ctx)

	// 一个下标合法一个越界：整个请求必须原子地失败，不留半条流水
	if _, err := rm.Dispatch(WrapRequest(REQ_SEER_ACTION, &SeerActionRequest{
		PlayerID: "Al", ActionType: SEER_VIEW_CENTER, CardIndices: []int{0, 5},
	})); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("out-of-range index: want ErrInvalidTarget, got %v", err)
	}

	if recs := ctx.ActionsByActor("Al"); len(recs) != 0 {
		t.Fatalf("failed action left %d ledger record(s): %+v", len(recs), recs)
	}
	if ctx.Assignments[0].ActionCompleted {
		t.Fatalf("failed action must not complete the step")
	}

	// 修正后重试，恰好留下两条查看记录
	mustDispatch(t, rm, WrapRequest(REQ_SEER_ACTION, &SeerActionRequest{
		PlayerID: "Al", ActionType: SEER_VIEW_CENTER, CardIndices: []int{0, 2},
	}))

	if recs := ctx.ActionsByActor("Al"); len(recs) != 2 {
		t.Fatalf("retry should leave exactly two records, got %+v", recs)
	}
}

func TestNightAuthorization_KeyedToInitialHolder(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_ROBBER, ROLE_INSOMNIAC, ROLE_VILLAGER},
		[]string{ROLE_VILLAGER, ROLE_VILLAGER, ROLE_TANNER},
		clk,
	)
	rm := NewRoundMachine(ctx)

	// 强盗偷走失眠者的牌
	resp := mustDispatch(t, rm, WrapRequest(REQ_ROBBER_ACTION, &RobberActionRequest{
		PlayerID: "Al", TargetPlayerID: "Bo",
	}))

	if got := resp.Data.(RobberActionResponse).NewRole; got != ROLE_INSOMNIAC {
		t.Fatalf("robber got role %s, want Insomniac", got)
	}

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_INSOMNIAC {
		t.Fatalf("step = %s, want Insomniac", st.CurrentStep)
	}

	// 此刻手里是失眠者牌的 Al 并不是初始失眠者，无权行动
	if _, err := rm.Dispatch(WrapRequest(REQ_ACKNOWLEDGE, &AcknowledgeRequest{PlayerID: "Al"})); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("current holder should not act, want ErrNotAuthorized, got %v", err)
	}

	// 初始失眠者 Bo 仍然有行动权，看到的是被换走之后的牌
	mustDispatch(t, rm, WrapRequest(REQ_ACKNOWLEDGE, &AcknowledgeRequest{PlayerID: "Bo"}))

	recs := ctx.ActionsByActor("Bo")
	if len(recs) != 1 || recs[0].TargetRole != ROLE_ROBBER {
		t.Fatalf("insomniac should see their post-swap role Robber, got %+v", recs)
	}

	if ctx.Phase != PHASE_DISCUSSION {
		t.Fatalf("night should be over, phase = %s", ctx.Phase)
	}
}

func TestSimulatedStep_AdvancesWithClock(t *testing.T) {
	clk := newTestClock()
	// 狼人和酒鬼都只在中央牌堆
	ctx := newTestContext(
		[]string{ROLE_SEER, ROLE_VILLAGER, ROLE_TANNER},
		[]string{ROLE_WEREWOLF, ROLE_WEREWOLF, ROLE_DRUNK},
		clk,
	)
	rm := NewRoundMachine(ctx)

	st := nightStatus(t, rm)
	if st.CurrentStep != ROLE_WEREWOLF || !st.Simulated {
		t.Fatalf("want simulated Werewolf step, got %+v", st)
	}
	if st.SimulatedRemainingSeconds < SIM_STEP_MIN_SECONDS-1 || st.SimulatedRemainingSeconds > SIM_STEP_MAX_SECONDS {
		t.Fatalf("simulated duration %ds outside [%d, %d]", st.SimulatedRemainingSeconds, SIM_STEP_MIN_SECONDS, SIM_STEP_MAX_SECONDS)
	}

	clk.Advance(time.Duration(SIM_STEP_MAX_SECONDS+1) * time.Second)

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_SEER || st.Simulated {
		t.Fatalf("after timer, want real Seer step, got %+v", st)
	}

	mustDispatch(t, rm, WrapRequest(REQ_SEER_ACTION, &SeerActionRequest{
		PlayerID: "Al", ActionType: SEER_VIEW_PLAYER, TargetPlayerID: "Bo",
	}))

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_DRUNK || !st.Simulated {
		t.Fatalf("want simulated Drunk step, got %+v", st)
	}

	clk.Advance(time.Duration(SIM_STEP_MAX_SECONDS+1) * time.Second)

	// 任何一次读取都会补演到期的转换
	mustDispatch(t, rm, WrapRequest(REQ_ROUND_SNAPSHOT, nil))

	if ctx.Phase != PHASE_DISCUSSION {
		t.Fatalf("night should end after last simulated step, phase = %s", ctx.Phase)
	}
}

func TestWerewolfView_LoneWolfOnly(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_WEREWOLF, ROLE_WEREWOLF, ROLE_VILLAGER},
		[]string{ROLE_VILLAGER, ROLE_VILLAGER, ROLE_TANNER},
		clk,
	)
	rm := NewRoundMachine(ctx)

	if _, err := rm.Dispatch(WrapRequest(REQ_WEREWOLF_VIEW, &WerewolfViewRequest{PlayerID: "Al", CardIndex: 0})); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("two wolves: view-center should fail with ErrNotAuthorized, got %v", err)
	}

	// 双狼各自确认后步骤才推进
	mustDispatch(t, rm, WrapRequest(REQ_ACKNOWLEDGE, &AcknowledgeRequest{PlayerID: "Al"}))

	if st := nightStatus(t, rm); st.CurrentStep != ROLE_WEREWOLF {
		t.Fatalf("step advanced before all wolves acknowledged")
	}

	mustDispatch(t, rm, WrapRequest(REQ_ACKNOWLEDGE, &AcknowledgeRequest{PlayerID: "Bo"}))

	if ctx.Phase != PHASE_DISCUSSION {
		t.Fatalf("night should end, phase = %s", ctx.Phase)
	}

	// 双方都记录了对方
	if recs := ctx.ActionsByActor("Al"); len(recs) != 1 || recs[0].TargetRef != "Bo" {
		t.Fatalf("Al should have one View of Bo, got %+v", recs)
	}
}

func TestDrunkSwap_ConservesDeck(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_DRUNK, ROLE_VILLAGER, ROLE_TANNER},
		[]string{ROLE_WEREWOLF, ROLE_VILLAGER, ROLE_HUNTER},
		clk,
	)

	// 狼人牌在中央，先补演模拟步骤
	rm := NewRoundMachine(ctx)
	clk.Advance(time.Duration(SIM_STEP_MAX_SECONDS+1) * time.Second)

	before := roleMultiset(ctx)

	mustDispatch(t, rm, WrapRequest(REQ_DRUNK_ACTION, &DrunkActionRequest{PlayerID: "Al", CardIndex: 2}))

	after := roleMultiset(ctx)
	for role, n := range before {
		if after[role] != n {
			t.Fatalf("deck not conserved for %s: before %d after %d", role, n, after[role])
		}
	}

	if got := ctx.Assignments[0].CurrentRole; got != ROLE_HUNTER {
		t.Fatalf("drunk now holds %s, want Hunter", got)
	}
	if got := ctx.Center[2].Role; got != ROLE_DRUNK {
		t.Fatalf("center card 2 now %s, want Drunk", got)
	}

	// 台账记录的是交换前的两张牌
	recs := ctx.ActionsByActor("Al")
	if len(recs) != 1 || recs[0].SourceRole != ROLE_DRUNK || recs[0].TargetRole != ROLE_HUNTER {
		t.Fatalf("swap record should carry pre-swap roles, got %+v", recs)
	}
}

func TestTroublemaker_CannotTouchSelf(t *testing.T) {
	clk := newTestClock()
	ctx := newTestContext(
		[]string{ROLE_TROUBLEMAKER, ROLE_VILLAGER, ROLE_TANNER},
		[]string{ROLE_VILLAGER, ROLE_VILLAGER, ROLE_HUNTER},
		clk,
	)
	rm := NewRoundMachine(ctx)

	if _, err := rm.Dispatch(WrapRequest(REQ_TROUBLEMAKER_ACTION, &TroublemakerActionRequest{
		PlayerID: "Al", Player1ID: "Al", Player2ID: "Bo",
	})); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("self in swap pair: want ErrInvalidTarget, got %v", err)
	}

	if _, err := rm.Dispatch(WrapRequest(REQ_TROUBLEMAKER_ACTION, &TroublemakerActionRequest{
		PlayerID: "Al", Player1ID: "Bo", Player2ID: "Bo",
	})); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("identical pair: want ErrInvalidTarget, got %v", err)
	}

	mustDispatch(t, rm, WrapRequest(REQ_TROUBLEMAKER_ACTION, &TroublemakerActionRequest{
		PlayerID: "Al", Player1ID: "Bo", Player2ID: "Ca",
	}))

	if ctx.Assignments[1].CurrentRole != ROLE_TANNER || ctx.Assignments[2].CurrentRole != ROLE_VILLAGER {
		t.Fatalf("swap not applied: %s/%s", ctx.Assignments[1].CurrentRole, ctx.Assignments[2].CurrentRole)
	}
}
