package service

import (
	"errors"
	"testing"
	"time"

	"one-night-werewolf-be/internal/service/dto"
	"one-night-werewolf-be/internal/service/game"
)

func newTestService() *RoundService {
	return NewRoundService(5*time.Minute, time.Hour)
}

func TestCreateRound_DealsAndRegisters(t *testing.T) {
	rs := newTestService()
	defer rs.Close()

	resp, err := rs.CreateRound(dto.CreateRoundRequest{
		PlayerNames: []string{"Alice", "Bob", "Carol"},
		Roles: []string{
			game.ROLE_WEREWOLF, game.ROLE_SEER, game.ROLE_VILLAGER,
			game.ROLE_VILLAGER, game.ROLE_VILLAGER, game.ROLE_TANNER,
		},
	})
	if err != nil {
		t.Fatalf("create round failed: %v", err)
	}

	if resp.RoundID == "" || len(resp.Players) != 3 {
		t.Fatalf("bad create response: %+v", resp)
	}
	if resp.Phase != game.PHASE_NIGHT {
		t.Fatalf("new round should open at night, got %s", resp.Phase)
	}

	seen := map[string]bool{}
	for _, p := range resp.Players {
		if p.ID == "" || seen[p.ID] {
			t.Fatalf("player ids must be unique and non-empty: %+v", resp.Players)
		}
		seen[p.ID] = true
	}

	rosterResp, err := rs.Dispatch(resp.RoundID, game.WrapRequest(game.REQ_ROSTER, nil))
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}

	roster := rosterResp.Data.(game.RosterResponse)
	if roster.Count != 3 {
		t.Fatalf("roster count = %d, want 3", roster.Count)
	}
}

func TestCreateRound_RejectsBadInput(t *testing.T) {
	rs := newTestService()
	defer rs.Close()

	_, err := rs.CreateRound(dto.CreateRoundRequest{
		PlayerNames: []string{"Alice", "Bob", "Carol"},
		Roles:       []string{game.ROLE_WEREWOLF, game.ROLE_SEER},
	})
	if !errors.Is(err, game.ErrInvalidConfiguration) {
		t.Fatalf("short role list: want ErrInvalidConfiguration, got %v", err)
	}

	_, err = rs.CreateRound(dto.CreateRoundRequest{
		PlayerNames: []string{"Alice", ""},
	})
	if !errors.Is(err, game.ErrInvalidConfiguration) {
		t.Fatalf("empty player name: want ErrInvalidConfiguration, got %v", err)
	}
}

func TestDispatch_UnknownRound(t *testing.T) {
	rs := newTestService()
	defer rs.Close()

	_, err := rs.Dispatch("missing", game.WrapRequest(game.REQ_ROSTER, nil))
	if !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
