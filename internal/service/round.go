package service

import (
	"fmt"
	"sync"
	"time"

	"one-night-werewolf-be/internal/service/dto"
	"one-night-werewolf-be/internal/service/game"

	"go.uber.org/zap"
)

// RoundService 管理所有进行中的对局。
// 对局本身没有独立协程：客户端纯轮询，每个请求都由 Dispatch
// 同步转给对应 RoundMachine，在其内部互斥锁里处理。
type RoundService struct {
	state *roundServiceState

	discussionTimer time.Duration
	roundTTL        time.Duration
}

type roundServiceState struct {
	mu sync.RWMutex

	// 从局号到状态机的映射
	rounds map[string]*game.RoundMachine

	cleanUpDone chan struct{}
}

func NewRoundService(discussionTimer, roundTTL time.Duration) *RoundService {
	state := &roundServiceState{
		rounds:      make(map[string]*game.RoundMachine),
		cleanUpDone: make(chan struct{}),
	}

	// 启动一个 goroutine 定期清理过期的对局
	go startCleanupLoop(state, roundTTL)

	return &RoundService{
		state:           state,
		discussionTimer: discussionTimer,
		roundTTL:        roundTTL,
	}
}

func startCleanupLoop(state *roundServiceState, ttl time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-state.cleanUpDone:
			return

		case <-ticker.C:
			state.mu.Lock()

			for roundID, rm := range state.rounds {
				if isRoundExpired(rm, ttl) {
					zap.S().Infof("对局 %s 已过期，开始清理", roundID)
					delete(state.rounds, roundID)
				}
			}

			state.mu.Unlock()
		}
	}
}

func (rs *RoundService) Close() {
	close(rs.state.cleanUpDone)
}

// CreateRound 发牌并开局。玩家 ID 在这里生成，
// 角色多重集的校验由发牌逻辑完成。
func (rs *RoundService) CreateRound(req dto.CreateRoundRequest) (dto.CreateRoundResponse, error) {
	for _, name := range req.PlayerNames {
		if name == "" {
			return dto.CreateRoundResponse{}, fmt.Errorf(
				"%w: 玩家名称不能为空", game.ErrInvalidConfiguration,
			)
		}
	}

	roundID := game.GenID()

	roster := make([]game.Player, 0, len(req.PlayerNames))
	for _, name := range req.PlayerNames {
		roster = append(roster, game.Player{
			ID:   game.GenID(),
			Name: name,
		})
	}

	timer := rs.discussionTimer
	if req.DiscussionTimerSeconds > 0 {
		timer = time.Duration(req.DiscussionTimerSeconds) * time.Second
	}

	ctx, err := game.NewRoundContext(roundID, roster, req.Roles, timer, game.NewRand(), time.Now)
	if err != nil {
		return dto.CreateRoundResponse{}, err
	}

	rm := game.NewRoundMachine(ctx)

	rs.state.mu.Lock()
	rs.state.rounds[roundID] = rm
	rs.state.mu.Unlock()

	zap.S().Infof("对局 %s 创建，%d 名玩家", roundID, len(roster))

	players := make([]dto.RoundPlayer, 0, len(roster))
	for _, p := range roster {
		players = append(players, dto.RoundPlayer{ID: p.ID, Name: p.Name})
	}

	return dto.CreateRoundResponse{
		RoundID: roundID,
		Players: players,
		Phase:   game.PHASE_NIGHT,
	}, nil
}

// Dispatch 把一个请求转给对应的对局状态机
func (rs *RoundService) Dispatch(roundID string, req game.RequestWrapper) (game.ResponseWrapper, error) {
	rs.state.mu.RLock()
	rm := rs.state.rounds[roundID]
	rs.state.mu.RUnlock()

	if rm == nil {
		return game.ResponseWrapper{}, fmt.Errorf("%w: 对局 %s 不存在", game.ErrNotFound, roundID)
	}

	return rm.Dispatch(req)
}
