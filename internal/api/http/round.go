package http

import (
	"errors"

	"one-night-werewolf-be/internal/service/dto"
	"one-night-werewolf-be/internal/service/game"
	"one-night-werewolf-be/internal/state"

	"github.com/kataras/iris/v12"
)

// writeError 把引擎的哨兵错误映射为 HTTP 状态码：
// 找不到实体是 404，其余的前置条件失败都是 400
func writeError(ctx iris.Context, err error) {
	if errors.Is(err, game.ErrNotFound) {
		ctx.StatusCode(iris.StatusNotFound)
	} else {
		ctx.StatusCode(iris.StatusBadRequest)
	}

	ctx.JSON(iris.Map{
		"error": err.Error(),
	})
}

// dispatch 把包装好的请求转给对局并写出响应
func dispatch(ctx iris.Context, appState *state.AppState, req game.RequestWrapper) {
	resp, err := appState.RoundSvc.Dispatch(ctx.Params().Get("rid"), req)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(resp)
}

func CreateRound(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.CreateRoundRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		resp, err := appState.RoundSvc.CreateRound(req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func RoundSnapshot(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_ROUND_SNAPSHOT, nil))
	}
}

func Roster(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_ROSTER, nil))
	}
}

func PlayerRole(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_PLAYER_ROLE, &game.PlayerRoleRequest{
			PlayerID: ctx.Params().Get("pid"),
		}))
	}
}

func AcknowledgeRole(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_ACKNOWLEDGE_ROLE, &game.AcknowledgeRoleRequest{
			PlayerID: ctx.Params().Get("pid"),
		}))
	}
}

func Votes(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_GET_VOTES, nil))
	}
}

func Results(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_GET_RESULTS, nil))
	}
}
