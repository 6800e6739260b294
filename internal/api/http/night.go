package http

import (
	"one-night-werewolf-be/internal/service/game"
	"one-night-werewolf-be/internal/state"

	"github.com/kataras/iris/v12"
)

func NightStatus(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_NIGHT_STATUS, nil))
	}
}

func NightInfo(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_NIGHT_INFO, &game.NightInfoRequest{
			PlayerID: ctx.Params().Get("pid"),
		}))
	}
}

func WerewolfViewCenter(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.WerewolfViewRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		req.PlayerID = ctx.Params().Get("pid")

		dispatch(ctx, appState, game.WrapRequest(game.REQ_WEREWOLF_VIEW, &req))
	}
}

func AcknowledgeNightAction(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_ACKNOWLEDGE, &game.AcknowledgeRequest{
			PlayerID: ctx.Params().Get("pid"),
		}))
	}
}

func SeerAction(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.SeerActionRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		req.PlayerID = ctx.Params().Get("pid")

		dispatch(ctx, appState, game.WrapRequest(game.REQ_SEER_ACTION, &req))
	}
}

func RobberAction(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.RobberActionRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		req.PlayerID = ctx.Params().Get("pid")

		dispatch(ctx, appState, game.WrapRequest(game.REQ_ROBBER_ACTION, &req))
	}
}

func TroublemakerAction(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.TroublemakerActionRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		req.PlayerID = ctx.Params().Get("pid")

		dispatch(ctx, appState, game.WrapRequest(game.REQ_TROUBLEMAKER_ACTION, &req))
	}
}

func DrunkAction(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.DrunkActionRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		req.PlayerID = ctx.Params().Get("pid")

		dispatch(ctx, appState, game.WrapRequest(game.REQ_DRUNK_ACTION, &req))
	}
}

func AvailableActions(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_AVAILABLE_ACTIONS, &game.AvailableActionsRequest{
			PlayerID: ctx.Params().Get("pid"),
		}))
	}
}

func ActionHistory(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_ACTION_HISTORY, &game.ActionHistoryRequest{
			PlayerID: ctx.Params().Get("pid"),
		}))
	}
}
