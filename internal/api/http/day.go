package http

import (
	"one-night-werewolf-be/internal/service/game"
	"one-night-werewolf-be/internal/state"

	"github.com/kataras/iris/v12"
)

func DiscussionStatus(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_DISCUSSION_STATUS, &game.DiscussionStatusRequest{
			PlayerID: ctx.URLParam("player_id"),
		}))
	}
}

func VoteNow(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		dispatch(ctx, appState, game.WrapRequest(game.REQ_VOTE_NOW, &game.VoteNowRequest{
			PlayerID: ctx.Params().Get("pid"),
		}))
	}
}

func CastVote(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.CastVoteRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		req.VoterID = ctx.Params().Get("pid")

		dispatch(ctx, appState, game.WrapRequest(game.REQ_CAST_VOTE, &req))
	}
}
