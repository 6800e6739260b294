package http

import (
	"fmt"

	"one-night-werewolf-be/internal/state"

	"github.com/kataras/iris/v12"
)

func RunServer(appState *state.AppState) {
	app := iris.Default()

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	api := app.Party("/api/v1")

	api.Post("/rounds/create", CreateRound(appState))
	api.Get("/rounds/{rid}", RoundSnapshot(appState))
	api.Get("/rounds/{rid}/roster", Roster(appState))
	api.Get("/rounds/{rid}/votes", Votes(appState))
	api.Get("/rounds/{rid}/results", Results(appState))

	api.Get("/rounds/{rid}/players/{pid}/role", PlayerRole(appState))
	api.Post("/rounds/{rid}/players/{pid}/acknowledge-role", AcknowledgeRole(appState))

	api.Get("/rounds/{rid}/night-status", NightStatus(appState))
	api.Get("/rounds/{rid}/players/{pid}/night-info", NightInfo(appState))
	api.Post("/rounds/{rid}/players/{pid}/view-center", WerewolfViewCenter(appState))
	api.Post("/rounds/{rid}/players/{pid}/acknowledge", AcknowledgeNightAction(appState))
	api.Post("/rounds/{rid}/players/{pid}/seer-action", SeerAction(appState))
	api.Post("/rounds/{rid}/players/{pid}/robber-action", RobberAction(appState))
	api.Post("/rounds/{rid}/players/{pid}/troublemaker-action", TroublemakerAction(appState))
	api.Post("/rounds/{rid}/players/{pid}/drunk-action", DrunkAction(appState))
	api.Get("/rounds/{rid}/players/{pid}/available-actions", AvailableActions(appState))
	api.Get("/rounds/{rid}/players/{pid}/actions", ActionHistory(appState))

	api.Get("/rounds/{rid}/discussion-status", DiscussionStatus(appState))
	api.Post("/rounds/{rid}/players/{pid}/vote-now", VoteNow(appState))
	api.Post("/rounds/{rid}/players/{pid}/vote", CastVote(appState))

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	app.Listen(addr)
}
