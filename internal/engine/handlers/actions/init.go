package actions

import "deepstore-server/internal/engine/handlers"

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Добро пожаловать в Deepstore.",
		MsgType: "INFO",
		Data:    handlers.AgentView(ctx.Agent, ctx.Registry),
	}, nil
}
