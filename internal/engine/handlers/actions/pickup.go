package actions

import (
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
)

// HandlePickup обрабатывает команду PICKUP - подбор предмета с земли
func HandlePickup(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	msg, err := systems.TryPickup(ctx.Agent, p.ItemID, ctx.World)
	if err != nil {
		return handlers.Fail(err), nil
	}
	return handlers.Result{Msg: msg, MsgType: "INFO", Data: handlers.AgentView(ctx.Agent, ctx.Registry)}, nil
}
