package actions

import (
	"deepstore-server/internal/domain"
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
)

// HandleDrink пьет жидкость из клетки. Эффект зависит от вещества.
func HandleDrink(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	msg, err := systems.TryDrink(ctx.World, ctx.Agent, domain.Position{X: p.X, Y: p.Y}, ctx.Effects)
	if err != nil {
		return handlers.Fail(err), nil
	}
	return handlers.Result{Msg: msg, MsgType: "EFFECT", Data: handlers.AgentView(ctx.Agent, ctx.Registry)}, nil
}
