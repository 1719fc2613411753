package actions

import (
	"fmt"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
)

// HandleBreak ломает блок. Выпавшие предметы остаются на земле.
func HandleBreak(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	pos := domain.Position{X: p.X, Y: p.Y}
	if !ctx.Agent.Pos.InReach(pos) {
		return handlers.Result{Msg: "Слишком далеко.", MsgType: "ERROR"}, nil
	}

	blockID, ok := ctx.World.BlockAt(pos)
	if !ok {
		return handlers.Fail(domain.ErrNoBlock), nil
	}

	dropped, err := systems.BreakBlock(ctx.World, pos, ctx.HooksFor(blockID))
	if err != nil {
		return handlers.Fail(err), nil
	}

	views := make([]api.GroundItemView, 0, len(dropped))
	for _, e := range dropped {
		views = append(views, handlers.GroundItemView(e, ctx.Registry))
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("%s ломает %s.", ctx.Agent.Name, blockID),
		MsgType: "INFO",
		Data:    views,
	}, nil
}
