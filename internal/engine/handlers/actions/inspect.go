package actions

import (
	"fmt"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/pkg/api"
)

// HandleInspect показывает содержимое хранилища. Дистанция не важна.
func HandleInspect(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	unit := ctx.World.UnitAt(domain.Position{X: p.X, Y: p.Y})
	if unit == nil {
		return handlers.Fail(domain.ErrNoUnit), nil
	}

	view := handlers.UnitView(unit, ctx.Registry)
	msg := "Хранилище пусто."
	if view.Amount > 0 {
		msg = fmt.Sprintf("В хранилище %d x %s.", view.Amount, view.Name)
	}
	return handlers.Result{Msg: msg, MsgType: "INFO", Data: view}, nil
}
