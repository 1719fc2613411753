package actions

import (
	"deepstore-server/internal/domain"
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
)

// HandleWithdraw забирает предметы из хранилища, не больше стака за раз.
func HandleWithdraw(ctx handlers.Context, p api.WithdrawPayload) (handlers.Result, error) {
	unit, res, ok := reachUnit(ctx, domain.Position{X: p.X, Y: p.Y})
	if !ok {
		return res, nil
	}

	msg, err := systems.TryWithdraw(ctx.Agent, unit, p.Count, ctx.Registry)
	if err != nil {
		return handlers.Fail(err), nil
	}
	return handlers.Result{Msg: msg, MsgType: "INFO", Data: handlers.UnitView(unit, ctx.Registry)}, nil
}
