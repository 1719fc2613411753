package actions

import (
	"deepstore-server/internal/domain"
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
)

// HandleDeposit кладет предметы из слота в хранилище.
func HandleDeposit(ctx handlers.Context, p api.DepositPayload) (handlers.Result, error) {
	pos := domain.Position{X: p.X, Y: p.Y}
	unit, res, ok := reachUnit(ctx, pos)
	if !ok {
		return res, nil
	}

	msg, err := systems.TryDeposit(ctx.Agent, unit, p.Slot, p.Count, ctx.Registry)
	if err != nil {
		return handlers.Fail(err), nil
	}
	return handlers.Result{Msg: msg, MsgType: "INFO", Data: handlers.UnitView(unit, ctx.Registry)}, nil
}

// reachUnit находит хранилище в клетке, до которой дотягивается агент.
func reachUnit(ctx handlers.Context, pos domain.Position) (*domain.StorageUnit, handlers.Result, bool) {
	if !ctx.Agent.Pos.InReach(pos) {
		return nil, handlers.Result{Msg: "Слишком далеко.", MsgType: "ERROR"}, false
	}
	unit := ctx.World.UnitAt(pos)
	if unit == nil {
		return nil, handlers.Fail(domain.ErrNoUnit), false
	}
	return unit, handlers.Result{}, true
}
