package actions

import (
	"fmt"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
	"deepstore-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HandlePlace ставит блок из слота инвентаря. Хранилище при этом
// восстанавливает содержимое из атрибутов предмета.
func HandlePlace(ctx handlers.Context, p api.PlacePayload) (handlers.Result, error) {
	agent := ctx.Agent
	pos := domain.Position{X: p.X, Y: p.Y}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "place_handler",
		"agent_id":  agent.ID,
		"pos":       pos,
	})

	if !agent.Pos.InReach(pos) {
		return handlers.Result{Msg: "Слишком далеко.", MsgType: "ERROR"}, nil
	}

	stack, ok := agent.Inventory.Slot(p.Slot)
	if !ok || stack.IsEmpty() {
		return handlers.Result{Msg: fmt.Sprintf("Слот %d пуст.", p.Slot), MsgType: "ERROR"}, nil
	}
	one := stack.Copy()
	one.Count = 1

	if err := systems.PlaceBlock(ctx.World, pos, one, ctx.HooksFor(one.Item)); err != nil {
		log.WithError(err).Debug("Placement refused")
		return handlers.Fail(err), nil
	}
	agent.Inventory.TakeFromSlot(p.Slot, 1)

	res := handlers.Result{
		Msg:     fmt.Sprintf("%s ставит %s.", agent.Name, domain.CanonicalID(one.Item)),
		MsgType: "INFO",
	}
	if u := ctx.World.UnitAt(pos); u != nil {
		res.Data = handlers.UnitView(u, ctx.Registry)
	}
	return res, nil
}
