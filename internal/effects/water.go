package effects

import "deepstore-server/internal/domain"

// WaterHandler тушит агента.
type WaterHandler struct{}

func (WaterHandler) Substance() string { return "water" }

func (WaterHandler) OnConsume(_ *domain.World, _ domain.Position, _ string, agent *domain.Agent, _ bool) {
	if agent == nil {
		return
	}
	agent.Stats.Extinguish()
}
