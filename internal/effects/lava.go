package effects

import "deepstore-server/internal/domain"

const (
	LavaFireTicks = 600
	LavaDamage    = 4
)

// LavaHandler поджигает агента и обжигает его.
type LavaHandler struct{}

func (LavaHandler) Substance() string { return "lava" }

func (LavaHandler) OnConsume(_ *domain.World, _ domain.Position, _ string, agent *domain.Agent, _ bool) {
	if agent == nil {
		return
	}
	agent.Stats.Ignite(LavaFireTicks)
	agent.Stats.TakeDamage(LavaDamage)
}
