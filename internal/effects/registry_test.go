package effects

import (
	"testing"

	"deepstore-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHandler struct {
	substance string
	calls     *int
}

func (h countingHandler) Substance() string { return h.substance }

func (h countingHandler) OnConsume(*domain.World, domain.Position, string, *domain.Agent, bool) {
	*h.calls++
}

func newAgent() *domain.Agent {
	return &domain.Agent{ID: "a1", Stats: &domain.StatsComponent{HP: 20, MaxHP: 20}}
}

func TestRegistry_RegisterIsUniquePerSubstance(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(WaterHandler{}))

	err := r.Register(countingHandler{substance: "core:water", calls: new(int)})
	assert.ErrorIs(t, err, ErrDuplicateHandler)
	assert.Error(t, r.Register(countingHandler{substance: "", calls: new(int)}))
	assert.Equal(t, []string{"core:water"}, r.Substances())
}

func TestRegistry_DispatchAbsentIsNoop(t *testing.T) {
	r := NewRegistry()
	agent := newAgent()

	assert.False(t, r.Dispatch(nil, domain.Position{}, "milk", agent, false))
	assert.Equal(t, 20, agent.Stats.HP)
}

func TestRegistry_DispatchCallsOneHandler(t *testing.T) {
	calls := 0
	r := NewRegistry()
	require.NoError(t, r.Register(countingHandler{substance: "honey", calls: &calls}))

	assert.True(t, r.Dispatch(nil, domain.Position{}, "HONEY", newAgent(), true))
	assert.Equal(t, 1, calls)
}

func TestWaterHandler_Extinguishes(t *testing.T) {
	agent := newAgent()
	agent.Stats.Ignite(100)

	WaterHandler{}.OnConsume(nil, domain.Position{}, "water", agent, false)
	assert.False(t, agent.Stats.IsBurning())
}

func TestLavaHandler_IgnitesAndBurns(t *testing.T) {
	agent := newAgent()

	LavaHandler{}.OnConsume(nil, domain.Position{}, "lava", agent, false)
	assert.Equal(t, LavaFireTicks, agent.Stats.FireTicks)
	assert.Equal(t, 20-LavaDamage, agent.Stats.HP)
}

func TestDefaults_RegisterCleanly(t *testing.T) {
	r := NewRegistry()
	for _, h := range Defaults() {
		require.NoError(t, r.Register(h))
	}
	_, ok := r.Lookup("lava")
	assert.True(t, ok)
}
