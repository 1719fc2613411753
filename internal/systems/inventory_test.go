package systems

import (
	"testing"

	"deepstore-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryDeposit(t *testing.T) {
	reg := createTestRegistry(t)

	t.Run("whole slot", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		agent.Inventory.AddStack(domain.ItemStack{Item: "core:iron_ingot", Count: 40})
		unit := domain.NewStorageUnit("u", domain.Position{X: 1})

		msg, err := TryDeposit(agent, unit, 0, 0, reg)
		require.NoError(t, err)
		assert.Contains(t, msg, "Iron Ingot")
		assert.Equal(t, uint64(40), unit.Quantity())
		assert.Empty(t, agent.Inventory.Slots)
	})

	t.Run("partial", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		agent.Inventory.AddStack(domain.ItemStack{Item: "core:iron_ingot", Count: 40})
		unit := domain.NewStorageUnit("u", domain.Position{X: 1})

		_, err := TryDeposit(agent, unit, 0, 15, reg)
		require.NoError(t, err)
		assert.Equal(t, uint64(15), unit.Quantity())
		assert.Equal(t, 25, agent.Inventory.Slots[0].Count)
	})

	t.Run("mismatch leaves inventory untouched", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		agent.Inventory.AddStack(domain.ItemStack{Item: "core:cobblestone", Count: 5})
		unit := domain.NewStorageUnit("u", domain.Position{X: 1})
		require.NoError(t, unit.Insert(domain.NewDescriptor("iron_ingot", 0, nil), 1))

		_, err := TryDeposit(agent, unit, 0, 0, reg)
		assert.ErrorIs(t, err, domain.ErrCommodityMismatch)
		assert.Equal(t, 5, agent.Inventory.Slots[0].Count)
	})

	t.Run("unknown commodity", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		agent.Inventory.AddStack(domain.ItemStack{Item: "othermod:gizmo", Count: 1})
		unit := domain.NewStorageUnit("u", domain.Position{X: 1})

		_, err := TryDeposit(agent, unit, 0, 0, reg)
		assert.Error(t, err)
		assert.True(t, unit.IsEmpty())
	})

	t.Run("empty slot", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		_, err := TryDeposit(agent, domain.NewStorageUnit("u", domain.Position{}), 3, 1, reg)
		assert.Error(t, err)
	})

	t.Run("unit into unit", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		agent.Inventory.AddStack(domain.NewUnitItem())
		_, err := TryDeposit(agent, domain.NewStorageUnit("u", domain.Position{}), 0, 1, reg)
		assert.Error(t, err)
	})
}

func TestTryWithdraw(t *testing.T) {
	reg := createTestRegistry(t)

	t.Run("capped at one stack", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		unit := domain.NewStorageUnit("u", domain.Position{X: 1})
		require.NoError(t, unit.Insert(domain.NewDescriptor("dye", 4, nil), 1000))

		msg, err := TryWithdraw(agent, unit, 500, reg)
		require.NoError(t, err)
		assert.Contains(t, msg, "Lapis Lazuli")
		require.Len(t, agent.Inventory.Slots, 1)
		assert.Equal(t, domain.MaxStackSize, agent.Inventory.Slots[0].Count)
		assert.Equal(t, int32(4), agent.Inventory.Slots[0].Meta)
		assert.Equal(t, uint64(1000-domain.MaxStackSize), unit.Quantity())
	})

	t.Run("less than requested", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		unit := domain.NewStorageUnit("u", domain.Position{X: 1})
		require.NoError(t, unit.Insert(domain.NewDescriptor("iron_ingot", 0, nil), 3))

		_, err := TryWithdraw(agent, unit, 10, reg)
		require.NoError(t, err)
		assert.Equal(t, 3, agent.Inventory.Slots[0].Count)
		assert.True(t, unit.IsEmpty())
	})

	t.Run("empty unit", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		_, err := TryWithdraw(agent, domain.NewStorageUnit("u", domain.Position{}), 1, reg)
		assert.Error(t, err)
	})

	t.Run("full inventory returns the rest", func(t *testing.T) {
		agent := createTestAgent(domain.Position{})
		agent.Inventory.MaxSlots = 1
		agent.Inventory.AddStack(domain.ItemStack{Item: "core:iron_ingot", Count: 60})
		unit := domain.NewStorageUnit("u", domain.Position{X: 1})
		require.NoError(t, unit.Insert(domain.NewDescriptor("iron_ingot", 0, nil), 10))

		_, err := TryWithdraw(agent, unit, 10, reg)
		require.NoError(t, err)
		assert.Equal(t, 64, agent.Inventory.Slots[0].Count)
		assert.Equal(t, uint64(6), unit.Quantity())
	})
}

func TestTryPickup(t *testing.T) {
	w := createTestWorld(10, 10)
	w.PickupDelay = 1
	agent := createTestAgent(domain.Position{X: 2, Y: 2})

	e := w.SpawnItem(domain.Position{X: 3, Y: 2}, NewSnapshot(domain.NewStorageUnit("u", domain.Position{})))

	_, err := TryPickup(agent, e.ID, w)
	assert.Error(t, err, "pickup delay not expired")

	w.Advance()
	_, err = TryPickup(agent, e.ID, w)
	require.NoError(t, err)
	assert.Nil(t, w.GetItem(e.ID))
	require.Len(t, agent.Inventory.Slots, 1)
	assert.True(t, agent.Inventory.Slots[0].IsUnit())

	_, err = TryPickup(agent, "item_missing", w)
	assert.Error(t, err)
}

func TestTryPickup_TooFar(t *testing.T) {
	w := createTestWorld(20, 20)
	w.PickupDelay = 0
	agent := createTestAgent(domain.Position{})
	e := w.SpawnItem(domain.Position{X: 15, Y: 15}, domain.ItemStack{Item: "core:iron_ingot", Count: 1})

	_, err := TryPickup(agent, e.ID, w)
	assert.Error(t, err)
	assert.NotNil(t, w.GetItem(e.ID))
}
