package engine

import (
	"testing"

	"deepstore-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitRecipe(t *testing.T) {
	book, err := BuildRecipes()
	require.NoError(t, err)

	r, ok := book.Lookup(domain.UnitItemID)
	require.True(t, ok)
	assert.Equal(t, []string{"ppp", "eae", "cmc"}, r.Pattern)
	assert.Equal(t, "core:plastic", r.Keys['p'].Item)
	assert.Equal(t, "core:ender_eye", r.Keys['e'].Item)
	assert.Equal(t, "core:ender_pearl", r.Keys['a'].Item)
	assert.Equal(t, TagChestWood, r.Keys['c'].Tag)
	assert.Equal(t, TagMachineCasing, r.Keys['m'].Tag)

	assert.ErrorIs(t, book.Register(UnitRecipe()), domain.ErrDuplicateRecipe)
}

func TestBuildCatalog(t *testing.T) {
	reg, err := BuildCatalog()
	require.NoError(t, err)

	for _, id := range []string{"plastic", "core:ender_eye", "core:ender_pearl", "core:cobblestone"} {
		_, ok := reg.Resolve(id)
		assert.True(t, ok, id)
	}

	eye, _ := reg.Resolve("ender_eye")
	assert.Equal(t, "Eye of Ender", eye.NameFor(0))
	dye, _ := reg.Resolve("core:dye")
	assert.Equal(t, "Lapis Lazuli", dye.NameFor(4))
}

func TestBuildEffects(t *testing.T) {
	fx, err := BuildEffects()
	require.NoError(t, err)
	assert.Equal(t, []string{"core:lava", "core:water"}, fx.Substances())
}

func TestNewAgent_StarterKit(t *testing.T) {
	a := newAgent("alice", domain.Position{X: 1, Y: 1})
	require.Len(t, a.Inventory.Slots, 5)
	assert.True(t, a.Inventory.Slots[0].IsUnit())
	assert.True(t, a.Inventory.Slots[1].IsUnit())
	assert.Equal(t, "core:cobblestone", a.Inventory.Slots[2].Item)
	assert.Equal(t, int32(4), a.Inventory.Slots[4].Meta)
}
