package domain

import (
	"math"
	"testing"

	"deepstore-server/internal/core/tag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *CommodityRegistry {
	t.Helper()
	reg := NewCommodityRegistry()
	require.NoError(t, reg.Register(CommodityType{ID: "core:iron_ingot"}))
	require.NoError(t, reg.Register(CommodityType{ID: "core:dye", VariantNames: map[int32]string{4: "Lapis Lazuli"}}))
	return reg
}

func TestStorageUnit_EmptyByDefault(t *testing.T) {
	u := NewStorageUnit("u1", Position{X: 1, Y: 2})

	_, ok := u.Descriptor()
	assert.False(t, ok)
	assert.Zero(t, u.Quantity())
	assert.True(t, u.IsEmpty())
}

func TestStorageUnit_SettersAreUnconditional(t *testing.T) {
	u := NewStorageUnit("u1", Position{})
	u.SetDescriptor(NewDescriptor("iron_ingot", 0, nil))
	u.SetQuantity(10)

	// Другой товар поверх непустого блока: слой сущности это не запрещает.
	u.SetDescriptor(NewDescriptor("core:dye", 4, nil))
	u.SetQuantity(math.MaxUint64)

	d, ok := u.Descriptor()
	require.True(t, ok)
	assert.Equal(t, "core:dye", d.ID)
	assert.Equal(t, int32(4), d.Variant)
	assert.Equal(t, uint64(math.MaxUint64), u.Quantity())
}

func TestStorageUnit_DescriptorIsCopied(t *testing.T) {
	extra := tag.Compound{"ench": "sharpness"}
	u := NewStorageUnit("u1", Position{})
	u.SetDescriptor(Descriptor{ID: "core:iron_ingot", Extra: extra})

	extra["ench"] = "changed"
	d, _ := u.Descriptor()
	d.Extra["ench"] = "changed again"

	again, _ := u.Descriptor()
	s, _ := again.Extra.GetString("ench")
	assert.Equal(t, "sharpness", s)
}

func TestStorageUnit_Insert(t *testing.T) {
	iron := NewDescriptor("core:iron_ingot", 0, nil)
	dye := NewDescriptor("core:dye", 4, nil)

	u := NewStorageUnit("u1", Position{})
	require.NoError(t, u.Insert(iron, 5))
	require.NoError(t, u.Insert(iron, 7))
	assert.Equal(t, uint64(12), u.Quantity())

	assert.ErrorIs(t, u.Insert(dye, 1), ErrCommodityMismatch)
	assert.ErrorIs(t, u.Insert(NewDescriptor("core:iron_ingot", 1, nil), 1), ErrCommodityMismatch)

	u.SetQuantity(MaxQuantity - 1)
	assert.ErrorIs(t, u.Insert(iron, 2), ErrQuantityOverflow)
	assert.Equal(t, MaxQuantity-1, u.Quantity())
	require.NoError(t, u.Insert(iron, 1))
	assert.Equal(t, MaxQuantity, u.Quantity())

	fresh := NewStorageUnit("u2", Position{})
	assert.ErrorIs(t, fresh.Insert(iron, MaxQuantity+1), ErrQuantityOverflow)
}

func TestStorageUnit_InsertIntoDrainedUnitTakesNewCommodity(t *testing.T) {
	u := NewStorageUnit("u1", Position{})
	require.NoError(t, u.Insert(NewDescriptor("core:iron_ingot", 0, nil), 2))

	_, n, ok := u.Extract(5)
	require.True(t, ok)
	assert.Equal(t, uint64(2), n)

	require.NoError(t, u.Insert(NewDescriptor("core:dye", 4, nil), 1))
	d, _ := u.Descriptor()
	assert.Equal(t, "core:dye", d.ID)
}

func TestStorageUnit_Extract(t *testing.T) {
	u := NewStorageUnit("u1", Position{})
	_, _, ok := u.Extract(1)
	assert.False(t, ok, "empty unit gives nothing")

	require.NoError(t, u.Insert(NewDescriptor("core:iron_ingot", 0, nil), 100))
	d, n, ok := u.Extract(64)
	require.True(t, ok)
	assert.Equal(t, "core:iron_ingot", d.ID)
	assert.Equal(t, uint64(64), n)
	assert.Equal(t, uint64(36), u.Quantity())
}

func TestStorageUnit_Displayed(t *testing.T) {
	reg := testRegistry(t)

	u := NewStorageUnit("u1", Position{})
	_, _, ok := u.Displayed(reg)
	assert.False(t, ok)

	u.SetDescriptor(NewDescriptor("core:dye", 4, nil))
	u.SetQuantity(3)
	typ, q, ok := u.Displayed(reg)
	require.True(t, ok)
	assert.Equal(t, "Lapis Lazuli", typ.NameFor(4))
	assert.Equal(t, uint64(3), q)

	u.SetDescriptor(NewDescriptor("gone:thing", 0, nil))
	_, _, ok = u.Displayed(reg)
	assert.False(t, ok, "unknown commodity displays as empty")
}

func TestStorageUnit_Unresolved(t *testing.T) {
	u := NewStorageUnit("u1", Position{})
	raw := tag.Compound{"item": "gone:thing", "meta": int64(2)}
	u.SetUnresolved(raw)
	raw["item"] = "changed"

	got := u.Unresolved()
	s, _ := got.GetString("item")
	assert.Equal(t, "gone:thing", s)

	u.SetDescriptor(NewDescriptor("core:iron_ingot", 0, nil))
	assert.Nil(t, u.Unresolved(), "a real descriptor replaces the raw identity")
}
