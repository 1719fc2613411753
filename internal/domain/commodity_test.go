package domain

import (
	"testing"

	"deepstore-server/internal/core/tag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"iron_ingot", "core:iron_ingot"},
		{"  Core:Iron_Ingot ", "core:iron_ingot"},
		{"mod:gear", "mod:gear"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalID(tt.in), "CanonicalID(%q)", tt.in)
	}
}

func TestDescriptor_Equal(t *testing.T) {
	a := NewDescriptor("iron_ingot", 0, tag.Compound{"q": 1})
	b := Descriptor{ID: "core:iron_ingot", Extra: tag.Compound{"q": int64(1)}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewDescriptor("iron_ingot", 1, tag.Compound{"q": 1})))
	assert.False(t, a.Equal(NewDescriptor("iron_ingot", 0, nil)))
	assert.True(t, NewDescriptor("x", 0, nil).Equal(NewDescriptor("x", 0, tag.Compound{})))
}

func TestNewDescriptor_NegativeVariant(t *testing.T) {
	d := NewDescriptor("dye", -7, nil)
	assert.Equal(t, int32(0), d.Variant)
	assert.True(t, d.Equal(NewDescriptor("dye", 0, nil)))
}

func TestDescriptor_Resolve(t *testing.T) {
	reg := testRegistry(t)

	_, ok := NewDescriptor("iron_ingot", 0, nil).Resolve(reg)
	assert.True(t, ok)

	_, ok = NewDescriptor("nonexistent:id", 0, nil).Resolve(reg)
	assert.False(t, ok)

	_, ok = NewDescriptor("iron_ingot", 0, nil).Resolve(nil)
	assert.False(t, ok)
}

func TestCommodityType_NameFor(t *testing.T) {
	typ := CommodityType{ID: "core:iron_ingot"}
	assert.Equal(t, "Iron Ingot", typ.NameFor(0))

	typ.DisplayName = "Refined Iron"
	assert.Equal(t, "Refined Iron", typ.NameFor(0))

	typ.VariantNames = map[int32]string{2: "Pig Iron"}
	assert.Equal(t, "Pig Iron", typ.NameFor(2))
	assert.Equal(t, "Refined Iron", typ.NameFor(1))
}

func TestCommodityRegistry_Register(t *testing.T) {
	reg := NewCommodityRegistry()
	require.NoError(t, reg.Register(CommodityType{ID: "Stone"}))

	err := reg.Register(CommodityType{ID: "core:stone"})
	assert.ErrorIs(t, err, ErrDuplicateCommodity)
	assert.Error(t, reg.Register(CommodityType{ID: "  "}))

	typ, ok := reg.Resolve("STONE")
	require.True(t, ok)
	assert.Equal(t, "core:stone", typ.ID)
	assert.Equal(t, 1, reg.Len())
}
