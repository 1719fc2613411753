package systems

import (
	"testing"

	"deepstore-server/internal/core/tag"
	"deepstore-server/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTooltip(t *testing.T) {
	reg := createTestRegistry(t)

	tests := []struct {
		name string
		tag  tag.Compound
		want []string
	}{
		{"no attributes", nil, nil},
		{"amount only", tag.Compound{KeyAmount: int64(5)}, []string{"amount: 5"}},
		{
			"full",
			tag.Compound{KeyItem: "core:dye", KeyMeta: int64(4), KeyAmount: int64(200)},
			[]string{"commodity: Lapis Lazuli", "amount: 200"},
		},
		{
			"derived name",
			tag.Compound{KeyItem: "core:iron_ingot", KeyMeta: int64(0), KeyAmount: int64(1)},
			[]string{"commodity: Iron Ingot", "amount: 1"},
		},
		{
			"unknown commodity",
			tag.Compound{KeyItem: "nonexistent:id", KeyMeta: int64(0), KeyAmount: int64(5)},
			[]string{"amount: 5"},
		},
		{"descriptor only", tag.Compound{KeyItem: "core:cobblestone"}, []string{"commodity: Cobblestone"}},
		{"negative amount shown as stored", tag.Compound{KeyAmount: int64(-3)}, []string{"amount: -3"}},
		{"non-numeric amount", tag.Compound{KeyItem: "core:cobblestone", KeyAmount: true}, []string{"commodity: Cobblestone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := domain.NewUnitItem()
			stack.Tag = tt.tag
			assert.Equal(t, tt.want, Tooltip(stack, reg))
		})
	}
}

func TestTooltip_NotAUnit(t *testing.T) {
	reg := createTestRegistry(t)
	stack := domain.ItemStack{Item: "core:iron_ingot", Count: 1, Tag: tag.Compound{KeyAmount: int64(3)}}
	assert.Nil(t, Tooltip(stack, reg))
}
