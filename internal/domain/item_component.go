package domain

import "deepstore-server/internal/core/tag"

// ItemStack - предмет в руках, в инвентаре или на земле.
// Переносной снимок хранилища - это ItemStack{Item: UnitItemID, Count: 1}.
type ItemStack struct {
	Item  string       `json:"item"`
	Count int          `json:"count"`
	Meta  int32        `json:"meta,omitempty"`
	Tag   tag.Compound `json:"tag,omitempty"`
}

// NewUnitItem - пустой переносной блок без атрибутов.
func NewUnitItem() ItemStack {
	return ItemStack{Item: UnitItemID, Count: 1}
}

func (s ItemStack) IsEmpty() bool {
	return s.Item == "" || s.Count <= 0
}

// HasTag - у предмета есть карта атрибутов.
func (s ItemStack) HasTag() bool {
	return s.Tag != nil
}

// IsUnit - это переносной блок-хранилище.
func (s ItemStack) IsUnit() bool {
	return CanonicalID(s.Item) == UnitItemID
}

// Copy возвращает стак, не делящий карту атрибутов с исходным.
func (s ItemStack) Copy() ItemStack {
	s.Tag = s.Tag.Copy()
	return s
}

// MaxStack - сколько таких предметов помещается в слот.
// Переносное хранилище не стакается: у каждого свое содержимое.
func (s ItemStack) MaxStack() int {
	if s.IsUnit() {
		return 1
	}
	return MaxStackSize
}

// Descriptor - идентичность одной единицы из стака.
func (s ItemStack) Descriptor() Descriptor {
	return NewDescriptor(s.Item, s.Meta, s.Tag)
}

// Stacks сообщает, можно ли объединить два стака.
func (s ItemStack) Stacks(o ItemStack) bool {
	return s.Descriptor().Equal(o.Descriptor())
}
