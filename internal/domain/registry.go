package domain

import (
	"fmt"
	"sort"
)

// CommodityRegistry - реестр в памяти. Заполняется при старте,
// дальше только читается симуляцией.
type CommodityRegistry struct {
	types map[string]CommodityType
}

func NewCommodityRegistry() *CommodityRegistry {
	return &CommodityRegistry{types: make(map[string]CommodityType)}
}

// Register добавляет тип товара. Повторная регистрация - ошибка.
func (r *CommodityRegistry) Register(t CommodityType) error {
	t.ID = CanonicalID(t.ID)
	if t.ID == "" {
		return fmt.Errorf("commodity id is required")
	}
	if _, exists := r.types[t.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommodity, t.ID)
	}
	r.types[t.ID] = t
	return nil
}

// Resolve реализует Registry.
func (r *CommodityRegistry) Resolve(id string) (CommodityType, bool) {
	if r == nil {
		return CommodityType{}, false
	}
	t, ok := r.types[CanonicalID(id)]
	return t, ok
}

// All возвращает типы, отсортированные по ID.
func (r *CommodityRegistry) All() []CommodityType {
	out := make([]CommodityType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *CommodityRegistry) Len() int {
	return len(r.types)
}
