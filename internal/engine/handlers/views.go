package handlers

import (
	"deepstore-server/internal/domain"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
)

// UnitView конвертирует хранилище в DTO. Неизвестный товар показывается
// как пустое хранилище, но количество сохраняется.
func UnitView(u *domain.StorageUnit, reg domain.Registry) api.UnitView {
	view := api.UnitView{ID: u.ID, X: u.Pos.X, Y: u.Pos.Y}

	if t, qty, ok := u.Displayed(reg); ok {
		d, _ := u.Descriptor()
		view.Commodity = t.ID
		view.Variant = d.Variant
		view.Name = t.NameFor(d.Variant)
		view.Amount = qty
	}
	view.Tooltip = systems.Tooltip(systems.NewSnapshot(u), reg)
	return view
}

// StackView конвертирует стак в DTO.
func StackView(s domain.ItemStack, reg domain.Registry) api.StackView {
	view := api.StackView{Item: s.Item, Count: s.Count, Meta: s.Meta}
	if s.HasTag() {
		view.Tag = s.Tag.Copy()
	}
	view.Tooltip = systems.Tooltip(s, reg)
	return view
}

// GroundItemView конвертирует предмет на земле в DTO.
func GroundItemView(e *domain.ItemEntity, reg domain.Registry) api.GroundItemView {
	return api.GroundItemView{ID: e.ID, X: e.X, Y: e.Y, Stack: StackView(e.Stack, reg)}
}

// AgentView конвертирует агента в DTO.
func AgentView(a *domain.Agent, reg domain.Registry) api.AgentView {
	view := api.AgentView{
		ID:        a.ID,
		Name:      a.Name,
		X:         a.Pos.X,
		Y:         a.Pos.Y,
		Inventory: []api.StackView{},
	}
	if a.Stats != nil {
		view.HP = a.Stats.HP
		view.MaxHP = a.Stats.MaxHP
		view.Burning = a.Stats.IsBurning()
	}
	if a.Inventory != nil {
		for _, s := range a.Inventory.Slots {
			view.Inventory = append(view.Inventory, StackView(s, reg))
		}
	}
	return view
}

// RecipeView конвертирует рецепт в DTO.
func RecipeView(r domain.ShapedRecipe) api.RecipeView {
	view := api.RecipeView{
		Result:  r.Result.Item,
		Pattern: append([]string(nil), r.Pattern...),
		Keys:    make(map[string]string, len(r.Keys)),
	}
	for k, ing := range r.Keys {
		if ing.Tag != "" {
			view.Keys[string(k)] = "#" + ing.Tag
		} else {
			view.Keys[string(k)] = ing.Item
		}
	}
	return view
}
