package engine

import (
	"deepstore-server/internal/core/tag"
	"deepstore-server/internal/domain"
	"deepstore-server/internal/engine/handlers"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"
)

// UnitViews - все хранилища мира. Только из потока симуляции (через Query).
func (s *Service) UnitViews() []api.UnitView {
	out := make([]api.UnitView, 0, len(s.World.Units))
	for _, pos := range s.World.UnitPositions() {
		out = append(out, handlers.UnitView(s.World.UnitAt(pos), s.Registry))
	}
	return out
}

// RecipeViews - зарегистрированные рецепты. Книга рецептов после старта
// не меняется, поток симуляции не нужен.
func (s *Service) RecipeViews() []api.RecipeView {
	recipes := s.Recipes.All()
	out := make([]api.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, handlers.RecipeView(r))
	}
	return out
}

// Tooltip строит подсказку для предмета из запроса. Реестр только для чтения.
func (s *Service) Tooltip(req api.TooltipRequest) []string {
	stack := domain.ItemStack{Item: req.Item, Count: req.Count, Meta: req.Meta}
	if req.Tag != nil {
		stack.Tag = tag.Compound(req.Tag).Copy()
	}
	lines := systems.Tooltip(stack, s.Registry)
	if lines == nil {
		return []string{}
	}
	return lines
}
