package engine

import (
	"fmt"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/effects"
)

// Теги групп предметов, на которые ссылается рецепт хранилища.
const (
	TagChestWood     = "chestWood"
	TagMachineCasing = "MACHINE_CASING"
)

// catalog - типы товаров, известные миру при старте.
var catalog = []domain.CommodityType{
	{ID: "core:cobblestone", DisplayName: "Cobblestone"},
	{ID: "core:stone"},
	{ID: "core:iron_ingot"},
	{ID: "core:gold_ingot"},
	{ID: "core:diamond"},
	{ID: "core:redstone", DisplayName: "Redstone Dust"},
	{ID: "core:plastic"},
	{ID: "core:ender_pearl"},
	{ID: "core:ender_eye", DisplayName: "Eye of Ender"},
	{ID: "core:chest"},
	{ID: "core:machine_casing"},
	{
		ID: "core:dye",
		VariantNames: map[int32]string{
			0:  "Ink Sac",
			4:  "Lapis Lazuli",
			15: "Bone Meal",
		},
	},
}

// BuildCatalog создает реестр товаров.
func BuildCatalog() (*domain.CommodityRegistry, error) {
	reg := domain.NewCommodityRegistry()
	for _, t := range catalog {
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("register commodity %s: %w", t.ID, err)
		}
	}
	return reg, nil
}

// UnitRecipe - рецепт переносного хранилища.
//
//	ppp
//	eae
//	cmc
func UnitRecipe() domain.ShapedRecipe {
	return domain.ShapedRecipe{
		Result:  domain.NewUnitItem(),
		Pattern: []string{"ppp", "eae", "cmc"},
		Keys: map[rune]domain.Ingredient{
			'p': domain.ItemIngredient("core:plastic"),
			'e': domain.ItemIngredient("core:ender_eye"),
			'a': domain.ItemIngredient("core:ender_pearl"),
			'c': domain.TagIngredient(TagChestWood),
			'm': domain.TagIngredient(TagMachineCasing),
		},
	}
}

// BuildRecipes регистрирует рецепты мира.
func BuildRecipes() (*domain.RecipeBook, error) {
	book := domain.NewRecipeBook()
	if err := book.Register(UnitRecipe()); err != nil {
		return nil, fmt.Errorf("register unit recipe: %w", err)
	}
	return book, nil
}

// BuildEffects регистрирует встроенные эффекты веществ.
func BuildEffects() (*effects.Registry, error) {
	reg := effects.NewRegistry()
	for _, h := range effects.Defaults() {
		if err := reg.Register(h); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// buildInitialWorld создает пустую карту с двумя источниками жидкости.
func buildInitialWorld(cfg Config) *domain.World {
	w := domain.NewWorld(cfg.WorldWidth, cfg.WorldHeight, cfg.Seed)
	w.PickupDelay = cfg.PickupDelay

	_ = w.SetFluid(domain.Position{X: 1, Y: cfg.WorldHeight - 2}, "water")
	_ = w.SetFluid(domain.Position{X: cfg.WorldWidth - 2, Y: cfg.WorldHeight - 2}, "lava")
	return w
}

// SpawnPos - где появляются новые агенты.
func SpawnPos(w *domain.World) domain.Position {
	return domain.Position{X: w.Width / 2, Y: w.Height / 2}
}

// newAgent создает агента со стартовым набором.
func newAgent(id string, pos domain.Position) *domain.Agent {
	a := &domain.Agent{
		ID:        id,
		Name:      id,
		Pos:       pos,
		Stats:     &domain.StatsComponent{HP: 20, MaxHP: 20},
		Inventory: domain.NewInventory(domain.DefaultMaxSlots),
	}

	// Даём агенту стартовые предметы
	a.Inventory.AddStack(domain.ItemStack{Item: domain.UnitItemID, Count: 2})
	a.Inventory.AddStack(domain.ItemStack{Item: "core:cobblestone", Count: 64})
	a.Inventory.AddStack(domain.ItemStack{Item: "core:iron_ingot", Count: 32})
	a.Inventory.AddStack(domain.ItemStack{Item: "core:dye", Meta: 4, Count: 16})
	return a
}
