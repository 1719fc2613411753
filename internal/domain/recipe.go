package domain

import (
	"fmt"
	"sort"
)

// Ingredient - либо конкретный предмет, либо тег группы предметов
// ("chestWood" подходит под любой деревянный сундук).
type Ingredient struct {
	Item string `json:"item,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

func ItemIngredient(id string) Ingredient { return Ingredient{Item: CanonicalID(id)} }

func TagIngredient(name string) Ingredient { return Ingredient{Tag: name} }

// ShapedRecipe - рецепт с формой: до 3 строк по 3 символа,
// каждый символ кроме пробела ссылается на ингредиент.
type ShapedRecipe struct {
	Result  ItemStack           `json:"result"`
	Pattern []string            `json:"pattern"`
	Keys    map[rune]Ingredient `json:"-"`
}

// Validate проверяет форму и ключи рецепта.
func (r ShapedRecipe) Validate() error {
	if r.Result.IsEmpty() {
		return fmt.Errorf("recipe result is empty")
	}
	if len(r.Pattern) == 0 || len(r.Pattern) > 3 {
		return fmt.Errorf("recipe %s: pattern must have 1..3 rows, got %d", r.Result.Item, len(r.Pattern))
	}

	width := len([]rune(r.Pattern[0]))
	used := make(map[rune]bool)
	for _, row := range r.Pattern {
		runes := []rune(row)
		if len(runes) != width || width == 0 || width > 3 {
			return fmt.Errorf("recipe %s: rows must share a width of 1..3", r.Result.Item)
		}
		for _, sym := range runes {
			if sym == ' ' {
				continue
			}
			if _, ok := r.Keys[sym]; !ok {
				return fmt.Errorf("recipe %s: symbol %q has no ingredient", r.Result.Item, sym)
			}
			used[sym] = true
		}
	}

	for sym, ing := range r.Keys {
		if !used[sym] {
			return fmt.Errorf("recipe %s: ingredient %q is never used", r.Result.Item, sym)
		}
		if (ing.Item == "") == (ing.Tag == "") {
			return fmt.Errorf("recipe %s: ingredient %q must name an item or a tag", r.Result.Item, sym)
		}
	}
	return nil
}

// RecipeBook - реестр рецептов. Заполняется при старте.
type RecipeBook struct {
	recipes map[string]ShapedRecipe
}

func NewRecipeBook() *RecipeBook {
	return &RecipeBook{recipes: make(map[string]ShapedRecipe)}
}

// Register добавляет рецепт. Один результат - один рецепт.
func (b *RecipeBook) Register(r ShapedRecipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	id := CanonicalID(r.Result.Item)
	if _, exists := b.recipes[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecipe, id)
	}
	b.recipes[id] = r
	return nil
}

func (b *RecipeBook) Lookup(resultID string) (ShapedRecipe, bool) {
	r, ok := b.recipes[CanonicalID(resultID)]
	return r, ok
}

// All возвращает рецепты, отсортированные по результату.
func (b *RecipeBook) All() []ShapedRecipe {
	out := make([]ShapedRecipe, 0, len(b.recipes))
	for _, r := range b.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Result.Item < out[j].Result.Item })
	return out
}
