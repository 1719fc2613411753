package domain

// --- КОМПОНЕНТЫ ---

// StatsComponent - Здоровье и горение
type StatsComponent struct {
	HP        int `json:"hp"`
	MaxHP     int `json:"maxHp"`
	FireTicks int `json:"fireTicks"` // > 0 - агент горит
}

// --- СУЩНОСТИ ---

// Agent - тот, кто ставит и ломает блоки, кладет и забирает товар, пьет.
type Agent struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Pos  Position `json:"pos"`

	// Компоненты (Если nil - значит свойство отсутствует)
	Stats     *StatsComponent     `json:"stats,omitempty"`
	Inventory *InventoryComponent `json:"inventory,omitempty"`
}

// ItemEntity - предмет, лежащий на земле.
type ItemEntity struct {
	ID          string    `json:"id"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Stack       ItemStack `json:"stack"`
	PickupDelay int       `json:"pickupDelay"`
}
