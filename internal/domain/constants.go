package domain

// Блок-хранилище: один и тот же ID у блока в мире и у переносного предмета.
const (
	UnitItemID  = "deepstore:storage_unit"
	UnitBlockID = UnitItemID
)

// Предметы
const (
	MaxStackSize       = 64
	DefaultPickupDelay = 10 // тиков до того, как выпавший предмет можно подобрать
	DefaultMaxSlots    = 27
)

// Разброс выпавшего предмета внутри клетки: [0.15, 0.85)
const dropSpread = 0.7
