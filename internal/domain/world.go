package domain

import "math/rand"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// World - состояние мира. Владеет им только поток симуляции.
type World struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Tick   int `json:"tick"`

	// PickupDelay - задержка подбора у выпавших предметов.
	PickupDelay int `json:"-"`

	Blocks map[Position]string       `json:"-"` // Позиция -> ID блока
	Units  map[Position]*StorageUnit `json:"-"` // Блок-сущности хранилищ
	Fluids map[Position]string       `json:"-"` // Позиция -> вещество (water, lava)
	Agents map[string]*Agent         `json:"-"`

	// Предметы на земле: реестр по ID и SpatialHash по клетке.
	// Ключ SpatialHash: Y * Width + X
	Items       map[string]*ItemEntity `json:"-"`
	SpatialHash map[int][]*ItemEntity  `json:"-"`

	Rng *rand.Rand `json:"-"`

	nextID uint64
}

func NewWorld(width, height int, seed int64) *World {
	return &World{
		Width:       width,
		Height:      height,
		PickupDelay: DefaultPickupDelay,
		Blocks:      make(map[Position]string),
		Units:       make(map[Position]*StorageUnit),
		Fluids:      make(map[Position]string),
		Agents:      make(map[string]*Agent),
		Items:       make(map[string]*ItemEntity),
		SpatialHash: make(map[int][]*ItemEntity),
		Rng:         rand.New(rand.NewSource(seed)),
	}
}
