package domain

import (
	"fmt"
	"math"
	"sort"
)

func (w *World) GetIndex(x, y int) int {
	return y*w.Width + x
}

// InBounds проверяет, что клетка внутри карты.
func (w *World) InBounds(p Position) bool {
	return p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height
}

// NewEntityID выдает следующий ID сущности мира. Последовательный, чтобы
// один и тот же сид давал одни и те же ID.
func (w *World) NewEntityID(prefix string) string {
	w.nextID++
	return fmt.Sprintf("%s_%d", prefix, w.nextID)
}

// --- БЛОКИ ---

// BlockAt возвращает ID блока в клетке.
func (w *World) BlockAt(p Position) (string, bool) {
	id, ok := w.Blocks[p]
	return id, ok
}

// SetBlock ставит блок в свободную клетку.
func (w *World) SetBlock(p Position, id string) error {
	if !w.InBounds(p) {
		return ErrOutOfBounds
	}
	if _, taken := w.Blocks[p]; taken {
		return ErrOccupied
	}
	w.Blocks[p] = id
	return nil
}

// ClearBlock убирает блок вместе с его блок-сущностью.
func (w *World) ClearBlock(p Position) {
	delete(w.Blocks, p)
	delete(w.Units, p)
}

// --- ХРАНИЛИЩА ---

// UnitAt возвращает блок-сущность хранилища или nil.
func (w *World) UnitAt(p Position) *StorageUnit {
	return w.Units[p]
}

// AttachUnit регистрирует блок-сущность в клетке блока.
func (w *World) AttachUnit(u *StorageUnit) {
	w.Units[u.Pos] = u
}

// DetachUnit снимает блок-сущность с клетки и возвращает её.
func (w *World) DetachUnit(p Position) *StorageUnit {
	u := w.Units[p]
	delete(w.Units, p)
	return u
}

// UnitPositions - позиции всех хранилищ в детерминированном порядке.
func (w *World) UnitPositions() []Position {
	out := make([]Position, 0, len(w.Units))
	for p := range w.Units {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// --- ЖИДКОСТИ ---

func (w *World) FluidAt(p Position) (string, bool) {
	s, ok := w.Fluids[p]
	return s, ok
}

func (w *World) SetFluid(p Position, substance string) error {
	if !w.InBounds(p) {
		return ErrOutOfBounds
	}
	w.Fluids[p] = substance
	return nil
}

// --- АГЕНТЫ ---

func (w *World) RegisterAgent(a *Agent) {
	w.Agents[a.ID] = a
}

func (w *World) GetAgent(id string) *Agent {
	return w.Agents[id]
}

// --- ПРЕДМЕТЫ НА ЗЕМЛЕ ---

// SpawnItem бросает стак в клетку p со случайным смещением внутри клетки.
// Стак копируется: у сущности на земле своя карта атрибутов.
func (w *World) SpawnItem(p Position, stack ItemStack) *ItemEntity {
	e := &ItemEntity{
		ID:          w.NewEntityID("item"),
		X:           float64(p.X) + w.Rng.Float64()*dropSpread + (1-dropSpread)*0.5,
		Y:           float64(p.Y) + w.Rng.Float64()*dropSpread + (1-dropSpread)*0.5,
		Stack:       stack.Copy(),
		PickupDelay: w.PickupDelay,
	}
	w.Items[e.ID] = e
	w.AddEntity(e)
	return e
}

// GetItem ищет предмет на земле по ID.
func (w *World) GetItem(id string) *ItemEntity {
	return w.Items[id]
}

// RemoveItem убирает предмет с земли.
func (w *World) RemoveItem(id string) *ItemEntity {
	e, ok := w.Items[id]
	if !ok {
		return nil
	}
	delete(w.Items, id)
	w.RemoveEntity(e)
	return e
}

// ItemsAt возвращает предметы в клетке.
func (w *World) ItemsAt(p Position) []*ItemEntity {
	if !w.InBounds(p) {
		return nil
	}
	return w.SpatialHash[w.GetIndex(p.X, p.Y)]
}

// AddEntity добавляет предмет в индекс
func (w *World) AddEntity(e *ItemEntity) {
	c := e.Cell()
	idx := w.GetIndex(c.X, c.Y)
	w.SpatialHash[idx] = append(w.SpatialHash[idx], e)
}

// RemoveEntity удаляет предмет из индекса
func (w *World) RemoveEntity(e *ItemEntity) {
	c := e.Cell()
	idx := w.GetIndex(c.X, c.Y)
	entities := w.SpatialHash[idx]

	for i, other := range entities {
		if other.ID == e.ID {
			// Swap with last: порядок не важен
			lastIdx := len(entities) - 1
			entities[i] = entities[lastIdx]
			entities[lastIdx] = nil
			if lastIdx == 0 {
				delete(w.SpatialHash, idx)
			} else {
				w.SpatialHash[idx] = entities[:lastIdx]
			}
			return
		}
	}
}

// Cell - клетка, в которой лежит предмет.
func (e *ItemEntity) Cell() Position {
	return Position{X: int(math.Floor(e.X)), Y: int(math.Floor(e.Y))}
}

// Advance двигает время мира на один тик.
func (w *World) Advance() {
	w.Tick++
	for _, e := range w.Items {
		if e.PickupDelay > 0 {
			e.PickupDelay--
		}
	}
	// Огонь догорает сам, урон только от лавы
	for _, a := range w.Agents {
		if a.Stats.IsBurning() {
			a.Stats.FireTicks--
		}
	}
}
