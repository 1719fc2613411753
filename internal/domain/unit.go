package domain

import (
	"math"

	"deepstore-server/internal/core/tag"
)

// MaxQuantity - предел, до которого Insert наполняет хранилище.
// Выше не поднимаемся: в атрибутах снимка количество лежит как int64.
const MaxQuantity uint64 = math.MaxInt64

// StorageUnit - блок-хранилище. Копит сколько угодно единиц ровно одного
// товара; товар определяется первой положенной единицей.
//
// Блокировок нет: все изменения идут из потока симуляции.
type StorageUnit struct {
	ID  string   `json:"id"`
	Pos Position `json:"pos"`

	held     *Descriptor
	quantity uint64

	// unresolved хранит сырые поля идентичности из снимка, чей товар
	// не нашелся в реестре. Их не показываем, но и не теряем.
	unresolved tag.Compound
}

func NewStorageUnit(id string, pos Position) *StorageUnit {
	return &StorageUnit{ID: id, Pos: pos}
}

// Descriptor возвращает хранимый товар. ok=false - товар еще не выбран.
func (u *StorageUnit) Descriptor() (Descriptor, bool) {
	if u.held == nil {
		return Descriptor{}, false
	}
	return u.held.Copy(), true
}

func (u *StorageUnit) Quantity() uint64 {
	return u.quantity
}

// SetDescriptor заменяет товар безусловно. Совпадение типов здесь
// не проверяется, для этого есть Insert.
func (u *StorageUnit) SetDescriptor(d Descriptor) {
	cp := d.Copy()
	u.held = &cp
	u.unresolved = nil
}

// ClearDescriptor возвращает блок в состояние "товар не выбран".
func (u *StorageUnit) ClearDescriptor() {
	u.held = nil
}

// SetQuantity заменяет количество безусловно, без верхней границы.
func (u *StorageUnit) SetQuantity(q uint64) {
	u.quantity = q
}

// Unresolved возвращает копию сохраненных сырых полей идентичности.
func (u *StorageUnit) Unresolved() tag.Compound {
	return u.unresolved.Copy()
}

// SetUnresolved запоминает сырые поля идентичности, которые не удалось
// сопоставить с реестром.
func (u *StorageUnit) SetUnresolved(raw tag.Compound) {
	if len(raw) == 0 {
		u.unresolved = nil
		return
	}
	u.unresolved = raw.Copy()
}

// IsEmpty - в блоке нет ни одной единицы.
func (u *StorageUnit) IsEmpty() bool {
	return u.quantity == 0
}

// Insert кладет n единиц товара d. Пустой блок принимает любой товар,
// непустой - только тот же самый.
func (u *StorageUnit) Insert(d Descriptor, n uint64) error {
	if n == 0 {
		return nil
	}
	if u.quantity > 0 {
		if u.held == nil || !u.held.Equal(d) {
			return ErrCommodityMismatch
		}
		if n > MaxQuantity || u.quantity > MaxQuantity-n {
			return ErrQuantityOverflow
		}
		u.quantity += n
		return nil
	}
	if n > MaxQuantity {
		return ErrQuantityOverflow
	}
	u.SetDescriptor(d)
	u.quantity = n
	return nil
}

// Extract забирает до n единиц. Возвращает товар и сколько реально забрали.
// Когда блок опустел, дескриптор остается, но больше ничего не значит.
func (u *StorageUnit) Extract(n uint64) (Descriptor, uint64, bool) {
	if u.quantity == 0 || u.held == nil || n == 0 {
		return Descriptor{}, 0, false
	}
	take := n
	if take > u.quantity {
		take = u.quantity
	}
	u.quantity -= take
	return u.held.Copy(), take, true
}

// Displayed возвращает то, что видит игрок. Пустой блок и блок с
// неизвестным товаром выглядят одинаково: пусто.
func (u *StorageUnit) Displayed(reg Registry) (CommodityType, uint64, bool) {
	if u.quantity == 0 || u.held == nil {
		return CommodityType{}, 0, false
	}
	t, ok := u.held.Resolve(reg)
	if !ok {
		return CommodityType{}, 0, false
	}
	return t, u.quantity, true
}
