package systems

import (
	"fmt"

	"deepstore-server/internal/domain"
	"deepstore-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// BlockHooks - точки расширения, которые мир вызывает, когда блок
// ставят и когда его ломают.
type BlockHooks interface {
	// OnPlaced вызывается после того, как блок встал в клетку.
	OnPlaced(w *domain.World, pos domain.Position, stack domain.ItemStack) error
	// OnRemoved вызывается до того, как блок исчезнет. Возвращает то,
	// что сам заспавнил. Если хук есть, стандартный дроп не выполняется.
	OnRemoved(w *domain.World, pos domain.Position) ([]*domain.ItemEntity, error)
}

// UnitLifecycle связывает события мира с хранилищем и снимком.
type UnitLifecycle struct {
	Registry domain.Registry
}

func NewUnitLifecycle(reg domain.Registry) *UnitLifecycle {
	return &UnitLifecycle{Registry: reg}
}

// OnPlaced создает хранилище в клетке и наполняет его из снимка.
// Ошибки разбора снимка установку не блокируют.
func (l *UnitLifecycle) OnPlaced(w *domain.World, pos domain.Position, stack domain.ItemStack) error {
	if !stack.IsUnit() {
		return domain.ErrNotUnitItem
	}
	if w.UnitAt(pos) != nil {
		return domain.ErrOccupied
	}

	unit := domain.NewStorageUnit(w.NewEntityID("unit"), pos)
	decoded := DecodeUnit(stack.Tag, l.Registry)
	decoded.Apply(unit)
	w.AttachUnit(unit)

	logger.Log.WithFields(logrus.Fields{
		"component": "unit_lifecycle",
		"unit_id":   unit.ID,
		"pos":       pos,
		"item":      decoded.Descriptor.ID,
		"amount":    unit.Quantity(),
		"resolved":  decoded.HasDescriptor,
	}).Debug("Storage unit placed")
	return nil
}

// OnRemoved превращает хранилище ровно в один переносной предмет.
// Количество - атрибут этого предмета, а не число выпавших предметов.
func (l *UnitLifecycle) OnRemoved(w *domain.World, pos domain.Position) ([]*domain.ItemEntity, error) {
	unit := w.DetachUnit(pos)
	if unit == nil {
		if _, ok := w.BlockAt(pos); !ok {
			return nil, domain.ErrNoUnit
		}
		// Блок есть, а сущность потерялась: отдаем пустой переносной блок.
		unit = domain.NewStorageUnit("", pos)
	}

	dropped := w.SpawnItem(pos, NewSnapshot(unit))

	logger.Log.WithFields(logrus.Fields{
		"component": "unit_lifecycle",
		"unit_id":   unit.ID,
		"pos":       pos,
		"amount":    unit.Quantity(),
		"item_id":   dropped.ID,
	}).Debug("Storage unit removed")
	return []*domain.ItemEntity{dropped}, nil
}

// --- УСТАНОВКА И ЛОМАНИЕ БЛОКОВ ---

// PlaceBlock ставит блок из стака в клетку и вызывает хук блока.
// Если хук отказал, клетка освобождается.
func PlaceBlock(w *domain.World, pos domain.Position, stack domain.ItemStack, hooks BlockHooks) error {
	if stack.IsEmpty() {
		return fmt.Errorf("nothing to place")
	}
	blockID := domain.CanonicalID(stack.Item)
	if err := w.SetBlock(pos, blockID); err != nil {
		return err
	}
	if hooks == nil {
		return nil
	}
	if err := hooks.OnPlaced(w, pos, stack); err != nil {
		w.ClearBlock(pos)
		return err
	}
	return nil
}

// BreakBlock ломает блок. Блок с хуком сам решает, что выпадет;
// для остальных выпадает сам блок и, если в клетке есть хранилище,
// его содержимое по одному предмету на единицу.
func BreakBlock(w *domain.World, pos domain.Position, hooks BlockHooks) ([]*domain.ItemEntity, error) {
	blockID, ok := w.BlockAt(pos)
	if !ok {
		return nil, domain.ErrNoBlock
	}

	var spawned []*domain.ItemEntity
	if hooks != nil {
		out, err := hooks.OnRemoved(w, pos)
		if err != nil {
			return nil, err
		}
		spawned = out
	} else {
		for _, stack := range DefaultDrops(w, pos, blockID) {
			spawned = append(spawned, w.SpawnItem(pos, stack))
		}
	}

	w.ClearBlock(pos)
	return spawned, nil
}

// DefaultDrops - стандартный дроп мира: сам блок плюс содержимое
// блок-сущности, по предмету на каждую единицу.
func DefaultDrops(w *domain.World, pos domain.Position, blockID string) []domain.ItemStack {
	drops := []domain.ItemStack{{Item: blockID, Count: 1}}

	unit := w.UnitAt(pos)
	if unit == nil {
		return drops
	}
	d, ok := unit.Descriptor()
	if !ok {
		return drops
	}
	for i := uint64(0); i < unit.Quantity(); i++ {
		drops = append(drops, d.Stack(1))
	}
	return drops
}
