package systems

import (
	"fmt"

	"deepstore-server/internal/domain"
)

// --- PICKUP ---

// TryPickup подбирает предмет с земли целиком. Остаток, не влезший в
// инвентарь, остается лежать.
func TryPickup(agent *domain.Agent, itemID string, w *domain.World) (string, error) {
	if agent.Inventory == nil {
		return "", fmt.Errorf("%s не может иметь инвентарь", agent.Name)
	}
	item := w.GetItem(itemID)
	if item == nil {
		return "", fmt.Errorf("предмет не найден")
	}
	if !agent.Pos.InReach(item.Cell()) {
		return "", fmt.Errorf("слишком далеко")
	}
	if item.PickupDelay > 0 {
		return "", fmt.Errorf("предмет еще нельзя подобрать")
	}

	rest := agent.Inventory.AddStack(item.Stack)
	if rest.Count == item.Stack.Count {
		return "", fmt.Errorf("инвентарь полон")
	}
	taken := item.Stack.Count - rest.Count
	if rest.IsEmpty() {
		w.RemoveItem(itemID)
	} else {
		item.Stack.Count = rest.Count
	}

	return fmt.Sprintf("%s подбирает %dx %s.", agent.Name, taken, item.Stack.Item), nil
}

// --- DEPOSIT ---

// TryDeposit перекладывает до count предметов из слота агента в хранилище.
// count <= 0 - весь слот.
func TryDeposit(agent *domain.Agent, unit *domain.StorageUnit, slot, count int, reg domain.Registry) (string, error) {
	if agent.Inventory == nil {
		return "", fmt.Errorf("%s не может иметь инвентарь", agent.Name)
	}
	if unit == nil {
		return "", domain.ErrNoUnit
	}

	stack, ok := agent.Inventory.Slot(slot)
	if !ok || stack.IsEmpty() {
		return "", fmt.Errorf("слот %d пуст", slot)
	}
	if stack.IsUnit() {
		return "", fmt.Errorf("хранилище нельзя положить в хранилище")
	}

	d := stack.Descriptor()
	t, ok := d.Resolve(reg)
	if !ok {
		return "", fmt.Errorf("неизвестный товар %s", d.ID)
	}

	if count <= 0 || count > stack.Count {
		count = stack.Count
	}
	if err := unit.Insert(d, uint64(count)); err != nil {
		return "", err
	}
	agent.Inventory.TakeFromSlot(slot, count)

	return fmt.Sprintf("%s кладет %dx %s.", agent.Name, count, t.NameFor(d.Variant)), nil
}

// --- WITHDRAW ---

// TryWithdraw забирает из хранилища до count единиц одним стаком,
// но не больше MaxStackSize за раз. Что не влезло в инвентарь, остается в блоке.
func TryWithdraw(agent *domain.Agent, unit *domain.StorageUnit, count int, reg domain.Registry) (string, error) {
	if agent.Inventory == nil {
		return "", fmt.Errorf("%s не может иметь инвентарь", agent.Name)
	}
	if unit == nil {
		return "", domain.ErrNoUnit
	}
	if count <= 0 || count > domain.MaxStackSize {
		count = domain.MaxStackSize
	}

	d, taken, ok := unit.Extract(uint64(count))
	if !ok {
		return "", fmt.Errorf("хранилище пусто")
	}

	rest := agent.Inventory.AddStack(d.Stack(int(taken)))
	if !rest.IsEmpty() {
		// Возвращаем остаток: тот же товар, переполнения быть не может.
		_ = unit.Insert(d, uint64(rest.Count))
		taken -= uint64(rest.Count)
	}
	if taken == 0 {
		return "", fmt.Errorf("инвентарь полон")
	}

	name := d.ID
	if t, ok := d.Resolve(reg); ok {
		name = t.NameFor(d.Variant)
	}
	return fmt.Sprintf("%s забирает %dx %s.", agent.Name, taken, name), nil
}
