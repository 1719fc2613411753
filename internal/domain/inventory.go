package domain

// InventoryComponent хранит стаки агента.
type InventoryComponent struct {
	Slots    []ItemStack `json:"slots"`
	MaxSlots int         `json:"maxSlots"`
}

func NewInventory(maxSlots int) *InventoryComponent {
	return &InventoryComponent{MaxSlots: maxSlots}
}

// AddStack кладет стак в инвентарь: сначала доливает подходящие стаки,
// остаток - в новые слоты. Возвращает то, что не поместилось.
func (inv *InventoryComponent) AddStack(stack ItemStack) ItemStack {
	if inv == nil || stack.IsEmpty() {
		return stack
	}
	rest := stack.Copy()
	limit := rest.MaxStack()

	// Попытка стакирования
	for i := range inv.Slots {
		slot := &inv.Slots[i]
		if slot.Count >= limit || !slot.Stacks(rest) {
			continue
		}
		move := min(limit-slot.Count, rest.Count)
		slot.Count += move
		rest.Count -= move
		if rest.Count == 0 {
			return ItemStack{}
		}
	}

	// Новые слоты
	for rest.Count > 0 && len(inv.Slots) < inv.MaxSlots {
		part := rest.Copy()
		part.Count = min(rest.Count, limit)
		inv.Slots = append(inv.Slots, part)
		rest.Count -= part.Count
	}
	if rest.Count == 0 {
		return ItemStack{}
	}
	return rest
}

// Slot возвращает копию стака в слоте.
func (inv *InventoryComponent) Slot(i int) (ItemStack, bool) {
	if inv == nil || i < 0 || i >= len(inv.Slots) {
		return ItemStack{}, false
	}
	return inv.Slots[i].Copy(), true
}

// TakeFromSlot забирает до n предметов из слота. Пустой слот удаляется.
func (inv *InventoryComponent) TakeFromSlot(i, n int) ItemStack {
	if inv == nil || i < 0 || i >= len(inv.Slots) || n <= 0 {
		return ItemStack{}
	}
	slot := &inv.Slots[i]
	taken := slot.Copy()
	taken.Count = min(n, slot.Count)
	slot.Count -= taken.Count
	if slot.Count == 0 {
		inv.Slots = append(inv.Slots[:i], inv.Slots[i+1:]...)
	}
	return taken
}

// Count - сколько всего предметов, подходящих под стак.
func (inv *InventoryComponent) Count(like ItemStack) int {
	if inv == nil {
		return 0
	}
	total := 0
	for _, s := range inv.Slots {
		if s.Stacks(like) {
			total += s.Count
		}
	}
	return total
}
