package systems

import (
	"fmt"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/effects"
)

// TryDrink - агент пьет жидкость из клетки мира. Нет обработчика для
// вещества - ничего не происходит, это не ошибка.
func TryDrink(w *domain.World, agent *domain.Agent, pos domain.Position, reg *effects.Registry) (string, error) {
	if !agent.Pos.InReach(pos) {
		return "", fmt.Errorf("слишком далеко")
	}
	substance, ok := w.FluidAt(pos)
	if !ok {
		return "", fmt.Errorf("здесь нечего пить")
	}

	if !reg.Dispatch(w, pos, substance, agent, false) {
		return fmt.Sprintf("%s пьет %s. Ничего не происходит.", agent.Name, substance), nil
	}
	return fmt.Sprintf("%s пьет %s.", agent.Name, substance), nil
}
