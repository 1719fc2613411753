package domain

// TakeDamage наносит урон. Возвращает true, если HP кончилось.
func (s *StatsComponent) TakeDamage(amount int) bool {
	if s == nil {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	s.HP -= amount

	if s.HP <= 0 {
		s.HP = 0
		return true
	}
	return false
}

// IsBurning сообщает, горит ли агент.
func (s *StatsComponent) IsBurning() bool {
	return s != nil && s.FireTicks > 0
}

// Extinguish тушит агента.
func (s *StatsComponent) Extinguish() {
	if s != nil {
		s.FireTicks = 0
	}
}

// Ignite поджигает агента не меньше чем на ticks тиков.
func (s *StatsComponent) Ignite(ticks int) {
	if s != nil && s.FireTicks < ticks {
		s.FireTicks = ticks
	}
}
