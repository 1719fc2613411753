package domain

import "math"

// ReachDistance - как далеко агент дотягивается до блока.
const ReachDistance = 4.5

// DistanceTo возвращает точное расстояние до другой точки (float)
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(float64(p.X-other.X), float64(p.Y-other.Y))
}

// InReach проверяет, дотягивается ли агент из p до клетки target.
func (p Position) InReach(target Position) bool {
	return p.DistanceTo(target) <= ReachDistance
}
