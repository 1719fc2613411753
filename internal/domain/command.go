package domain

import "encoding/json"

// InternalCommand - команда для движка.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType      // Число! Быстро и безопасно.
	Token   string          // ID агента, который выполняет команду
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
