package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту
// в ответ на команду или как рассылку логов.
type ServerResponse struct {
	// Type тип сообщения: "RESULT", "ERROR", "LOG".
	Type string `json:"type"`

	// Tick текущее время мира.
	Tick int64 `json:"tick"`

	// Logs новые сообщения, появившиеся в результате команды.
	Logs []LogEntry `json:"logs,omitempty"`

	// Data полезная нагрузка ответа. Структура зависит от команды
	// (UnitView для INSPECT, AgentView для INIT и т.д.).
	Data any `json:"data,omitempty"`
}

// LogEntry представляет одну запись в логе мира.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ERROR, EFFECT
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// UnitView это DTO хранилища в мире.
type UnitView struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`

	// Commodity пусто, если хранилище пусто или его товар неизвестен миру.
	Commodity string `json:"commodity,omitempty"`
	Variant   int32  `json:"variant,omitempty"`
	Name      string `json:"name,omitempty"`
	Amount    uint64 `json:"amount"`

	// Tooltip строки подсказки, как у переносного предмета.
	Tooltip []string `json:"tooltip,omitempty"`
}

// StackView это DTO стака в инвентаре или на земле.
type StackView struct {
	Item    string         `json:"item"`
	Count   int            `json:"count"`
	Meta    int32          `json:"meta,omitempty"`
	Tag     map[string]any `json:"tag,omitempty"`
	Tooltip []string       `json:"tooltip,omitempty"`
}

// GroundItemView предмет, лежащий на земле.
type GroundItemView struct {
	ID    string    `json:"id"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Stack StackView `json:"stack"`
}

// AgentView это DTO агента, от имени которого пришла команда.
type AgentView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	X         int         `json:"x"`
	Y         int         `json:"y"`
	HP        int         `json:"hp"`
	MaxHP     int         `json:"maxHp"`
	Burning   bool        `json:"burning"`
	Inventory []StackView `json:"inventory"`
}

// RecipeView это DTO зарегистрированного рецепта.
type RecipeView struct {
	Result  string            `json:"result"`
	Pattern []string          `json:"pattern"`
	Keys    map[string]string `json:"keys"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID агента, от имени которого выполняется действие.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, PLACE, BREAK, DEPOSIT, WITHDRAW, INSPECT, DRINK, PICKUP.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// PositionPayload используется для действий, нацеленных на клетку (BREAK, INSPECT, DRINK).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlacePayload ставит блок из слота инвентаря в клетку.
type PlacePayload struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Slot int `json:"slot"`
}

// DepositPayload кладет предметы из слота в хранилище.
type DepositPayload struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Slot  int `json:"slot"`
	Count int `json:"count,omitempty"` // 0 - весь слот
}

// WithdrawPayload забирает предметы из хранилища.
type WithdrawPayload struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Count int `json:"count,omitempty"` // 0 - полный стак
}

// ItemPayload используется для PICKUP.
type ItemPayload struct {
	ItemID string `json:"itemId"`
}

// TooltipRequest описывает переносной предмет, для которого нужна подсказка.
type TooltipRequest struct {
	Item  string         `json:"item"`
	Count int            `json:"count,omitempty"`
	Meta  int32          `json:"meta,omitempty"`
	Tag   map[string]any `json:"tag,omitempty"`
}

// TooltipResponse строки подсказки.
type TooltipResponse struct {
	Lines []string `json:"lines"`
}
