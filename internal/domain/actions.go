package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionPlace
	ActionBreak
	ActionDeposit
	ActionWithdraw
	ActionInspect
	ActionDrink
	ActionPickup
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"PLACE":    ActionPlace,
	"BREAK":    ActionBreak,
	"DEPOSIT":  ActionDeposit,
	"WITHDRAW": ActionWithdraw,
	"INSPECT":  ActionInspect,
	"DRINK":    ActionDrink,
	"PICKUP":   ActionPickup,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionPlace:    "PLACE",
	ActionBreak:    "BREAK",
	ActionDeposit:  "DEPOSIT",
	ActionWithdraw: "WITHDRAW",
	ActionInspect:  "INSPECT",
	ActionDrink:    "DRINK",
	ActionPickup:   "PICKUP",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
