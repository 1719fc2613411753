package handlers

import (
	"encoding/json"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/effects"
	"deepstore-server/internal/systems"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World     *domain.World
	Agent     *domain.Agent // Тот, кто выполняет команду
	Registry  domain.Registry
	Recipes   *domain.RecipeBook
	Lifecycle *systems.UnitLifecycle
	Effects   *effects.Registry
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ERROR, EFFECT)
	Data    any    // Данные для ответа клиенту
}

// HandlerFunc - это контракт для любой команды (PLACE, BREAK, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Fail превращает ошибку мира в ответ для игрока.
func Fail(err error) Result {
	return Result{Msg: err.Error(), MsgType: "ERROR"}
}

// HooksFor возвращает хуки блока в клетке. nil - у блока хуков нет.
func (c Context) HooksFor(blockID string) systems.BlockHooks {
	if domain.CanonicalID(blockID) == domain.UnitBlockID && c.Lifecycle != nil {
		return c.Lifecycle
	}
	return nil
}
