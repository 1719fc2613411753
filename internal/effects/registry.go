// Package effects - реестр эффектов от выпитого вещества.
//
// Ключ - идентификатор вещества ("water", "lava"). На ключ не больше одного
// обработчика; нет обработчика - ничего не происходит.
package effects

import (
	"errors"
	"fmt"
	"sort"

	"deepstore-server/internal/domain"
	"deepstore-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var ErrDuplicateHandler = errors.New("consume handler already registered")

// Handler реагирует на то, что агент выпил вещество.
// fromContainer - пил из емкости, а не из мира.
type Handler interface {
	Substance() string
	OnConsume(w *domain.World, pos domain.Position, substance string, agent *domain.Agent, fromContainer bool)
}

// Registry - таблица обработчиков. Заполняется при старте.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register добавляет обработчик под его вещество.
func (r *Registry) Register(h Handler) error {
	key := domain.CanonicalID(h.Substance())
	if key == "" {
		return fmt.Errorf("consume handler has no substance")
	}
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, key)
	}
	r.handlers[key] = h
	return nil
}

// Lookup возвращает обработчик вещества, если он есть.
func (r *Registry) Lookup(substance string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[domain.CanonicalID(substance)]
	return h, ok
}

// Dispatch вызывает обработчик. false - обработчика нет, ничего не сделано.
func (r *Registry) Dispatch(w *domain.World, pos domain.Position, substance string, agent *domain.Agent, fromContainer bool) bool {
	h, ok := r.Lookup(substance)
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "effects",
			"substance": substance,
		}).Debug("No consume handler registered")
		return false
	}
	h.OnConsume(w, pos, substance, agent, fromContainer)
	return true
}

// Substances - зарегистрированные вещества по алфавиту.
func (r *Registry) Substances() []string {
	out := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Defaults - встроенные обработчики.
func Defaults() []Handler {
	return []Handler{WaterHandler{}, LavaHandler{}}
}
