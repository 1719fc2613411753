package server

import (
	"net/http"

	"deepstore-server/internal/engine"

	"github.com/gorilla/mux"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/units", h.handleUnits).Methods(http.MethodGet)
	r.HandleFunc("/recipes", h.handleRecipes).Methods(http.MethodGet)
}

// /debug/units - все хранилища мира с содержимым и подсказками
func (h *DebugHandler) handleUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.Service.Query(r.Context(), func() any { return h.Service.UnitViews() })
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, units)
}

// /debug/recipes - зарегистрированные рецепты
func (h *DebugHandler) handleRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.RecipeViews())
}
