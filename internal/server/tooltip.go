package server

import (
	"encoding/json"
	"net/http"

	"deepstore-server/pkg/api"
)

const maxTooltipBody = 64 << 10

// handleTooltip строит подсказку для переносного предмета из тела запроса.
// Числа в атрибутах читаются как json.Number, чтобы большие количества
// не теряли точность.
func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTooltipBody))
	dec.UseNumber()

	var req api.TooltipRequest
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, api.TooltipResponse{Lines: s.Engine.Tooltip(req)})
}
