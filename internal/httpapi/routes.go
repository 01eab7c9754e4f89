package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sketchparty/sketchparty-backend/internal/hub"
	"github.com/sketchparty/sketchparty-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, log *zap.SugaredLogger, limits ws.Limits) http.Handler {
	r := chi.NewRouter()

	r.Post("/rooms", NewRoomCode(h))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, log, limits))
	return r
}
