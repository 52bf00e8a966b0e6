package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	exportService "github.com/wzhuang/simpatient/backend/internal/export"
	chatHandler "github.com/wzhuang/simpatient/backend/internal/handler/chat"
	exportHandler "github.com/wzhuang/simpatient/backend/internal/handler/export"
	personaHandler "github.com/wzhuang/simpatient/backend/internal/handler/persona"
	middlewarePkg "github.com/wzhuang/simpatient/backend/internal/middleware"
	personaModel "github.com/wzhuang/simpatient/backend/internal/model/persona"
	chatService "github.com/wzhuang/simpatient/backend/internal/service/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, controller *chatService.Controller, exporter *exportService.PDFExporter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		personaHandler.New(personas).RegisterRoutes(api)
		chatHandler.New(controller).RegisterRoutes(api)
		exportHandler.New(exporter).RegisterRoutes(api)
	})

	return r
}
