package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/slidegen-api/internal/api"
	apiMiddleware "github.com/phrazzld/slidegen-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware. RealIP must precede the allowlist so
	// proxy headers resolve before the IP check.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.IPAllowlist(app.config.Server.AllowedIPs, app.logger))

	contentHandler := api.NewContentHandler(app.contentService, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionManager, app.logger)
	infoHandler := api.NewInfoHandler(app.providerName, app.modelName)

	// Generation endpoints
	r.Post("/generate/text", contentHandler.GenerateText)
	r.Post("/generate/table", contentHandler.GenerateTable)
	r.Post("/generate/batch/text", contentHandler.GenerateBatchText)
	r.Post("/generate/batch/table", contentHandler.GenerateBatchTable)

	// Session endpoints
	r.Get("/session/{presentation_id}", sessionHandler.GetSessionInfo)
	r.Delete("/session/{presentation_id}", sessionHandler.DeleteSession)

	// Service endpoints
	r.Get("/health", infoHandler.Health)
	r.Get("/", infoHandler.Root)

	return r
}
