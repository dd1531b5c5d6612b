package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPortabilityRoutes wires the export/import/backup surface. Tenant
// ownership checks and role gating happen upstream of this service; these
// routes assume the caller is already authorized.
func setupPortabilityRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Export Handler endpoints
		r.Get("/tenant/{tenantID}/export", handlers.exportHandler.exportTenant())

		// Import Handler endpoints
		r.Post("/tenant/{tenantID}/import", handlers.importHandler.importTenant())

		// Backup Handler endpoints
		r.Post("/backups", handlers.backupHandler.backupAllTenants())
		r.Post("/tenant/{tenantID}/backup", handlers.backupHandler.backupTenant())
		r.Get("/tenant/{tenantID}/backups", handlers.backupHandler.listBackups())
		r.Post("/tenant/{tenantID}/backup/prune", handlers.backupHandler.pruneBackups())
	})
}
