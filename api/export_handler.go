package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nimbuscms/nimbus-backend/database"
	"github.com/nimbuscms/nimbus-backend/errs"
	"github.com/nimbuscms/nimbus-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type exportHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	exporter  services.ExportService
}

func newExportHandler(db database.Database) exportHandler {
	logger := log.With().Str("handlerName", "exportHandler").Logger()

	return exportHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		exporter:  services.NewExportService(db),
	}
}

// countingWriter tracks how many bytes have reached the client so a failed
// export can still return a proper error response when nothing was written yet.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// exportTenant streams a tenant's full content graph as a portable envelope
// @Summary Export tenant content
// @Description Streams the tenant's complete content graph (media, taxonomy, pages, posts) as a versioned JSON envelope suitable for import into another tenant
// @Tags Portability
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param baseUrl query string false "Base URL used to absolutize media URLs in the envelope"
// @Success 200 {object} models.Envelope "Export envelope"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing tenantID"
// @Failure 404 {object} ErrorResponse "Not Found - Tenant not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error assembling export"
// @Router /tenant/{tenantID}/export [get]
func (h exportHandler) exportTenant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantID")
		if tenantID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing tenantID"))
			return
		}

		tenant, err := h.db.TenantByID(tenantID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tenant", "tenant", err))
			return
		}

		if tenant == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tenant not found"))
			return
		}

		baseURL := r.URL.Query().Get("baseUrl")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tenantID+"-export.json"))

		cw := &countingWriter{w: w}
		if err := h.exporter.WriteEnvelope(cw, tenantID, baseURL); err != nil {
			if cw.n == 0 {
				// Nothing streamed yet, so an error response is still possible
				w.Header().Del("Content-Disposition")
				h.responder.WriteError(w, err)
				return
			}

			// Too late for a status code, the client gets a truncated body
			h.logger.Error().Err(err).Str("tenantID", tenantID).Msg("export aborted mid-stream")
		}
	}
}
