package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nimbuscms/nimbus-backend/database"
	"github.com/nimbuscms/nimbus-backend/errs"
	"github.com/nimbuscms/nimbus-backend/models"
	"github.com/nimbuscms/nimbus-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type importHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	importer  services.ImportService
}

func newImportHandler(db database.Database) importHandler {
	logger := log.With().Str("handlerName", "importHandler").Logger()

	return importHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		importer:  services.NewImportService(db),
	}
}

// importTenant imports an export envelope into the target tenant
// @Summary Import content into tenant
// @Description Replays an export envelope into the target tenant, remapping all internal IDs and rewriting media references inside JSON documents. Row-level failures are collected per entity; the run continues past them.
// @Tags Portability
// @Accept json
// @Produce json
// @Param tenantID path string true "Target tenant ID"
// @Param envelope body models.Envelope true "Export envelope to import"
// @Success 200 {object} services.ImportResult "Import result with per-collection stats and row-level errors"
// @Failure 400 {object} ErrorResponse "Bad Request - Malformed envelope"
// @Failure 404 {object} ErrorResponse "Not Found - Tenant not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error during import"
// @Router /tenant/{tenantID}/import [post]
func (h importHandler) importTenant() http.HandlerFunc {
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

		var envelope models.Envelope
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode import envelope")
			h.responder.WriteError(w, errs.NewMalformedEnvelopeError("request body is not a valid export envelope"))
			return
		}

		result, err := h.importer.Import(tenantID, &envelope)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}
