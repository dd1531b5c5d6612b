package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nimbuscms/nimbus-backend/database"
	"github.com/nimbuscms/nimbus-backend/errs"
	"github.com/nimbuscms/nimbus-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultRetainDays = 30

type backupHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	backup    services.BackupService
}

func newBackupHandler(db database.Database, backup services.BackupService) backupHandler {
	logger := log.With().Str("handlerName", "backupHandler").Logger()

	return backupHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		backup:    backup,
	}
}

// SnapshotCollection represents a tenant's stored backup snapshots
type SnapshotCollection struct {
	Snapshots []services.StoredObject `json:"snapshots"`
	Total     int                     `json:"total"`
}

// backupAllTenants runs a backup sweep across every tenant
// @Summary Backup all tenants
// @Description Exports every tenant's content graph and uploads each snapshot to object storage. Per-tenant failures are reported in the result; the sweep continues past them.
// @Tags Backups
// @Accept json
// @Produce json
// @Success 200 {object} services.BackupRunResult "Per-tenant backup results"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Could not list tenants"
// @Router /backups [post]
func (h backupHandler) backupAllTenants() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.backup.BackupAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// backupTenant snapshots a single tenant to object storage
// @Summary Backup tenant
// @Description Exports the tenant's content graph and uploads the snapshot to object storage under a date-stamped key. Re-running on the same day overwrites that day's snapshot.
// @Tags Backups
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} services.TenantBackupResult "Backup result"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing tenantID"
// @Failure 404 {object} ErrorResponse "Not Found - Tenant not found"
// @Failure 500 {object} services.TenantBackupResult "Backup failed"
// @Router /tenant/{tenantID}/backup [post]
func (h backupHandler) backupTenant() http.HandlerFunc {
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

		result := h.backup.BackupOne(r.Context(), tenantID)
		if !result.Success {
			w.WriteHeader(http.StatusInternalServerError)
		}

		h.responder.WriteJSON(w, result)
	}
}

// listBackups lists the stored snapshots for a tenant
// @Summary List tenant backups
// @Description Lists the backup snapshots stored in object storage for the tenant, most recent first
// @Tags Backups
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} SnapshotCollection "Stored snapshots"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing tenantID"
// @Failure 404 {object} ErrorResponse "Not Found - Tenant not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Could not list snapshots"
// @Router /tenant/{tenantID}/backups [get]
func (h backupHandler) listBackups() http.HandlerFunc {
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

		snapshots, err := h.backup.ListSnapshots(r.Context(), tenantID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := SnapshotCollection{
			Snapshots: snapshots,
			Total:     len(snapshots),
		}

		h.responder.WriteJSON(w, response)
	}
}

// pruneBackups deletes snapshots older than the retention window
// @Summary Prune tenant backups
// @Description Deletes the tenant's snapshots older than retainDays (default 30). Returns how many snapshots were deleted and how many deletions failed.
// @Tags Backups
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param retainDays query int false "Retention window in days" default(30)
// @Success 200 {object} services.PruneResult "Prune result"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid retainDays"
// @Failure 404 {object} ErrorResponse "Not Found - Tenant not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Could not prune snapshots"
// @Router /tenant/{tenantID}/backup/prune [post]
func (h backupHandler) pruneBackups() http.HandlerFunc {
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

		retainDays := defaultRetainDays
		if raw := r.URL.Query().Get("retainDays"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				h.responder.WriteError(w, errs.NewBadRequestError("retainDays must be a positive integer"))
				return
			}
			retainDays = parsed
		}

		result, err := h.backup.PruneOlderThan(r.Context(), tenantID, retainDays)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}
