package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TenantBackupResult reports one tenant's snapshot attempt.
type TenantBackupResult struct {
	TenantID string `json:"tenantId"`
	Success  bool   `json:"success"`
	URL      string `json:"url,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BackupRunResult reports a full sweep. Success is the AND of every
// per-tenant outcome; one tenant failing never stops the others.
type BackupRunResult struct {
	RunID   string               `json:"runId"`
	Success bool                 `json:"success"`
	Results []TenantBackupResult `json:"results"`
}

// PruneResult counts snapshots removed versus snapshots that could not be
// removed during one retention pass.
type PruneResult struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// BackupService snapshots tenants to object storage under date-partitioned
// keys (backups/{tenantId}/{YYYY-MM-DD}.json, one per tenant per day; a
// same-day rerun overwrites) and prunes snapshots past the retention window.
type BackupService struct {
	store    Store
	exporter ExportService
	storage  ObjectStorage
	baseURL  string
	now      func() time.Time
	logger   zerolog.Logger
}

// NewBackupService wires the orchestrator. baseURL is the origin used to
// absolutize media URLs inside snapshot envelopes.
func NewBackupService(store Store, exporter ExportService, storage ObjectStorage, baseURL string) BackupService {
	logger := log.With().Str("serviceName", "backupService").Logger()
	return BackupService{
		store:    store,
		exporter: exporter,
		storage:  storage,
		baseURL:  baseURL,
		now:      time.Now,
		logger:   logger,
	}
}

// BackupOne exports a tenant and writes the envelope to object storage.
// Failures land in the result rather than an error value so a sweep can
// record them and move on.
func (s BackupService) BackupOne(ctx context.Context, tenantID string) TenantBackupResult {
	result := TenantBackupResult{TenantID: tenantID}

	envelope, err := s.exporter.Assemble(tenantID, s.baseURL)
	if err != nil {
		result.Error = fmt.Sprintf("assemble export: %v", err)
		return result
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		result.Error = fmt.Sprintf("serialize envelope: %v", err)
		return result
	}

	key := s.snapshotKey(tenantID)
	url, err := s.storage.Put(ctx, key, body)
	if err != nil {
		result.Error = fmt.Sprintf("store snapshot: %v", err)
		return result
	}

	result.Success = true
	result.URL = url
	result.Size = int64(len(body))

	s.logger.Info().
		Str("tenantID", tenantID).
		Str("key", key).
		Int64("size", result.Size).
		Msg("Stored tenant snapshot")

	return result
}

// BackupAll snapshots every tenant sequentially. The sweep is deliberately
// not parallel: one export at a time bounds connection and memory pressure
// against both collaborators. Returns an error only when the tenant list
// itself cannot be read.
func (s BackupService) BackupAll(ctx context.Context) (*BackupRunResult, error) {
	tenantIDs, err := s.store.TenantIDs()
	if err != nil {
		return nil, err
	}

	run := &BackupRunResult{
		RunID:   uuid.NewString(),
		Success: true,
		Results: make([]TenantBackupResult, 0, len(tenantIDs)),
	}
	for _, tenantID := range tenantIDs {
		result := s.BackupOne(ctx, tenantID)
		if !result.Success {
			run.Success = false
			s.logger.Error().
				Str("runID", run.RunID).
				Str("tenantID", tenantID).
				Str("error", result.Error).
				Msg("Tenant snapshot failed, continuing sweep")
		}
		run.Results = append(run.Results, result)
	}
	return run, nil
}

// PruneOlderThan deletes a tenant's snapshots older than retainDays.
// Listing and deletion are not transactional; a snapshot created between the
// two is simply not considered this run.
func (s BackupService) PruneOlderThan(ctx context.Context, tenantID string, retainDays int) (PruneResult, error) {
	var result PruneResult

	objects, err := s.storage.List(ctx, s.tenantPrefix(tenantID))
	if err != nil {
		return result, err
	}

	cutoff := s.now().Add(-time.Duration(retainDays) * 24 * time.Hour)
	for _, object := range objects {
		if !object.UploadedAt.Before(cutoff) {
			continue
		}
		if err := s.storage.Delete(ctx, object.Key); err != nil {
			result.Failed++
			s.logger.Error().
				Str("tenantID", tenantID).
				Str("key", object.Key).
				Err(err).
				Msg("Failed to delete expired snapshot")
			continue
		}
		result.Deleted++
	}

	s.logger.Info().
		Str("tenantID", tenantID).
		Int("deleted", result.Deleted).
		Int("failed", result.Failed).
		Msg("Pruned expired snapshots")

	return result, nil
}

// ListSnapshots returns a tenant's stored snapshots.
func (s BackupService) ListSnapshots(ctx context.Context, tenantID string) ([]StoredObject, error) {
	return s.storage.List(ctx, s.tenantPrefix(tenantID))
}

// Schedule runs BackupAll every interval, pruning each tenant afterwards
// when retainDays is positive. Blocks until ctx is cancelled.
func (s BackupService) Schedule(ctx context.Context, interval time.Duration, retainDays int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", interval).
		Int("retainDays", retainDays).
		Msg("Backup schedule started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Backup schedule stopped")
			return
		case <-ticker.C:
			run, err := s.BackupAll(ctx)
			if err != nil {
				s.logger.Error().Err(err).Msg("Scheduled backup sweep failed to start")
				continue
			}
			if retainDays <= 0 {
				continue
			}
			for _, result := range run.Results {
				if !result.Success {
					continue
				}
				if _, err := s.PruneOlderThan(ctx, result.TenantID, retainDays); err != nil {
					s.logger.Error().Err(err).Str("tenantID", result.TenantID).Msg("Retention pruning failed")
				}
			}
		}
	}
}

func (s BackupService) tenantPrefix(tenantID string) string {
	return fmt.Sprintf("backups/%s/", tenantID)
}

func (s BackupService) snapshotKey(tenantID string) string {
	return fmt.Sprintf("backups/%s/%s.json", tenantID, s.now().UTC().Format("2006-01-02"))
}
