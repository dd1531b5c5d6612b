package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nimbuscms/nimbus-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupServiceForTest(store *fakeStore, storage *fakeObjectStorage, now time.Time) BackupService {
	svc := NewBackupService(store, NewExportService(store), storage, "https://cms.example.com")
	svc.now = func() time.Time { return now }
	return svc
}

func TestBackupOne(t *testing.T) {
	store := newFakeStore("acme")
	seedTenantGraph(t, store, "acme")
	storage := newFakeObjectStorage()
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	svc := newBackupServiceForTest(store, storage, now)

	result := svc.BackupOne(context.Background(), "acme")

	assert.True(t, result.Success)
	assert.Equal(t, "acme", result.TenantID)
	assert.Empty(t, result.Error)
	assert.Equal(t, "https://storage.test/backups/acme/2026-03-15.json", result.URL)
	assert.Positive(t, result.Size)

	body, ok := storage.objects["backups/acme/2026-03-15.json"]
	require.True(t, ok, "snapshot stored under the date-partitioned key")

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, models.FormatVersion, envelope.Version)
	assert.Equal(t, "acme", envelope.TenantID)
	require.Len(t, envelope.Media, 1)
	assert.True(t, strings.HasPrefix(envelope.Media[0].URL, "https://cms.example.com/"))
}

func TestBackupOne_SameDayRerunOverwrites(t *testing.T) {
	store := newFakeStore("acme")
	seedTenantGraph(t, store, "acme")
	storage := newFakeObjectStorage()
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	svc := newBackupServiceForTest(store, storage, now)

	require.True(t, svc.BackupOne(context.Background(), "acme").Success)
	require.True(t, svc.BackupOne(context.Background(), "acme").Success)

	assert.Len(t, storage.objects, 1, "same-day rerun overwrites, never accumulates")
}

func TestBackupOne_StorageFailure(t *testing.T) {
	store := newFakeStore("acme")
	storage := newFakeObjectStorage()
	storage.putErr = func(string) error { return errors.New("access denied") }
	svc := newBackupServiceForTest(store, storage, time.Now())

	result := svc.BackupOne(context.Background(), "acme")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "store snapshot")
	assert.Contains(t, result.Error, "access denied")
	assert.Empty(t, storage.objects)
}

func TestBackupAll_SweepContinuesPastFailures(t *testing.T) {
	store := newFakeStore("acme", "globex", "initech")
	storage := newFakeObjectStorage()
	storage.putErr = func(key string) error {
		if strings.Contains(key, "/globex/") {
			return errors.New("access denied")
		}
		return nil
	}
	svc := newBackupServiceForTest(store, storage, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	run, err := svc.BackupAll(context.Background())
	require.NoError(t, err)

	assert.False(t, run.Success, "one failed tenant fails the sweep")
	require.Len(t, run.Results, 3)

	byTenant := map[string]TenantBackupResult{}
	for _, result := range run.Results {
		byTenant[result.TenantID] = result
	}
	assert.True(t, byTenant["acme"].Success)
	assert.False(t, byTenant["globex"].Success)
	assert.True(t, byTenant["initech"].Success, "sweep keeps going after a failure")
	assert.Len(t, storage.objects, 2)
}

func TestBackupAll_TenantListUnavailable(t *testing.T) {
	store := newFakeStore()
	store.tenantIDsErr = errors.New("connection refused")
	svc := newBackupServiceForTest(store, newFakeObjectStorage(), time.Now())

	run, err := svc.BackupAll(context.Background())
	assert.Nil(t, run)
	assert.Error(t, err)
}

func TestPruneOlderThan(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	storage := newFakeObjectStorage()

	ageSnapshot := func(daysAgo int) {
		day := now.AddDate(0, 0, -daysAgo)
		key := fmt.Sprintf("backups/acme/%s.json", day.Format("2006-01-02"))
		storage.objects[key] = []byte("{}")
		storage.uploadedAt[key] = day
	}
	ageSnapshot(0)
	ageSnapshot(29)
	ageSnapshot(31)

	svc := newBackupServiceForTest(newFakeStore("acme"), storage, now)

	result, err := svc.PruneOlderThan(context.Background(), "acme", 30)
	require.NoError(t, err)

	assert.Equal(t, PruneResult{Deleted: 1, Failed: 0}, result)
	assert.Len(t, storage.objects, 2)
	_, present := storage.objects[fmt.Sprintf("backups/acme/%s.json", now.AddDate(0, 0, -31).Format("2006-01-02"))]
	assert.False(t, present, "only the snapshot past the window is removed")
}

func TestPruneOlderThan_DeletionFailuresCounted(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	storage := newFakeObjectStorage()

	old := now.AddDate(0, 0, -40)
	older := now.AddDate(0, 0, -50)
	keyOld := fmt.Sprintf("backups/acme/%s.json", old.Format("2006-01-02"))
	keyOlder := fmt.Sprintf("backups/acme/%s.json", older.Format("2006-01-02"))
	storage.objects[keyOld] = []byte("{}")
	storage.uploadedAt[keyOld] = old
	storage.objects[keyOlder] = []byte("{}")
	storage.uploadedAt[keyOlder] = older
	storage.deleteErr = func(key string) error {
		if key == keyOlder {
			return errors.New("access denied")
		}
		return nil
	}

	svc := newBackupServiceForTest(newFakeStore("acme"), storage, now)

	result, err := svc.PruneOlderThan(context.Background(), "acme", 30)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Failed)
}

func TestListSnapshots_ScopedToTenant(t *testing.T) {
	storage := newFakeObjectStorage()
	storage.objects["backups/acme/2026-03-14.json"] = []byte("{}")
	storage.objects["backups/globex/2026-03-14.json"] = []byte("{}")

	svc := newBackupServiceForTest(newFakeStore("acme", "globex"), storage, time.Now())

	snapshots, err := svc.ListSnapshots(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "backups/acme/2026-03-14.json", snapshots[0].Key)
}
