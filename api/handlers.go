package api

import (
	"github.com/nimbuscms/nimbus-backend/database"
	"github.com/nimbuscms/nimbus-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, backup services.BackupService) *routeHandlers {
	return &routeHandlers{
		exportHandler: newExportHandler(database),
		importHandler: newImportHandler(database),
		backupHandler: newBackupHandler(database, backup),
	}
}
