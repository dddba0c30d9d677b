package service

import (
	"database/sql"
	"fmt"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/database"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version and the schema version of the
// session cache database.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	schemaVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetVersionInfo, err)
	}

	return model.VersionInfo{
		AppVersion:      version.Version,
		DbSchemaVersion: schemaVersion,
	}, nil
}
