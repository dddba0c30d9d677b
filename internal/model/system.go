package model

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion      string `json:"app_version"`
	DbSchemaVersion int64  `json:"db_schema_version"`
}
