package dto

type BackupFile struct {
	Filename string
	Data     []byte
}

type HealthResponse struct {
	Status        string `json:"status"`
	Recovery      string `json:"recovery,omitempty"`
	SchemaVersion int    `json:"schema_version"`
}
