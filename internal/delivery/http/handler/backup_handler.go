package handler

import (
	"io"
	"net/http"

	"medicore/internal/usecase"
	"medicore/pkg/response"
)

// maxBackupBytes bounds an uploaded backup image.
const maxBackupBytes = 64 << 20

type BackupHandler struct {
	backupUsecase usecase.BackupUsecase
}

func NewBackupHandler(backupUsecase usecase.BackupUsecase) *BackupHandler {
	return &BackupHandler{backupUsecase: backupUsecase}
}

func (h *BackupHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.backupUsecase.Health(r.Context()))
}

func (h *BackupHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	file, err := h.backupUsecase.Export(r.Context())
	if err != nil {
		writeError(w, err, nil, "Failed to export backup")
		return
	}
	response.Binary(w, file.Filename, "application/vnd.sqlite3", file.Data)
}

// ImportBackup replaces the store with the raw image in the request body.
func (h *BackupHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBackupBytes))
	if err != nil {
		response.BadRequest(w, "Failed to read backup upload")
		return
	}

	err = h.backupUsecase.Import(r.Context(), data)
	respond(w, http.StatusOK, "Backup restored successfully", nil, err, "Failed to restore backup")
}

func (h *BackupHandler) ResetStore(w http.ResponseWriter, r *http.Request) {
	err := h.backupUsecase.Reset(r.Context())
	respond(w, http.StatusOK, "Store reset to defaults", nil, err, "Failed to reset store")
}
