package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"medicore/internal/delivery/dto"
	"medicore/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const backupPrefix = "medicore_backup_"

var ErrEmptyBackup = errors.New("backup file is empty")

type BackupUsecase interface {
	Export(ctx context.Context) (*dto.BackupFile, error)
	ExportToDir(ctx context.Context, dir string) (string, error)
	Import(ctx context.Context, data []byte) error
	Reset(ctx context.Context) error
	Health(ctx context.Context) *dto.HealthResponse
}

type backupUsecase struct {
	db  *store.Store
	log *logrus.Logger
	fs  afero.Fs
	now func() time.Time
}

func NewBackupUsecase(db *store.Store, log *logrus.Logger, fs afero.Fs) BackupUsecase {
	return &backupUsecase{
		db:  db,
		log: log,
		fs:  fs,
		now: time.Now,
	}
}

// BackupFilename names a backup taken at t.
func BackupFilename(t time.Time) string {
	return backupPrefix + t.Format("2006-01-02") + ".sqlite"
}

func (u *backupUsecase) Export(ctx context.Context) (*dto.BackupFile, error) {
	data, err := u.db.ExportSnapshot(ctx)
	if err != nil {
		u.log.Warnf("Failed to export store snapshot: %+v", err)
		return nil, err
	}
	return &dto.BackupFile{Filename: BackupFilename(u.now()), Data: data}, nil
}

// ExportToDir writes a backup into dir and returns its path.
func (u *backupUsecase) ExportToDir(ctx context.Context, dir string) (string, error) {
	file, err := u.Export(ctx)
	if err != nil {
		return "", err
	}
	if err := u.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(dir, file.Filename)
	if err := afero.WriteFile(u.fs, path, file.Data, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	u.log.Infof("Backup written: path=%s, bytes=%d", path, len(file.Data))
	return path, nil
}

// Import replaces the whole store with a previously exported backup. A
// rejected image leaves the store untouched.
func (u *backupUsecase) Import(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyBackup
	}
	err := u.db.ImportSnapshot(ctx, data)
	if !committed(err) {
		u.log.Warnf("Failed to import backup: %+v", err)
		return err
	}
	u.log.Infof("Backup imported: bytes=%d", len(data))
	return err
}

func (u *backupUsecase) Reset(ctx context.Context) error {
	err := u.db.Reset(ctx)
	if !committed(err) {
		u.log.Warnf("Failed to reset store: %+v", err)
		return err
	}
	u.log.Info("Store reset to seed data")
	return err
}

func (u *backupUsecase) Health(ctx context.Context) *dto.HealthResponse {
	resp := &dto.HealthResponse{Status: "ok", SchemaVersion: store.SchemaVersion}
	if err := u.db.Recovery(); err != nil {
		resp.Status = "recovered"
		resp.Recovery = err.Error()
	}
	return resp
}
