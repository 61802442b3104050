package bytestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicore/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotRow struct {
	Key       string `gorm:"primaryKey;type:text"`
	Data      []byte `gorm:"type:bytea;not null"`
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string { return "store_snapshots" }

// Postgres keeps each key as one row of the store_snapshots table.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres creates the store_snapshots table if it does not exist.
func NewPostgres(ctx context.Context, db *gorm.DB) (*Postgres, error) {
	if err := db.WithContext(ctx).AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate store_snapshots: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var row snapshotRow
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return row.Data, nil
}

func (p *Postgres) Save(ctx context.Context, key string, data []byte) error {
	row := snapshotRow{Key: key, Data: data, UpdatedAt: time.Now()}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		if isPostgresQuota(err) {
			return fmt.Errorf("save snapshot %s: %w: %v", key, store.ErrStorageQuotaExceeded, err)
		}
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

// isPostgresQuota matches program_limit_exceeded, disk_full and out_of_memory.
func isPostgresQuota(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "54000", "53100", "53200":
		return true
	}
	return false
}
