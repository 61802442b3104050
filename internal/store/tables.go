package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record tables. Each row holds one record serialized as JSON under its id.
const (
	TableDoctors       = "doctors"
	TablePatients      = "patients"
	TableAppointments  = "appointments"
	TableUsers         = "users"
	TableSettings      = "settings"
	TableNotifications = "notifications"

	tableMeta = "schema_meta"
)

// SchemaVersion is written into every image this build creates.
const SchemaVersion = 1

const metaVersionKey = "schema_version"

// Tables lists the record tables in creation order.
var Tables = []string{
	TableDoctors,
	TablePatients,
	TableAppointments,
	TableUsers,
	TableSettings,
	TableNotifications,
}

func knownTable(name string) bool {
	for _, t := range Tables {
		if t == name {
			return true
		}
	}
	return false
}

type row struct {
	ID   string         `gorm:"primaryKey;type:text"`
	Data datatypes.JSON `gorm:"type:text;not null"`
}

// schemaMeta is the value stored under metaVersionKey.
type schemaMeta struct {
	Version int `json:"version"`
}

// Handle is the record access shared by *Store and the handle passed to
// Store.Batch callbacks. Get returns nil, nil when the id is absent.
type Handle interface {
	GetAll(ctx context.Context, table string) ([]json.RawMessage, error)
	Get(ctx context.Context, table, id string) (json.RawMessage, error)
	Upsert(ctx context.Context, table, id string, record any) error
	Delete(ctx context.Context, table, id string) error
}

// tableSet runs record operations directly against a gorm handle, without
// locking or flushing.
type tableSet struct {
	db *gorm.DB
}

func (t tableSet) GetAll(ctx context.Context, table string) ([]json.RawMessage, error) {
	if !knownTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	var rows []row
	if err := t.db.WithContext(ctx).Table(table).Order("rowid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	out := make([]json.RawMessage, len(rows))
	for i, r := range rows {
		out[i] = json.RawMessage(r.Data)
	}
	return out, nil
}

func (t tableSet) Get(ctx context.Context, table, id string) (json.RawMessage, error) {
	if !knownTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	var r row
	err := t.db.WithContext(ctx).Table(table).Where("id = ?", id).First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s/%s: %w", table, id, err)
	}
	return json.RawMessage(r.Data), nil
}

func (t tableSet) Upsert(ctx context.Context, table, id string, record any) error {
	if !knownTable(table) {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if id == "" {
		return ErrEmptyID
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", table, id, err)
	}
	return t.put(ctx, table, id, data)
}

func (t tableSet) put(ctx context.Context, table, id string, data []byte) error {
	err := t.db.WithContext(ctx).Table(table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&row{ID: id, Data: datatypes.JSON(data)}).Error
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", table, id, err)
	}
	return nil
}

func (t tableSet) Delete(ctx context.Context, table, id string) error {
	if !knownTable(table) {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if id == "" {
		return ErrEmptyID
	}
	if err := t.db.WithContext(ctx).Table(table).Where("id = ?", id).Delete(&row{}).Error; err != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, err)
	}
	return nil
}

// createSchema creates every table on an empty database and stamps the
// schema version.
func createSchema(ctx context.Context, db *gorm.DB) error {
	for _, name := range append([]string{tableMeta}, Tables...) {
		if err := db.WithContext(ctx).Table(name).AutoMigrate(&row{}); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
	}
	return tableSet{db: db}.put(ctx, tableMeta, metaVersionKey, encodeMeta(SchemaVersion))
}

func encodeMeta(version int) []byte {
	data, _ := json.Marshal(schemaMeta{Version: version})
	return data
}

// checkSchema verifies that db holds a store image this build can read.
func checkSchema(ctx context.Context, db *gorm.DB) error {
	m := db.WithContext(ctx).Migrator()
	for _, name := range append([]string{tableMeta}, Tables...) {
		if !m.HasTable(name) {
			return fmt.Errorf("%w: missing table %s", ErrStoreCorrupt, name)
		}
	}

	var meta row
	err := db.WithContext(ctx).Table(tableMeta).Where("id = ?", metaVersionKey).First(&meta).Error
	if err != nil {
		return fmt.Errorf("%w: schema version: %v", ErrStoreCorrupt, err)
	}
	var sm schemaMeta
	if err := json.Unmarshal(meta.Data, &sm); err != nil {
		return fmt.Errorf("%w: schema version: %v", ErrStoreCorrupt, err)
	}
	version := sm.Version
	if version > SchemaVersion {
		return fmt.Errorf("%w: version %d, supported %d", ErrSchemaTooNew, version, SchemaVersion)
	}
	if version < 1 {
		return fmt.Errorf("%w: schema version %d", ErrStoreCorrupt, version)
	}

	for _, name := range Tables {
		var rows []row
		if err := db.WithContext(ctx).Table(name).Find(&rows).Error; err != nil {
			return fmt.Errorf("%w: read %s: %v", ErrStoreCorrupt, name, err)
		}
		for _, r := range rows {
			if r.ID == "" || !json.Valid(r.Data) {
				return fmt.Errorf("%w: bad row %q in %s", ErrStoreCorrupt, r.ID, name)
			}
		}
	}
	return nil
}
