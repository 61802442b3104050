package store

import (
	"context"
	"fmt"

	"medicore/internal/infrastructure/database"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const mainSchema = "main"

// withConn hands fn the raw sqlite connection behind db.
func withConn(ctx context.Context, db *gorm.DB, fn func(*sqlite3.SQLiteConn) error) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Raw(func(dc any) error {
		c, ok := dc.(*sqlite3.SQLiteConn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", dc)
		}
		return fn(c)
	})
}

// serialize returns the full binary image of db.
func serialize(ctx context.Context, db *gorm.DB) ([]byte, error) {
	var image []byte
	err := withConn(ctx, db, func(c *sqlite3.SQLiteConn) error {
		var err error
		image, err = c.Serialize(mainSchema)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("serialize store: %w", err)
	}
	return image, nil
}

// openImage loads image into a new in-memory database and checks that it is
// a store this build can read. The returned handle is independent of any
// open store.
//
// A deserialized database is fixed at the size of its image, so the image is
// first loaded into a scratch connection and then copied page by page into a
// regular in-memory database that can grow.
func openImage(ctx context.Context, image []byte, log *logrus.Logger) (*gorm.DB, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrStoreCorrupt)
	}

	scratch, err := database.NewSQLiteMemory(log)
	if err != nil {
		return nil, err
	}
	defer database.Close(scratch)

	err = withConn(ctx, scratch, func(c *sqlite3.SQLiteConn) error {
		return c.Deserialize(image, mainSchema)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	if err := checkSchema(ctx, scratch); err != nil {
		return nil, err
	}

	db, err := database.NewSQLiteMemory(log)
	if err != nil {
		return nil, err
	}
	if err := copyDatabase(ctx, scratch, db); err != nil {
		database.Close(db)
		return nil, err
	}
	return db, nil
}

// copyDatabase replaces the content of dst with the content of src using the
// sqlite online backup API.
func copyDatabase(ctx context.Context, src, dst *gorm.DB) error {
	err := withConn(ctx, dst, func(dc *sqlite3.SQLiteConn) error {
		return withConn(ctx, src, func(sc *sqlite3.SQLiteConn) error {
			bk, err := dc.Backup(mainSchema, sc, mainSchema)
			if err != nil {
				return err
			}
			done, err := bk.Step(-1)
			if finErr := bk.Finish(); err == nil {
				err = finErr
			}
			if err == nil && !done {
				err = fmt.Errorf("backup stopped before the last page")
			}
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("copy store image: %w", err)
	}
	return nil
}

// openFresh creates an empty store database and fills it through seed.
func openFresh(ctx context.Context, seed SeedFunc, log *logrus.Logger) (*gorm.DB, error) {
	db, err := database.NewSQLiteMemory(log)
	if err != nil {
		return nil, err
	}
	if err := createSchema(ctx, db); err != nil {
		database.Close(db)
		return nil, err
	}
	if seed == nil {
		return db, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return seed(ctx, tableSet{db: tx})
	})
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("seed store: %w", err)
	}
	return db, nil
}
