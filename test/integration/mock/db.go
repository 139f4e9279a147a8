package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database keyed by table name.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database once and migrates the given models.
func NewDb(models map[string]any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	mockDb := &Db{DbConn: dbConn, models: models}
	if err := mockDb.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}
	return mockDb
}

func (d *Db) migrate() error {
	for _, model := range d.models {
		if err := d.DbConn.Migrator().DropTable(model); err != nil {
			return err
		}
	}
	for table, model := range d.models {
		if err := d.DbConn.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table, err)
		}
	}
	return nil
}

// ClearDB deletes every row of every known table.
func (d *Db) ClearDB() error {
	session := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true})
	for table, model := range d.models {
		if err := session.Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
