package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLStore keeps each collection in its own SQLite table. An Update is one SQL
// transaction that writes only the rows that changed; a Read loads all three
// tables inside one read transaction.
type SQLStore struct {
	db *gorm.DB
	mu sync.RWMutex
}

// OpenSQLite opens (or creates) a SQLite database and migrates the tables.
func OpenSQLite(dsn string) (*SQLStore, error) {
	if dsn == "" {
		dsn = "tracker.db"
	}
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&userRow{}, &projectRow{}, &taskRow{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

func (s *SQLStore) Read(ctx context.Context) (Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rs rowSet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rs, err = loadRows(tx)
		return err
	})
	if err != nil {
		return Dataset{}, err
	}
	d := fromRows(rs)
	d.normalize()
	return d, nil
}

func (s *SQLStore) Update(ctx context.Context, fn func(*Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := loadRows(tx)
		if err != nil {
			return err
		}
		next := fromRows(before)
		if err := fn(&next); err != nil {
			return err
		}
		after := toRows(next, before)

		if err := syncTable(tx, before.users, after.users, func(r userRow) string { return r.ID }, &userRow{}); err != nil {
			return fmt.Errorf("write users: %w", err)
		}
		if err := syncTable(tx, before.projects, after.projects, func(r projectRow) string { return r.ID }, &projectRow{}); err != nil {
			return fmt.Errorf("write projects: %w", err)
		}
		if err := syncTable(tx, before.tasks, after.tasks, func(r taskRow) string { return r.ID }, &taskRow{}); err != nil {
			return fmt.Errorf("write tasks: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func loadRows(db *gorm.DB) (rowSet, error) {
	var rs rowSet
	if err := db.Order("position").Find(&rs.users).Error; err != nil {
		return rs, fmt.Errorf("load users: %w", err)
	}
	if err := db.Order("position").Find(&rs.projects).Error; err != nil {
		return rs, fmt.Errorf("load projects: %w", err)
	}
	if err := db.Order("position").Find(&rs.tasks).Error; err != nil {
		return rs, fmt.Errorf("load tasks: %w", err)
	}
	return rs, nil
}

func syncTable[R any](tx *gorm.DB, before, after []R, id func(R) string, table *R) error {
	upserts, deletes := diffRows(before, after, id)
	if len(deletes) > 0 {
		if err := tx.Where("id IN ?", deletes).Delete(table).Error; err != nil {
			return err
		}
	}
	if len(upserts) > 0 {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&upserts).Error; err != nil {
			return err
		}
	}
	return nil
}
