package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{db: gdb, now: time.Now}
}

// Select loads every row matching filter into dest, which must be a pointer to a slice.
func (s *GormStore) Select(ctx context.Context, table string, filter Filter, dest any) error {
	query := s.db.WithContext(ctx).Table(table)
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter))
	}
	if err := query.Order("id ASC").Find(dest).Error; err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return nil
}

// SelectSingle loads one row into dest. When several rows match, the newest wins.
func (s *GormStore) SelectSingle(ctx context.Context, table string, filter Filter, dest any) error {
	query := s.db.WithContext(ctx).Table(table)
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter))
	}
	if err := query.Order("id DESC").Take(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("select single %s: %w", table, err)
	}
	return nil
}

// Insert creates a row from fields. created_at and updated_at are stamped
// unless the caller set them.
func (s *GormStore) Insert(ctx context.Context, table string, fields Fields) error {
	if len(fields) == 0 {
		return fmt.Errorf("insert %s: %w", table, ErrNoFields)
	}

	row := fields.Clone()
	now := s.now()
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = now
	}
	if _, ok := row["updated_at"]; !ok {
		row["updated_at"] = now
	}

	if err := s.db.WithContext(ctx).Table(table).Create(map[string]any(row)).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// UpdateByID applies fields to the row with the given primary key.
func (s *GormStore) UpdateByID(ctx context.Context, table string, id uint, fields Fields) error {
	if len(fields) == 0 {
		return fmt.Errorf("update %s: %w", table, ErrNoFields)
	}

	result := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(map[string]any(fields))
	if result.Error != nil {
		return fmt.Errorf("update %s: %w", table, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update %s: %w", table, ErrNotFound)
	}
	return nil
}
