package models

import (
	"context"
	"time"

	"github.com/Franklin-pro/simpo-planet-studio-bn/db"

	"gorm.io/gorm"
)

// Model is embedded by every stored record
type Model struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Scope = func(*gorm.DB) *gorm.DB

// editable records are changed only through their input type I, never directly from a request
type editable[I any] interface {
	input() I
	apply(I)
	// columns lists the fields apply() writes. Counters are never among them.
	columns() []string
}

type normalizer interface {
	normalize()
}

func newestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at DESC").Order("id DESC")
}

func find[T any](ctx context.Context, scopes ...Scope) ([]T, error) {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	result := []T{}
	err := db.Instance.WithContext(ctx).Scopes(scopes...).Find(&result).Error
	return result, err
}

func byID[T any](ctx context.Context, id uint64, scopes ...Scope) (T, error) {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	var record T
	err := db.Instance.WithContext(ctx).Scopes(scopes...).First(&record, "id = ?", id).Error
	return record, translate(err, "")
}

func prepare[I any](in *I) error {
	if n, ok := any(in).(normalizer); ok {
		n.normalize()
	}
	return check(in)
}

// create validates the input and inserts a new record built from it
func create[T any, I any, P interface {
	*T
	editable[I]
}](ctx context.Context, in I, uniqueField string) (T, error) {
	var record T
	if err := prepare(&in); err != nil {
		return record, err
	}
	P(&record).apply(in)
	ctx, cancel := db.Context(ctx)
	defer cancel()
	err := db.Instance.WithContext(ctx).Create(&record).Error
	return record, translate(err, uniqueField)
}

// update loads the record, lets patch change its input, validates and writes back only the input columns
func update[T any, I any, P interface {
	*T
	editable[I]
}](ctx context.Context, id uint64, patch func(*I) error, uniqueField string, scopes ...Scope) (T, error) {
	record, err := byID[T](ctx, id, scopes...)
	if err != nil {
		return record, err
	}
	in := P(&record).input()
	if err = patch(&in); err != nil {
		return record, err
	}
	if err = prepare(&in); err != nil {
		return record, err
	}
	P(&record).apply(in)
	ctx, cancel := db.Context(ctx)
	defer cancel()
	columns := append(P(&record).columns(), "UpdatedAt")
	err = db.Instance.WithContext(ctx).Model(&record).Select(columns).Updates(&record).Error
	return record, translate(err, uniqueField)
}

func remove[T any](ctx context.Context, id uint64) error {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	var record T
	result := db.Instance.WithContext(ctx).Delete(&record, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// increment bumps a counter column in SQL, so concurrent requests never lose updates
func increment[T any](ctx context.Context, id uint64, column string, extra map[string]any, scopes ...Scope) error {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	values := map[string]any{column: gorm.Expr(column+" + ?", 1)}
	for k, v := range extra {
		values[k] = v
	}
	var record T
	result := db.Instance.WithContext(ctx).Model(&record).Scopes(scopes...).Where("id = ?", id).UpdateColumns(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
