package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"gorm.io/gorm"
)

// Options maps the generic filters onto the columns of one table. Empty columns disable the filter.
type Options struct {
	// Noun is the Indonesian name used in client-facing messages, e.g. "produk".
	Noun           string
	UsernameColumn string
	DateColumn     string
	SearchColumns  []string
	CategoryColumn string
	BrandColumn    string
	TitleColumn    string
	OrderBy        string
}

func (o Options) orderBy() string {
	if o.OrderBy == "" {
		return "id DESC"
	}
	return o.OrderBy
}

type RepositoryAPI[T any] interface {
	List(ctx context.Context, params pagination.Params, filter Filter) ([]T, int64, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, id int64, item *T) error
	Delete(ctx context.Context, id int64) error
}

// Repository is a gorm table gateway for any model with an int64 "id" primary key.
type Repository[T any] struct {
	db   *gorm.DB
	opts Options
}

func NewRepository[T any](db *gorm.DB, opts Options) *Repository[T] {
	return &Repository[T]{db: db, opts: opts}
}

func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

func (r *Repository[T]) List(ctx context.Context, params pagination.Params, filter Filter) ([]T, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(new(T)).Scopes(r.scopeFilter(filter))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", r.opts.Noun, err)
	}

	var items []T
	err := r.db.WithContext(ctx).
		Scopes(r.scopeFilter(filter)).
		Order(r.opts.orderBy()).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", r.opts.Noun, err)
	}
	return items, total, nil
}

func (r *Repository[T]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound()
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.opts.Noun, err)
	}
	return &item, nil
}

func (r *Repository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translateWriteError(err, r.opts.Noun)
	}
	return nil
}

// Update overwrites every column except id and created_at, zero values included.
func (r *Repository[T]) Update(ctx context.Context, id int64, item *T) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(item)
	if res.Error != nil {
		return translateWriteError(res.Error, r.opts.Noun)
	}
	if res.RowsAffected == 0 {
		return r.notFound()
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.opts.Noun, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound()
	}
	return nil
}

func (r *Repository[T]) notFound() *internal.AppError {
	return internal.ErrRecordNotFound.WithMessage(fmt.Sprintf("Data %s tidak ditemukan", r.opts.Noun))
}

func (r *Repository[T]) scopeFilter(f Filter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return ApplyFilter(tx, r.opts, f)
	}
}

// ApplyFilter adds the where clauses for f. Exported for repositories that are not generic.
func ApplyFilter(tx *gorm.DB, opts Options, f Filter) *gorm.DB {
	if f.Username != "" && opts.UsernameColumn != "" {
		tx = tx.Where(opts.UsernameColumn+" = ?", f.Username)
	}
	if opts.DateColumn != "" {
		start, end := f.Bounds()
		if !start.IsZero() {
			tx = tx.Where(opts.DateColumn+" >= ?", start)
		}
		if !end.IsZero() {
			tx = tx.Where(opts.DateColumn+" < ?", end)
		}
	}
	if f.Search != "" && len(opts.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		clauses := make([]string, len(opts.SearchColumns))
		args := make([]interface{}, len(opts.SearchColumns))
		for i, col := range opts.SearchColumns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		tx = tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	if f.Category != "" && opts.CategoryColumn != "" {
		tx = tx.Where(opts.CategoryColumn+" = ?", f.Category)
	}
	if f.Brand != "" && opts.BrandColumn != "" {
		tx = tx.Where(opts.BrandColumn+" = ?", f.Brand)
	}
	if f.Title != "" && opts.TitleColumn != "" {
		tx = tx.Where("LOWER("+opts.TitleColumn+") LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}
	return tx
}

func translateWriteError(err error, noun string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return internal.ErrDuplicateRecord.WithMessage(fmt.Sprintf("Data %s sudah ada", noun)).WithCause(err)
	}
	return fmt.Errorf("failed to save %s: %w", noun, err)
}

// isUniqueViolation catches drivers that do not translate errors (postgres 23505, sqlite).
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint failed")
}
