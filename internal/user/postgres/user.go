package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	userDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context, params pagination.Params, search string, rl role.Role) ([]*userDatamodel.User, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		if search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			tx = tx.Where("(LOWER(username) LIKE ? OR LOWER(name) LIKE ?)", pattern, pattern)
		}
		if rl != 0 {
			tx = tx.Where("role = ?", int(rl))
		}
		return tx
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).Scopes(scope).
		Order("name ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound.WithMessage("Pengguna tidak ditemukan")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userDatamodel.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrRecordNotFound.WithMessage("Pengguna tidak ditemukan")
	}
	return nil
}
