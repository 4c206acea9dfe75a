package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentials(ctx context.Context, username string) (*auth.Credentials, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	return &auth.Credentials{
		User:         toAuthUser(&u),
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
	}, nil
}

func (r *Repository) GetActiveUser(ctx context.Context, userID int64) (*auth.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", userID, true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	au := toAuthUser(&u)
	return &au, nil
}

func toAuthUser(u *user.User) auth.User {
	return auth.User{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     role.Role(u.Role),
	}
}
