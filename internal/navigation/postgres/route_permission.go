package postgres

import (
	"context"
	"fmt"

	navigationDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/navigation"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/navigation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoutePermissionRepository struct {
	db *gorm.DB
}

func NewRoutePermissionRepository(db *gorm.DB) navigation.RepositoryAPI {
	return &RoutePermissionRepository{db: db}
}

func (r *RoutePermissionRepository) List(ctx context.Context) ([]navigation.RoutePermission, error) {
	var rows []navigationDatamodel.RoutePermission
	if err := r.db.WithContext(ctx).Order("path ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list route permissions: %w", err)
	}

	out := make([]navigation.RoutePermission, 0, len(rows))
	for _, row := range rows {
		roles, err := role.Split(row.Roles)
		if err != nil {
			return nil, fmt.Errorf("route permission %s: %w", row.Path, err)
		}
		if roles == nil {
			roles = []role.Role{}
		}
		out = append(out, navigation.RoutePermission{Path: row.Path, Roles: roles, UpdatedBy: row.UpdatedBy})
	}
	return out, nil
}

func (r *RoutePermissionRepository) Upsert(ctx context.Context, p navigation.RoutePermission) error {
	row := navigationDatamodel.RoutePermission{
		Path:      p.Path,
		Roles:     role.Join(p.Roles),
		UpdatedBy: p.UpdatedBy,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"roles", "updated_by", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save route permission: %w", err)
	}
	return nil
}

func (r *RoutePermissionRepository) Delete(ctx context.Context, path string) error {
	err := r.db.WithContext(ctx).Where("path = ?", path).Delete(&navigationDatamodel.RoutePermission{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete route permission: %w", err)
	}
	return nil
}
