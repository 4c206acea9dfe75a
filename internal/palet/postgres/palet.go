package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/distribution-admin/internal/palet"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"gorm.io/gorm"
)

func NewPaletRepository(db *gorm.DB) *resource.Repository[palet.Palet] {
	return resource.NewRepository[palet.Palet](db, resource.Options{
		Noun:          palet.PaletNoun,
		SearchColumns: []string{"code", "name", "location"},
		OrderBy:       "code ASC",
	})
}

func NewStockRepository(db *gorm.DB) *resource.Repository[palet.Stock] {
	return resource.NewRepository[palet.Stock](db, resource.Options{
		Noun:          palet.StockNoun,
		SearchColumns: []string{"product_name"},
		OrderBy:       "product_name ASC",
	})
}

type WarehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) palet.RepositoryAPI {
	return &WarehouseRepository{db: db}
}

func (r *WarehouseRepository) GetByCode(ctx context.Context, code string) (*palet.Palet, error) {
	var p palet.Palet
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, palet.ErrPaletNotFound
		}
		return nil, fmt.Errorf("failed to find palet by code: %w", err)
	}
	return &p, nil
}

func (r *WarehouseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&palet.Palet{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WarehouseRepository) StocksOf(ctx context.Context, paletID int64) ([]palet.Stock, error) {
	var stocks []palet.Stock
	err := r.db.WithContext(ctx).
		Where("palet_id = ?", paletID).
		Order("product_name ASC").
		Find(&stocks).Error
	return stocks, err
}
