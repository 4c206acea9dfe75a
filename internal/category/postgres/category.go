package postgres

import (
	"errors"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal/category"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	categoryDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll() ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) List(params pagination.Params, search string) ([]*categoryDatamodel.Category, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		if s := strings.TrimSpace(search); s != "" {
			tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
		}
		return tx
	}

	var total int64
	if err := r.db.Model(&categoryDatamodel.Category{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*categoryDatamodel.Category
	err := r.db.Scopes(scope).
		Order("name ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&categories).Error
	return categories, total, err
}

func (r *CategoryRepository) GetByName(name string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.Where("name = ?", name).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *categoryDatamodel.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *categoryDatamodel.Category) error {
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Model(&categoryDatamodel.Category{}).Where("id = ?", id).Update("is_active", false).Error
}
