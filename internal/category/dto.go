package category

import (
	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
)

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CategoryDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	return v.Validate()
}
