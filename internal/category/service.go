package category

import (
	"log/slog"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	categoryDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/category"
)

var (
	ErrCategoryNotFound  = internal.NewNotFoundError("Kategori tidak ditemukan", internal.ErrCodeRecordNotFound)
	ErrCategoryNameTaken = internal.NewConflictError("Nama kategori sudah digunakan", internal.ErrCodeDuplicateRecord)
)

type RepositoryAPI interface {
	GetAll() ([]*categoryDatamodel.Category, error)
	List(params pagination.Params, search string) ([]*categoryDatamodel.Category, int64, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	GetByName(name string) (*categoryDatamodel.Category, error)
	Create(category *categoryDatamodel.Category) error
	Update(category *categoryDatamodel.Category) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetAllCategories lists active categories for dropdowns.
func (s *Service) GetAllCategories() ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		domainCategory := FromDataModel(dataCategory)
		if domainCategory.IsActiveCategory() {
			responses = append(responses, domainCategory.ToResponse())
		}
	}

	s.logger.Info("retrieved categories", "count", len(responses))
	return responses, nil
}

func (s *Service) IsValidCategory(name string) bool {
	cat, err := s.repo.GetByName(normalizeName(name))
	if err != nil {
		s.logger.Warn("error checking category validity", "name", name, "error", err)
		return false
	}
	return cat != nil && cat.IsActive
}

func (s *Service) List(params pagination.Params, search string) (*pagination.Page[*Category], error) {
	rows, total, err := s.repo.List(params, search)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}
	out := make([]*Category, len(rows))
	for i, row := range rows {
		out[i] = FromDataModel(row)
	}
	page := pagination.NewPage(out, params, total)
	return &page, nil
}

func (s *Service) GetByID(id int64) (*Category, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrCategoryNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(dto CategoryDTO) (*Category, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	cat := NewCategory(dto.Name, dto.Description)
	existing, err := s.repo.GetByName(cat.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryNameTaken
	}

	row := ToDataModel(cat)
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create category", "name", cat.Name, "error", err)
		return nil, err
	}

	s.logger.Info("category created", "category_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) Update(id int64, dto CategoryDTO) (*Category, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	cat, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name := normalizeName(dto.Name)
	if name != cat.Name {
		existing, err := s.repo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCategoryNameTaken
		}
	}

	cat.Name = name
	cat.Description = dto.Description
	if err := s.repo.Update(ToDataModel(cat)); err != nil {
		s.logger.Error("failed to update category", "category_id", id, "error", err)
		return nil, err
	}
	return s.GetByID(id)
}

// Delete deactivates; products keep pointing at the name.
func (s *Service) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "category_id", id, "error", err)
		return err
	}
	s.logger.Info("category deactivated", "category_id", id)
	return nil
}

func (s *Service) Activate(id int64) (*Category, error) {
	return s.setActive(id, true)
}

func (s *Service) Deactivate(id int64) (*Category, error) {
	return s.setActive(id, false)
}

func (s *Service) setActive(id int64, active bool) (*Category, error) {
	cat, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if active {
		cat.Activate()
	} else {
		cat.Deactivate()
	}
	if err := s.repo.Update(ToDataModel(cat)); err != nil {
		return nil, err
	}
	return cat, nil
}
