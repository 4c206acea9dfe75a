package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
)

var (
	ErrUsernameTaken  = internal.NewConflictError("Username sudah digunakan", internal.ErrCodeDuplicateRecord)
	ErrCannotDeleteMe = internal.NewValidationError("Tidak dapat menghapus akun sendiri", internal.ErrCodeValidationFailed)
	ErrSuperadminOnly = internal.NewForbiddenError("Hanya Superadmin yang dapat mengelola akun Superadmin", internal.ErrCodeUnauthorizedAccess)
)

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context, params pagination.Params, search string, r role.Role) (*pagination.Page[*User], error) {
	rows, total, err := s.repo.List(ctx, params, strings.TrimSpace(search), r)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	users := make([]*User, len(rows))
	for i, row := range rows {
		users[i] = FromDataModel(row)
	}
	page := pagination.NewPage(users, params, total)
	return &page, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(u), nil
}

func (s *Service) Create(ctx context.Context, caller *auth.User, dto CreateUserDTO) (*User, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}
	if err := guardSuperadmin(caller, dto.Role); err != nil {
		return nil, err
	}

	dto.Username = strings.ToLower(strings.TrimSpace(dto.Username))
	if existing, err := s.repo.GetByUsername(ctx, dto.Username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("Gagal menyimpan pengguna", err)
	}

	u := &User{
		Username:     dto.Username,
		Name:         dto.Name,
		Email:        dto.Email,
		Phone:        dto.Phone,
		PasswordHash: hash,
		Role:         dto.Role,
		IsActive:     dto.IsActive == nil || *dto.IsActive,
	}
	model := ToDataModel(u)
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create user", "username", u.Username, "error", err)
		return nil, err
	}

	s.logger.Info("user created", "user_id", model.ID, "role", int(u.Role), "created_by", callerID(caller))
	return FromDataModel(model), nil
}

func (s *Service) Update(ctx context.Context, caller *auth.User, id int64, dto UpdateUserDTO) (*User, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardSuperadmin(caller, role.Role(model.Role)); err != nil {
		return nil, err
	}
	if err := guardSuperadmin(caller, dto.Role); err != nil {
		return nil, err
	}

	model.Name = dto.Name
	model.Email = dto.Email
	model.Phone = dto.Phone
	model.Role = int(dto.Role)
	if dto.IsActive != nil {
		model.IsActive = *dto.IsActive
	}
	if dto.Password != "" {
		hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("Gagal memperbarui pengguna", err)
		}
		model.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "updated_by", callerID(caller))
	return FromDataModel(model), nil
}

func (s *Service) Delete(ctx context.Context, caller *auth.User, id int64) error {
	if caller != nil && caller.ID == id {
		return ErrCannotDeleteMe
	}

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := guardSuperadmin(caller, role.Role(model.Role)); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", id, "deleted_by", callerID(caller))
	return nil
}

// guardSuperadmin keeps Admin and HRD from creating or editing Superadmin accounts.
func guardSuperadmin(caller *auth.User, target role.Role) error {
	if target.IsSuperadmin() && (caller == nil || !caller.Role.IsSuperadmin()) {
		return ErrSuperadminOnly
	}
	return nil
}

func callerID(u *auth.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
