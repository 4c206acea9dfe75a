package resource

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
)

// Hooks let an entity package validate and stamp records around the generic flow.
// Any hook may be nil.
type Hooks[T any] struct {
	Validate     func(item *T) *internal.AppError
	BeforeCreate func(ctx context.Context, caller *auth.User, item *T) error
	BeforeUpdate func(ctx context.Context, caller *auth.User, existing, incoming *T) error
	BeforeDelete func(ctx context.Context, caller *auth.User, existing *T) error
	AfterCreate  func(ctx context.Context, caller *auth.User, item *T)
}

type ServiceAPI[T any] interface {
	List(ctx context.Context, params pagination.Params, filter Filter) (*pagination.Page[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, caller *auth.User, item *T) (*T, error)
	Update(ctx context.Context, caller *auth.User, id int64, item *T) (*T, error)
	Delete(ctx context.Context, caller *auth.User, id int64) error
}

type Service[T any] struct {
	repo   RepositoryAPI[T]
	hooks  Hooks[T]
	noun   string
	logger *slog.Logger
}

func NewService[T any](repo RepositoryAPI[T], noun string, hooks Hooks[T], logger *slog.Logger) *Service[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service[T]{
		repo:   repo,
		hooks:  hooks,
		noun:   noun,
		logger: logger.With("resource", noun),
	}
}

func (s *Service[T]) List(ctx context.Context, params pagination.Params, filter Filter) (*pagination.Page[T], error) {
	items, total, err := s.repo.List(ctx, params, filter)
	if err != nil {
		s.logger.Error("failed to list", "error", err, "page", params.Page, "limit", params.Limit)
		return nil, err
	}
	page := pagination.NewPage(items, params, total)
	return &page, nil
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service[T]) Create(ctx context.Context, caller *auth.User, item *T) (*T, error) {
	if s.hooks.BeforeCreate != nil {
		if err := s.hooks.BeforeCreate(ctx, caller, item); err != nil {
			return nil, err
		}
	}
	if s.hooks.Validate != nil {
		if appErr := s.hooks.Validate(item); appErr != nil {
			return nil, appErr
		}
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Warn("create failed", "error", err, "user_id", callerID(caller))
		return nil, err
	}

	if s.hooks.AfterCreate != nil {
		s.hooks.AfterCreate(ctx, caller, item)
	}
	s.logger.Info("created", "user_id", callerID(caller))
	return item, nil
}

func (s *Service[T]) Update(ctx context.Context, caller *auth.User, id int64, item *T) (*T, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.hooks.BeforeUpdate != nil {
		if err := s.hooks.BeforeUpdate(ctx, caller, existing, item); err != nil {
			return nil, err
		}
	}
	if s.hooks.Validate != nil {
		if appErr := s.hooks.Validate(item); appErr != nil {
			return nil, appErr
		}
	}

	if err := s.repo.Update(ctx, id, item); err != nil {
		s.logger.Warn("update failed", "error", err, "id", id, "user_id", callerID(caller))
		return nil, err
	}

	s.logger.Info("updated", "id", id, "user_id", callerID(caller))
	return s.repo.Get(ctx, id)
}

func (s *Service[T]) Delete(ctx context.Context, caller *auth.User, id int64) error {
	if s.hooks.BeforeDelete != nil {
		existing, err := s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.hooks.BeforeDelete(ctx, caller, existing); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted", "id", id, "user_id", callerID(caller))
	return nil
}

func callerID(u *auth.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
