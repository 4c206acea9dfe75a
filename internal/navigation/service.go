package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/events"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
)

var ErrUnknownRoute = internal.NewNotFoundError("Menu tidak ditemukan", internal.ErrCodeRoutePermissionNone)

type RoutePermission struct {
	Path      string
	Roles     []role.Role
	UpdatedBy string
}

type RepositoryAPI interface {
	List(ctx context.Context) ([]RoutePermission, error)
	Upsert(ctx context.Context, p RoutePermission) error
	Delete(ctx context.Context, path string) error
}

// RoutePermissionView is one row of the route permission editor.
type RoutePermissionView struct {
	Key          string      `json:"key"`
	Title        string      `json:"title"`
	Path         string      `json:"path"`
	DefaultRoles []role.Role `json:"defaultRoles"`
	Roles        []role.Role `json:"roles"`
	Overridden   bool        `json:"overridden"`
}

// SetRoutePermissionDTO replaces the roles of one path. Reset drops the override
// so the menu defaults apply again.
type SetRoutePermissionDTO struct {
	Path  string      `json:"path"`
	Roles []role.Role `json:"roles"`
	Reset bool        `json:"reset"`
}

func (dto *SetRoutePermissionDTO) Validate() *internal.AppError {
	if strings.TrimSpace(dto.Path) == "" {
		return internal.NewValidationFieldError("path", "path wajib diisi", internal.ErrCodeValidationFailed)
	}
	for _, r := range dto.Roles {
		if !r.Valid() {
			return internal.NewValidationFieldError("roles", fmt.Sprintf("roles tidak dikenal: %d", int(r)), internal.ErrCodeInvalidRole)
		}
	}
	return nil
}

type Service struct {
	menu      []MenuItem
	repo      RepositoryAPI
	cache     Cache
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, cache Cache, publisher events.Publisher, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NoopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		menu:      DefaultMenu(),
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Overrides reads through the cache. A cache failure is logged and the database answers.
func (s *Service) Overrides(ctx context.Context) (Overrides, error) {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.logger.Warn("route permission cache unavailable", "error", err)
	} else if ok {
		return cached, nil
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to load route permissions", "error", err)
		return nil, internal.NewInternalError("Gagal memuat hak akses menu", err)
	}

	overrides := make(Overrides, len(rows))
	for _, p := range rows {
		overrides[p.Path] = p.Roles
	}
	if err := s.cache.Set(ctx, overrides); err != nil {
		s.logger.Warn("failed to cache route permissions", "error", err)
	}
	return overrides, nil
}

// Menu returns the sidebar items caller may see.
func (s *Service) Menu(ctx context.Context, caller *auth.User) ([]MenuItem, error) {
	if caller.Role.IsSuperadmin() {
		return s.menu, nil
	}
	overrides, err := s.Overrides(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(s.menu, overrides, caller.Role), nil
}

func (s *Service) ListRoutePermissions(ctx context.Context) ([]RoutePermissionView, error) {
	overrides, err := s.Overrides(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]RoutePermissionView, len(s.menu))
	for i, item := range s.menu {
		v := RoutePermissionView{
			Key:          item.Key,
			Title:        item.Title,
			Path:         item.Path,
			DefaultRoles: item.DefaultRoles,
			Roles:        item.DefaultRoles,
		}
		if o, ok := overrides[item.Path]; ok {
			v.Roles = o
			v.Overridden = true
		}
		if v.Roles == nil {
			v.Roles = []role.Role{}
		}
		if v.DefaultRoles == nil {
			v.DefaultRoles = []role.Role{}
		}
		views[i] = v
	}
	return views, nil
}

func (s *Service) SetRoutePermission(ctx context.Context, caller *auth.User, dto SetRoutePermissionDTO) error {
	if !caller.Role.IsSuperadmin() {
		return internal.ErrUnauthorizedAccess
	}
	if appErr := dto.Validate(); appErr != nil {
		return appErr
	}
	path := strings.TrimSpace(dto.Path)
	if _, ok := FindByPath(s.menu, path); !ok {
		return ErrUnknownRoute
	}

	var err error
	if dto.Reset {
		err = s.repo.Delete(ctx, path)
	} else {
		err = s.repo.Upsert(ctx, RoutePermission{Path: path, Roles: dedupe(dto.Roles), UpdatedBy: caller.Username})
	}
	if err != nil {
		s.logger.Error("failed to save route permission", "path", path, "error", err)
		return err
	}

	s.logger.Info("route permission changed", "path", path, "reset", dto.Reset, "changed_by", caller.Username)

	if s.publisher == nil {
		return s.cache.Invalidate(ctx)
	}
	// synchronous so the caller's next menu fetch already sees the change
	return s.publisher.PublishSync(ctx, events.NewRoutePermissionsChangedEvent(path, caller.Username))
}

// InvalidateOnChange is subscribed to route permission events.
func (s *Service) InvalidateOnChange(ctx context.Context, event events.Event) error {
	if event.EventType() != events.EventTypeRoutePermissionsChanged {
		return errors.New("unexpected event type " + event.EventType())
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("failed to invalidate route permission cache: %w", err)
	}
	s.logger.Debug("route permission cache invalidated", "event_id", event.EventID())
	return nil
}

func dedupe(roles []role.Role) []role.Role {
	seen := make(map[role.Role]bool, len(roles))
	out := make([]role.Role, 0, len(roles))
	for _, r := range roles {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
