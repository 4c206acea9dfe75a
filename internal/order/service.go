package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/core/events"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/resource"
)

var (
	ErrOrderNotFound    = internal.NewNotFoundError("Data pesanan tidak ditemukan", internal.ErrCodeOrderNotFound)
	ErrNoItems          = internal.NewValidationFieldError("items", "Pesanan harus memiliki minimal satu item", internal.ErrCodeValidationFailed)
	ErrCannotModify     = internal.NewValidationError("Pesanan yang sudah diproses tidak dapat diubah", internal.ErrCodeCannotModifyOrder)
	ErrActionNotAllowed = internal.NewForbiddenError("Aksi tidak diizinkan untuk status pesanan ini", internal.ErrCodeActionNotAllowed)
	ErrStatusUnchanged  = internal.NewValidationError("Status pesanan tidak berubah", internal.ErrCodeInvalidOrderStatus)
)

// Repository is the order store. Items and status history live in their own tables.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, params pagination.Params, filter resource.Filter) ([]*Order, int64, error)
	Update(ctx context.Context, o *Order) error
	UpdateStatus(ctx context.Context, o *Order, entry HistoryEntry) error
	Delete(ctx context.Context, id int64) error
	History(ctx context.Context, orderID int64) ([]HistoryEntry, error)
}

// salesRoles only ever see and edit their own orders.
var salesRoles = []role.Role{role.SalesRetail, role.SalesProject}

type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) CreateOrder(ctx context.Context, caller *auth.User, dto OrderDTO) (*Order, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	o := &Order{
		CreatedBy: caller.Username,
		Username:  caller.Username,
	}
	dto.apply(o)

	if err := s.repo.Create(ctx, o); err != nil {
		s.logger.Error("failed to create order", "error", err, "username", caller.Username)
		return nil, err
	}

	s.logger.Info("order created",
		"order_id", o.ID,
		"username", o.Username,
		"items", len(o.Items),
		"total_value", o.TotalValue.String())
	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, caller *auth.User, id int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(caller, o) {
		s.logger.Warn("order access denied", "order_id", id, "username", caller.Username)
		return nil, internal.ErrUnauthorizedAccess
	}
	return o, nil
}

func (s *Service) ListOrders(ctx context.Context, caller *auth.User, params pagination.Params, filter resource.Filter) (*pagination.Page[*Order], error) {
	if caller.Role.In(salesRoles...) {
		filter.Username = caller.Username
	}

	orders, total, err := s.repo.List(ctx, params, filter)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		return nil, err
	}
	page := pagination.NewPage(orders, params, total)
	return &page, nil
}

// UpdateOrder edits header and items while the order is still pending.
func (s *Service) UpdateOrder(ctx context.Context, caller *auth.User, id int64, dto OrderDTO) (*Order, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	o, err := s.GetOrder(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if o.HasActiveStatus() {
		s.logger.Warn("cannot modify order in current status", "order_id", id, "status", ResolveBadge(o).Status)
		return nil, ErrCannotModify
	}

	dto.apply(o)
	if err := s.repo.Update(ctx, o); err != nil {
		s.logger.Error("failed to update order", "error", err, "order_id", id)
		return nil, err
	}

	s.logger.Info("order updated", "order_id", id, "updated_by", caller.Username)
	return o, nil
}

func (s *Service) DeleteOrder(ctx context.Context, caller *auth.User, id int64) error {
	if !caller.HasRole(role.Admin) {
		return internal.ErrUnauthorizedAccess
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete order", "error", err, "order_id", id)
		return err
	}
	s.logger.Info("order deleted", "order_id", id, "deleted_by", caller.Username)
	return nil
}

// UpdateStatus flips one flag. Turning a flag on requires an action the caller's
// role can see for the order's current state; turning one off is Superadmin only.
func (s *Service) UpdateStatus(ctx context.Context, caller *auth.User, id int64, dto UpdateStatusDTO) (*Order, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.IsFlagActive(dto.Status) == dto.IsActive {
		return nil, ErrStatusUnchanged
	}
	if dto.IsActive && !CanActivate(caller.Role, o, dto.Status) {
		s.logger.Warn("order action denied",
			"order_id", id,
			"status", dto.Status,
			"role", int(caller.Role),
			"current", ResolveBadge(o).Status)
		return nil, ErrActionNotAllowed
	}
	if !dto.IsActive && !caller.Role.IsSuperadmin() {
		return nil, ErrActionNotAllowed
	}

	at := s.now()
	o.SetStatus(dto.Status, &StatusRecord{
		IsActive:    dto.IsActive,
		Description: dto.Description,
		ActionBy:    caller.Username,
		ActionAt:    &at,
	})
	entry := HistoryEntry{
		OrderID:     id,
		Status:      dto.Status,
		IsActive:    dto.IsActive,
		Description: dto.Description,
		ActionBy:    caller.Username,
		ActionAt:    at,
	}

	if err := s.repo.UpdateStatus(ctx, o, entry); err != nil {
		s.logger.Error("failed to update order status", "error", err, "order_id", id, "status", dto.Status)
		return nil, err
	}

	if s.publisher != nil {
		ev := events.NewOrderStatusChangedEvent(id, string(dto.Status), dto.IsActive, dto.Description, caller.Username, at)
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Warn("failed to publish order status change", "order_id", id, "error", err)
		}
	}

	s.logger.Info("order status changed",
		"order_id", id,
		"status", dto.Status,
		"is_active", dto.IsActive,
		"action_by", caller.Username,
		"badge", ResolveBadge(o).Status)
	return o, nil
}

func (s *Service) History(ctx context.Context, caller *auth.User, id int64) ([]HistoryEntry, error) {
	if _, err := s.GetOrder(ctx, caller, id); err != nil {
		return nil, err
	}
	return s.repo.History(ctx, id)
}

// View decorates o with its badge and the caller's actions.
func (s *Service) View(caller *auth.User, o *Order) *View {
	return &View{
		Order:   o,
		Badge:   ResolveBadge(o),
		Actions: AvailableActions(caller.Role, o),
	}
}

func canSee(caller *auth.User, o *Order) bool {
	if caller.Role.In(salesRoles...) {
		return o.Username == caller.Username
	}
	return true
}
