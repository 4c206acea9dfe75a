package quotation

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/events"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/resource"
)

// ApproverRoles may approve a quotation; Superadmin passes via auth.User.HasRole.
var ApproverRoles = []role.Role{role.Approver, role.ManagerRetail, role.ManagerProject}

var (
	ErrCannotModify = internal.NewValidationError("Penawaran yang sudah disetujui tidak dapat diubah", internal.ErrCodeCannotModifyOrder)
	ErrCannotDelete = internal.NewValidationError("Penawaran yang sudah disetujui tidak dapat dihapus", internal.ErrCodeCannotModifyOrder)
)

func NewCRUDService(repo resource.RepositoryAPI[Quotation], logger *slog.Logger) *resource.Service[Quotation] {
	return resource.NewService(repo, Noun, resource.Hooks[Quotation]{
		Validate: (*Quotation).Validate,
		BeforeCreate: func(_ context.Context, caller *auth.User, q *Quotation) error {
			if caller != nil {
				q.CreatedBy = caller.Username
			}
			// approval only goes through Approve
			q.IsApproved = false
			q.ApprovedBy = ""
			q.ApprovedAt = nil
			q.Recalculate()
			return nil
		},
		BeforeUpdate: func(_ context.Context, _ *auth.User, existing, incoming *Quotation) error {
			if existing.IsApproved {
				return ErrCannotModify
			}
			incoming.CreatedBy = existing.CreatedBy
			incoming.IsApproved = false
			incoming.ApprovedBy = ""
			incoming.ApprovedAt = nil
			incoming.Recalculate()
			return nil
		},
		BeforeDelete: func(_ context.Context, caller *auth.User, existing *Quotation) error {
			if existing.IsApproved && (caller == nil || !caller.Role.IsSuperadmin()) {
				return ErrCannotDelete
			}
			return nil
		},
	}, logger)
}

// Service handles the approval step.
type Service struct {
	repo      resource.RepositoryAPI[Quotation]
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo resource.RepositoryAPI[Quotation], publisher events.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, publisher: publisher, logger: logger, now: time.Now}
}

func (s *Service) Approve(ctx context.Context, caller *auth.User, id int64) (*Quotation, error) {
	if !caller.HasRole(ApproverRoles...) {
		return nil, internal.ErrUnauthorizedAccess
	}

	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.IsApproved {
		return nil, ErrAlreadyApproved
	}

	at := s.now()
	q.IsApproved = true
	q.ApprovedBy = caller.Username
	q.ApprovedAt = &at
	if err := s.repo.Update(ctx, id, q); err != nil {
		s.logger.Error("failed to approve quotation", "quotation_id", id, "error", err)
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewQuotationApprovedEvent(id, caller.Username)); err != nil {
			s.logger.Warn("failed to publish quotation approval", "quotation_id", id, "error", err)
		}
	}

	s.logger.Info("quotation approved", "quotation_id", id, "approved_by", caller.Username)
	return s.repo.Get(ctx, id)
}
