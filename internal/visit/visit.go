package visit

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/resource"
)

const (
	VisitNoun        = "kunjungan"
	ProjectVisitNoun = "kunjungan proyek"
)

// Visit is a salesperson's call on a retail store.
type Visit struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"column:username;index;not null" json:"username"`
	StoreName string    `gorm:"column:store_name;not null" json:"storeName"`
	VisitedAt time.Time `gorm:"column:visited_at;index;not null" json:"visitedAt"`
	Latitude  float64   `gorm:"column:latitude" json:"latitude"`
	Longitude float64   `gorm:"column:longitude" json:"longitude"`
	Address   string    `gorm:"column:address" json:"address"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Visit) TableName() string {
	return "visits"
}

func (v *Visit) Validate() *internal.AppError {
	b := validation.NewValidator()
	b.Field("username", v.Username).Required()
	b.Field("storeName", v.StoreName).Required().MaxLength(150)
	b.Field("visitedAt", v.VisitedAt).Required().NotFuture()
	b.Field("latitude", v.Latitude).Custom(coordinate("latitude", 90))
	b.Field("longitude", v.Longitude).Custom(coordinate("longitude", 180))
	return b.Validate()
}

// ProjectVisit is a project salesperson's site check on a construction project.
type ProjectVisit struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"column:username;index;not null" json:"username"`
	ProjectName string    `gorm:"column:project_name;not null" json:"projectName"`
	Contractor  string    `gorm:"column:contractor" json:"contractor"`
	VisitedAt   time.Time `gorm:"column:visited_at;index;not null" json:"visitedAt"`
	Location    string    `gorm:"column:location" json:"location"`
	Progress    int       `gorm:"column:progress;not null" json:"progress"`
	Notes       string    `gorm:"column:notes" json:"notes"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (ProjectVisit) TableName() string {
	return "project_visits"
}

func (v *ProjectVisit) Validate() *internal.AppError {
	b := validation.NewValidator()
	b.Field("username", v.Username).Required()
	b.Field("projectName", v.ProjectName).Required().MaxLength(200)
	b.Field("visitedAt", v.VisitedAt).Required().NotFuture()
	b.Field("progress", v.Progress).
		MinInt(0, internal.ErrCodeValidationFailed).
		MaxInt(100, internal.ErrCodeValidationFailed)
	return b.Validate()
}

func coordinate(field string, limit float64) func(interface{}) *internal.AppError {
	return func(value interface{}) *internal.AppError {
		f, _ := value.(float64)
		if f < -limit || f > limit {
			return internal.NewValidationFieldError(field, field+" di luar jangkauan", internal.ErrCodeValidationFailed)
		}
		return nil
	}
}

// fieldStaff are the roles whose visits are always recorded under their own username.
var fieldStaff = []role.Role{role.SalesRetail, role.SalesProject, role.Kolektor}

func stampUsername(caller *auth.User, current string) string {
	if caller == nil {
		return current
	}
	if current == "" || caller.Role.In(fieldStaff...) {
		return caller.Username
	}
	return current
}

// keepOwner stops field staff handing a visit to someone else. Other roles may reassign it.
func keepOwner(caller *auth.User, owner, requested string) string {
	if requested == "" || (caller != nil && caller.Role.In(fieldStaff...)) {
		return owner
	}
	return requested
}

func guardOwner(caller *auth.User, owner string) error {
	if caller != nil && caller.Role.In(fieldStaff...) && caller.Username != owner {
		return internal.ErrUnauthorizedAccess
	}
	return nil
}

func NewVisitService(repo resource.RepositoryAPI[Visit], logger *slog.Logger) *resource.Service[Visit] {
	return resource.NewService(repo, VisitNoun, resource.Hooks[Visit]{
		Validate: (*Visit).Validate,
		BeforeCreate: func(_ context.Context, caller *auth.User, v *Visit) error {
			v.Username = stampUsername(caller, v.Username)
			if v.VisitedAt.IsZero() {
				v.VisitedAt = time.Now()
			}
			return nil
		},
		BeforeUpdate: func(_ context.Context, caller *auth.User, existing, incoming *Visit) error {
			if err := guardOwner(caller, existing.Username); err != nil {
				return err
			}
			incoming.Username = keepOwner(caller, existing.Username, incoming.Username)
			return nil
		},
		BeforeDelete: func(_ context.Context, caller *auth.User, existing *Visit) error {
			return guardOwner(caller, existing.Username)
		},
	}, logger)
}

func NewProjectVisitService(repo resource.RepositoryAPI[ProjectVisit], logger *slog.Logger) *resource.Service[ProjectVisit] {
	return resource.NewService(repo, ProjectVisitNoun, resource.Hooks[ProjectVisit]{
		Validate: (*ProjectVisit).Validate,
		BeforeCreate: func(_ context.Context, caller *auth.User, v *ProjectVisit) error {
			v.Username = stampUsername(caller, v.Username)
			if v.VisitedAt.IsZero() {
				v.VisitedAt = time.Now()
			}
			return nil
		},
		BeforeUpdate: func(_ context.Context, caller *auth.User, existing, incoming *ProjectVisit) error {
			if err := guardOwner(caller, existing.Username); err != nil {
				return err
			}
			incoming.Username = keepOwner(caller, existing.Username, incoming.Username)
			return nil
		},
		BeforeDelete: func(_ context.Context, caller *auth.User, existing *ProjectVisit) error {
			return guardOwner(caller, existing.Username)
		},
	}, logger)
}
