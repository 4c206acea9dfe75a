package user

import (
	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
)

type CreateUserDTO struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Role     role.Role `json:"role"`
	IsActive *bool     `json:"isActive"`
}

// UpdateUserDTO leaves the password unchanged when it is empty.
type UpdateUserDTO struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Role     role.Role `json:"role"`
	IsActive *bool     `json:"isActive"`
	Password string    `json:"password"`
}

func (d CreateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MinLength(3).MaxLength(50)
	v.Field("password", d.Password).Required().MinLength(6)
	v.Field("name", d.Name).Required().MaxLength(100)
	roleField(v, d.Role)
	return v.Validate()
}

func (d UpdateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	roleField(v, d.Role)
	if d.Password != "" {
		v.Field("password", d.Password).MinLength(6)
	}
	return v.Validate()
}

func roleField(v *validation.ValidationBuilder, r role.Role) {
	if r == 0 {
		v.Field("role", int(r)).Required()
		return
	}
	v.Field("role", r).ValidRole()
}
