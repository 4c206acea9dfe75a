package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type ItemDTO struct {
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
}

// OrderDTO is the body of both create and update. totalValue is never read from the client.
type OrderDTO struct {
	Customer     string     `json:"customer"`
	Contact      string     `json:"contact"`
	OrderDate    time.Time  `json:"orderDate"`
	ShipmentTime *time.Time `json:"shipmentTime,omitempty"`
	Notes        string     `json:"notes"`
	Items        []ItemDTO  `json:"items"`
}

func (dto *OrderDTO) Validate() *internal.AppError {
	if len(dto.Items) == 0 {
		return ErrNoItems
	}

	v := validation.NewValidator()
	v.Field("customer", strings.TrimSpace(dto.Customer)).Required().MaxLength(150)
	v.Field("contact", dto.Contact).MaxLength(100)
	v.Field("orderDate", dto.OrderDate).Required()
	for i, it := range dto.Items {
		prefix := fmt.Sprintf("items[%d].", i)
		v.Field(prefix+"productName", strings.TrimSpace(it.ProductName)).Required()
		v.Field(prefix+"quantity", it.Quantity).MinInt(1, internal.ErrCodeValidationFailed)
		v.Field(prefix+"unitValue", it.UnitValue).NonNegative()
	}
	return v.Validate()
}

func (dto *OrderDTO) apply(o *Order) {
	o.Customer = strings.TrimSpace(dto.Customer)
	o.Contact = strings.TrimSpace(dto.Contact)
	o.OrderDate = dto.OrderDate
	o.ShipmentTime = dto.ShipmentTime
	o.Notes = dto.Notes
	o.Items = make([]Item, len(dto.Items))
	for i, it := range dto.Items {
		o.Items[i] = Item{
			ProductName: strings.TrimSpace(it.ProductName),
			Quantity:    it.Quantity,
			UnitValue:   it.UnitValue,
		}
	}
	o.Recalculate()
}

// UpdateStatusDTO flips one status flag.
type UpdateStatusDTO struct {
	Status      StatusFlag `json:"status"`
	IsActive    bool       `json:"isActive"`
	Description string     `json:"description"`
}

func (dto *UpdateStatusDTO) Validate() *internal.AppError {
	if dto.Status == "" {
		return internal.NewValidationFieldError("status", "status wajib diisi", internal.ErrCodeInvalidOrderStatus)
	}
	if !dto.Status.Valid() {
		return internal.NewValidationFieldError("status", fmt.Sprintf("Status tidak dikenal: %s", dto.Status), internal.ErrCodeInvalidOrderStatus)
	}
	// rejecting and cancelling need a reason the customer can be told
	if dto.IsActive && (dto.Status == FlagRejected || dto.Status == FlagCancelled) && strings.TrimSpace(dto.Description) == "" {
		return internal.NewValidationFieldError("description", "Alasan wajib diisi", internal.ErrCodeValidationFailed)
	}
	v := validation.NewValidator()
	v.Field("description", dto.Description).MaxLength(500)
	return v.Validate()
}
