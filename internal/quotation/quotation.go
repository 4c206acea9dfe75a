package quotation

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

const Noun = "penawaran"

var (
	ErrAlreadyApproved = internal.NewConflictError("Penawaran sudah disetujui", internal.ErrCodeQuotationApproved)
	ErrNoItems         = internal.NewValidationFieldError("items", "Penawaran harus memiliki minimal satu item", internal.ErrCodeValidationFailed)
)

type Item struct {
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.UnitValue.Mul(decimal.NewFromInt(i.Quantity))
}

// Items is stored as a JSON document in a single column.
type Items []Item

func (it Items) Value() (driver.Value, error) {
	if it == nil {
		return "[]", nil
	}
	b, err := json.Marshal(it)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (it *Items) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*it = Items{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported items column type %T", src)
	}
	return json.Unmarshal(raw, it)
}

type Quotation struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	Customer   string          `gorm:"column:customer;not null" json:"customer"`
	Contact    string          `gorm:"column:contact" json:"contact"`
	Items      Items           `gorm:"column:items;type:text;not null" json:"items"`
	Discount   decimal.Decimal `gorm:"column:discount;type:numeric(15,2);not null" json:"discount"`
	Subtotal   decimal.Decimal `gorm:"column:subtotal;type:numeric(15,2);not null" json:"subtotal"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(15,2);not null" json:"total"`
	Notes      string          `gorm:"column:notes" json:"notes"`
	CreatedBy  string          `gorm:"column:created_by;index" json:"createdBy"`
	IsApproved bool            `gorm:"column:is_approved;not null" json:"isApproved"`
	ApprovedBy string          `gorm:"column:approved_by" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time      `gorm:"column:approved_at" json:"approvedAt,omitempty"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// Recalculate sets subtotal and total from the items. Total never goes below zero.
func (q *Quotation) Recalculate() {
	sub := decimal.Zero
	for _, it := range q.Items {
		sub = sub.Add(it.Subtotal())
	}
	q.Subtotal = sub
	q.Total = decimal.Max(sub.Sub(q.Discount), decimal.Zero)
}

func (q *Quotation) Validate() *internal.AppError {
	if len(q.Items) == 0 {
		return ErrNoItems
	}

	v := validation.NewValidator()
	v.Field("customer", q.Customer).Required().MaxLength(150)
	v.Field("discount", q.Discount).NonNegative()
	for i, it := range q.Items {
		prefix := fmt.Sprintf("items[%d].", i)
		v.Field(prefix+"productName", it.ProductName).Required()
		v.Field(prefix+"quantity", it.Quantity).MinInt(1, internal.ErrCodeValidationFailed)
		v.Field(prefix+"unitValue", it.UnitValue).NonNegative()
	}
	return v.Validate()
}

func IsAlreadyApproved(err error) bool {
	return errors.Is(err, ErrAlreadyApproved)
}
