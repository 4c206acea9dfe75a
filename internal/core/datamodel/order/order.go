package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusColumns is one status sub-record. Active is nil for rows written before
// sub-records existed; the legacy Is* column is authoritative for those.
type StatusColumns struct {
	Active      *bool      `gorm:"column:active"`
	Description string     `gorm:"column:description"`
	ActionBy    string     `gorm:"column:action_by"`
	ActionAt    *time.Time `gorm:"column:action_at"`
}

type Order struct {
	ID           int64           `gorm:"primaryKey"`
	Customer     string          `gorm:"column:customer;not null"`
	Contact      string          `gorm:"column:contact"`
	OrderDate    time.Time       `gorm:"column:order_date;not null;index"`
	ShipmentTime *time.Time      `gorm:"column:shipment_time"`
	TotalValue   decimal.Decimal `gorm:"column:total_value;type:numeric(15,2);not null"`
	CreatedBy    string          `gorm:"column:created_by;not null"`
	Username     string          `gorm:"column:username;not null;index"`
	Notes        string          `gorm:"column:notes"`
	Items        []Item          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	PriceApproved StatusColumns `gorm:"embedded;embeddedPrefix:price_approved_"`
	Approved      StatusColumns `gorm:"embedded;embeddedPrefix:approved_"`
	Rejected      StatusColumns `gorm:"embedded;embeddedPrefix:rejected_"`
	Processed     StatusColumns `gorm:"embedded;embeddedPrefix:processed_"`
	Shipment      StatusColumns `gorm:"embedded;embeddedPrefix:shipment_"`
	Finished      StatusColumns `gorm:"embedded;embeddedPrefix:finished_"`
	Cancelled     StatusColumns `gorm:"embedded;embeddedPrefix:cancelled_"`

	IsPriceApproved bool `gorm:"column:is_price_approved;not null"`
	IsApproved      bool `gorm:"column:is_approved;not null"`
	IsRejected      bool `gorm:"column:is_rejected;not null"`
	IsProcessed     bool `gorm:"column:is_processed;not null"`
	IsShipment      bool `gorm:"column:is_shipment;not null"`
	IsFinished      bool `gorm:"column:is_finished;not null"`
	IsCancelled     bool `gorm:"column:is_cancelled;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

type Item struct {
	ID          int64           `gorm:"primaryKey"`
	OrderID     int64           `gorm:"column:order_id;not null;index"`
	ProductName string          `gorm:"column:product_name;not null"`
	Quantity    int64           `gorm:"column:quantity;not null"`
	UnitValue   decimal.Decimal `gorm:"column:unit_value;type:numeric(15,2);not null"`
}

func (Item) TableName() string {
	return "order_items"
}

type StatusHistory struct {
	ID          int64     `gorm:"primaryKey"`
	OrderID     int64     `gorm:"column:order_id;not null;index"`
	Status      string    `gorm:"column:status;not null"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	Description string    `gorm:"column:description"`
	ActionBy    string    `gorm:"column:action_by;not null"`
	ActionAt    time.Time `gorm:"column:action_at;not null"`
}

func (StatusHistory) TableName() string {
	return "order_status_history"
}
