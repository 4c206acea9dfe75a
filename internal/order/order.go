package order

import (
	"time"

	orderDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/order"
	"github.com/shopspring/decimal"
)

type StatusFlag string

const (
	FlagPriceApproved StatusFlag = "priceApproved"
	FlagApproved      StatusFlag = "approved"
	FlagRejected      StatusFlag = "rejected"
	FlagProcessed     StatusFlag = "processed"
	FlagShipment      StatusFlag = "shipment"
	FlagFinished      StatusFlag = "finished"
	FlagCancelled     StatusFlag = "cancelled"
)

// Flags lists every status flag in display precedence order, highest first.
var Flags = []StatusFlag{
	FlagCancelled,
	FlagFinished,
	FlagShipment,
	FlagProcessed,
	FlagApproved,
	FlagPriceApproved,
	FlagRejected,
}

func (f StatusFlag) Valid() bool {
	for _, known := range Flags {
		if f == known {
			return true
		}
	}
	return false
}

type StatusRecord struct {
	IsActive    bool       `json:"isActive"`
	Description string     `json:"description"`
	ActionBy    string     `json:"actionBy"`
	ActionAt    *time.Time `json:"actionAt"`
}

type Item struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.UnitValue.Mul(decimal.NewFromInt(i.Quantity))
}

type Order struct {
	ID           int64           `json:"id"`
	Customer     string          `json:"customer"`
	Contact      string          `json:"contact"`
	OrderDate    time.Time       `json:"orderDate"`
	ShipmentTime *time.Time      `json:"shipmentTime,omitempty"`
	Items        []Item          `json:"items"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	CreatedBy    string          `json:"createdBy"`
	Username     string          `json:"username"`
	Notes        string          `json:"notes"`

	PriceApproved *StatusRecord `json:"priceApproved,omitempty"`
	Approved      *StatusRecord `json:"approved,omitempty"`
	Rejected      *StatusRecord `json:"rejected,omitempty"`
	Processed     *StatusRecord `json:"processed,omitempty"`
	Shipment      *StatusRecord `json:"shipment,omitempty"`
	Finished      *StatusRecord `json:"finished,omitempty"`
	Cancelled     *StatusRecord `json:"cancelled,omitempty"`

	IsPriceApproved bool `json:"isPriceApproved"`
	IsApproved      bool `json:"isApproved"`
	IsRejected      bool `json:"isRejected"`
	IsProcessed     bool `json:"isProcessed"`
	IsShipment      bool `json:"isShipment"`
	IsFinished      bool `json:"isFinished"`
	IsCancelled     bool `json:"isCancelled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Record returns the sub-record for flag, nil when the order predates sub-records.
func (o *Order) Record(flag StatusFlag) *StatusRecord {
	switch flag {
	case FlagPriceApproved:
		return o.PriceApproved
	case FlagApproved:
		return o.Approved
	case FlagRejected:
		return o.Rejected
	case FlagProcessed:
		return o.Processed
	case FlagShipment:
		return o.Shipment
	case FlagFinished:
		return o.Finished
	case FlagCancelled:
		return o.Cancelled
	}
	return nil
}

func (o *Order) legacy(flag StatusFlag) *bool {
	switch flag {
	case FlagPriceApproved:
		return &o.IsPriceApproved
	case FlagApproved:
		return &o.IsApproved
	case FlagRejected:
		return &o.IsRejected
	case FlagProcessed:
		return &o.IsProcessed
	case FlagShipment:
		return &o.IsShipment
	case FlagFinished:
		return &o.IsFinished
	case FlagCancelled:
		return &o.IsCancelled
	}
	return nil
}

// IsFlagActive prefers the sub-record and falls back to the legacy boolean.
func (o *Order) IsFlagActive(flag StatusFlag) bool {
	if rec := o.Record(flag); rec != nil {
		return rec.IsActive
	}
	if b := o.legacy(flag); b != nil {
		return *b
	}
	return false
}

// SetStatus replaces the sub-record for flag and keeps the legacy boolean in sync.
func (o *Order) SetStatus(flag StatusFlag, rec *StatusRecord) {
	switch flag {
	case FlagPriceApproved:
		o.PriceApproved = rec
	case FlagApproved:
		o.Approved = rec
	case FlagRejected:
		o.Rejected = rec
	case FlagProcessed:
		o.Processed = rec
	case FlagShipment:
		o.Shipment = rec
	case FlagFinished:
		o.Finished = rec
	case FlagCancelled:
		o.Cancelled = rec
	default:
		return
	}
	*o.legacy(flag) = rec != nil && rec.IsActive
}

// HasActiveStatus reports whether the order has left the pending state.
func (o *Order) HasActiveStatus() bool {
	for _, f := range Flags {
		if o.IsFlagActive(f) {
			return true
		}
	}
	return false
}

// IsClosed is true once the order is cancelled or finished.
func (o *Order) IsClosed() bool {
	return o.IsFlagActive(FlagCancelled) || o.IsFlagActive(FlagFinished)
}

func (o *Order) Recalculate() {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	o.TotalValue = total
}

type HistoryEntry struct {
	ID          int64      `json:"id"`
	OrderID     int64      `json:"orderId"`
	Status      StatusFlag `json:"status"`
	IsActive    bool       `json:"isActive"`
	Description string     `json:"description"`
	ActionBy    string     `json:"actionBy"`
	ActionAt    time.Time  `json:"actionAt"`
}

// View is an order as the client renders it: the badge and the actions the caller may take.
type View struct {
	*Order
	Badge   Badge    `json:"badge"`
	Actions []Action `json:"actions"`
}

func toStatusColumns(rec *StatusRecord) orderDatamodel.StatusColumns {
	if rec == nil {
		return orderDatamodel.StatusColumns{}
	}
	active := rec.IsActive
	return orderDatamodel.StatusColumns{
		Active:      &active,
		Description: rec.Description,
		ActionBy:    rec.ActionBy,
		ActionAt:    rec.ActionAt,
	}
}

func fromStatusColumns(c orderDatamodel.StatusColumns) *StatusRecord {
	if c.Active == nil {
		return nil
	}
	return &StatusRecord{
		IsActive:    *c.Active,
		Description: c.Description,
		ActionBy:    c.ActionBy,
		ActionAt:    c.ActionAt,
	}
}

func ToDataModel(o *Order) *orderDatamodel.Order {
	items := make([]orderDatamodel.Item, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderDatamodel.Item{
			ID:          it.ID,
			OrderID:     o.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitValue:   it.UnitValue,
		}
	}

	return &orderDatamodel.Order{
		ID:              o.ID,
		Customer:        o.Customer,
		Contact:         o.Contact,
		OrderDate:       o.OrderDate,
		ShipmentTime:    o.ShipmentTime,
		TotalValue:      o.TotalValue,
		CreatedBy:       o.CreatedBy,
		Username:        o.Username,
		Notes:           o.Notes,
		Items:           items,
		PriceApproved:   toStatusColumns(o.PriceApproved),
		Approved:        toStatusColumns(o.Approved),
		Rejected:        toStatusColumns(o.Rejected),
		Processed:       toStatusColumns(o.Processed),
		Shipment:        toStatusColumns(o.Shipment),
		Finished:        toStatusColumns(o.Finished),
		Cancelled:       toStatusColumns(o.Cancelled),
		IsPriceApproved: o.IsPriceApproved,
		IsApproved:      o.IsApproved,
		IsRejected:      o.IsRejected,
		IsProcessed:     o.IsProcessed,
		IsShipment:      o.IsShipment,
		IsFinished:      o.IsFinished,
		IsCancelled:     o.IsCancelled,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromDataModel(m *orderDatamodel.Order) *Order {
	items := make([]Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = Item{
			ID:          it.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitValue:   it.UnitValue,
		}
	}

	return &Order{
		ID:              m.ID,
		Customer:        m.Customer,
		Contact:         m.Contact,
		OrderDate:       m.OrderDate,
		ShipmentTime:    m.ShipmentTime,
		Items:           items,
		TotalValue:      m.TotalValue,
		CreatedBy:       m.CreatedBy,
		Username:        m.Username,
		Notes:           m.Notes,
		PriceApproved:   fromStatusColumns(m.PriceApproved),
		Approved:        fromStatusColumns(m.Approved),
		Rejected:        fromStatusColumns(m.Rejected),
		Processed:       fromStatusColumns(m.Processed),
		Shipment:        fromStatusColumns(m.Shipment),
		Finished:        fromStatusColumns(m.Finished),
		Cancelled:       fromStatusColumns(m.Cancelled),
		IsPriceApproved: m.IsPriceApproved,
		IsApproved:      m.IsApproved,
		IsRejected:      m.IsRejected,
		IsProcessed:     m.IsProcessed,
		IsShipment:      m.IsShipment,
		IsFinished:      m.IsFinished,
		IsCancelled:     m.IsCancelled,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func FromHistoryModel(h *orderDatamodel.StatusHistory) HistoryEntry {
	return HistoryEntry{
		ID:          h.ID,
		OrderID:     h.OrderID,
		Status:      StatusFlag(h.Status),
		IsActive:    h.IsActive,
		Description: h.Description,
		ActionBy:    h.ActionBy,
		ActionAt:    h.ActionAt,
	}
}

func ToHistoryModel(e HistoryEntry) *orderDatamodel.StatusHistory {
	return &orderDatamodel.StatusHistory{
		ID:          e.ID,
		OrderID:     e.OrderID,
		Status:      string(e.Status),
		IsActive:    e.IsActive,
		Description: e.Description,
		ActionBy:    e.ActionBy,
		ActionAt:    e.ActionAt,
	}
}
