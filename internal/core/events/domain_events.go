package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeOrderStatusChanged      = "order.status_changed"
	EventTypeRoutePermissionsChanged = "navigation.permissions_changed"
	EventTypeQuotationApproved       = "quotation.approved"
)

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID     int64     `json:"order_id"`
	Status      string    `json:"status"`
	IsActive    bool      `json:"is_active"`
	Description string    `json:"description"`
	ActionBy    string    `json:"action_by"`
	ActionAt    time.Time `json:"action_at"`
}

func NewOrderStatusChangedEvent(orderID int64, status string, isActive bool, description, actionBy string, actionAt time.Time) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":    orderID,
				"status":      status,
				"is_active":   isActive,
				"description": description,
				"action_by":   actionBy,
				"action_at":   actionAt,
			},
		},
		OrderID:     orderID,
		Status:      status,
		IsActive:    isActive,
		Description: description,
		ActionBy:    actionBy,
		ActionAt:    actionAt,
	}
}

type RoutePermissionsChangedEvent struct {
	BaseEvent
	Path      string `json:"path"`
	ChangedBy string `json:"changed_by"`
}

func NewRoutePermissionsChangedEvent(path, changedBy string) *RoutePermissionsChangedEvent {
	return &RoutePermissionsChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRoutePermissionsChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"path":       path,
				"changed_by": changedBy,
			},
		},
		Path:      path,
		ChangedBy: changedBy,
	}
}

type QuotationApprovedEvent struct {
	BaseEvent
	QuotationID int64  `json:"quotation_id"`
	ApprovedBy  string `json:"approved_by"`
}

func NewQuotationApprovedEvent(quotationID int64, approvedBy string) *QuotationApprovedEvent {
	return &QuotationApprovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeQuotationApproved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"quotation_id": quotationID,
				"approved_by":  approvedBy,
			},
		},
		QuotationID: quotationID,
		ApprovedBy:  approvedBy,
	}
}
