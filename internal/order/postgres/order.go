package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	orderDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/order"
	"github.com/frahmantamala/distribution-admin/internal/order"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options maps the list filters onto the orders table.
var Options = resource.Options{
	Noun:           "pesanan",
	UsernameColumn: "username",
	DateColumn:     "order_date",
	SearchColumns:  []string{"customer", "contact"},
	OrderBy:        "order_date DESC, id DESC",
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ order.Repository = (*OrderRepository)(nil)

func preloadItems(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := order.ToDataModel(o)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	*o = *order.FromDataModel(model)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var model orderDatamodel.Order
	err := r.db.WithContext(ctx).Scopes(preloadItems).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order.FromDataModel(&model), nil
}

func (r *OrderRepository) List(ctx context.Context, params pagination.Params, filter resource.Filter) ([]*order.Order, int64, error) {
	var total int64
	err := resource.ApplyFilter(r.db.WithContext(ctx).Model(&orderDatamodel.Order{}), Options, filter).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var models []orderDatamodel.Order
	err = resource.ApplyFilter(r.db.WithContext(ctx).Scopes(preloadItems), Options, filter).
		Order(Options.OrderBy).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = order.FromDataModel(&models[i])
	}
	return orders, total, nil
}

// Update rewrites the order row and replaces its items.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	model := order.ToDataModel(o)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := writeHeader(tx, model); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", model.ID).Delete(&orderDatamodel.Item{}).Error; err != nil {
			return fmt.Errorf("failed to clear order items: %w", err)
		}
		for i := range model.Items {
			model.Items[i].ID = 0
			model.Items[i].OrderID = model.ID
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return fmt.Errorf("failed to write order items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	*o = *order.FromDataModel(model)
	return nil
}

// UpdateStatus writes the status columns and appends the history row in one transaction.
func (r *OrderRepository) UpdateStatus(ctx context.Context, o *order.Order, entry order.HistoryEntry) error {
	model := order.ToDataModel(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := writeHeader(tx, model); err != nil {
			return err
		}
		if err := tx.Create(order.ToHistoryModel(entry)).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}
		o.UpdatedAt = model.UpdatedAt
		return nil
	})
}

func writeHeader(tx *gorm.DB, model *orderDatamodel.Order) error {
	res := tx.Model(&orderDatamodel.Order{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&orderDatamodel.Item{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Where("order_id = ?", id).Delete(&orderDatamodel.StatusHistory{}).Error; err != nil {
			return fmt.Errorf("failed to delete order history: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&orderDatamodel.Order{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
}

func (r *OrderRepository) History(ctx context.Context, orderID int64) ([]order.HistoryEntry, error) {
	var rows []orderDatamodel.StatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("action_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, internal.NewInternalError("Gagal memuat riwayat pesanan", err)
	}

	entries := make([]order.HistoryEntry, len(rows))
	for i := range rows {
		entries[i] = order.FromHistoryModel(&rows[i])
	}
	return entries, nil
}
