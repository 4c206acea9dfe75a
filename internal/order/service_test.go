package order_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/core/events"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/order"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

type mockOrderRepository struct {
	orders    map[int64]*order.Order
	history   []order.HistoryEntry
	nextID    int64
	listError error
	lastQuery resource.Filter
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: map[int64]*order.Order{}, nextID: 1}
}

func (m *mockOrderRepository) Create(_ context.Context, o *order.Order) error {
	o.ID = m.nextID
	m.nextID++
	o.CreatedAt = time.Now()
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepository) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepository) List(_ context.Context, params pagination.Params, filter resource.Filter) ([]*order.Order, int64, error) {
	m.lastQuery = filter
	if m.listError != nil {
		return nil, 0, m.listError
	}
	var out []*order.Order
	for _, o := range m.orders {
		if filter.Username != "" && o.Username != filter.Username {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (m *mockOrderRepository) Update(_ context.Context, o *order.Order) error {
	if _, ok := m.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, entry order.HistoryEntry) error {
	if err := m.Update(ctx, o); err != nil {
		return err
	}
	m.history = append(m.history, entry)
	return nil
}

func (m *mockOrderRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepository) History(_ context.Context, orderID int64) ([]order.HistoryEntry, error) {
	var out []order.HistoryEntry
	for _, e := range m.history {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) PublishSync(ctx context.Context, e events.Event) error {
	return p.Publish(ctx, e)
}

func user(id int64, username string, r role.Role) *auth.User {
	return &auth.User{ID: id, Username: username, Name: username, Role: r}
}

func sampleDTO() order.OrderDTO {
	return order.OrderDTO{
		Customer:  "Toko Maju",
		Contact:   "0812000111",
		OrderDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Items: []order.ItemDTO{
			{ProductName: "Semen 50kg", Quantity: 10, UnitValue: decimal.RequireFromString("65000")},
			{ProductName: "Pasir", Quantity: 2, UnitValue: decimal.RequireFromString("250000.50")},
		},
	}
}

var _ = Describe("Order Service", func() {
	var (
		ctx       context.Context
		repo      *mockOrderRepository
		publisher *capturePublisher
		svc       *order.Service

		sales    = user(1, "sales1", role.SalesRetail)
		sales2   = user(2, "sales2", role.SalesRetail)
		pricing  = user(3, "pricing", role.Pricing)
		approver = user(4, "approver", role.Approver)
		gudang   = user(5, "gudang", role.Gudang)
		admin    = user(6, "admin", role.Admin)
		root     = user(7, "root", role.Superadmin)
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockOrderRepository()
		publisher = &capturePublisher{}
		svc = order.NewService(repo, publisher, nil)
	})

	create := func() *order.Order {
		o, err := svc.CreateOrder(ctx, sales, sampleDTO())
		Expect(err).NotTo(HaveOccurred())
		return o
	}

	setStatus := func(caller *auth.User, id int64, flag order.StatusFlag, on bool, desc string) (*order.Order, error) {
		return svc.UpdateStatus(ctx, caller, id, order.UpdateStatusDTO{Status: flag, IsActive: on, Description: desc})
	}

	Describe("CreateOrder", func() {
		It("should compute the total and stamp the creator", func() {
			o := create()
			Expect(o.ID).To(Equal(int64(1)))
			Expect(o.TotalValue.String()).To(Equal("1150001"))
			Expect(o.CreatedBy).To(Equal("sales1"))
			Expect(o.Username).To(Equal("sales1"))
			Expect(order.ResolveBadge(o).Status).To(Equal(order.StatusPending))
		})

		It("should reject an order without items", func() {
			dto := sampleDTO()
			dto.Items = nil
			_, err := svc.CreateOrder(ctx, sales, dto)
			Expect(errors.Is(err, order.ErrNoItems)).To(BeTrue())
		})

		It("should report every invalid item", func() {
			dto := sampleDTO()
			dto.Items[0].Quantity = 0
			dto.Items[1].UnitValue = decimal.NewFromInt(-1)
			_, err := svc.CreateOrder(ctx, sales, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.GetDetailedMessage()).To(Equal("items[0].quantity minimal 1; items[1].unitValue tidak boleh negatif"))
		})
	})

	Describe("visibility", func() {
		It("should hide other salespeople's orders", func() {
			o := create()
			_, err := svc.GetOrder(ctx, sales2, o.ID)
			Expect(errors.Is(err, internal.ErrUnauthorizedAccess)).To(BeTrue())

			_, err = svc.GetOrder(ctx, admin, o.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should scope sales listings to the caller", func() {
			create()
			page, err := svc.ListOrders(ctx, sales2, pagination.Params{Page: 1, Limit: 10}, resource.Filter{Username: "sales1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastQuery.Username).To(Equal("sales2"))
			Expect(page.Data).To(BeEmpty())
			Expect(page.Pagination.TotalItems).To(BeZero())
		})

		It("should let managers filter by username", func() {
			create()
			page, err := svc.ListOrders(ctx, admin, pagination.Params{Page: 1, Limit: 10}, resource.Filter{Username: "sales1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Data).To(HaveLen(1))
		})
	})

	Describe("UpdateStatus", func() {
		It("should run the full workflow and record history", func() {
			o := create()

			_, err := setStatus(pricing, o.ID, order.FlagPriceApproved, true, "harga sesuai")
			Expect(err).NotTo(HaveOccurred())
			_, err = setStatus(approver, o.ID, order.FlagApproved, true, "")
			Expect(err).NotTo(HaveOccurred())
			_, err = setStatus(gudang, o.ID, order.FlagProcessed, true, "")
			Expect(err).NotTo(HaveOccurred())
			_, err = setStatus(gudang, o.ID, order.FlagShipment, true, "truk B 1234")
			Expect(err).NotTo(HaveOccurred())
			done, err := setStatus(gudang, o.ID, order.FlagFinished, true, "")
			Expect(err).NotTo(HaveOccurred())

			Expect(order.ResolveBadge(done).Status).To(Equal(string(order.FlagFinished)))
			Expect(done.Finished.ActionBy).To(Equal("gudang"))
			Expect(done.IsFinished).To(BeTrue())
			Expect(done.Shipment.Description).To(Equal("truk B 1234"))

			history, err := svc.History(ctx, admin, o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(5))
			Expect(history[0].Status).To(Equal(order.FlagPriceApproved))
			Expect(history[0].ActionBy).To(Equal("pricing"))

			Expect(publisher.events).To(HaveLen(5))
			ev, ok := publisher.events[4].(*events.OrderStatusChangedEvent)
			Expect(ok).To(BeTrue())
			Expect(ev.Status).To(Equal("finished"))
			Expect(ev.OrderID).To(Equal(o.ID))
		})

		It("should refuse actions outside the caller's role", func() {
			o := create()
			_, err := setStatus(gudang, o.ID, order.FlagProcessed, true, "")
			Expect(errors.Is(err, order.ErrActionNotAllowed)).To(BeTrue())

			_, err = setStatus(approver, o.ID, order.FlagApproved, true, "")
			Expect(errors.Is(err, order.ErrActionNotAllowed)).To(BeTrue())
			Expect(repo.history).To(BeEmpty())
			Expect(publisher.events).To(BeEmpty())
		})

		It("should require a reason to reject", func() {
			o := create()
			_, err := setStatus(approver, o.ID, order.FlagRejected, true, " ")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.GetDetailedMessage()).To(Equal("Alasan wajib diisi"))

			rejected, err := setStatus(approver, o.ID, order.FlagRejected, true, "stok kosong")
			Expect(err).NotTo(HaveOccurred())
			Expect(order.ResolveBadge(rejected).Label).To(Equal("Ditolak"))
		})

		It("should reject unknown flags", func() {
			o := create()
			_, err := setStatus(root, o.ID, order.StatusFlag("paid"), true, "")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.GetDetailedMessage()).To(Equal("Status tidak dikenal: paid"))
		})

		It("should reject a no-op transition", func() {
			o := create()
			_, err := setStatus(root, o.ID, order.FlagCancelled, false, "")
			Expect(errors.Is(err, order.ErrStatusUnchanged)).To(BeTrue())
		})

		It("should let only Superadmin turn a flag off", func() {
			o := create()
			_, err := setStatus(pricing, o.ID, order.FlagPriceApproved, true, "")
			Expect(err).NotTo(HaveOccurred())

			_, err = setStatus(pricing, o.ID, order.FlagPriceApproved, false, "")
			Expect(errors.Is(err, order.ErrActionNotAllowed)).To(BeTrue())

			reverted, err := setStatus(root, o.ID, order.FlagPriceApproved, false, "salah input")
			Expect(err).NotTo(HaveOccurred())
			Expect(reverted.PriceApproved).NotTo(BeNil())
			Expect(reverted.PriceApproved.IsActive).To(BeFalse())
			Expect(reverted.IsPriceApproved).To(BeFalse())
		})

		It("should return not found for a missing order", func() {
			_, err := setStatus(root, 99, order.FlagCancelled, true, "x")
			Expect(errors.Is(err, order.ErrOrderNotFound)).To(BeTrue())
		})
	})

	Describe("UpdateOrder", func() {
		It("should edit a pending order", func() {
			o := create()
			dto := sampleDTO()
			dto.Items = dto.Items[:1]
			updated, err := svc.UpdateOrder(ctx, sales, o.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.TotalValue.String()).To(Equal("650000"))
		})

		It("should refuse once any status is active", func() {
			o := create()
			_, err := setStatus(pricing, o.ID, order.FlagPriceApproved, true, "")
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.UpdateOrder(ctx, sales, o.ID, sampleDTO())
			Expect(errors.Is(err, order.ErrCannotModify)).To(BeTrue())
		})
	})

	Describe("DeleteOrder", func() {
		It("should be limited to Admin and Superadmin", func() {
			o := create()
			Expect(errors.Is(svc.DeleteOrder(ctx, sales, o.ID), internal.ErrUnauthorizedAccess)).To(BeTrue())
			Expect(svc.DeleteOrder(ctx, admin, o.ID)).To(Succeed())
			Expect(errors.Is(svc.DeleteOrder(ctx, root, o.ID), order.ErrOrderNotFound)).To(BeTrue())
		})
	})

	It("should decorate views with the caller's actions", func() {
		o := create()
		v := svc.View(pricing, o)
		Expect(v.Badge.Label).To(Equal("Menunggu"))
		Expect(keys(v.Actions)).To(ConsistOf("approve_price"))
	})
})
