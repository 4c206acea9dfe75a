package events_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/frahmantamala/distribution-admin/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventBus", func() {
	var (
		ctx   context.Context
		bus   *events.EventBus
		calls atomic.Int32
	)

	BeforeEach(func() {
		ctx = context.Background()
		bus = events.NewEventBus(nil)
		calls.Store(0)
		bus.Subscribe(events.EventTypeQuotationApproved, func(context.Context, events.Event) error {
			calls.Add(1)
			return nil
		})
	})

	It("runs background handlers before Drain returns", func() {
		Expect(bus.Publish(ctx, events.NewQuotationApprovedEvent(1, "pak-approver"))).To(Succeed())
		Expect(bus.Publish(ctx, events.NewQuotationApprovedEvent(2, "pak-approver"))).To(Succeed())
		bus.Drain()
		Expect(calls.Load()).To(Equal(int32(2)))
	})

	It("drops events published after Drain", func() {
		bus.Drain()
		Expect(bus.Publish(ctx, events.NewQuotationApprovedEvent(1, "pak-approver"))).To(Succeed())
		bus.Drain()
		Expect(calls.Load()).To(BeZero())
	})

	It("returns the first synchronous handler error", func() {
		bus.Subscribe(events.EventTypeRoutePermissionsChanged, func(context.Context, events.Event) error {
			return errors.New("cache down")
		})
		err := bus.PublishSync(ctx, events.NewRoutePermissionsChangedEvent("/orders", "root"))
		Expect(err).To(MatchError(ContainSubstring("cache down")))
	})
})
