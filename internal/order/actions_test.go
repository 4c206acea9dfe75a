package order_test

import (
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/order"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func keys(actions []order.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Key
	}
	return out
}

var _ = Describe("AvailableActions", func() {
	pending := func() *order.Order { return withFlags() }

	It("should offer price approval only to Pricing on a pending order", func() {
		Expect(keys(order.AvailableActions(role.Pricing, pending()))).To(ConsistOf("approve_price"))
		Expect(keys(order.AvailableActions(role.SalesRetail, pending()))).To(BeEmpty())
	})

	It("should let the Approver reject but not approve before price approval", func() {
		Expect(keys(order.AvailableActions(role.Approver, pending()))).To(ConsistOf("reject"))
	})

	It("should let the Approver approve or reject after price approval", func() {
		o := withFlags(order.FlagPriceApproved)
		Expect(keys(order.AvailableActions(role.Approver, o))).To(ConsistOf("approve", "reject"))
	})

	It("should walk the warehouse through process, ship and finish", func() {
		o := withFlags(order.FlagPriceApproved, order.FlagApproved)
		Expect(keys(order.AvailableActions(role.Gudang, o))).To(ConsistOf("process"))

		o.SetStatus(order.FlagProcessed, active())
		Expect(keys(order.AvailableActions(role.Gudang, o))).To(ConsistOf("ship"))

		o.SetStatus(order.FlagShipment, active())
		Expect(keys(order.AvailableActions(role.Gudang, o))).To(ConsistOf("finish"))
		Expect(keys(order.AvailableActions(role.Admin, o))).To(ConsistOf("finish"))
	})

	It("should stop cancellation once shipped", func() {
		Expect(keys(order.AvailableActions(role.ManagerRetail, pending()))).To(ConsistOf("cancel"))
		o := withFlags(order.FlagPriceApproved, order.FlagApproved, order.FlagProcessed, order.FlagShipment)
		Expect(keys(order.AvailableActions(role.ManagerRetail, o))).To(BeEmpty())
	})

	It("should offer nothing on a closed order", func() {
		for _, r := range role.All() {
			Expect(order.AvailableActions(r, withFlags(order.FlagCancelled))).To(BeEmpty())
			Expect(order.AvailableActions(r, withFlags(order.FlagFinished))).To(BeEmpty())
		}
	})

	It("should not offer price approval on a rejected order", func() {
		Expect(order.AvailableActions(role.Pricing, withFlags(order.FlagRejected))).To(BeEmpty())
	})

	It("should give Superadmin every action whose precondition holds", func() {
		Expect(keys(order.AvailableActions(role.Superadmin, pending()))).
			To(Equal([]string{"approve_price", "reject", "cancel"}))
	})

	It("should expose CanActivate by flag", func() {
		Expect(order.CanActivate(role.Pricing, pending(), order.FlagPriceApproved)).To(BeTrue())
		Expect(order.CanActivate(role.Pricing, pending(), order.FlagApproved)).To(BeFalse())
	})
})
