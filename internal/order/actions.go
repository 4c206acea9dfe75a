package order

import "github.com/frahmantamala/distribution-admin/internal/core/role"

type Action struct {
	Key   string      `json:"key"`
	Label string      `json:"label"`
	Flag  StatusFlag  `json:"flag"`
	Roles []role.Role `json:"-"`

	when func(o *Order) bool
}

var actionTable = []Action{
	{
		Key: "approve_price", Label: "Setujui Harga", Flag: FlagPriceApproved,
		Roles: []role.Role{role.Pricing},
		when: func(o *Order) bool {
			return !o.IsFlagActive(FlagPriceApproved) && !o.IsFlagActive(FlagRejected) && !o.IsClosed()
		},
	},
	{
		Key: "approve", Label: "Setujui", Flag: FlagApproved,
		Roles: []role.Role{role.Approver},
		when: func(o *Order) bool {
			return o.IsFlagActive(FlagPriceApproved) && !o.IsFlagActive(FlagApproved) &&
				!o.IsFlagActive(FlagRejected) && !o.IsClosed()
		},
	},
	{
		Key: "reject", Label: "Tolak", Flag: FlagRejected,
		Roles: []role.Role{role.Approver},
		when: func(o *Order) bool {
			return !o.IsFlagActive(FlagApproved) && !o.IsFlagActive(FlagRejected) && !o.IsClosed()
		},
	},
	{
		Key: "process", Label: "Proses", Flag: FlagProcessed,
		Roles: []role.Role{role.Gudang},
		when: func(o *Order) bool {
			return o.IsFlagActive(FlagApproved) && !o.IsFlagActive(FlagProcessed) && !o.IsClosed()
		},
	},
	{
		Key: "ship", Label: "Kirim", Flag: FlagShipment,
		Roles: []role.Role{role.Gudang},
		when: func(o *Order) bool {
			return o.IsFlagActive(FlagProcessed) && !o.IsFlagActive(FlagShipment) && !o.IsClosed()
		},
	},
	{
		Key: "finish", Label: "Selesai", Flag: FlagFinished,
		Roles: []role.Role{role.Gudang, role.Admin},
		when: func(o *Order) bool {
			return o.IsFlagActive(FlagShipment) && !o.IsClosed()
		},
	},
	{
		Key: "cancel", Label: "Batalkan", Flag: FlagCancelled,
		Roles: []role.Role{role.Admin, role.ManagerRetail, role.ManagerProject},
		when: func(o *Order) bool {
			return !o.IsClosed() && !o.IsFlagActive(FlagShipment)
		},
	},
}

// AvailableActions returns the actions r may take on o in table order.
// Superadmin gets every action whose precondition holds.
func AvailableActions(r role.Role, o *Order) []Action {
	actions := make([]Action, 0, 2)
	for _, a := range actionTable {
		if !a.when(o) {
			continue
		}
		if r.IsSuperadmin() || r.In(a.Roles...) {
			actions = append(actions, a)
		}
	}
	return actions
}

// CanActivate reports whether some available action for r turns flag on.
func CanActivate(r role.Role, o *Order, flag StatusFlag) bool {
	for _, a := range AvailableActions(r, o) {
		if a.Flag == flag {
			return true
		}
	}
	return false
}
