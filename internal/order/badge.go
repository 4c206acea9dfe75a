package order

type Badge struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

const StatusPending = "pending"

var badges = map[StatusFlag]Badge{
	FlagCancelled:     {Status: string(FlagCancelled), Label: "Dibatalkan", Color: "red"},
	FlagFinished:      {Status: string(FlagFinished), Label: "Selesai", Color: "green"},
	FlagShipment:      {Status: string(FlagShipment), Label: "Dikirim", Color: "blue"},
	FlagProcessed:     {Status: string(FlagProcessed), Label: "Diproses", Color: "indigo"},
	FlagApproved:      {Status: string(FlagApproved), Label: "Disetujui", Color: "teal"},
	FlagPriceApproved: {Status: string(FlagPriceApproved), Label: "Harga Disetujui", Color: "cyan"},
	FlagRejected:      {Status: string(FlagRejected), Label: "Ditolak", Color: "orange"},
}

var pendingBadge = Badge{Status: StatusPending, Label: "Menunggu", Color: "yellow"}

// ResolveBadge picks the first active flag in precedence order. Contradictory
// flags are not an error; the higher one wins. Pending is the only fallback, so
// there are eight badges: one per flag plus pending.
func ResolveBadge(o *Order) Badge {
	for _, f := range Flags {
		if o.IsFlagActive(f) {
			return badges[f]
		}
	}
	return pendingBadge
}
