package navigation

import "github.com/frahmantamala/distribution-admin/internal/core/role"

type MenuItem struct {
	Key          string      `json:"key"`
	Title        string      `json:"title"`
	Path         string      `json:"path"`
	Icon         string      `json:"icon"`
	DefaultRoles []role.Role `json:"defaultRoles"`
}

// Overrides maps a menu path to the roles allowed to see it, replacing the defaults.
type Overrides map[string][]role.Role

var (
	sales     = []role.Role{role.SalesRetail, role.SalesProject}
	managers  = []role.Role{role.ManagerRetail, role.ManagerProject}
	warehouse = []role.Role{role.Admin, role.Gudang}
)

func roles(groups ...[]role.Role) []role.Role {
	var out []role.Role
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// DefaultMenu is the sidebar as shipped. Superadmin sees all of it regardless of roles.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{Key: "dashboard", Title: "Dashboard", Path: "/", Icon: "home", DefaultRoles: role.All()},
		{Key: "orders", Title: "Pesanan", Path: "/orders", Icon: "shopping-cart",
			DefaultRoles: roles(sales, managers, []role.Role{role.Admin, role.Approver, role.Pricing, role.Gudang})},
		{Key: "quotations", Title: "Penawaran", Path: "/quotations", Icon: "file-text",
			DefaultRoles: roles(sales, managers, []role.Role{role.Admin, role.Approver})},
		{Key: "products", Title: "Produk", Path: "/products", Icon: "package",
			DefaultRoles: roles(sales, managers, []role.Role{role.Admin, role.Pricing, role.Gudang})},
		{Key: "stores", Title: "Toko", Path: "/stores", Icon: "map-pin",
			DefaultRoles: []role.Role{role.SalesRetail, role.Admin, role.ManagerRetail, role.Kolektor}},
		{Key: "palets", Title: "Palet", Path: "/palets", Icon: "grid", DefaultRoles: warehouse},
		{Key: "stocks", Title: "Stok", Path: "/stocks", Icon: "layers", DefaultRoles: warehouse},
		{Key: "visits", Title: "Kunjungan", Path: "/visits", Icon: "navigation",
			DefaultRoles: []role.Role{role.SalesRetail, role.Admin, role.ManagerRetail, role.Kolektor}},
		{Key: "project-visits", Title: "Kunjungan Proyek", Path: "/project-visits", Icon: "briefcase",
			DefaultRoles: []role.Role{role.SalesProject, role.Admin, role.ManagerProject}},
		{Key: "reports", Title: "Laporan Proyek", Path: "/reports/project-visits", Icon: "bar-chart",
			DefaultRoles: roles(managers, []role.Role{role.Admin})},
		{Key: "blogs", Title: "Blog", Path: "/blogs", Icon: "edit", DefaultRoles: []role.Role{role.Admin}},
		{Key: "web-products", Title: "Produk Web", Path: "/web-products", Icon: "globe", DefaultRoles: []role.Role{role.Admin}},
		{Key: "categories", Title: "Kategori", Path: "/categories", Icon: "tag", DefaultRoles: []role.Role{role.Admin}},
		{Key: "users", Title: "Pengguna", Path: "/users", Icon: "users", DefaultRoles: []role.Role{role.Admin, role.HRD}},
		{Key: "route-permissions", Title: "Hak Akses Menu", Path: "/route-permissions", Icon: "lock"},
	}
}

// Filter keeps the items r may see. An override for a path replaces its default
// roles entirely. Superadmin gets every item back unfiltered.
func Filter(items []MenuItem, overrides Overrides, r role.Role) []MenuItem {
	if r.IsSuperadmin() {
		return items
	}

	visible := make([]MenuItem, 0, len(items))
	for _, item := range items {
		allowed := item.DefaultRoles
		if o, ok := overrides[item.Path]; ok {
			allowed = o
		}
		if r.In(allowed...) {
			visible = append(visible, item)
		}
	}
	return visible
}

// FindByPath returns the menu item registered under path.
func FindByPath(items []MenuItem, path string) (MenuItem, bool) {
	for _, item := range items {
		if item.Path == path {
			return item, true
		}
	}
	return MenuItem{}, false
}
