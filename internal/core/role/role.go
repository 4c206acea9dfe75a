package role

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is the numeric business role stored on every user.
type Role int

const (
	SalesRetail    Role = 1
	SalesProject   Role = 2
	Admin          Role = 3
	ManagerRetail  Role = 4
	Superadmin     Role = 5
	Approver       Role = 6
	Pricing        Role = 7
	Gudang         Role = 8
	ManagerProject Role = 9
	HRD            Role = 10
	Kolektor       Role = 11
)

var names = map[Role]string{
	SalesRetail:    "Sales Retail",
	SalesProject:   "Sales Project",
	Admin:          "Admin",
	ManagerRetail:  "Manager Retail",
	Superadmin:     "Superadmin",
	Approver:       "Approver",
	Pricing:        "Pricing",
	Gudang:         "Gudang",
	ManagerProject: "Manager Project",
	HRD:            "HRD",
	Kolektor:       "Kolektor",
}

// All lists every role in numeric order.
func All() []Role {
	roles := make([]Role, 0, len(names))
	for r := SalesRetail; r <= Kolektor; r++ {
		roles = append(roles, r)
	}
	return roles
}

func (r Role) Valid() bool {
	_, ok := names[r]
	return ok
}

func (r Role) String() string {
	if n, ok := names[r]; ok {
		return n
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) IsSuperadmin() bool {
	return r == Superadmin
}

// In reports whether r is one of allowed. Superadmin is not special-cased here.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

// Parse accepts the numeric form ("6").
func Parse(s string) (Role, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid role %q: %w", s, err)
	}
	r := Role(n)
	if !r.Valid() {
		return 0, fmt.Errorf("unknown role %d", n)
	}
	return r, nil
}

// Join encodes roles as "1,2,3" for storage.
func Join(roles []Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = strconv.Itoa(int(r))
	}
	return strings.Join(parts, ",")
}

// Split decodes a Join-encoded list, skipping blanks.
func Split(s string) ([]Role, error) {
	var roles []Role
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := Parse(part)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}
