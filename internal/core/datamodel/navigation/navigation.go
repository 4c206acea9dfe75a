package navigation

import "time"

// RoutePermission overrides the default roles of one menu path.
// Roles is a comma separated list of role ids.
type RoutePermission struct {
	ID        int64     `gorm:"primaryKey"`
	Path      string    `gorm:"column:path;uniqueIndex;not null"`
	Roles     string    `gorm:"column:roles;not null"`
	UpdatedBy string    `gorm:"column:updated_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (RoutePermission) TableName() string {
	return "route_permissions"
}
