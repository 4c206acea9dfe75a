package postgres

import (
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/visit"
	"gorm.io/gorm"
)

var (
	VisitOptions = resource.Options{
		Noun:           visit.VisitNoun,
		UsernameColumn: "username",
		DateColumn:     "visited_at",
		SearchColumns:  []string{"store_name", "address", "notes"},
		OrderBy:        "visited_at DESC",
	}
	ProjectVisitOptions = resource.Options{
		Noun:           visit.ProjectVisitNoun,
		UsernameColumn: "username",
		DateColumn:     "visited_at",
		SearchColumns:  []string{"project_name", "contractor", "location"},
		OrderBy:        "visited_at DESC",
	}
)

func NewVisitRepository(db *gorm.DB) *resource.Repository[visit.Visit] {
	return resource.NewRepository[visit.Visit](db, VisitOptions)
}

func NewProjectVisitRepository(db *gorm.DB) *resource.Repository[visit.ProjectVisit] {
	return resource.NewRepository[visit.ProjectVisit](db, ProjectVisitOptions)
}
