package postgres

import (
	"github.com/frahmantamala/distribution-admin/internal/blog"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"gorm.io/gorm"
)

func NewBlogRepository(db *gorm.DB) *resource.Repository[blog.Blog] {
	return resource.NewRepository[blog.Blog](db, resource.Options{
		Noun:           blog.Noun,
		UsernameColumn: "author",
		DateColumn:     "created_at",
		SearchColumns:  []string{"title", "content"},
		TitleColumn:    "title",
	})
}
