package blog

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/frahmantamala/distribution-admin/internal/resource"
)

const Noun = "blog"

type Blog struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Slug        string     `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Content     string     `gorm:"column:content;type:text" json:"content"`
	Author      string     `gorm:"column:author" json:"author"`
	Published   bool       `gorm:"column:published;not null" json:"published"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Blog) TableName() string {
	return "blogs"
}

func (b *Blog) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("title", b.Title).Required().MaxLength(200)
	v.Field("slug", b.Slug).Required().MaxLength(220)
	v.Field("content", b.Content).Required()
	return v.Validate()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func NewService(repo resource.RepositoryAPI[Blog], logger *slog.Logger) *resource.Service[Blog] {
	return resource.NewService(repo, Noun, resource.Hooks[Blog]{
		Validate: (*Blog).Validate,
		BeforeCreate: func(_ context.Context, caller *auth.User, b *Blog) error {
			prepare(b, nil)
			if b.Author == "" && caller != nil {
				b.Author = caller.Name
			}
			return nil
		},
		BeforeUpdate: func(_ context.Context, _ *auth.User, existing, incoming *Blog) error {
			prepare(incoming, existing)
			if incoming.Author == "" {
				incoming.Author = existing.Author
			}
			return nil
		},
	}, logger)
}

// prepare derives the slug and stamps publishedAt on the first publish.
func prepare(b, existing *Blog) {
	b.Title = strings.TrimSpace(b.Title)
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	} else {
		b.Slug = Slugify(b.Slug)
	}

	switch {
	case !b.Published:
		b.PublishedAt = nil
	case existing != nil && existing.Published && existing.PublishedAt != nil:
		b.PublishedAt = existing.PublishedAt
	default:
		now := time.Now()
		b.PublishedAt = &now
	}
}
