package resource

import (
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
)

const DateLayout = "2006-01-02"

// Filter holds the list query parameters shared by every resource endpoint.
type Filter struct {
	Username  string
	Search    string
	Category  string
	Brand     string
	Title     string
	StartDate time.Time
	EndDate   time.Time
}

// FilterFromQuery reads username, startDate, endDate, search, category, brand and title.
// Dates use the YYYY-MM-DD form the client's date pickers send and are UTC days.
func FilterFromQuery(q url.Values) (Filter, *internal.AppError) {
	return FilterFromQueryIn(q, time.UTC)
}

// FilterFromQueryIn is FilterFromQuery with startDate and endDate taken as calendar days in loc.
func FilterFromQueryIn(q url.Values, loc *time.Location) (Filter, *internal.AppError) {
	if loc == nil {
		loc = time.UTC
	}
	f := Filter{
		Username: strings.TrimSpace(q.Get("username")),
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		Brand:    strings.TrimSpace(q.Get("brand")),
		Title:    strings.TrimSpace(q.Get("title")),
	}

	var err error
	if f.StartDate, err = parseDate(q.Get("startDate"), loc); err != nil {
		return f, internal.NewValidationFieldError("startDate", "Format startDate harus YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if f.EndDate, err = parseDate(q.Get("endDate"), loc); err != nil {
		return f, internal.NewValidationFieldError("endDate", "Format endDate harus YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if appErr := validation.ValidateDateRange(f.StartDate, f.EndDate); appErr != nil {
		return f, appErr
	}
	return f, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// InLocation re-anchors StartDate and EndDate to midnight of the same calendar day in loc.
func (f Filter) InLocation(loc *time.Location) Filter {
	if loc == nil {
		return f
	}
	if !f.StartDate.IsZero() {
		f.StartDate = midnight(f.StartDate, loc)
	}
	if !f.EndDate.IsZero() {
		f.EndDate = midnight(f.EndDate, loc)
	}
	return f
}

// Bounds returns the half-open UTC range [start, end) the date filter selects.
// endDate covers its whole day. Zero values are open bounds.
func (f Filter) Bounds() (start, end time.Time) {
	if !f.StartDate.IsZero() {
		start = f.StartDate.UTC()
	}
	if !f.EndDate.IsZero() {
		end = f.EndDate.AddDate(0, 0, 1).UTC()
	}
	return start, end
}

func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}
