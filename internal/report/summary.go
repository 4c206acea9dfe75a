package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/jmoiron/sqlx"
)

type VisitSummary struct {
	Username    string `db:"username" json:"username"`
	TotalVisits int64  `db:"total_visits" json:"totalVisits"`
	Stores      int64  `db:"stores" json:"stores"`
}

// SummaryRepository runs the aggregate report queries directly over sqlx.
type SummaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// VisitsPerUser counts store visits per salesperson in [start, end). Zero bounds are open.
func (r *SummaryRepository) VisitsPerUser(ctx context.Context, start, end time.Time) ([]VisitSummary, error) {
	var (
		where []string
		args  []interface{}
	)
	if !start.IsZero() {
		where = append(where, "visited_at >= ?")
		args = append(args, start)
	}
	if !end.IsZero() {
		where = append(where, "visited_at < ?")
		args = append(args, end)
	}

	query := "SELECT username, COUNT(*) AS total_visits, COUNT(DISTINCT store_name) AS stores FROM visits"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY username ORDER BY total_visits DESC, username ASC"

	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	rows := []VisitSummary{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to summarize visits: %w", err)
	}
	return rows, nil
}
