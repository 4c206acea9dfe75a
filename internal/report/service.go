package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/visit"
)

type ProjectVisitLister interface {
	List(ctx context.Context, params pagination.Params, filter resource.Filter) (*pagination.Page[visit.ProjectVisit], error)
}

type SummaryAPI interface {
	VisitsPerUser(ctx context.Context, start, end time.Time) ([]VisitSummary, error)
}

type Export struct {
	Filename string
	Body     []byte
	Rows     int
}

type Service struct {
	visits  ProjectVisitLister
	summary SummaryAPI
	loc     *time.Location
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(visits ProjectVisitLister, summary SummaryAPI, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		visits:  visits,
		summary: summary,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// ExportProjectVisits exports exactly the requested page, the rows the client has loaded.
func (s *Service) ExportProjectVisits(ctx context.Context, params pagination.Params, filter resource.Filter) (*Export, error) {
	page, err := s.visits.List(ctx, params, filter.InLocation(s.loc))
	if err != nil {
		return nil, err
	}

	f, err := ExportProjectVisits(page.Data, s.loc)
	if err != nil {
		s.logger.Error("failed to build project visit workbook", "error", err)
		return nil, internal.NewInternalError("Gagal membuat laporan", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, internal.NewInternalError("Gagal membuat laporan", err)
	}

	s.logger.Info("project visit report exported", "rows", len(page.Data), "page", params.Page)
	return &Export{
		Filename: Filename(s.now().In(s.loc)),
		Body:     buf.Bytes(),
		Rows:     len(page.Data),
	}, nil
}

// VisitSummary takes the inclusive date range the client's pickers send, as days in the
// report timezone.
func (s *Service) VisitSummary(ctx context.Context, filter resource.Filter) ([]VisitSummary, error) {
	start, end := filter.InLocation(s.loc).Bounds()

	rows, err := s.summary.VisitsPerUser(ctx, start, end)
	if err != nil {
		s.logger.Error("failed to summarize visits", "error", err)
		return nil, err
	}
	return rows, nil
}
