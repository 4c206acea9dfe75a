package report

import (
	"fmt"
	"time"

	"github.com/frahmantamala/distribution-admin/internal/visit"
	"github.com/xuri/excelize/v2"
)

const (
	ProjectVisitSheet = "Project Visit"
	XLSXContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type column struct {
	title string
	width float64
	value func(i int, v *visit.ProjectVisit, loc *time.Location) interface{}
}

var projectVisitColumns = []column{
	{"No", 6, func(i int, _ *visit.ProjectVisit, _ *time.Location) interface{} { return i + 1 }},
	{"Tanggal", 18, func(_ int, v *visit.ProjectVisit, loc *time.Location) interface{} {
		return v.VisitedAt.In(loc).Format("02/01/2006 15:04")
	}},
	{"Sales", 18, func(_ int, v *visit.ProjectVisit, _ *time.Location) interface{} { return v.Username }},
	{"Proyek", 30, func(_ int, v *visit.ProjectVisit, _ *time.Location) interface{} { return v.ProjectName }},
	{"Kontraktor", 24, func(_ int, v *visit.ProjectVisit, _ *time.Location) interface{} { return v.Contractor }},
	{"Lokasi", 30, func(_ int, v *visit.ProjectVisit, _ *time.Location) interface{} { return v.Location }},
	{"Progress (%)", 12, func(_ int, v *visit.ProjectVisit, _ *time.Location) interface{} { return v.Progress }},
	{"Catatan", 40, func(_ int, v *visit.ProjectVisit, _ *time.Location) interface{} { return v.Notes }},
}

// Filename is the date-stamped download name for a project visit export.
func Filename(now time.Time) string {
	return fmt.Sprintf("laporan-project-visit-%s.xlsx", now.Format("2006-01-02"))
}

// ExportProjectVisits writes a header row and one row per visit, nothing else.
// The caller owns the returned file and must Close it.
func ExportProjectVisits(rows []visit.ProjectVisit, loc *time.Location) (*excelize.File, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ProjectVisitSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeHeader(f); err != nil {
		f.Close()
		return nil, err
	}

	for i := range rows {
		values := make([]interface{}, len(projectVisitColumns))
		for c, col := range projectVisitColumns {
			values[c] = col.value(i, &rows[i], loc)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(ProjectVisitSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return f, nil
}

func writeHeader(f *excelize.File) error {
	titles := make([]interface{}, len(projectVisitColumns))
	for i, col := range projectVisitColumns {
		titles[i] = col.title
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ProjectVisitSheet, name, name, col.width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(ProjectVisitSheet, "A1", &titles); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(projectVisitColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ProjectVisitSheet, "A1", last, style); err != nil {
		return err
	}

	return f.SetPanes(ProjectVisitSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
