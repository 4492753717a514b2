package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/report"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
	payrollservice "github.com/cmlabs-hris/sistem-gaji/internal/service/payroll"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var xlsxHeader = []interface{}{"Nama", "Posisi", "Gaji", "Hadir", "Hari Tercatat", "% Kehadiran"}

type ReportServiceImpl struct {
	store *repository.Store
}

func NewReportService(st *repository.Store) report.ReportService {
	return &ReportServiceImpl{store: st}
}

// PayrollRows returns one row per employee, highest salary first
func (s *ReportServiceImpl) PayrollRows(ctx context.Context, month string) ([]report.PayrollReportRow, error) {
	if !validator.IsValidMonth(month) {
		return nil, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}

	rows := []report.PayrollReportRow{}
	err := s.store.View(ctx, func(doc *store.Document) error {
		doc.Employees.Range(func(key string, e *employee.Employee) bool {
			salary, _ := payrollservice.CalculateMonthly(e.Position, doc.Rates, &e.Attendance, month)
			perf := payrollservice.AttendancePerformance(&e.Attendance, month)
			rows = append(rows, report.PayrollReportRow{
				Name:     employee.DisplayName(key),
				Position: string(e.Position),
				Salary:   salary,
				Present:  perf.Present,
				Recorded: perf.Recorded,
				Rate:     payrollservice.RateLabel(perf.Rate),
			})
			return true
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(rows, func(a, b report.PayrollReportRow) int {
		return cmp.Compare(b.Salary, a.Salary)
	})
	return rows, nil
}

func (s *ReportServiceImpl) PayrollCSV(ctx context.Context, month string) (report.File, error) {
	rows, err := s.PayrollRows(ctx, month)
	if err != nil {
		return report.File{}, err
	}

	content, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to render csv: %w", err)
	}
	return report.File{
		Filename:    fmt.Sprintf("gaji-%s.csv", month),
		ContentType: contentTypeCSV,
		Content:     content,
	}, nil
}

func (s *ReportServiceImpl) PayrollXLSX(ctx context.Context, month string) (report.File, error) {
	rows, err := s.PayrollRows(ctx, month)
	if err != nil {
		return report.File{}, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Gaji " + month
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return report.File{}, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return report.File{}, fmt.Errorf("failed to create style: %w", err)
	}
	// NumFmt 3 is "#,##0"
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return report.File{}, fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return report.File{}, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return report.File{}, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return report.File{}, err
		}
		values := []interface{}{row.Name, row.Position, row.Salary, row.Present, row.Recorded, row.Rate}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return report.File{}, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if len(rows) > 0 {
		last := fmt.Sprintf("C%d", len(rows)+1)
		if err := f.SetCellStyle(sheet, "C2", last, moneyStyle); err != nil {
			return report.File{}, fmt.Errorf("failed to style salaries: %w", err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "F", 16); err != nil {
		return report.File{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.File{}, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return report.File{
		Filename:    fmt.Sprintf("gaji-%s.xlsx", month),
		ContentType: contentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}
