package report

import "context"

// ReportService renders the monthly payroll report
type ReportService interface {
	PayrollRows(ctx context.Context, month string) ([]PayrollReportRow, error)
	PayrollCSV(ctx context.Context, month string) (File, error)
	PayrollXLSX(ctx context.Context, month string) (File, error)
}
