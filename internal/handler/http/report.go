package http

import (
	"net/http"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/report"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/response"
)

type ReportHandler interface {
	// GetPayrollCSV handles GET /reports/payroll.csv
	GetPayrollCSV(w http.ResponseWriter, r *http.Request)
	// GetPayrollXLSX handles GET /reports/payroll.xlsx
	GetPayrollXLSX(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) GetPayrollCSV(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.PayrollCSV(r.Context(), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}

func (h *reportHandlerImpl) GetPayrollXLSX(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.PayrollXLSX(r.Context(), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}
