package http

import (
	"net/http"
	"time"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/report"
	"github.com/peoplemesh/hrms-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceReport(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// AttendanceReport implements ReportHandler. Defaults to the current
// month when no range is given.
func (h *ReportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	req := report.AttendanceReportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC)

	if req.StartDate != "" || req.EndDate != "" {
		if err := req.Validate(); err != nil {
			response.HandleError(w, err)
			return
		}
		start, _ = time.Parse("2006-01-02", req.StartDate)
		end, _ = time.Parse("2006-01-02", req.EndDate)
	}

	resp, err := h.reportService.AttendanceReport(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
