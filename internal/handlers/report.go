package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/requestdata"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
)

type ReportHandler struct {
	log           *logger.Logger
	reportService services.ReportService
}

func NewReportHandler(log *logger.Logger, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		log:           log.With("handler", "ReportHandler"),
		reportService: reportService,
	}
}

// POST /reportes
func (h *ReportHandler) Create(c *gin.Context) {
	var in services.CreateReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid report payload", err)
		return
	}

	// The verified principal is the reporter of record regardless of
	// what the body claims.
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.Email != "" {
		in.ReporterUserID = rd.Email
	}

	report, err := h.reportService.Create(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, "Failed to submit report", err)
		return
	}
	RespondOK(c, "Report submitted successfully", gin.H{"report": report})
}

// GET /reportes
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reportService.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error("List reports failed", "error", err)
		RespondServiceError(c, "Failed to retrieve reports", err)
		return
	}
	RespondOK(c, "Reports retrieved successfully", gin.H{"reports": reports})
}

// GET /reportes/count
func (h *ReportHandler) Counts(c *gin.Context) {
	counts, err := h.reportService.CountsPerLesson(c.Request.Context())
	if err != nil {
		h.log.Error("Report counts failed", "error", err)
		RespondServiceError(c, "Failed to aggregate report counts", err)
		return
	}
	RespondOK(c, "", gin.H{"counts": counts})
}
