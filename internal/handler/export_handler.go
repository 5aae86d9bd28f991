package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itzjmbruhhh/NU-Admission/internal/service"
	"github.com/itzjmbruhhh/NU-Admission/pkg/response"
)

// ExportHandler exposes roster export endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Roster godoc
// @Summary Download the applicant roster
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /exports/applicants [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Roster(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
