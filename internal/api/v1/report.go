package v1

import (
	"net/http"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/service"
	"github.com/betulabla/foundation/internal/types"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service service.ReportService
	export  service.ExportService
	log     *logger.Logger
}

func NewReportHandler(
	service service.ReportService,
	export service.ExportService,
	log *logger.Logger,
) *ReportHandler {
	return &ReportHandler{
		service: service,
		export:  export,
		log:     log,
	}
}

// @Summary Create a report
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param report body dto.CreateReportRequest true "Report"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/ [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidPayload(err))
		return
	}

	resp, err := h.service.CreateReport(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reports/{id}/ [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	resp, err := h.service.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List reports
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param filter query types.ReportFilter false "Filter"
// @Success 200 {object} dto.ListReportsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/ [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	filter, err := bindReportFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListReports(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a report
// @Description PUT requires every required field, PATCH applies only the fields sent. An empty orphan or borehole detaches it.
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param report body dto.UpdateReportRequest true "Report"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reports/{id}/ [put]
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidPayload(err))
		return
	}

	resp, err := h.service.UpdateReport(c.Request.Context(), c.Param("id"), req, isPartial(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a report
// @Tags Reports
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reports/{id}/ [delete]
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	if err := h.service.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Approve a report
// @Description Records the caller as reviewer
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reports/{id}/approve/ [post]
func (h *ReportHandler) ApproveReport(c *gin.Context) {
	resp, err := h.service.ApproveReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Publish a report
// @Description Only approved reports can be published
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reports/{id}/publish/ [post]
func (h *ReportHandler) PublishReport(c *gin.Context) {
	resp, err := h.service.PublishReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Report statistics
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ReportStatsResponse
// @Router /reports/stats/ [get]
func (h *ReportHandler) GetReportStats(c *gin.Context) {
	resp, err := h.service.GetReportStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Upload report attachment
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param file formData file true "Document"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reports/{id}/attachment/ [post]
func (h *ReportHandler) UploadReportAttachment(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.UploadReportAttachment(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Export reports
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param filter query types.ReportFilter false "Filter"
// @Success 200 {file} file
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/export/ [get]
func (h *ReportHandler) ExportReports(c *gin.Context) {
	filter, err := bindReportFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	file, err := h.export.ExportReports(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	sendExport(c, file)
}

func bindReportFilter(c *gin.Context) (*types.ReportFilter, error) {
	var filter types.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return nil, invalidFilter(err)
	}
	filter.QueryFilter = types.WithDefaults(filter.QueryFilter)
	return &filter, nil
}
