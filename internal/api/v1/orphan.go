package v1

import (
	"net/http"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/service"
	"github.com/betulabla/foundation/internal/types"
	"github.com/gin-gonic/gin"
)

type OrphanHandler struct {
	service service.OrphanService
	export  service.ExportService
	log     *logger.Logger
}

func NewOrphanHandler(
	service service.OrphanService,
	export service.ExportService,
	log *logger.Logger,
) *OrphanHandler {
	return &OrphanHandler{
		service: service,
		export:  export,
		log:     log,
	}
}

// @Summary Create an orphan
// @Tags Orphans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orphan body dto.CreateOrphanRequest true "Orphan"
// @Success 201 {object} dto.OrphanResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /orphans/ [post]
func (h *OrphanHandler) CreateOrphan(c *gin.Context) {
	var req dto.CreateOrphanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidPayload(err))
		return
	}

	resp, err := h.service.CreateOrphan(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an orphan
// @Tags Orphans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Orphan ID"
// @Success 200 {object} dto.OrphanResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orphans/{id}/ [get]
func (h *OrphanHandler) GetOrphan(c *gin.Context) {
	resp, err := h.service.GetOrphan(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List orphans
// @Tags Orphans
// @Produce json
// @Security BearerAuth
// @Param filter query types.OrphanFilter false "Filter"
// @Success 200 {object} dto.ListOrphansResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /orphans/ [get]
func (h *OrphanHandler) ListOrphans(c *gin.Context) {
	filter, err := bindOrphanFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListOrphans(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an orphan
// @Description PUT requires every required field, PATCH applies only the fields sent
// @Tags Orphans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Orphan ID"
// @Param orphan body dto.UpdateOrphanRequest true "Orphan"
// @Success 200 {object} dto.OrphanResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orphans/{id}/ [put]
func (h *OrphanHandler) UpdateOrphan(c *gin.Context) {
	var req dto.UpdateOrphanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidPayload(err))
		return
	}

	resp, err := h.service.UpdateOrphan(c.Request.Context(), c.Param("id"), req, isPartial(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an orphan
// @Description Reports about the orphan are deleted with it
// @Tags Orphans
// @Security BearerAuth
// @Param id path string true "Orphan ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orphans/{id}/ [delete]
func (h *OrphanHandler) DeleteOrphan(c *gin.Context) {
	if err := h.service.DeleteOrphan(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Update orphan status
// @Tags Orphans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Orphan ID"
// @Param status body dto.UpdateOrphanStatusRequest true "Status"
// @Success 200 {object} dto.OrphanResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orphans/{id}/update_status/ [post]
func (h *OrphanHandler) UpdateOrphanStatus(c *gin.Context) {
	var req dto.UpdateOrphanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidPayload(err))
		return
	}

	resp, err := h.service.UpdateOrphanStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Orphan statistics
// @Tags Orphans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrphanStatsResponse
// @Router /orphans/stats/ [get]
func (h *OrphanHandler) GetOrphanStats(c *gin.Context) {
	resp, err := h.service.GetOrphanStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Upload orphan photo
// @Tags Orphans
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Orphan ID"
// @Param file formData file true "Image"
// @Success 200 {object} dto.OrphanResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orphans/{id}/photo/ [post]
func (h *OrphanHandler) UploadOrphanPhoto(c *gin.Context) {
	data, err := readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.UploadOrphanPhoto(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Export orphans
// @Description Spreadsheet of every orphan matching the filter, pagination is ignored
// @Tags Orphans
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param filter query types.OrphanFilter false "Filter"
// @Success 200 {file} file
// @Failure 400 {object} ierr.ErrorResponse
// @Router /orphans/export/ [get]
func (h *OrphanHandler) ExportOrphans(c *gin.Context) {
	filter, err := bindOrphanFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	file, err := h.export.ExportOrphans(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	sendExport(c, file)
}

func bindOrphanFilter(c *gin.Context) (*types.OrphanFilter, error) {
	var filter types.OrphanFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return nil, invalidFilter(err)
	}
	filter.QueryFilter = types.WithDefaults(filter.QueryFilter)
	return &filter, nil
}

func isPartial(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}
