package v1

import (
	"net/http"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/service"
	"github.com/betulabla/foundation/internal/types"
	"github.com/gin-gonic/gin"
)

type BoreholeHandler struct {
	service service.BoreholeService
	export  service.ExportService
	log     *logger.Logger
}

func NewBoreholeHandler(
	service service.BoreholeService,
	export service.ExportService,
	log *logger.Logger,
) *BoreholeHandler {
	return &BoreholeHandler{
		service: service,
		export:  export,
		log:     log,
	}
}

// @Summary Create an borehole
// @Tags Boreholes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param borehole body dto.CreateBoreholeRequest true "Borehole"
// @Success 201 {object} dto.BoreholeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /boreholes/ [post]
func (h *BoreholeHandler) CreateBorehole(c *gin.Context) {
	var req dto.CreateBoreholeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidPayload(err))
		return
	}

	resp, err := h.service.CreateBorehole(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an borehole
// @Tags Boreholes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Borehole ID"
// @Success 200 {object} dto.BoreholeResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /boreholes/{id}/ [get]
func (h *BoreholeHandler) GetBorehole(c *gin.Context) {
	resp, err := h.service.GetBorehole(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List boreholes
// @Tags Boreholes
// @Produce json
// @Security BearerAuth
// @Param filter query types.BoreholeFilter false "Filter"
// @Success 200 {object} dto.ListBoreholesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /boreholes/ [get]
func (h *BoreholeHandler) ListBoreholes(c *gin.Context) {
	filter, err := bindBoreholeFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListBoreholes(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an borehole
// @Description PUT requires every required field, PATCH applies only the fields sent
// @Tags Boreholes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Borehole ID"
// @Param borehole body dto.UpdateBoreholeRequest true "Borehole"
// @Success 200 {object} dto.BoreholeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /boreholes/{id}/ [put]
func (h *BoreholeHandler) UpdateBorehole(c *gin.Context) {
	var req dto.UpdateBoreholeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidPayload(err))
		return
	}

	resp, err := h.service.UpdateBorehole(c.Request.Context(), c.Param("id"), req, isPartial(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an borehole
// @Description Reports about the borehole are deleted with it
// @Tags Boreholes
// @Security BearerAuth
// @Param id path string true "Borehole ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /boreholes/{id}/ [delete]
func (h *BoreholeHandler) DeleteBorehole(c *gin.Context) {
	if err := h.service.DeleteBorehole(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Update borehole status
// @Tags Boreholes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Borehole ID"
// @Param status body dto.UpdateBoreholeStatusRequest true "Status"
// @Success 200 {object} dto.BoreholeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /boreholes/{id}/update_status/ [post]
func (h *BoreholeHandler) UpdateBoreholeStatus(c *gin.Context) {
	var req dto.UpdateBoreholeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(invalidPayload(err))
		return
	}

	resp, err := h.service.UpdateBoreholeStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Borehole statistics
// @Tags Boreholes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BoreholeStatsResponse
// @Router /boreholes/stats/ [get]
func (h *BoreholeHandler) GetBoreholeStats(c *gin.Context) {
	resp, err := h.service.GetBoreholeStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Export boreholes
// @Description Spreadsheet of every borehole matching the filter, pagination is ignored
// @Tags Boreholes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param filter query types.BoreholeFilter false "Filter"
// @Success 200 {file} file
// @Failure 400 {object} ierr.ErrorResponse
// @Router /boreholes/export/ [get]
func (h *BoreholeHandler) ExportBoreholes(c *gin.Context) {
	filter, err := bindBoreholeFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	file, err := h.export.ExportBoreholes(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	sendExport(c, file)
}

func bindBoreholeFilter(c *gin.Context) (*types.BoreholeFilter, error) {
	var filter types.BoreholeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return nil, invalidFilter(err)
	}
	filter.QueryFilter = types.WithDefaults(filter.QueryFilter)
	return &filter, nil
}
