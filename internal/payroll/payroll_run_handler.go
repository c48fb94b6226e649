package payroll

import (
	"net/http"

	payrollerrors "go-hris-console/internal/payroll/errors"
	"go-hris-console/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type RunHandler struct {
	service RunService
}

func NewRunHandler(service RunService) *RunHandler {
	return &RunHandler{service: service}
}

func (h *RunHandler) ListRuns(c *gin.Context) {
	rows, err := h.service.ListRuns(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows, response.CountMeta(len(rows)))
}

func (h *RunHandler) GetRun(c *gin.Context) {
	id, err := parsePathID(c, payrollerrors.ErrInvalidRunID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	row, err := h.service.GetRun(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, row, nil)
}

func (h *RunHandler) CreateRun(c *gin.Context) {
	var req CreateRunRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateRun(c.Request.Context(), getActorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *RunHandler) UpdateRun(c *gin.Context) {
	id, err := parsePathID(c, payrollerrors.ErrInvalidRunID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req UpdateRunRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateRun(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *RunHandler) DeleteRun(c *gin.Context) {
	id, err := parsePathID(c, payrollerrors.ErrInvalidRunID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.DeleteRun(c.Request.Context(), getActorID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
