package payroll

import (
	"net/http"

	payrollerrors "go-hris-console/internal/payroll/errors"
	"go-hris-console/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type SalaryStructureHandler struct {
	service SalaryStructureService
}

func NewSalaryStructureHandler(service SalaryStructureService) *SalaryStructureHandler {
	return &SalaryStructureHandler{service: service}
}

func (h *SalaryStructureHandler) ListSalaryStructures(c *gin.Context) {
	rows, err := h.service.ListSalaryStructures(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows, response.CountMeta(len(rows)))
}

func (h *SalaryStructureHandler) GetSalaryStructure(c *gin.Context) {
	id, err := parsePathID(c, payrollerrors.ErrInvalidSalaryStructureID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	row, err := h.service.GetSalaryStructure(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, row, nil)
}

func (h *SalaryStructureHandler) CreateSalaryStructure(c *gin.Context) {
	var req CreateSalaryStructureRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateSalaryStructure(c.Request.Context(), getActorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *SalaryStructureHandler) UpdateSalaryStructure(c *gin.Context) {
	id, err := parsePathID(c, payrollerrors.ErrInvalidSalaryStructureID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req UpdateSalaryStructureRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateSalaryStructure(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *SalaryStructureHandler) DeleteSalaryStructure(c *gin.Context) {
	id, err := parsePathID(c, payrollerrors.ErrInvalidSalaryStructureID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.DeleteSalaryStructure(c.Request.Context(), getActorID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
