package datamanagement

import (
	"net/http"
	"strconv"

	datamanagementerrors "go-hris-console/internal/datamanagement/errors"
	"go-hris-console/internal/shared/apperror"
	"go-hris-console/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("datamanagement.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("datamanagement.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("data management request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("user_id_validated")
	if actorID == "" {
		actorID = c.GetString("user_id")
	}
	return actorID
}

func parsePathID(c *gin.Context, invalid error) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}

func parseEmployeeID(c *gin.Context) (int64, error) {
	return parsePathID(c, datamanagementerrors.ErrInvalidEmployeeID)
}

func (h *Handler) ListEmployees(c *gin.Context) {
	var req ListEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	page, err := h.service.ListEmployees(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(page.Total, page.Page, page.PageSize)
	response.Success(c, http.StatusOK, page.Items, &meta)
}

func (h *Handler) GetEmployee(c *gin.Context) {
	id, err := parseEmployeeID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateEmployee(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, err := parseEmployeeID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateEmployee(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, err := parseEmployeeID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.DeleteEmployee(c.Request.Context(), getActorID(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListDepartments(c *gin.Context) {
	resp, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPositions(c *gin.Context) {
	resp, err := h.service.ListPositions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) bindName(c *gin.Context) (NameRequest, bool) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return NameRequest{}, false
	}
	return req, true
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	req, ok := h.bindName(c)
	if !ok {
		return
	}

	resp, err := h.service.CreateDepartment(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, err := parsePathID(c, datamanagementerrors.ErrInvalidDepartmentID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	req, ok := h.bindName(c)
	if !ok {
		return
	}

	resp, err := h.service.UpdateDepartment(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, err := parsePathID(c, datamanagementerrors.ErrInvalidDepartmentID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.DeleteDepartment(c.Request.Context(), getActorID(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreatePosition(c *gin.Context) {
	req, ok := h.bindName(c)
	if !ok {
		return
	}

	resp, err := h.service.CreatePosition(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdatePosition(c *gin.Context) {
	id, err := parsePathID(c, datamanagementerrors.ErrInvalidPositionID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	req, ok := h.bindName(c)
	if !ok {
		return
	}

	resp, err := h.service.UpdatePosition(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeletePosition(c *gin.Context) {
	id, err := parsePathID(c, datamanagementerrors.ErrInvalidPositionID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.DeletePosition(c.Request.Context(), getActorID(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
