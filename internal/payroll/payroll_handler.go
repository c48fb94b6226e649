package payroll

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	payrollerrors "go-hris-console/internal/payroll/errors"
	"go-hris-console/internal/middleware"
	"go-hris-console/internal/shared/apperror"
	"go-hris-console/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
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

func parseEntryID(c *gin.Context) (int64, error) {
	return parsePathID(c, payrollerrors.ErrInvalidEntryID)
}

func writeServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	writeServiceError(c, err)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return false
	}
	return true
}

func (h *Handler) bindListQuery(c *gin.Context) (ListEntriesRequest, bool) {
	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return ListEntriesRequest{}, false
	}
	return req, true
}

func (h *Handler) ListEntries(c *gin.Context) {
	req, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	rows, err := h.service.ListEntries(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows, response.CountMeta(len(rows)))
}

func (h *Handler) OpenEntry(c *gin.Context) {
	id, err := parseEntryID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.OpenEntry(c.Request.Context(), getActorID(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetEditingSession(c *gin.Context) {
	session, err := h.service.GetEditingSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, session, nil)
}

func (h *Handler) SaveEditingSession(c *gin.Context) {
	list, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	var req SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.SaveEditingSession(c.Request.Context(), getActorID(c), c.Param("session_id"), req, list)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CloseEditingSession(c *gin.Context) {
	if err := h.service.CloseEditingSession(c.Request.Context(), c.Param("session_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := parseEntryID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	list, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.DeleteEntry(c.Request.Context(), getActorID(c), id, list)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CalculateEntry(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	list, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	if raw, replayed := middleware.IdempotentReplay(c); replayed {
		h.replayCalculate(c, raw, list)
		return
	}

	var req CalculateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CalculateEntry(c.Request.Context(), getActorID(c), req, list)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.StoreIdempotentResponse(c, h.rdb, MutationOutcome{Message: resp.Message, EntryID: resp.EntryID})
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) replayCalculate(c *gin.Context, raw json.RawMessage, list ListEntriesRequest) {
	var outcome MutationOutcome
	if err := json.Unmarshal(raw, &outcome); err != nil {
		writeServiceError(c, fmt.Errorf("decode idempotent outcome: %w", err))
		return
	}

	resp, err := h.service.ReplayMutation(c.Request.Context(), outcome, list)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reload(c *gin.Context) {
	req, ok := h.bindListQuery(c)
	if !ok {
		return
	}

	rows, err := h.service.Reload(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows, response.CountMeta(len(rows)))
}

func (h *Handler) ReferenceOptions(c *gin.Context) {
	resp, err := h.service.ReferenceOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MonthlyReport(c *gin.Context) {
	var req MonthlyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.MonthlyReport(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MonthlyReportCSV(c *gin.Context) {
	var req MonthlyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	body, contentType, err := h.service.MonthlyReportCSV(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "text/csv; charset=utf-8"
	}
	filename := fmt.Sprintf("payroll_report_%s.csv", req.Month)
	if err := response.Attachment(c, filename, contentType, body); err != nil {
		_ = c.Error(err)
	}
}
