package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hris-console/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// =========================================
// Mock Service
// =========================================

type mockService struct{}

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Resource == "employee" && req.Action == "read" {
		return true, nil
	}
	return false, nil
}

func (m *mockService) PermissionsForRole(role string) ([]domain.PermissionResponse, error) {
	return []domain.PermissionResponse{{Role: role, Resource: "payroll_entry", Action: "read"}}, nil
}

type envelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

// =========================================
// TEST: Handler Enforce
// =========================================

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})

	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	body := domain.EnforceRequest{
		Role:     "hr_viewer",
		Resource: "employee",
		Action:   "read",
	}
	jsonBody, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	var resp domain.EnforceResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, resp.Allowed)
}

func TestHandler_Enforce_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})
	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"role":"hr_viewer","resource":"employee","action":"  "}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MyPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})

	t.Run("uses role from token", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/rbac/me/permissions", nil)
		c.Set("role", "payroll_viewer")

		handler.MyPermissions(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.JSONEq(t, `[{"role":"payroll_viewer","resource":"payroll_entry","action":"read"}]`, string(env.Data))
	})

	t.Run("missing role", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/rbac/me/permissions", nil)

		handler.MyPermissions(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
