package payroll_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hris-console/internal/payroll"
	payrollerrors "go-hris-console/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRunService struct {
	listRunsFn  func(ctx context.Context) ([]payroll.RunRowResponse, error)
	getRunFn    func(ctx context.Context, id int64) (payroll.RunRowResponse, error)
	createRunFn func(ctx context.Context, actorID string, req payroll.CreateRunRequest) (payroll.RunMutationResponse, error)
	updateRunFn func(ctx context.Context, actorID string, id int64, req payroll.UpdateRunRequest) (payroll.RunMutationResponse, error)
	deleteRunFn func(ctx context.Context, actorID string, id int64) (payroll.RunMutationResponse, error)
}

func (f *fakeRunService) ListRuns(ctx context.Context) ([]payroll.RunRowResponse, error) {
	return f.listRunsFn(ctx)
}

func (f *fakeRunService) GetRun(ctx context.Context, id int64) (payroll.RunRowResponse, error) {
	return f.getRunFn(ctx, id)
}

func (f *fakeRunService) CreateRun(ctx context.Context, actorID string, req payroll.CreateRunRequest) (payroll.RunMutationResponse, error) {
	return f.createRunFn(ctx, actorID, req)
}

func (f *fakeRunService) UpdateRun(ctx context.Context, actorID string, id int64, req payroll.UpdateRunRequest) (payroll.RunMutationResponse, error) {
	return f.updateRunFn(ctx, actorID, id, req)
}

func (f *fakeRunService) DeleteRun(ctx context.Context, actorID string, id int64) (payroll.RunMutationResponse, error) {
	return f.deleteRunFn(ctx, actorID, id)
}

func TestRunHandler_CreateRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		svc := &fakeRunService{
			createRunFn: func(ctx context.Context, actorID string, req payroll.CreateRunRequest) (payroll.RunMutationResponse, error) {
				assert.Equal(t, "operator-1", actorID)
				assert.Equal(t, "2024-06-01", req.PeriodStart)
				assert.Equal(t, "note", req.Notes)
				return payroll.RunMutationResponse{Message: "ok", RunID: 9, Runs: []payroll.RunRowResponse{}}, nil
			},
		}

		h := payroll.NewRunHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll/payroll-runs",
			strings.NewReader(`{"period_start":"2024-06-01","period_end":"2024-06-30","notes":"note"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", "operator-1")

		h.CreateRun(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"ok","run_id":9,"runs":[]}`, string(mustDecodeEnvelope(t, w.Body.Bytes()).Data))
	})

	t.Run("period error is localized", func(t *testing.T) {
		svc := &fakeRunService{
			createRunFn: func(ctx context.Context, actorID string, req payroll.CreateRunRequest) (payroll.RunMutationResponse, error) {
				return payroll.RunMutationResponse{}, payrollerrors.ErrRunPeriodOrder
			},
		}

		h := payroll.NewRunHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll/payroll-runs",
			strings.NewReader(`{"period_start":"2024-07-01","period_end":"2024-06-30"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.CreateRun(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ช่วงวันที่ไม่ถูกต้อง: วันเริ่ม > วันสิ้นสุด", mustDecodeEnvelope(t, w.Body.Bytes()).Error.Message)
	})
}

func TestRunHandler_DeleteRun_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := payroll.NewRunHandler(&fakeRunService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/payroll/payroll-runs/0", nil)
	c.Params = []gin.Param{{Key: "id", Value: "0"}}

	h.DeleteRun(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid payroll run id", mustDecodeEnvelope(t, w.Body.Bytes()).Error.Message)
}

type fakeSalaryStructureService struct {
	payroll.SalaryStructureService
	updateFn func(ctx context.Context, actorID string, id int64, req payroll.UpdateSalaryStructureRequest) (payroll.SalaryStructureMutationResponse, error)
}

func (f *fakeSalaryStructureService) UpdateSalaryStructure(ctx context.Context, actorID string, id int64, req payroll.UpdateSalaryStructureRequest) (payroll.SalaryStructureMutationResponse, error) {
	return f.updateFn(ctx, actorID, id, req)
}

func TestSalaryStructureHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeSalaryStructureService{
		updateFn: func(ctx context.Context, actorID string, id int64, req payroll.UpdateSalaryStructureRequest) (payroll.SalaryStructureMutationResponse, error) {
			assert.Equal(t, int64(4), id)
			assert.Equal(t, 21000.0, *req.BaseSalary)
			assert.Equal(t, "2024-07-01", req.EffectiveDate)
			return payroll.SalaryStructureMutationResponse{Message: "ok", SalaryStructureID: 4}, nil
		},
	}

	h := payroll.NewSalaryStructureHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/payroll/salary-structures/4",
		strings.NewReader(`{"base_salary":21000,"effective_date":"2024-07-01"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "4"}}

	h.UpdateSalaryStructure(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mustDecodeEnvelope(t, w.Body.Bytes()).Ok)
}
