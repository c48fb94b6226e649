package payroll_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"go-hris-console/internal/audit"
	"go-hris-console/internal/payroll"
	payrollerrors "go-hris-console/internal/payroll/errors"
	payrollMock "go-hris-console/internal/payroll/mock"
	"go-hris-console/internal/upstream"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func floatPtr(v float64) *float64 { return &v }

func TestSalaryStructureService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := payrollMock.NewMockRepository(ctrl)
	svc := payroll.NewSalaryStructureService(repo, payroll.NewSalaryStructureCache(repo), nil)

	repo.EXPECT().ListSalaryStructures(gomock.Any()).Return([]payroll.SalaryStructure{
		{ID: 1, EmployeeID: 7, BaseSalary: 20000, EffectiveDate: "2024-01-01T00:00:00Z"},
		{ID: 2, EmployeeID: 99, BaseSalary: 15500.5, EffectiveDate: "2024-03-01"},
	}, nil)
	repo.EXPECT().ListEmployees(gomock.Any()).Return([]payroll.EmployeeRef{{ID: 7, FirstName: "Somchai", LastName: "Jaidee"}}, nil)

	rows, err := svc.ListSalaryStructures(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "Somchai Jaidee", rows[0].EmployeeName)
		assert.Equal(t, "20000.00", rows[0].BaseSalaryDisplay)
		assert.Equal(t, "2024-01-01", rows[0].EffectiveDate)
		assert.Equal(t, "ID: 99 (ไม่พบข้อมูล)", rows[1].EmployeeName)
		assert.Equal(t, "15500.50", rows[1].BaseSalaryDisplay)
	}
}

func TestSalaryStructureService_List_EmployeeLookupFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := payrollMock.NewMockRepository(ctrl)
	svc := payroll.NewSalaryStructureService(repo, payroll.NewSalaryStructureCache(repo), nil)

	repo.EXPECT().ListSalaryStructures(gomock.Any()).Return([]payroll.SalaryStructure{{ID: 1, EmployeeID: 7, BaseSalary: 20000}}, nil)
	repo.EXPECT().ListEmployees(gomock.Any()).Return(nil, &upstream.TransportError{Err: errors.New("dial tcp: refused")})

	rows, err := svc.ListSalaryStructures(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "ID: 7 (ไม่พบข้อมูล)", rows[0].EmployeeName)
}

func TestSalaryStructureService_MutationsInvalidateCache(t *testing.T) {
	ctx := context.Background()

	warm := func(t *testing.T, repo *payrollMock.MockRepository) *payroll.SalaryStructureCache {
		t.Helper()
		cache := payroll.NewSalaryStructureCache(repo)
		repo.EXPECT().ListSalaryStructures(gomock.Any()).Return([]payroll.SalaryStructure{{ID: 1, EmployeeID: 7, BaseSalary: 20000}}, nil)
		cache.BaseSalaryFor(ctx, 7, nil)
		assert.True(t, cache.Loaded())
		return cache
	}

	expectRefresh := func(repo *payrollMock.MockRepository) {
		repo.EXPECT().ListSalaryStructures(gomock.Any()).Return([]payroll.SalaryStructure{{ID: 1, EmployeeID: 7, BaseSalary: 21000}}, nil)
		repo.EXPECT().ListEmployees(gomock.Any()).Return([]payroll.EmployeeRef{{ID: 7, FirstName: "Somchai", LastName: "Jaidee"}}, nil)
	}

	t.Run("create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := payrollMock.NewMockRepository(ctrl)
		cache := warm(t, repo)
		recorder := &fakeRecorder{}
		svc := payroll.NewSalaryStructureService(repo, cache, recorder)

		repo.EXPECT().CreateSalaryStructure(gomock.Any(), payroll.SalaryStructureCreate{
			EmployeeID: 7, BaseSalary: 21000, EffectiveDate: "2024-07-01",
		}).Return(&payroll.SalaryStructure{ID: 5}, nil)
		expectRefresh(repo)

		resp, err := svc.CreateSalaryStructure(ctx, "operator-1", payroll.CreateSalaryStructureRequest{
			EmployeeID: 7, BaseSalary: floatPtr(21000), EffectiveDate: " 2024-07-01 ",
		})
		assert.NoError(t, err)
		assert.Equal(t, "เพิ่มเงินเดือนพื้นฐาน ID: 5 เรียบร้อยแล้ว", resp.Message)
		assert.Equal(t, int64(5), resp.SalaryStructureID)
		assert.Len(t, resp.SalaryStructures, 1)
		assert.False(t, cache.Loaded())

		if assert.Len(t, recorder.events, 1) {
			assert.Equal(t, audit.ActionSalaryStructureCreated, recorder.events[0].Action)
			assert.Equal(t, audit.EntitySalaryStructure, recorder.events[0].EntityType)
		}
	})

	t.Run("update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := payrollMock.NewMockRepository(ctrl)
		cache := warm(t, repo)
		svc := payroll.NewSalaryStructureService(repo, cache, nil)

		repo.EXPECT().UpdateSalaryStructure(gomock.Any(), int64(1), payroll.SalaryStructurePatch{
			BaseSalary: 21000, EffectiveDate: "2024-07-01",
		}).Return(&payroll.SalaryStructure{ID: 1}, nil)
		expectRefresh(repo)

		resp, err := svc.UpdateSalaryStructure(ctx, "operator-1", 1, payroll.UpdateSalaryStructureRequest{
			BaseSalary: floatPtr(21000), EffectiveDate: "2024-07-01",
		})
		assert.NoError(t, err)
		assert.Equal(t, "อัปเดตเงินเดือนพื้นฐาน ID: 1 เรียบร้อยแล้ว", resp.Message)
		assert.False(t, cache.Loaded())
	})

	t.Run("delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := payrollMock.NewMockRepository(ctrl)
		cache := warm(t, repo)
		svc := payroll.NewSalaryStructureService(repo, cache, nil)

		repo.EXPECT().DeleteSalaryStructure(gomock.Any(), int64(1)).Return(nil)
		expectRefresh(repo)

		resp, err := svc.DeleteSalaryStructure(ctx, "operator-1", 1)
		assert.NoError(t, err)
		assert.Equal(t, "ลบเงินเดือนพื้นฐานเรียบร้อยแล้ว", resp.Message)
		assert.False(t, cache.Loaded())
	})

	t.Run("failed upstream write keeps the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := payrollMock.NewMockRepository(ctrl)
		cache := warm(t, repo)
		svc := payroll.NewSalaryStructureService(repo, cache, nil)

		boom := &upstream.HTTPError{Status: 409, Message: "duplicate effective date"}
		repo.EXPECT().DeleteSalaryStructure(gomock.Any(), int64(1)).Return(boom)

		_, err := svc.DeleteSalaryStructure(ctx, "operator-1", 1)
		assert.ErrorIs(t, err, boom)
		assert.True(t, cache.Loaded())
	})
}

func TestSalaryStructureService_Validation(t *testing.T) {
	ctx := context.Background()

	createTests := []struct {
		name string
		req  payroll.CreateSalaryStructureRequest
		want error
	}{
		{"missing employee", payroll.CreateSalaryStructureRequest{BaseSalary: floatPtr(1), EffectiveDate: "2024-01-01"}, payrollerrors.ErrSalaryStructureRequired},
		{"missing salary", payroll.CreateSalaryStructureRequest{EmployeeID: 7, EffectiveDate: "2024-01-01"}, payrollerrors.ErrSalaryStructureRequired},
		{"zero salary", payroll.CreateSalaryStructureRequest{EmployeeID: 7, BaseSalary: floatPtr(0), EffectiveDate: "2024-01-01"}, payrollerrors.ErrSalaryStructureRequired},
		{"infinite salary", payroll.CreateSalaryStructureRequest{EmployeeID: 7, BaseSalary: floatPtr(math.Inf(1)), EffectiveDate: "2024-01-01"}, payrollerrors.ErrSalaryStructureRequired},
		{"blank date", payroll.CreateSalaryStructureRequest{EmployeeID: 7, BaseSalary: floatPtr(1), EffectiveDate: " "}, payrollerrors.ErrSalaryStructureRequired},
		{"bad date", payroll.CreateSalaryStructureRequest{EmployeeID: 7, BaseSalary: floatPtr(1), EffectiveDate: "01/07/2024"}, payrollerrors.ErrInvalidDateFormat},
	}
	for _, tt := range createTests {
		t.Run("create "+tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := payrollMock.NewMockRepository(ctrl)
			svc := payroll.NewSalaryStructureService(repo, payroll.NewSalaryStructureCache(repo), nil)

			_, err := svc.CreateSalaryStructure(ctx, "operator-1", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("update requires salary and date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := payrollMock.NewMockRepository(ctrl)
		svc := payroll.NewSalaryStructureService(repo, payroll.NewSalaryStructureCache(repo), nil)

		_, err := svc.UpdateSalaryStructure(ctx, "operator-1", 1, payroll.UpdateSalaryStructureRequest{EffectiveDate: "2024-01-01"})
		assert.ErrorIs(t, err, payrollerrors.ErrSalaryStructureEditRequired)

		_, err = svc.UpdateSalaryStructure(ctx, "operator-1", 0, payroll.UpdateSalaryStructureRequest{})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidSalaryStructureID)
	})
}
