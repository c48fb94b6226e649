package payroll_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"go-hris-console/internal/payroll"

	"github.com/stretchr/testify/assert"
)

type fakeReferenceSource struct {
	employeeCalls int32
	runCalls      int32
	employees     []payroll.EmployeeRef
	runs          []payroll.PayrollRun
	employeeErr   error
	runErr        error
}

func (f *fakeReferenceSource) ListEmployees(ctx context.Context) ([]payroll.EmployeeRef, error) {
	atomic.AddInt32(&f.employeeCalls, 1)
	return f.employees, f.employeeErr
}

func (f *fakeReferenceSource) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	atomic.AddInt32(&f.runCalls, 1)
	return f.runs, f.runErr
}

func TestLoadReferenceSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("ten rows with one missing run", func(t *testing.T) {
		source := &fakeReferenceSource{}
		for i := int64(1); i <= 10; i++ {
			source.employees = append(source.employees, payroll.EmployeeRef{ID: i, FirstName: "Emp", LastName: fmt.Sprint(i)})
		}
		for i := int64(1); i <= 9; i++ {
			source.runs = append(source.runs, payroll.PayrollRun{ID: i, PeriodStart: "2024-05-01", PeriodEnd: "2024-05-31"})
		}

		snap := payroll.LoadReferenceSnapshot(ctx, source)

		for i := int64(1); i <= 10; i++ {
			assert.Equal(t, fmt.Sprintf("Emp %d", i), snap.EmployeeName(i))
		}
		for i := int64(1); i <= 9; i++ {
			assert.Equal(t, fmt.Sprintf("ID: %d (2024-05-01 - 2024-05-31)", i), snap.RunName(i))
		}
		assert.Equal(t, "ID: 10 (ไม่พบข้อมูล)", snap.RunName(10))

		assert.Equal(t, int32(1), source.employeeCalls)
		assert.Equal(t, int32(1), source.runCalls)
	})

	t.Run("fetch failure degrades to placeholder", func(t *testing.T) {
		source := &fakeReferenceSource{
			employeeErr: errors.New("HTTP 503: Service Unavailable"),
			runs:        []payroll.PayrollRun{{ID: 1, PeriodStart: "2024-05-01", PeriodEnd: "2024-05-31"}},
		}

		snap := payroll.LoadReferenceSnapshot(ctx, source)

		assert.Equal(t, "ID: 3 (ไม่พบข้อมูล)", snap.EmployeeName(3))
		run, ok := snap.Run(1)
		assert.True(t, ok)
		assert.Equal(t, "2024-05-31", run.PeriodEnd)
	})
}
