package payroll_test

import (
	"context"
	"net/http"
	"testing"

	"go-hris-console/internal/audit"
	"go-hris-console/internal/payroll"
	payrollerrors "go-hris-console/internal/payroll/errors"
	payrollMock "go-hris-console/internal/payroll/mock"
	"go-hris-console/internal/upstream"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRunService_ListRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := payrollMock.NewMockRepository(ctrl)
	svc := payroll.NewRunService(repo, nil)

	repo.EXPECT().ListRuns(gomock.Any()).Return([]payroll.PayrollRun{
		{ID: 3, Status: "COMPLETED", PeriodStart: "2024-05-01", PeriodEnd: "2024-05-31T00:00:00Z",
			TotalAmountPaid: 125000.5, CreatedAt: "2024-06-01T09:30:00Z", Notes: "May"},
		{ID: 4, Status: "processing", PeriodStart: "2024-06-01", PeriodEnd: "2024-06-30", RunDate: "2024-07-01"},
		{ID: 5, Status: "FAILED"},
		{ID: 6, Status: "PENDING", Notes: "  "},
	}, nil)

	rows, err := svc.ListRuns(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, rows, 4) {
		assert.Equal(t, "2024-06-01", rows[0].Created)
		assert.Equal(t, "2024-05-01 ถึง 2024-05-31", rows[0].Period)
		assert.Equal(t, "green", rows[0].StatusTone)
		assert.Equal(t, "125000.50", rows[0].TotalAmountPaidDisplay)
		assert.Equal(t, "May", rows[0].Notes)

		assert.Equal(t, "2024-07-01", rows[1].Created)
		assert.Equal(t, "blue", rows[1].StatusTone)
		assert.Equal(t, "-", rows[1].Notes)

		assert.Equal(t, "red", rows[2].StatusTone)
		assert.Equal(t, "yellow", rows[3].StatusTone)
		assert.Equal(t, "-", rows[3].Notes)
	}
}

func TestRunService_CreateRun(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes dates and re-lists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := payrollMock.NewMockRepository(ctrl)
		recorder := &fakeRecorder{}
		svc := payroll.NewRunService(repo, recorder)

		gomock.InOrder(
			repo.EXPECT().CreateRun(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, body payroll.RunCreate) (*payroll.PayrollRun, error) {
					assert.Equal(t, payroll.DefaultRunSchemeID, body.SchemeID)
					assert.Equal(t, "2024-06-01", body.PeriodStart)
					assert.Equal(t, "2024-06-30", body.PeriodEnd)
					assert.Nil(t, body.Notes)
					return &payroll.PayrollRun{ID: 9}, nil
				}),
			repo.EXPECT().ListRuns(gomock.Any()).Return([]payroll.PayrollRun{{ID: 9, Status: "PENDING"}}, nil),
		)

		resp, err := svc.CreateRun(ctx, "operator-1", payroll.CreateRunRequest{PeriodStart: "06/01/2024", PeriodEnd: "2024-06-30", Notes: " "})
		assert.NoError(t, err)
		assert.Equal(t, "สร้างรอบการจ่ายเงินเดือน ID: 9 เรียบร้อยแล้ว", resp.Message)
		assert.Equal(t, int64(9), resp.RunID)
		assert.Len(t, resp.Runs, 1)

		if assert.Len(t, recorder.events, 1) {
			assert.Equal(t, audit.ActionPayrollRunCreated, recorder.events[0].Action)
			assert.Equal(t, audit.EntityPayrollRun, recorder.events[0].EntityType)
			assert.Equal(t, "9", recorder.events[0].EntityID)
		}
	})

	tests := []struct {
		name string
		req  payroll.CreateRunRequest
		want error
	}{
		{"missing start", payroll.CreateRunRequest{PeriodEnd: "2024-06-30"}, payrollerrors.ErrRunPeriodRequired},
		{"blank end", payroll.CreateRunRequest{PeriodStart: "2024-06-01", PeriodEnd: "  "}, payrollerrors.ErrRunPeriodRequired},
		{"start after end", payroll.CreateRunRequest{PeriodStart: "2024-07-01", PeriodEnd: "2024-06-30"}, payrollerrors.ErrRunPeriodOrder},
		{"unparseable", payroll.CreateRunRequest{PeriodStart: "1 June", PeriodEnd: "2024-06-30"}, payrollerrors.ErrInvalidDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := payroll.NewRunService(payrollMock.NewMockRepository(ctrl), nil)

			_, err := svc.CreateRun(ctx, "operator-1", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRunService_UpdateRun(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("sends only given fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := payrollMock.NewMockRepository(ctrl)
		svc := payroll.NewRunService(repo, nil)

		total := 98000.0
		repo.EXPECT().UpdateRun(gomock.Any(), int64(3), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id int64, patch payroll.RunPatch) (*payroll.PayrollRun, error) {
				assert.Equal(t, "COMPLETED", *patch.Status)
				assert.Equal(t, 98000.0, *patch.TotalAmountPaid)
				assert.Nil(t, patch.PeriodStart)
				assert.Nil(t, patch.PeriodEnd)
				assert.Nil(t, patch.Notes)
				return &payroll.PayrollRun{ID: 3}, nil
			})
		repo.EXPECT().ListRuns(gomock.Any()).Return(nil, &upstream.HTTPError{Status: http.StatusBadGateway, Message: "HTTP 502: Bad Gateway"})

		resp, err := svc.UpdateRun(ctx, "operator-1", 3, payroll.UpdateRunRequest{Status: strPtr(" completed "), TotalAmountPaid: &total})
		assert.NoError(t, err)
		assert.Equal(t, "อัปเดตรอบการจ่ายเงินเดือน ID: 3 เรียบร้อยแล้ว", resp.Message)
		assert.Equal(t, "HTTP 502: Bad Gateway", resp.RefreshError)
		assert.Empty(t, resp.Runs)
	})

	tests := []struct {
		name string
		req  payroll.UpdateRunRequest
		want error
	}{
		{"unknown status", payroll.UpdateRunRequest{Status: strPtr("DONE")}, payrollerrors.ErrInvalidRunStatus},
		{"reversed period", payroll.UpdateRunRequest{PeriodStart: strPtr("2024-06-30"), PeriodEnd: strPtr("06/01/2024")}, payrollerrors.ErrRunPeriodOrder},
		{"bad date", payroll.UpdateRunRequest{PeriodEnd: strPtr("30.06.2024")}, payrollerrors.ErrInvalidDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := payroll.NewRunService(payrollMock.NewMockRepository(ctrl), nil)

			_, err := svc.UpdateRun(ctx, "operator-1", 3, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		svc := payroll.NewRunService(payrollMock.NewMockRepository(gomock.NewController(t)), nil)

		_, err := svc.UpdateRun(ctx, "operator-1", 0, payroll.UpdateRunRequest{})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidRunID)
	})
}

func TestRunService_DeleteRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := payrollMock.NewMockRepository(ctrl)
	recorder := &fakeRecorder{}
	svc := payroll.NewRunService(repo, recorder)

	gomock.InOrder(
		repo.EXPECT().DeleteRun(gomock.Any(), int64(3)).Return(nil),
		repo.EXPECT().ListRuns(gomock.Any()).Return([]payroll.PayrollRun{}, nil),
	)

	resp, err := svc.DeleteRun(context.Background(), "operator-1", 3)
	assert.NoError(t, err)
	assert.Equal(t, "ลบรอบการจ่ายเงินเดือนเรียบร้อยแล้ว", resp.Message)
	assert.NotNil(t, resp.Runs)
	if assert.Len(t, recorder.events, 1) {
		assert.Equal(t, audit.ActionPayrollRunDeleted, recorder.events[0].Action)
	}
}
