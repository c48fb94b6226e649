package payroll

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-hris-console/internal/audit"
	payrollerrors "go-hris-console/internal/payroll/errors"
	"go-hris-console/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=payroll_run_service.go -destination=mock/payroll_run_service_mock.go -package=mock
type RunService interface {
	ListRuns(ctx context.Context) ([]RunRowResponse, error)
	GetRun(ctx context.Context, id int64) (RunRowResponse, error)
	CreateRun(ctx context.Context, actorID string, req CreateRunRequest) (RunMutationResponse, error)
	UpdateRun(ctx context.Context, actorID string, id int64, req UpdateRunRequest) (RunMutationResponse, error)
	DeleteRun(ctx context.Context, actorID string, id int64) (RunMutationResponse, error)
}

type runService struct {
	repo   Repository
	audit  audit.Recorder
	logger *zap.Logger
}

func NewRunService(repo Repository, recorder audit.Recorder) RunService {
	if recorder == nil {
		recorder = audit.NopRecorder()
	}
	return &runService{
		repo:   repo,
		audit:  recorder,
		logger: zap.L().Named("payroll.run_service"),
	}
}

func (s *runService) ListRuns(ctx context.Context) ([]RunRowResponse, error) {
	runs, err := s.repo.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]RunRowResponse, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, mapToRunRowResponse(r))
	}
	return rows, nil
}

func (s *runService) GetRun(ctx context.Context, id int64) (RunRowResponse, error) {
	if id <= 0 {
		return RunRowResponse{}, payrollerrors.ErrInvalidRunID
	}

	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return RunRowResponse{}, err
	}
	return mapToRunRowResponse(*run), nil
}

func (s *runService) CreateRun(ctx context.Context, actorID string, req CreateRunRequest) (RunMutationResponse, error) {
	body, err := validateCreateRunRequest(req)
	if err != nil {
		return RunMutationResponse{}, err
	}

	created, err := s.repo.CreateRun(ctx, body)
	if err != nil {
		return RunMutationResponse{}, err
	}

	var runID int64
	if created != nil {
		runID = created.ID
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionPayrollRunCreated,
		EntityType: audit.EntityPayrollRun,
		EntityID:   strconv.FormatInt(runID, 10),
		ActorID:    actorID,
		Meta: map[string]any{
			"period_start": body.PeriodStart,
			"period_end":   body.PeriodEnd,
		},
	})

	return s.afterMutation(ctx, runID, fmt.Sprintf("สร้างรอบการจ่ายเงินเดือน ID: %d เรียบร้อยแล้ว", runID)), nil
}

func (s *runService) UpdateRun(ctx context.Context, actorID string, id int64, req UpdateRunRequest) (RunMutationResponse, error) {
	if id <= 0 {
		return RunMutationResponse{}, payrollerrors.ErrInvalidRunID
	}
	patch, err := validateUpdateRunRequest(req)
	if err != nil {
		return RunMutationResponse{}, err
	}

	if _, err := s.repo.UpdateRun(ctx, id, patch); err != nil {
		return RunMutationResponse{}, err
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionPayrollRunUpdated,
		EntityType: audit.EntityPayrollRun,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
		Meta:       map[string]any{"patch": patch},
	})

	return s.afterMutation(ctx, id, fmt.Sprintf("อัปเดตรอบการจ่ายเงินเดือน ID: %d เรียบร้อยแล้ว", id)), nil
}

func (s *runService) DeleteRun(ctx context.Context, actorID string, id int64) (RunMutationResponse, error) {
	if id <= 0 {
		return RunMutationResponse{}, payrollerrors.ErrInvalidRunID
	}

	if err := s.repo.DeleteRun(ctx, id); err != nil {
		return RunMutationResponse{}, err
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionPayrollRunDeleted,
		EntityType: audit.EntityPayrollRun,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
	})

	return s.afterMutation(ctx, id, "ลบรอบการจ่ายเงินเดือนเรียบร้อยแล้ว"), nil
}

func (s *runService) afterMutation(ctx context.Context, runID int64, message string) RunMutationResponse {
	resp := RunMutationResponse{Message: message, RunID: runID}

	rows, err := s.ListRuns(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("run list refresh after mutation failed", zap.Int64("run_id", runID), zap.Error(err))
		resp.RefreshError = err.Error()
		resp.Runs = []RunRowResponse{}
		return resp
	}

	resp.Runs = rows
	return resp
}

// normalizeRunDate accepts the date input value or the US-style text the
// operators paste from spreadsheets, and returns YYYY-MM-DD.
func normalizeRunDate(value string) (string, time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{dateLayout, "01/02/2006", "1/2/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(dateLayout), t, nil
		}
	}
	return "", time.Time{}, payrollerrors.ErrInvalidDateFormat
}

func validateCreateRunRequest(req CreateRunRequest) (RunCreate, error) {
	if strings.TrimSpace(req.PeriodStart) == "" || strings.TrimSpace(req.PeriodEnd) == "" {
		return RunCreate{}, payrollerrors.ErrRunPeriodRequired
	}

	start, startAt, err := normalizeRunDate(req.PeriodStart)
	if err != nil {
		return RunCreate{}, err
	}
	end, endAt, err := normalizeRunDate(req.PeriodEnd)
	if err != nil {
		return RunCreate{}, err
	}
	if startAt.After(endAt) {
		return RunCreate{}, payrollerrors.ErrRunPeriodOrder
	}

	body := RunCreate{
		SchemeID:    DefaultRunSchemeID,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		body.Notes = &notes
	}
	return body, nil
}

func validateUpdateRunRequest(req UpdateRunRequest) (RunPatch, error) {
	var patch RunPatch
	var startAt, endAt time.Time

	if req.PeriodStart != nil {
		start, t, err := normalizeRunDate(*req.PeriodStart)
		if err != nil {
			return RunPatch{}, err
		}
		patch.PeriodStart, startAt = &start, t
	}
	if req.PeriodEnd != nil {
		end, t, err := normalizeRunDate(*req.PeriodEnd)
		if err != nil {
			return RunPatch{}, err
		}
		patch.PeriodEnd, endAt = &end, t
	}
	if patch.PeriodStart != nil && patch.PeriodEnd != nil && startAt.After(endAt) {
		return RunPatch{}, payrollerrors.ErrRunPeriodOrder
	}

	if req.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*req.Status))
		if !isRunStatus(status) {
			return RunPatch{}, payrollerrors.ErrInvalidRunStatus
		}
		patch.Status = &status
	}
	if req.TotalAmountPaid != nil {
		if !isFinite(*req.TotalAmountPaid) {
			return RunPatch{}, payrollerrors.ErrInvalidTotalAmount
		}
		total := *req.TotalAmountPaid
		patch.TotalAmountPaid = &total
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		patch.Notes = &notes
	}
	return patch, nil
}

func isRunStatus(status string) bool {
	switch status {
	case RunStatusPending, RunStatusProcessing, RunStatusCompleted, RunStatusFailed:
		return true
	}
	return false
}
