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

//go:generate mockgen -source=salary_structure_service.go -destination=mock/salary_structure_service_mock.go -package=mock
type SalaryStructureService interface {
	ListSalaryStructures(ctx context.Context) ([]SalaryStructureRowResponse, error)
	GetSalaryStructure(ctx context.Context, id int64) (SalaryStructureRowResponse, error)
	CreateSalaryStructure(ctx context.Context, actorID string, req CreateSalaryStructureRequest) (SalaryStructureMutationResponse, error)
	UpdateSalaryStructure(ctx context.Context, actorID string, id int64, req UpdateSalaryStructureRequest) (SalaryStructureMutationResponse, error)
	DeleteSalaryStructure(ctx context.Context, actorID string, id int64) (SalaryStructureMutationResponse, error)
}

type salaryStructureService struct {
	repo   Repository
	cache  *SalaryStructureCache
	audit  audit.Recorder
	logger *zap.Logger
}

// NewSalaryStructureService shares the cache with the entry service so a
// salary edit shows up in the next summary.
func NewSalaryStructureService(repo Repository, cache *SalaryStructureCache, recorder audit.Recorder) SalaryStructureService {
	if recorder == nil {
		recorder = audit.NopRecorder()
	}
	return &salaryStructureService{
		repo:   repo,
		cache:  cache,
		audit:  recorder,
		logger: zap.L().Named("payroll.salary_structure_service"),
	}
}

func (s *salaryStructureService) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *salaryStructureService) ListSalaryStructures(ctx context.Context) ([]SalaryStructureRowResponse, error) {
	records, err := s.repo.ListSalaryStructures(ctx)
	if err != nil {
		return nil, err
	}

	refs := s.employeeRefs(ctx)
	rows := make([]SalaryStructureRowResponse, 0, len(records))
	for _, st := range records {
		rows = append(rows, mapToSalaryStructureRow(st, refs))
	}
	return rows, nil
}

func (s *salaryStructureService) GetSalaryStructure(ctx context.Context, id int64) (SalaryStructureRowResponse, error) {
	if id <= 0 {
		return SalaryStructureRowResponse{}, payrollerrors.ErrInvalidSalaryStructureID
	}

	st, err := s.repo.GetSalaryStructure(ctx, id)
	if err != nil {
		return SalaryStructureRowResponse{}, err
	}
	return mapToSalaryStructureRow(*st, s.employeeRefs(ctx)), nil
}

// employeeRefs only needs names; a failed fetch falls back to the
// not-found label.
func (s *salaryStructureService) employeeRefs(ctx context.Context) *ReferenceSnapshot {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		s.log(ctx).Warn("employee reference unavailable", zap.Error(err))
	}
	return NewReferenceSnapshot(employees, nil)
}

func (s *salaryStructureService) CreateSalaryStructure(
	ctx context.Context,
	actorID string,
	req CreateSalaryStructureRequest,
) (SalaryStructureMutationResponse, error) {
	body, err := validateCreateSalaryStructure(req)
	if err != nil {
		return SalaryStructureMutationResponse{}, err
	}

	created, err := s.repo.CreateSalaryStructure(ctx, body)
	if err != nil {
		return SalaryStructureMutationResponse{}, err
	}
	s.cache.Invalidate()

	var id int64
	if created != nil {
		id = created.ID
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionSalaryStructureCreated,
		EntityType: audit.EntitySalaryStructure,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
		Meta: map[string]any{
			"employee_id":    body.EmployeeID,
			"base_salary":    body.BaseSalary,
			"effective_date": body.EffectiveDate,
		},
	})

	return s.afterMutation(ctx, id, fmt.Sprintf("เพิ่มเงินเดือนพื้นฐาน ID: %d เรียบร้อยแล้ว", id)), nil
}

func (s *salaryStructureService) UpdateSalaryStructure(
	ctx context.Context,
	actorID string,
	id int64,
	req UpdateSalaryStructureRequest,
) (SalaryStructureMutationResponse, error) {
	if id <= 0 {
		return SalaryStructureMutationResponse{}, payrollerrors.ErrInvalidSalaryStructureID
	}
	patch, err := validateUpdateSalaryStructure(req)
	if err != nil {
		return SalaryStructureMutationResponse{}, err
	}

	if _, err := s.repo.UpdateSalaryStructure(ctx, id, patch); err != nil {
		return SalaryStructureMutationResponse{}, err
	}
	s.cache.Invalidate()

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionSalaryStructureUpdated,
		EntityType: audit.EntitySalaryStructure,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
		Meta: map[string]any{
			"base_salary":    patch.BaseSalary,
			"effective_date": patch.EffectiveDate,
		},
	})

	return s.afterMutation(ctx, id, fmt.Sprintf("อัปเดตเงินเดือนพื้นฐาน ID: %d เรียบร้อยแล้ว", id)), nil
}

func (s *salaryStructureService) DeleteSalaryStructure(ctx context.Context, actorID string, id int64) (SalaryStructureMutationResponse, error) {
	if id <= 0 {
		return SalaryStructureMutationResponse{}, payrollerrors.ErrInvalidSalaryStructureID
	}

	if err := s.repo.DeleteSalaryStructure(ctx, id); err != nil {
		return SalaryStructureMutationResponse{}, err
	}
	s.cache.Invalidate()

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionSalaryStructureDeleted,
		EntityType: audit.EntitySalaryStructure,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
	})

	return s.afterMutation(ctx, id, "ลบเงินเดือนพื้นฐานเรียบร้อยแล้ว"), nil
}

func (s *salaryStructureService) afterMutation(ctx context.Context, id int64, message string) SalaryStructureMutationResponse {
	resp := SalaryStructureMutationResponse{Message: message, SalaryStructureID: id}

	rows, err := s.ListSalaryStructures(ctx)
	if err != nil {
		s.log(ctx).Warn("salary structure refresh after mutation failed", zap.Int64("salary_structure_id", id), zap.Error(err))
		resp.RefreshError = err.Error()
		resp.SalaryStructures = []SalaryStructureRowResponse{}
		return resp
	}

	resp.SalaryStructures = rows
	return resp
}

// zero base salary counts as missing, same as the blank form field.
func validBaseSalary(v *float64) bool {
	return v != nil && *v != 0 && isFinite(*v)
}

func validateCreateSalaryStructure(req CreateSalaryStructureRequest) (SalaryStructureCreate, error) {
	date := strings.TrimSpace(req.EffectiveDate)
	if req.EmployeeID <= 0 || !validBaseSalary(req.BaseSalary) || date == "" {
		return SalaryStructureCreate{}, payrollerrors.ErrSalaryStructureRequired
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return SalaryStructureCreate{}, payrollerrors.ErrInvalidDateFormat
	}

	return SalaryStructureCreate{
		EmployeeID:    req.EmployeeID,
		BaseSalary:    *req.BaseSalary,
		EffectiveDate: date,
	}, nil
}

func validateUpdateSalaryStructure(req UpdateSalaryStructureRequest) (SalaryStructurePatch, error) {
	date := strings.TrimSpace(req.EffectiveDate)
	if !validBaseSalary(req.BaseSalary) || date == "" {
		return SalaryStructurePatch{}, payrollerrors.ErrSalaryStructureEditRequired
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return SalaryStructurePatch{}, payrollerrors.ErrInvalidDateFormat
	}

	return SalaryStructurePatch{BaseSalary: *req.BaseSalary, EffectiveDate: date}, nil
}
