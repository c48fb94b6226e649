package datamanagement

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-hris-console/internal/audit"
	datamanagementerrors "go-hris-console/internal/datamanagement/errors"
	"go-hris-console/internal/shared/apperror"
	"go-hris-console/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	OptionsKeyPrefix = "console:data_management:options:"
	OptionsCacheTTL  = time.Hour
)

func GetOptionsKey(resource string) string {
	return OptionsKeyPrefix + resource
}

type Service interface {
	ListEmployees(ctx context.Context, req ListEmployeesRequest) (EmployeePage, error)
	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeMutationResponse, error)
	UpdateEmployee(ctx context.Context, actorID string, id int64, req UpdateEmployeeRequest) (EmployeeMutationResponse, error)
	DeleteEmployee(ctx context.Context, actorID string, id int64) (EmployeeMutationResponse, error)
	ListDepartments(ctx context.Context) ([]OptionResponse, error)
	CreateDepartment(ctx context.Context, actorID string, req NameRequest) (OptionMutationResponse, error)
	UpdateDepartment(ctx context.Context, actorID string, id int64, req NameRequest) (OptionMutationResponse, error)
	DeleteDepartment(ctx context.Context, actorID string, id int64) (OptionMutationResponse, error)
	ListPositions(ctx context.Context) ([]OptionResponse, error)
	CreatePosition(ctx context.Context, actorID string, req NameRequest) (OptionMutationResponse, error)
	UpdatePosition(ctx context.Context, actorID string, id int64, req NameRequest) (OptionMutationResponse, error)
	DeletePosition(ctx context.Context, actorID string, id int64) (OptionMutationResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, recorder audit.Recorder) Service {
	if recorder == nil {
		recorder = audit.NopRecorder()
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		audit:  recorder,
		logger: zap.L().Named("datamanagement.service"),
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

// ListEmployees filters on name or employee number, then pages the result.
// The backend has no search endpoint, so the full list is always fetched.
func (s *service) ListEmployees(ctx context.Context, req ListEmployeesRequest) (EmployeePage, error) {
	req = req.WithDefaults()

	rows, err := s.listAll(ctx)
	if err != nil {
		return EmployeePage{}, err
	}

	if q := strings.ToLower(strings.TrimSpace(req.Q)); q != "" {
		filtered := make([]EmployeeResponse, 0, len(rows))
		for _, e := range rows {
			if strings.Contains(strings.ToLower(e.FullName), q) ||
				strings.Contains(strings.ToLower(e.EmployeeIDNumber), q) {
				filtered = append(filtered, e)
			}
		}
		rows = filtered
	}

	start := (req.Page - 1) * req.PageSize
	end := start + req.PageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	return EmployeePage{
		Items:    rows[start:end],
		Total:    int64(len(rows)),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *service) listAll(ctx context.Context) ([]EmployeeResponse, error) {
	var (
		employees   []Employee
		departments []OptionResponse
		positions   []OptionResponse
	)

	// department/position gagal tidak membatalkan tabel, nama jadi "-"
	var g errgroup.Group
	g.Go(func() error {
		var err error
		employees, err = s.repo.ListEmployees(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		if departments, err = s.ListDepartments(ctx); err != nil {
			s.log(ctx).Warn("department lookup failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if positions, err = s.ListPositions(ctx); err != nil {
			s.log(ctx).Warn("position lookup failed", zap.Error(err))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mapToEmployeesResponse(employees, optionNames(departments), optionNames(positions)), nil
}

func (s *service) GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error) {
	if id <= 0 {
		return EmployeeResponse{}, datamanagementerrors.ErrInvalidEmployeeID
	}

	employee, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	return mapToEmployeeResponse(*employee, nil, nil), nil
}

func (s *service) CreateEmployee(
	ctx context.Context,
	actorID string,
	req CreateEmployeeRequest,
) (EmployeeMutationResponse, error) {
	body, err := validateUpdateRequest(UpdateEmployeeRequest(req))
	if err != nil {
		return EmployeeMutationResponse{}, err
	}
	body.ApplicationDocumentsPaths, err = EncodeDocumentPaths(req.ApplicationDocumentsPaths)
	if err != nil {
		return EmployeeMutationResponse{}, err
	}

	created, err := s.repo.CreateEmployee(ctx, body)
	if err != nil {
		return EmployeeMutationResponse{}, err
	}

	var employeeID int64
	if created != nil {
		employeeID = created.ID
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionEmployeeCreated,
		EntityType: audit.EntityEmployee,
		EntityID:   strconv.FormatInt(employeeID, 10),
		ActorID:    actorID,
		Meta: map[string]any{
			"employee_status": body.EmployeeStatus,
			"department_id":   body.DepartmentID,
			"position_id":     body.PositionID,
		},
	})

	msg := fmt.Sprintf("เพิ่มพนักงาน \"%s %s\" (ID: %d) เรียบร้อยแล้ว", body.FirstName, body.LastName, employeeID)
	return s.afterMutation(ctx, employeeID, msg), nil
}

func (s *service) UpdateEmployee(
	ctx context.Context,
	actorID string,
	id int64,
	req UpdateEmployeeRequest,
) (EmployeeMutationResponse, error) {
	if id <= 0 {
		return EmployeeMutationResponse{}, datamanagementerrors.ErrInvalidEmployeeID
	}

	body, err := validateUpdateRequest(req)
	if err != nil {
		return EmployeeMutationResponse{}, err
	}

	if req.ReplaceDocuments {
		body.ApplicationDocumentsPaths, err = EncodeDocumentPaths(req.ApplicationDocumentsPaths)
		if err != nil {
			return EmployeeMutationResponse{}, err
		}
	} else {
		// form tidak memegang dokumen, ambil nilai terbaru dari server
		current, err := s.repo.GetEmployee(ctx, id)
		if err != nil {
			s.log(ctx).Warn("fetch current employee for documents failed", zap.Int64("employee_id", id), zap.Error(err))
			return EmployeeMutationResponse{}, err
		}
		body.ApplicationDocumentsPaths = current.ApplicationDocumentsPaths
	}

	updated, err := s.repo.UpdateEmployee(ctx, id, body)
	if err != nil {
		return EmployeeMutationResponse{}, err
	}

	name := body.FirstName + " " + body.LastName
	employeeID := id
	if updated != nil {
		if updated.ID > 0 {
			employeeID = updated.ID
		}
		if full := updated.FullName(); full != "" {
			name = full
		}
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionEmployeeUpdated,
		EntityType: audit.EntityEmployee,
		EntityID:   strconv.FormatInt(employeeID, 10),
		ActorID:    actorID,
		Meta: map[string]any{
			"employee_status":    body.EmployeeStatus,
			"department_id":      body.DepartmentID,
			"position_id":        body.PositionID,
			"documents_replaced": req.ReplaceDocuments,
		},
	})

	msg := fmt.Sprintf("อัปเดตพนักงาน \"%s\" (ID: %d) เรียบร้อยแล้ว", name, employeeID)
	return s.afterMutation(ctx, employeeID, msg), nil
}

func (s *service) DeleteEmployee(ctx context.Context, actorID string, id int64) (EmployeeMutationResponse, error) {
	if id <= 0 {
		return EmployeeMutationResponse{}, datamanagementerrors.ErrInvalidEmployeeID
	}

	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		return EmployeeMutationResponse{}, err
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionEmployeeDeleted,
		EntityType: audit.EntityEmployee,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
	})

	return s.afterMutation(ctx, id, "ลบพนักงานเรียบร้อยแล้ว"), nil
}

func (s *service) afterMutation(ctx context.Context, employeeID int64, message string) EmployeeMutationResponse {
	resp := EmployeeMutationResponse{
		Message:    message,
		EmployeeID: employeeID,
	}

	rows, err := s.listAll(ctx)
	if err != nil {
		s.log(ctx).Warn("employee list refresh after mutation failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		resp.RefreshError = err.Error()
		resp.Employees = []EmployeeResponse{}
		return resp
	}

	resp.Employees = rows
	return resp
}

func (s *service) ListDepartments(ctx context.Context) ([]OptionResponse, error) {
	return s.cachedOptions(ctx, "departments", func(ctx context.Context) ([]OptionResponse, error) {
		departments, err := s.repo.ListDepartments(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]OptionResponse, 0, len(departments))
		for _, d := range departments {
			out = append(out, OptionResponse{ID: d.ID, Name: d.Name})
		}
		return out, nil
	})
}

func (s *service) ListPositions(ctx context.Context) ([]OptionResponse, error) {
	return s.cachedOptions(ctx, "positions", func(ctx context.Context) ([]OptionResponse, error) {
		positions, err := s.repo.ListPositions(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]OptionResponse, 0, len(positions))
		for _, p := range positions {
			out = append(out, OptionResponse{ID: p.ID, Name: p.Name})
		}
		return out, nil
	})
}

func (s *service) cachedOptions(
	ctx context.Context,
	resource string,
	load func(context.Context) ([]OptionResponse, error),
) ([]OptionResponse, error) {
	cacheKey := GetOptionsKey(resource)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []OptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight, dropdown dibuka bersamaan
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := load(ctx)
		if err != nil {
			return nil, err
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, OptionsCacheTTL).Err(); err != nil {
					s.log(ctx).Warn("cache options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]OptionResponse), nil
}

func validateUpdateRequest(req UpdateEmployeeRequest) (EmployeeUpdate, error) {
	body := EmployeeUpdate{
		EmployeeIDNumber:  strings.TrimSpace(req.EmployeeIDNumber),
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		DateOfBirth:       strings.TrimSpace(req.DateOfBirth),
		Address:           strings.TrimSpace(req.Address),
		IDCardNumber:      nilIfBlank(req.IDCardNumber),
		BankAccountNumber: nilIfBlank(req.BankAccountNumber),
		BankName:          nilIfBlank(req.BankName),
		HireDate:          strings.TrimSpace(req.HireDate),
		TerminationDate:   nilIfBlank(req.TerminationDate),
		EmployeeStatus:    strings.TrimSpace(req.EmployeeStatus),
		DepartmentID:      req.DepartmentID,
		PositionID:        req.PositionID,
	}
	if req.ProfilePicturePath != nil {
		body.ProfilePicturePath = nilIfBlank(*req.ProfilePicturePath)
	}

	if body.EmployeeIDNumber == "" ||
		body.FirstName == "" ||
		body.LastName == "" ||
		body.DateOfBirth == "" ||
		body.Address == "" ||
		body.HireDate == "" ||
		body.EmployeeStatus == "" ||
		body.DepartmentID <= 0 ||
		body.PositionID <= 0 {
		return EmployeeUpdate{}, datamanagementerrors.ErrMissingRequiredFields
	}

	if body.IDCardNumber != nil && !apperror.IsThaiID(*body.IDCardNumber) {
		return EmployeeUpdate{}, datamanagementerrors.ErrInvalidIDCardNumber
	}

	if _, err := time.Parse(time.DateOnly, body.DateOfBirth); err != nil {
		return EmployeeUpdate{}, datamanagementerrors.ErrInvalidDateFormat
	}
	hireDate, err := time.Parse(time.DateOnly, body.HireDate)
	if err != nil {
		return EmployeeUpdate{}, datamanagementerrors.ErrInvalidDateFormat
	}
	if body.TerminationDate != nil {
		terminationDate, err := time.Parse(time.DateOnly, *body.TerminationDate)
		if err != nil {
			return EmployeeUpdate{}, datamanagementerrors.ErrInvalidDateFormat
		}
		if terminationDate.Before(hireDate) {
			return EmployeeUpdate{}, datamanagementerrors.ErrTerminationBeforeHire
		}
	}

	if !IsValidEmployeeStatus(body.EmployeeStatus) {
		return EmployeeUpdate{}, datamanagementerrors.ErrInvalidEmployeeStatus
	}

	return body, nil
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
