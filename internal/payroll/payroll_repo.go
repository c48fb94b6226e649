package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"go-hris-console/internal/shared/contextutil"
	"go-hris-console/internal/upstream"

	"go.uber.org/zap"
)

const salaryStructurePageSize = 1000

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	ListEntries(ctx context.Context, filter EntryFilter) ([]PayrollEntry, error)
	GetEntry(ctx context.Context, id int64) (*PayrollEntry, error)
	UpdateEntry(ctx context.Context, id int64, patch EntryPatch) (*PayrollEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
	CalculateEntry(ctx context.Context, employeeID, runID int64) (*PayrollEntry, error)
	ListRuns(ctx context.Context) ([]PayrollRun, error)
	GetRun(ctx context.Context, id int64) (*PayrollRun, error)
	CreateRun(ctx context.Context, body RunCreate) (*PayrollRun, error)
	UpdateRun(ctx context.Context, id int64, patch RunPatch) (*PayrollRun, error)
	DeleteRun(ctx context.Context, id int64) error
	ListSalaryStructures(ctx context.Context) ([]SalaryStructure, error)
	GetSalaryStructure(ctx context.Context, id int64) (*SalaryStructure, error)
	CreateSalaryStructure(ctx context.Context, body SalaryStructureCreate) (*SalaryStructure, error)
	UpdateSalaryStructure(ctx context.Context, id int64, patch SalaryStructurePatch) (*SalaryStructure, error)
	DeleteSalaryStructure(ctx context.Context, id int64) error
	ListEmployees(ctx context.Context) ([]EmployeeRef, error)
	MonthlyReport(ctx context.Context, filter ReportFilter) (*MonthlyReport, error)
	MonthlyReportCSV(ctx context.Context, filter ReportFilter) (io.ReadCloser, string, error)
}

type repository struct {
	client *upstream.Client
	logger *zap.Logger
}

func NewRepository(client *upstream.Client) Repository {
	return &repository{client: client, logger: zap.L().Named("payroll.repo")}
}

// listEach fetches a JSON array and decodes it element by element. A record
// that does not decode is logged and skipped so one bad row never empties
// the whole table.
func listEach[T any](ctx context.Context, r *repository, path string, query url.Values) ([]T, error) {
	var raw []json.RawMessage
	if err := r.client.GetJSON(ctx, path, query, &raw); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			contextutil.GetLogger(ctx, r.logger).Warn("skip undecodable record",
				zap.String("path", path),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func payrollPath(format string, args ...any) string {
	return upstream.PayrollBasePath + fmt.Sprintf(format, args...)
}

func (r *repository) ListEntries(ctx context.Context, filter EntryFilter) ([]PayrollEntry, error) {
	query := url.Values{}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.StartDate != "" {
		query.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("end_date", filter.EndDate)
	}
	if filter.EmployeeID > 0 {
		query.Set("employee_id", strconv.FormatInt(filter.EmployeeID, 10))
	}
	if filter.PayrollRunID > 0 {
		query.Set("payroll_run_id", strconv.FormatInt(filter.PayrollRunID, 10))
	}
	if filter.PaymentStatus != "" {
		query.Set("payment_status", filter.PaymentStatus)
	}

	return listEach[PayrollEntry](ctx, r, payrollPath("/payroll-entries/"), query)
}

func (r *repository) GetEntry(ctx context.Context, id int64) (*PayrollEntry, error) {
	var entry PayrollEntry
	if err := r.client.GetJSON(ctx, payrollPath("/payroll-entries/%d", id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) UpdateEntry(ctx context.Context, id int64, patch EntryPatch) (*PayrollEntry, error) {
	var entry PayrollEntry
	if err := r.client.PutJSON(ctx, payrollPath("/payroll-entries/%d", id), patch, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) DeleteEntry(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, payrollPath("/payroll-entries/%d", id))
}

func (r *repository) CalculateEntry(ctx context.Context, employeeID, runID int64) (*PayrollEntry, error) {
	var entry PayrollEntry
	path := payrollPath("/payroll-entries/calculate/by-employee/%d/run/%d", employeeID, runID)
	if err := r.client.PostJSON(ctx, path, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListRuns(ctx context.Context) ([]PayrollRun, error) {
	return listEach[PayrollRun](ctx, r, payrollPath("/payroll-runs/"), nil)
}

func (r *repository) GetRun(ctx context.Context, id int64) (*PayrollRun, error) {
	var run PayrollRun
	if err := r.client.GetJSON(ctx, payrollPath("/payroll-runs/%d", id), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) CreateRun(ctx context.Context, body RunCreate) (*PayrollRun, error) {
	var run PayrollRun
	if err := r.client.PostJSON(ctx, payrollPath("/payroll-runs/"), body, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) UpdateRun(ctx context.Context, id int64, patch RunPatch) (*PayrollRun, error) {
	var run PayrollRun
	if err := r.client.PutJSON(ctx, payrollPath("/payroll-runs/%d", id), patch, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) DeleteRun(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, payrollPath("/payroll-runs/%d", id))
}

// ListSalaryStructures reads a single page; collections larger than the page
// size are truncated by the backend.
func (r *repository) ListSalaryStructures(ctx context.Context) ([]SalaryStructure, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(salaryStructurePageSize))

	return listEach[SalaryStructure](ctx, r, payrollPath("/salary-structures/"), query)
}

func (r *repository) GetSalaryStructure(ctx context.Context, id int64) (*SalaryStructure, error) {
	var st SalaryStructure
	if err := r.client.GetJSON(ctx, payrollPath("/salary-structures/%d", id), nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) CreateSalaryStructure(ctx context.Context, body SalaryStructureCreate) (*SalaryStructure, error) {
	var st SalaryStructure
	if err := r.client.PostJSON(ctx, payrollPath("/salary-structures/"), body, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) UpdateSalaryStructure(ctx context.Context, id int64, patch SalaryStructurePatch) (*SalaryStructure, error) {
	var st SalaryStructure
	if err := r.client.PutJSON(ctx, payrollPath("/salary-structures/%d", id), patch, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) DeleteSalaryStructure(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, payrollPath("/salary-structures/%d", id))
}

func (r *repository) ListEmployees(ctx context.Context) ([]EmployeeRef, error) {
	return listEach[EmployeeRef](ctx, r, upstream.DataManagementBasePath+"/employees/", nil)
}

func reportQuery(filter ReportFilter) url.Values {
	query := url.Values{}
	query.Set("month", filter.Month)
	if filter.OnlyPaid {
		query.Set("only_paid", "true")
	}
	return query
}

func (r *repository) MonthlyReport(ctx context.Context, filter ReportFilter) (*MonthlyReport, error) {
	var report MonthlyReport
	if err := r.client.GetJSON(ctx, payrollPath("/payroll-entries/report"), reportQuery(filter), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) MonthlyReportCSV(ctx context.Context, filter ReportFilter) (io.ReadCloser, string, error) {
	return r.client.Stream(ctx, payrollPath("/payroll-entries/report.csv"), reportQuery(filter))
}
