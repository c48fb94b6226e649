package payroll

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"go-hris-console/internal/audit"
	payrollerrors "go-hris-console/internal/payroll/errors"
	"go-hris-console/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	ListEntries(ctx context.Context, req ListEntriesRequest) ([]EntryRowResponse, error)
	OpenEntry(ctx context.Context, actorID string, id int64) (EditingSessionResponse, error)
	GetEditingSession(ctx context.Context, sessionID string) (EditingSession, error)
	SaveEditingSession(ctx context.Context, actorID, sessionID string, req SaveEntryRequest, list ListEntriesRequest) (EntryMutationResponse, error)
	CloseEditingSession(ctx context.Context, sessionID string) error
	DeleteEntry(ctx context.Context, actorID string, id int64, list ListEntriesRequest) (EntryMutationResponse, error)
	CalculateEntry(ctx context.Context, actorID string, req CalculateEntryRequest, list ListEntriesRequest) (EntryMutationResponse, error)
	ReplayMutation(ctx context.Context, outcome MutationOutcome, list ListEntriesRequest) (EntryMutationResponse, error)
	Reload(ctx context.Context, req ListEntriesRequest) ([]EntryRowResponse, error)
	ReferenceOptions(ctx context.Context) (ReferenceOptionsResponse, error)
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
	MonthlyReportCSV(ctx context.Context, req MonthlyReportRequest) (io.ReadCloser, string, error)
}

type service struct {
	repo     Repository
	salaries *SalaryStructureCache
	sessions SessionStore
	audit    audit.Recorder
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, salaries *SalaryStructureCache, sessions SessionStore, recorder audit.Recorder) Service {
	if recorder == nil {
		recorder = audit.NopRecorder()
	}
	return &service{
		repo:     repo,
		salaries: salaries,
		sessions: sessions,
		audit:    recorder,
		logger:   zap.L().Named("payroll.service"),
		now:      time.Now,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) ListEntries(ctx context.Context, req ListEntriesRequest) ([]EntryRowResponse, error) {
	filter, err := validateListRequest(req)
	if err != nil {
		return nil, err
	}
	return s.listRows(ctx, filter)
}

func (s *service) listRows(ctx context.Context, filter EntryFilter) ([]EntryRowResponse, error) {
	entries, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	refs := LoadReferenceSnapshot(ctx, s.repo)
	return mapToRowsResponse(entries, refs), nil
}

func (s *service) OpenEntry(ctx context.Context, actorID string, id int64) (EditingSessionResponse, error) {
	if id <= 0 {
		return EditingSessionResponse{}, payrollerrors.ErrInvalidEntryID
	}

	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return EditingSessionResponse{}, err
	}

	refs := LoadReferenceSnapshot(ctx, s.repo)
	run, _ := refs.Run(entry.PayrollRunID)
	summary := ComposeSummary(*entry, s.salaries.BaseSalaryFor(ctx, entry.EmployeeID, run))

	now := s.now()
	session := EditingSession{
		ID:       uuid.New().String(),
		EntityID: entry.ID,
		FormState: EditForm{
			GrossSalary:   entry.GrossSalary,
			NetSalary:     entry.NetSalary,
			PaymentDate:   displayDate(entry.PaymentDate),
			PaymentStatus: entry.PaymentStatus,
		},
		OpenedBy:  actorID,
		OpenedAt:  now,
		ExpiresAt: now.Add(DefaultEditingSessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return EditingSessionResponse{}, err
	}

	return EditingSessionResponse{
		Session: session,
		Entry:   mapToRowResponse(*entry, refs),
		Summary: mapToSummaryResponse(summary),
	}, nil
}

func (s *service) GetEditingSession(ctx context.Context, sessionID string) (EditingSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return EditingSession{}, err
	}
	return *session, nil
}

func (s *service) SaveEditingSession(
	ctx context.Context,
	actorID, sessionID string,
	req SaveEntryRequest,
	list ListEntriesRequest,
) (EntryMutationResponse, error) {
	// validasi dulu sebelum request apa pun ke upstream
	patch, err := validateSaveRequest(req)
	if err != nil {
		return EntryMutationResponse{}, err
	}
	filter, err := validateListRequest(list)
	if err != nil {
		return EntryMutationResponse{}, err
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return EntryMutationResponse{}, err
	}

	updated, err := s.repo.UpdateEntry(ctx, session.EntityID, patch)
	if err != nil {
		return EntryMutationResponse{}, err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log(ctx).Warn("failed to discard editing session", zap.String("session_id", sessionID), zap.Error(err))
	}

	entryID := session.EntityID
	if updated != nil && updated.ID > 0 {
		entryID = updated.ID
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionPayrollEntryUpdated,
		EntityType: audit.EntityPayrollEntry,
		EntityID:   strconv.FormatInt(entryID, 10),
		ActorID:    actorID,
		Meta: map[string]any{
			"session_id": sessionID,
			"patch":      patch,
		},
	})

	return s.afterMutation(ctx, filter, entryID, fmt.Sprintf("อัปเดตรายการเงินเดือน ID: %d เรียบร้อยแล้ว", entryID)), nil
}

func (s *service) CloseEditingSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *service) DeleteEntry(ctx context.Context, actorID string, id int64, list ListEntriesRequest) (EntryMutationResponse, error) {
	if id <= 0 {
		return EntryMutationResponse{}, payrollerrors.ErrInvalidEntryID
	}
	filter, err := validateListRequest(list)
	if err != nil {
		return EntryMutationResponse{}, err
	}

	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		return EntryMutationResponse{}, err
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionPayrollEntryDeleted,
		EntityType: audit.EntityPayrollEntry,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
	})

	return s.afterMutation(ctx, filter, id, "ลบรายการเงินเดือนเรียบร้อยแล้ว"), nil
}

func (s *service) CalculateEntry(
	ctx context.Context,
	actorID string,
	req CalculateEntryRequest,
	list ListEntriesRequest,
) (EntryMutationResponse, error) {
	if req.EmployeeID <= 0 || req.PayrollRunID <= 0 {
		return EntryMutationResponse{}, payrollerrors.ErrCalculateSelectionRequired
	}
	filter, err := validateListRequest(list)
	if err != nil {
		return EntryMutationResponse{}, err
	}

	created, err := s.repo.CalculateEntry(ctx, req.EmployeeID, req.PayrollRunID)
	if err != nil {
		return EntryMutationResponse{}, err
	}

	var entryID int64
	if created != nil {
		entryID = created.ID
	}

	s.audit.Record(ctx, audit.Event{
		Action:     audit.ActionPayrollEntryCalculated,
		EntityType: audit.EntityPayrollEntry,
		EntityID:   strconv.FormatInt(entryID, 10),
		ActorID:    actorID,
		Meta: map[string]any{
			"employee_id":    req.EmployeeID,
			"payroll_run_id": req.PayrollRunID,
		},
	})

	return s.afterMutation(ctx, filter, entryID, fmt.Sprintf("บันทึกรายการเงินเดือน ID: %d เรียบร้อยแล้ว", entryID)), nil
}

// ReplayMutation answers a repeated calculate with the first outcome and a
// freshly read list, so the caller never sees rows from a day ago.
func (s *service) ReplayMutation(ctx context.Context, outcome MutationOutcome, list ListEntriesRequest) (EntryMutationResponse, error) {
	filter, err := validateListRequest(list)
	if err != nil {
		return EntryMutationResponse{}, err
	}
	return s.afterMutation(ctx, filter, outcome.EntryID, outcome.Message), nil
}

// afterMutation re-reads the list so the caller never renders a locally
// patched row. The mutation already happened upstream, so a failed re-read
// is reported alongside the success message instead of as an error.
func (s *service) afterMutation(ctx context.Context, filter EntryFilter, entryID int64, message string) EntryMutationResponse {
	resp := EntryMutationResponse{
		Message: message,
		EntryID: entryID,
	}

	rows, err := s.listRows(ctx, filter)
	if err != nil {
		s.log(ctx).Warn("list refresh after mutation failed", zap.Int64("entry_id", entryID), zap.Error(err))
		resp.RefreshError = err.Error()
		resp.Entries = []EntryRowResponse{}
		return resp
	}

	resp.Entries = rows
	return resp
}

func (s *service) Reload(ctx context.Context, req ListEntriesRequest) ([]EntryRowResponse, error) {
	filter, err := validateListRequest(req)
	if err != nil {
		return nil, err
	}

	s.salaries.Invalidate()
	return s.listRows(ctx, filter)
}

func (s *service) ReferenceOptions(ctx context.Context) (ReferenceOptionsResponse, error) {
	var (
		employees []EmployeeRef
		runs      []PayrollRun
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.repo.ListEmployees(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		runs, err = s.repo.ListRuns(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return ReferenceOptionsResponse{}, err
	}

	resp := ReferenceOptionsResponse{
		Employees: make([]EmployeeOption, 0, len(employees)),
		Runs:      make([]RunOption, 0, len(runs)),
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, EmployeeOption{ID: e.ID, Name: e.DisplayName()})
	}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, RunOption{ID: r.ID, Label: r.DisplayName(), Status: r.Status})
	}
	return resp, nil
}

func (s *service) MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error) {
	filter, err := validateReportRequest(req)
	if err != nil {
		return MonthlyReportResponse{}, err
	}

	report, err := s.repo.MonthlyReport(ctx, filter)
	if err != nil {
		return MonthlyReportResponse{}, err
	}
	if report.Rows == nil {
		report.Rows = []MonthlyReportRow{}
	}

	return MonthlyReportResponse{Month: filter.Month, Report: *report}, nil
}

func (s *service) MonthlyReportCSV(ctx context.Context, req MonthlyReportRequest) (io.ReadCloser, string, error) {
	filter, err := validateReportRequest(req)
	if err != nil {
		return nil, "", err
	}
	return s.repo.MonthlyReportCSV(ctx, filter)
}

func validateListRequest(req ListEntriesRequest) (EntryFilter, error) {
	filter := EntryFilter{
		Query:         strings.TrimSpace(req.Q),
		StartDate:     strings.TrimSpace(req.StartDate),
		EndDate:       strings.TrimSpace(req.EndDate),
		EmployeeID:    req.EmployeeID,
		PayrollRunID:  req.PayrollRunID,
		PaymentStatus: strings.ToUpper(strings.TrimSpace(req.PaymentStatus)),
	}

	var start, end time.Time
	var err error
	if filter.StartDate != "" {
		if start, err = time.Parse(dateLayout, filter.StartDate); err != nil {
			return EntryFilter{}, payrollerrors.ErrInvalidDateFormat
		}
	}
	if filter.EndDate != "" {
		if end, err = time.Parse(dateLayout, filter.EndDate); err != nil {
			return EntryFilter{}, payrollerrors.ErrInvalidDateFormat
		}
	}
	if filter.StartDate != "" && filter.EndDate != "" && start.After(end) {
		return EntryFilter{}, payrollerrors.ErrInvalidDateRange
	}

	if filter.PaymentStatus != "" && !isPaymentStatus(filter.PaymentStatus) {
		return EntryFilter{}, payrollerrors.ErrInvalidPaymentStatus
	}
	return filter, nil
}

func validateSaveRequest(req SaveEntryRequest) (EntryPatch, error) {
	if req.GrossSalary == nil || req.NetSalary == nil || !isFinite(*req.GrossSalary) || !isFinite(*req.NetSalary) {
		return EntryPatch{}, payrollerrors.ErrInvalidMoneyValue
	}

	status := strings.ToUpper(strings.TrimSpace(req.PaymentStatus))
	if status == "" {
		return EntryPatch{}, payrollerrors.ErrPaymentStatusRequired
	}
	if !isPaymentStatus(status) {
		return EntryPatch{}, payrollerrors.ErrInvalidPaymentStatus
	}

	gross, net := *req.GrossSalary, *req.NetSalary
	patch := EntryPatch{
		GrossSalary:   &gross,
		NetSalary:     &net,
		PaymentStatus: &status,
	}

	if date := strings.TrimSpace(req.PaymentDate); date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return EntryPatch{}, payrollerrors.ErrInvalidDateFormat
		}
		patch.PaymentDate = &date
	}
	return patch, nil
}

func validateReportRequest(req MonthlyReportRequest) (ReportFilter, error) {
	month := strings.TrimSpace(req.Month)
	if len(month) != len("2006-01") {
		return ReportFilter{}, payrollerrors.ErrInvalidMonthFormat
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return ReportFilter{}, payrollerrors.ErrInvalidMonthFormat
	}
	return ReportFilter{Month: month, OnlyPaid: req.OnlyPaid}, nil
}

func isPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
