package payroll

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusPaid      = "PAID"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusCancelled = "CANCELLED"
)

const (
	RunStatusPending    = "PENDING"
	RunStatusProcessing = "PROCESSING"
	RunStatusCompleted  = "COMPLETED"
	RunStatusFailed     = "FAILED"
)

const DefaultRunSchemeID int64 = 1

const dateLayout = "2006-01-02"

type PayrollEntry struct {
	ID            int64
	EmployeeID    int64
	PayrollRunID  int64
	GrossSalary   float64
	NetSalary     float64
	PaymentDate   string
	PaymentStatus string
	Allowances    MoneyList
	Deductions    MoneyList
}

func (e *PayrollEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                       int64           `json:"id"`
		EmployeeID               int64           `json:"employee_id"`
		PayrollRunID             int64           `json:"payroll_run_id"`
		GrossSalary              json.RawMessage `json:"gross_salary"`
		NetSalary                json.RawMessage `json:"net_salary"`
		PaymentDate              *string         `json:"payment_date"`
		PaymentStatus            *string         `json:"payment_status"`
		CalculatedAllowancesJSON json.RawMessage `json:"calculated_allowances_json"`
		CalculatedAllowances     json.RawMessage `json:"calculated_allowances"`
		CalculatedDeductionsJSON json.RawMessage `json:"calculated_deductions_json"`
		CalculatedDeductions     json.RawMessage `json:"calculated_deductions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = PayrollEntry{
		ID:           raw.ID,
		EmployeeID:   raw.EmployeeID,
		PayrollRunID: raw.PayrollRunID,
		GrossSalary:  finiteOrZero(jsNumber(raw.GrossSalary)),
		NetSalary:    finiteOrZero(jsNumber(raw.NetSalary)),
		Allowances:   ParseMoneyList(firstPresent(raw.CalculatedAllowancesJSON, raw.CalculatedAllowances)),
		Deductions:   ParseMoneyList(firstPresent(raw.CalculatedDeductionsJSON, raw.CalculatedDeductions)),
	}
	if raw.PaymentDate != nil {
		e.PaymentDate = *raw.PaymentDate
	}
	if raw.PaymentStatus != nil {
		e.PaymentStatus = *raw.PaymentStatus
	}
	return nil
}

type PayrollRun struct {
	ID              int64
	SchemeID        int64
	Status          string
	PeriodStart     string
	PeriodEnd       string
	TotalAmountPaid float64
	Notes           string
	CreatedAt       string
	RunDate         string
}

// UnmarshalJSON resolves the pay_period_* aliases. The canonical names win
// when both are present.
func (r *PayrollRun) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              int64           `json:"id"`
		SchemeID        int64           `json:"scheme_id"`
		Status          *string         `json:"status"`
		PeriodStart     *string         `json:"period_start"`
		PayPeriodStart  *string         `json:"pay_period_start"`
		PeriodEnd       *string         `json:"period_end"`
		PayPeriodEnd    *string         `json:"pay_period_end"`
		TotalAmountPaid json.RawMessage `json:"total_amount_paid"`
		Notes           *string         `json:"notes"`
		CreatedAt       *string         `json:"created_at"`
		RunDate         *string         `json:"run_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = PayrollRun{
		ID:              raw.ID,
		SchemeID:        raw.SchemeID,
		Status:          deref(raw.Status),
		PeriodStart:     deref(firstString(raw.PeriodStart, raw.PayPeriodStart)),
		PeriodEnd:       deref(firstString(raw.PeriodEnd, raw.PayPeriodEnd)),
		TotalAmountPaid: finiteOrZero(jsNumber(raw.TotalAmountPaid)),
		Notes:           deref(raw.Notes),
		CreatedAt:       deref(raw.CreatedAt),
		RunDate:         deref(raw.RunDate),
	}
	return nil
}

// Created is the creation stamp shown in the runs table; older records only
// carry run_date.
func (r PayrollRun) Created() string {
	return deref(firstString(&r.CreatedAt, &r.RunDate))
}

// PeriodEndDate returns false when the run has no usable period end.
func (r PayrollRun) PeriodEndDate() (time.Time, bool) {
	return parseDate(r.PeriodEnd)
}

func (r PayrollRun) DisplayName() string {
	return fmt.Sprintf("ID: %d (%s - %s)", r.ID, displayDate(r.PeriodStart), displayDate(r.PeriodEnd))
}

type SalaryStructure struct {
	ID            int64   `json:"id"`
	EmployeeID    int64   `json:"employee_id"`
	BaseSalary    float64 `json:"base_salary"`
	EffectiveDate string  `json:"effective_date"`
}

// RunCreate is the body for a new payroll run. The backend only knows one
// payment scheme so far.
type RunCreate struct {
	SchemeID    int64   `json:"scheme_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	Notes       *string `json:"notes,omitempty"`
}

type RunPatch struct {
	PeriodStart     *string  `json:"period_start,omitempty"`
	PeriodEnd       *string  `json:"period_end,omitempty"`
	Status          *string  `json:"status,omitempty"`
	TotalAmountPaid *float64 `json:"total_amount_paid,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

type SalaryStructureCreate struct {
	EmployeeID    int64   `json:"employee_id"`
	BaseSalary    float64 `json:"base_salary"`
	EffectiveDate string  `json:"effective_date"`
}

type SalaryStructurePatch struct {
	BaseSalary    float64 `json:"base_salary"`
	EffectiveDate string  `json:"effective_date"`
}

type EmployeeRef struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (e EmployeeRef) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// EntryPatch is the partial update body; nil fields are not sent.
type EntryPatch struct {
	GrossSalary   *float64 `json:"gross_salary,omitempty"`
	NetSalary     *float64 `json:"net_salary,omitempty"`
	PaymentDate   *string  `json:"payment_date,omitempty"`
	PaymentStatus *string  `json:"payment_status,omitempty"`
}

type EntryFilter struct {
	Query         string
	StartDate     string
	EndDate       string
	EmployeeID    int64
	PayrollRunID  int64
	PaymentStatus string
}

type MonthlyReportRow struct {
	EmployeeID      int64              `json:"employee_id"`
	EmployeeName    string             `json:"employee_name"`
	PayrollRunID    int64              `json:"payroll_run_id"`
	PeriodStart     string             `json:"period_start"`
	PeriodEnd       string             `json:"period_end"`
	Allowances      map[string]float64 `json:"allowances"`
	Deductions      map[string]float64 `json:"deductions"`
	BaseSalary      float64            `json:"base_salary"`
	AllowancesTotal float64            `json:"allowances_total"`
	DeductionsTotal float64            `json:"deductions_total"`
	GrossSalary     float64            `json:"gross_salary"`
	NetSalary       float64            `json:"net_salary"`
	PaymentStatus   string             `json:"payment_status"`
	PaymentDate     *string            `json:"payment_date"`
}

type MonthlyReportTotals struct {
	BaseSalary      float64 `json:"base_salary"`
	AllowancesTotal float64 `json:"allowances_total"`
	DeductionsTotal float64 `json:"deductions_total"`
	GrossSalary     float64 `json:"gross_salary"`
	NetSalary       float64 `json:"net_salary"`
}

type ReportPeriod struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type MonthlyReport struct {
	Period                ReportPeriod        `json:"period"`
	AllowanceKeys         []string            `json:"allowance_keys"`
	DeductionKeys         []string            `json:"deduction_keys"`
	Rows                  []MonthlyReportRow  `json:"rows"`
	Totals                MonthlyReportTotals `json:"totals"`
	AllowanceTotalsByType map[string]float64  `json:"allowance_totals_by_type"`
	DeductionTotalsByType map[string]float64  `json:"deduction_totals_by_type"`
}

type ReportFilter struct {
	Month    string
	OnlyPaid bool
}

func firstPresent(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if !isNull(v) {
			return v
		}
	}
	return nil
}

// firstString skips nil and blank values, so an empty canonical field
// still falls back to its alias.
func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseDate accepts a bare date or a full timestamp.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, true
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func displayDate(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return t.Format(dateLayout)
}
