package payroll

import (
	"fmt"
	"strings"
)

type ListEntriesRequest struct {
	Q             string `form:"q"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	EmployeeID    int64  `form:"employee_id" binding:"omitempty,gt=0"`
	PayrollRunID  int64  `form:"payroll_run_id" binding:"omitempty,gt=0"`
	PaymentStatus string `form:"payment_status"`
}

// SaveEntryRequest mirrors the edit modal. Pointers distinguish a field the
// operator cleared from one that was never sent.
type SaveEntryRequest struct {
	GrossSalary   *float64 `json:"gross_salary"`
	NetSalary     *float64 `json:"net_salary"`
	PaymentDate   string   `json:"payment_date"`
	PaymentStatus string   `json:"payment_status"`
}

type CalculateEntryRequest struct {
	EmployeeID   int64 `json:"employee_id"`
	PayrollRunID int64 `json:"payroll_run_id"`
}

type MonthlyReportRequest struct {
	Month    string `form:"month"`
	OnlyPaid bool   `form:"only_paid"`
}

type EntryRowResponse struct {
	ID                 int64   `json:"id"`
	PayrollRunID       int64   `json:"payroll_run_id"`
	PayrollRunName     string  `json:"payroll_run_name"`
	EmployeeID         int64   `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	GrossSalary        float64 `json:"gross_salary"`
	NetSalary          float64 `json:"net_salary"`
	GrossSalaryDisplay string  `json:"gross_salary_display"`
	NetSalaryDisplay   string  `json:"net_salary_display"`
	PaymentStatus      string  `json:"payment_status"`
	StatusTone         string  `json:"status_tone"`
	PaymentDate        string  `json:"payment_date"`
	PayslipPDFURL      string  `json:"payslip_pdf_url"`
	PayslipPreviewURL  string  `json:"payslip_preview_url"`
}

type MoneyItemResponse struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Display string  `json:"display"`
	Invalid bool    `json:"invalid,omitempty"`
}

type MoneyTableResponse struct {
	Title        string              `json:"title"`
	Items        []MoneyItemResponse `json:"items"`
	Total        float64             `json:"total"`
	TotalDisplay string              `json:"total_display"`
	EmptyMessage string              `json:"empty_message,omitempty"`
	Malformed    bool                `json:"malformed"`
	ErrorLabel   string              `json:"error_label,omitempty"`
}

type BadgeResponse struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Tone    string  `json:"tone"`
	Amount  float64 `json:"amount"`
	Display string  `json:"display"`
}

type SummaryResponse struct {
	Base           float64            `json:"base"`
	BaseSource     string             `json:"base_source"`
	AllowanceTotal float64            `json:"allowance_total"`
	DeductionTotal float64            `json:"deduction_total"`
	GrossPreview   float64            `json:"gross_preview"`
	NetPreview     float64            `json:"net_preview"`
	Badges         []BadgeResponse    `json:"badges"`
	Allowances     MoneyTableResponse `json:"allowances"`
	Deductions     MoneyTableResponse `json:"deductions"`
}

type EditingSessionResponse struct {
	Session EditingSession   `json:"session"`
	Entry   EntryRowResponse `json:"entry"`
	Summary SummaryResponse  `json:"summary"`
}

type EntryMutationResponse struct {
	Message string             `json:"message"`
	EntryID int64              `json:"entry_id,omitempty"`
	Entries []EntryRowResponse `json:"entries"`
	// RefreshError is set when the mutation succeeded but the follow-up
	// list fetch did not.
	RefreshError string `json:"refresh_error,omitempty"`
}

// MutationOutcome is what an idempotent calculate stores for replay. The
// list is left out on purpose: a replay re-reads it.
type MutationOutcome struct {
	Message string `json:"message"`
	EntryID int64  `json:"entry_id"`
}

type EmployeeOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RunOption struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

type ReferenceOptionsResponse struct {
	Employees []EmployeeOption `json:"employees"`
	Runs      []RunOption      `json:"runs"`
}

type MonthlyReportResponse struct {
	Month  string        `json:"month"`
	Report MonthlyReport `json:"report"`
}

const (
	allowanceTableTitle = "เงินเพิ่ม"
	deductionTableTitle = "รายการหัก"
	malformedLabel      = "JSON error"
)

func PayslipPDFURL(id int64) string {
	return fmt.Sprintf("/api/v1/payroll/payroll-entries/%d/payslip.pdf", id)
}

func PayslipPreviewURL(id int64) string {
	return fmt.Sprintf("/payroll/payslip/%d", id)
}

func mapToRowResponse(entry PayrollEntry, refs *ReferenceSnapshot) EntryRowResponse {
	return EntryRowResponse{
		ID:                 entry.ID,
		PayrollRunID:       entry.PayrollRunID,
		PayrollRunName:     refs.RunName(entry.PayrollRunID),
		EmployeeID:         entry.EmployeeID,
		EmployeeName:       refs.EmployeeName(entry.EmployeeID),
		GrossSalary:        entry.GrossSalary,
		NetSalary:          entry.NetSalary,
		GrossSalaryDisplay: FormatFixed(entry.GrossSalary),
		NetSalaryDisplay:   FormatFixed(entry.NetSalary),
		PaymentStatus:      entry.PaymentStatus,
		StatusTone:         StatusTone(entry.PaymentStatus),
		PaymentDate:        displayDate(entry.PaymentDate),
		PayslipPDFURL:      PayslipPDFURL(entry.ID),
		PayslipPreviewURL:  PayslipPreviewURL(entry.ID),
	}
}

func mapToRowsResponse(entries []PayrollEntry, refs *ReferenceSnapshot) []EntryRowResponse {
	rows := make([]EntryRowResponse, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, mapToRowResponse(e, refs))
	}
	return rows
}

func mapToMoneyTable(title string, breakdown MoneyBreakdown) MoneyTableResponse {
	table := MoneyTableResponse{
		Title:        title,
		Items:        make([]MoneyItemResponse, 0, len(breakdown.Items)),
		Total:        breakdown.Total,
		TotalDisplay: FormatAmount(breakdown.Total),
		Malformed:    breakdown.Malformed,
	}
	for _, it := range breakdown.Items {
		display := FormatAmount(it.Amount)
		if it.Invalid {
			display = "NaN"
		}
		table.Items = append(table.Items, MoneyItemResponse{
			Label:   it.Label,
			Amount:  it.Amount,
			Display: display,
			Invalid: it.Invalid,
		})
	}
	if len(table.Items) == 0 {
		table.EmptyMessage = "ยังไม่มีรายละเอียด" + title
	}
	if breakdown.Malformed {
		table.ErrorLabel = malformedLabel
	}
	return table
}

func mapToSummaryResponse(s Summary) SummaryResponse {
	baseLabel := "เงินเดือนฐาน (จากรายการ)"
	if s.BaseSource == BaseSourceSalaryStructure {
		baseLabel = "เงินเดือนฐาน (โครงสร้าง)"
	}

	badge := func(key, label, tone string, amount float64) BadgeResponse {
		return BadgeResponse{Key: key, Label: label, Tone: tone, Amount: amount, Display: FormatBaht(amount)}
	}

	return SummaryResponse{
		Base:           s.Base,
		BaseSource:     s.BaseSource,
		AllowanceTotal: s.AllowanceTotal,
		DeductionTotal: s.DeductionTotal,
		GrossPreview:   s.GrossPreview,
		NetPreview:     s.NetPreview,
		Badges: []BadgeResponse{
			badge("base", baseLabel, "gray", s.Base),
			badge("allowance_total", "รวมเงินเพิ่ม", "emerald", s.AllowanceTotal),
			badge("deduction_total", "รวมรายการหัก", "rose", s.DeductionTotal),
			badge("gross_preview", "รวมก่อนหัก", "sky", s.GrossPreview),
			badge("net_preview", "พรีวิวเงินสุทธิ", "indigo", s.NetPreview),
		},
		Allowances: mapToMoneyTable(allowanceTableTitle, s.Allowances),
		Deductions: mapToMoneyTable(deductionTableTitle, s.Deductions),
	}
}

type CreateRunRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Notes       string `json:"notes"`
}

// UpdateRunRequest only touches the fields that were sent.
type UpdateRunRequest struct {
	PeriodStart     *string  `json:"period_start"`
	PeriodEnd       *string  `json:"period_end"`
	Status          *string  `json:"status"`
	TotalAmountPaid *float64 `json:"total_amount_paid"`
	Notes           *string  `json:"notes"`
}

type RunRowResponse struct {
	ID                     int64   `json:"id"`
	Created                string  `json:"created"`
	PeriodStart            string  `json:"period_start"`
	PeriodEnd              string  `json:"period_end"`
	Period                 string  `json:"period"`
	Status                 string  `json:"status"`
	StatusTone             string  `json:"status_tone"`
	TotalAmountPaid        float64 `json:"total_amount_paid"`
	TotalAmountPaidDisplay string  `json:"total_amount_paid_display"`
	Notes                  string  `json:"notes"`
}

type RunMutationResponse struct {
	Message      string           `json:"message"`
	RunID        int64            `json:"run_id,omitempty"`
	Runs         []RunRowResponse `json:"runs"`
	RefreshError string           `json:"refresh_error,omitempty"`
}

type CreateSalaryStructureRequest struct {
	EmployeeID    int64    `json:"employee_id"`
	BaseSalary    *float64 `json:"base_salary"`
	EffectiveDate string   `json:"effective_date"`
}

type UpdateSalaryStructureRequest struct {
	BaseSalary    *float64 `json:"base_salary"`
	EffectiveDate string   `json:"effective_date"`
}

type SalaryStructureRowResponse struct {
	ID                int64   `json:"id"`
	EmployeeID        int64   `json:"employee_id"`
	EmployeeName      string  `json:"employee_name"`
	BaseSalary        float64 `json:"base_salary"`
	BaseSalaryDisplay string  `json:"base_salary_display"`
	EffectiveDate     string  `json:"effective_date"`
}

type SalaryStructureMutationResponse struct {
	Message           string                       `json:"message"`
	SalaryStructureID int64                        `json:"salary_structure_id,omitempty"`
	SalaryStructures  []SalaryStructureRowResponse `json:"salary_structures"`
	RefreshError      string                       `json:"refresh_error,omitempty"`
}

func mapToRunRowResponse(run PayrollRun) RunRowResponse {
	notes := strings.TrimSpace(run.Notes)
	if notes == "" {
		notes = "-"
	}
	start, end := displayDate(run.PeriodStart), displayDate(run.PeriodEnd)
	return RunRowResponse{
		ID:                     run.ID,
		Created:                displayDate(run.Created()),
		PeriodStart:            start,
		PeriodEnd:              end,
		Period:                 start + " ถึง " + end,
		Status:                 run.Status,
		StatusTone:             RunStatusTone(run.Status),
		TotalAmountPaid:        run.TotalAmountPaid,
		TotalAmountPaidDisplay: FormatFixed(run.TotalAmountPaid),
		Notes:                  notes,
	}
}

func mapToSalaryStructureRow(st SalaryStructure, refs *ReferenceSnapshot) SalaryStructureRowResponse {
	return SalaryStructureRowResponse{
		ID:                st.ID,
		EmployeeID:        st.EmployeeID,
		EmployeeName:      refs.EmployeeName(st.EmployeeID),
		BaseSalary:        st.BaseSalary,
		BaseSalaryDisplay: FormatFixed(st.BaseSalary),
		EffectiveDate:     displayDate(st.EffectiveDate),
	}
}
