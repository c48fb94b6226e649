package payrollerrors

import (
	"net/http"

	"go-hris-console/internal/shared/apperror"
)

var (
	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll entry id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"gross_salary and net_salary must be finite numbers",
		http.StatusBadRequest,
	)
	ErrPaymentStatusRequired = apperror.New(
		apperror.CodeInvalidInput,
		"payment_status is required",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payment status",
		http.StatusBadRequest,
	)
	ErrCalculateSelectionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id and payroll_run_id are required",
		http.StatusBadRequest,
	)
	ErrEditingSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"editing session not found or expired",
		http.StatusNotFound,
	)
	ErrInvalidRunID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run id",
		http.StatusBadRequest,
	)
	ErrRunPeriodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"กรุณากรอกช่วงวันที่จ่าย (เริ่ม/สิ้นสุด)",
		http.StatusBadRequest,
	)
	ErrRunPeriodOrder = apperror.New(
		apperror.CodeInvalidInput,
		"ช่วงวันที่ไม่ถูกต้อง: วันเริ่ม > วันสิ้นสุด",
		http.StatusBadRequest,
	)
	ErrInvalidRunStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run status",
		http.StatusBadRequest,
	)
	ErrInvalidTotalAmount = apperror.New(
		apperror.CodeInvalidInput,
		"total_amount_paid must be a finite number",
		http.StatusBadRequest,
	)
	ErrInvalidSalaryStructureID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary structure id",
		http.StatusBadRequest,
	)
	ErrSalaryStructureRequired = apperror.New(
		apperror.CodeInvalidInput,
		"กรุณากรอกข้อมูลที่จำเป็นทั้งหมด (พนักงาน, เงินเดือนพื้นฐาน, วันที่มีผลบังคับใช้)",
		http.StatusBadRequest,
	)
	ErrSalaryStructureEditRequired = apperror.New(
		apperror.CodeInvalidInput,
		"กรุณากรอกข้อมูลที่จำเป็นทั้งหมด (เงินเดือนพื้นฐาน, วันที่มีผลบังคับใช้)",
		http.StatusBadRequest,
	)
)
