package datamanagementerrors

import (
	"net/http"

	"go-hris-console/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"กรุณากรอกข้อมูลที่จำเป็นให้ครบถ้วน",
		http.StatusBadRequest,
	)
	ErrInvalidIDCardNumber = apperror.New(
		apperror.CodeInvalidInput,
		"เลขบัตรประชาชนต้องเป็นตัวเลข 13 หลัก (ถ้ามี)",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrTerminationBeforeHire = apperror.New(
		apperror.CodeInvalidInput,
		"termination_date must not be before hire_date",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee status",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid position ID",
		http.StatusBadRequest,
	)
	ErrDepartmentNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"กรุณากรอกชื่อแผนก",
		http.StatusBadRequest,
	)
	ErrPositionNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"กรุณากรอกชื่อตำแหน่ง",
		http.StatusBadRequest,
	)
)
