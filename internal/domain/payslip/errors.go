package payslip

import "errors"

var (
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrStoreConflict   = errors.New("payslip write conflicted, retry the submission")
	ErrPeriodRequired  = errors.New("period is required")
	ErrUnknownField    = errors.New("unknown payslip field")
)
