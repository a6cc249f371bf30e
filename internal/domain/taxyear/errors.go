package taxyear

import "errors"

var (
	ErrAggregateNotFound = errors.New("no payslips recorded for this tax year")
	ErrInvalidYear       = errors.New("tax year must be a four digit starting year")
)
