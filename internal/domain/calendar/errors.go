package calendar

import "errors"

var (
	ErrInvalidRange = errors.New("end date must not be before start date")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
)
